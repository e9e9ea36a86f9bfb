package models

// Remote operation kinds delivered by the sync server through the push
// channel. Delivery is at-most-once; the engine must tolerate duplicates.
const (
	OpPush   = "PUSH"
	OpDelete = "DEL"
)

// RemoteOp is an inbound push message. Data is a JSON document encoded as a
// string by the push transport: for OpPush an array of records sharing one
// record type, for OpDelete a DeletePayload.
type RemoteOp struct {
	Op   string `json:"op"`
	Data string `json:"data"`
}

// DeletePayload is the decoded Data of an OpDelete message.
type DeletePayload struct {
	RecordType RecordType `json:"recordType"`
	UUIDs      []string   `json:"uuids"`
}
