package models

import (
	"encoding/json"
	"time"
)

// Record is a single health record as stored in the local health database
// and shipped to the sync server. Payload carries the type-specific body
// (samples, stages, values) untouched; the engine never interprets it.
type Record struct {
	UUID      string          `json:"uuid"`
	Type      RecordType      `json:"recordType"`
	StartTime time.Time       `json:"startTime"`
	EndTime   time.Time       `json:"endTime"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// RecordIDs extracts the UUIDs of records, preserving order.
func RecordIDs(records []Record) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.UUID)
	}
	return ids
}
