package models

// Wire types for the /api/v2 sync protocol.

// LoginRequest is the body of POST /api/v2/login. The server upserts the
// account, so login doubles as registration.
type LoginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	PushToken string `json:"fcmToken"`
}

// RefreshRequest is the body of POST /api/v2/refresh.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// AuthResponse is returned by both login and refresh. Success is signalled
// by a non-empty Token; failure by Error.
type AuthResponse struct {
	Token   string `json:"token,omitempty"`
	Refresh string `json:"refresh,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SyncRequest is the body of POST /api/v2/sync/{recordType}. Data is either
// a single record (per-record fan-out) or an ordered slice (bulk).
type SyncRequest struct {
	Data any `json:"data"`
}

// DeleteRequest is the body of DELETE /api/v2/sync/{recordType}.
type DeleteRequest struct {
	UUID []string `json:"uuid"`
}
