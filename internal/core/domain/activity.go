package domain

import "time"

// Activity actions recorded by the gateway.
const (
	ActionLogin  = "login"
	ActionLogout = "logout"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionUpload = "upload"
)

// ActivityEntry is one line of the gateway's audit trail: who did what to
// which upstream resource, and when.
type ActivityEntry struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resourceId,omitempty"`
	At         time.Time `json:"at"`
}
