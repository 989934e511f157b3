package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"snackledger/internal/core"
)

const (
	ActionUpsert = "upsert"
	ActionDelete = "delete"
)

// SyncMessage carries one ledger mutation to the push worker. Upserts embed
// the full record; deletes only need the id plus the record's civil date so
// the remote can narrow its scan.
type SyncMessage struct {
	Action    string       `json:"action"`
	Record    *core.Record `json:"record,omitempty"`
	ID        int64        `json:"id,omitempty"`
	Date      string       `json:"date,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewUpsertMessage creates a sync message for a saved record
func NewUpsertMessage(r core.Record) *SyncMessage {
	return &SyncMessage{
		Action:    ActionUpsert,
		Record:    &r,
		Timestamp: time.Now(),
	}
}

// NewDeleteMessage creates a sync message for a removed record
func NewDeleteMessage(id int64, date core.CivilDate) *SyncMessage {
	return &SyncMessage{
		Action:    ActionDelete,
		ID:        id,
		Date:      date.String(),
		Timestamp: time.Now(),
	}
}

// Validate checks the message is actionable before it reaches a handler.
func (m *SyncMessage) Validate() error {
	switch m.Action {
	case ActionUpsert:
		if m.Record == nil {
			return fmt.Errorf("upsert message without record")
		}
		return nil
	case ActionDelete:
		if m.ID == 0 {
			return fmt.Errorf("delete message without id")
		}
		return nil
	default:
		return fmt.Errorf("unknown action %q", m.Action)
	}
}

// ToJSON converts the message to JSON bytes
func (m *SyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SyncMessageFromJSON creates a message from JSON bytes
func SyncMessageFromJSON(data []byte) (*SyncMessage, error) {
	var msg SyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
