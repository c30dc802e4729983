package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	DutyAssigned = "assigned"
	DutyResolved = "resolved"
)

// DutyEventMessage is the lightweight event published after an installment
// series is assigned or evaluated. It carries only identifiers, the worker
// fetches the full records from the database.
type DutyEventMessage struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	AssignedID    uuid.UUID `json:"assigned_id"`
	AssignedEmail string    `json:"assigned_email"`
	Kind          string    `json:"kind"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewDutyEventMessage(transactionID, assignedID uuid.UUID, email, kind string) *DutyEventMessage {
	return &DutyEventMessage{
		TransactionID: transactionID,
		AssignedID:    assignedID,
		AssignedEmail: email,
		Kind:          kind,
		Timestamp:     time.Now(),
	}
}

func (m *DutyEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func DutyEventMessageFromJSON(data []byte) (*DutyEventMessage, error) {
	var msg DutyEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
