package amqp

import (
	"encoding/json"
	"time"

	"github.com/skprof1/expenses-tracker/internal/core"
)

// TransactionRecordedMessage announces that a transaction landed in the
// ledger. Consumers only need the period to drop stale dashboard snapshots.
type TransactionRecordedMessage struct {
	ID        string               `json:"id"`
	Type      core.TransactionType `json:"type"`
	Year      int                  `json:"year"`
	Month     int                  `json:"month"`
	Origin    string               `json:"origin,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
}

// NewTransactionRecordedMessage builds the message for tx.
func NewTransactionRecordedMessage(tx core.Transaction, origin string) *TransactionRecordedMessage {
	p := tx.Date.Period()
	return &TransactionRecordedMessage{
		ID:        tx.ID,
		Type:      tx.Type,
		Year:      p.Year,
		Month:     p.Month,
		Origin:    origin,
		Timestamp: time.Now(),
	}
}

// Period returns the month the transaction belongs to.
func (m *TransactionRecordedMessage) Period() core.Period {
	return core.Period{Year: m.Year, Month: m.Month}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionRecordedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionRecordedMessageFromJSON creates a message from JSON bytes
func TransactionRecordedMessageFromJSON(data []byte) (*TransactionRecordedMessage, error) {
	var msg TransactionRecordedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Period().Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
