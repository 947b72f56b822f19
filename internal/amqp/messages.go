package amqp

import (
	"encoding/json"
	"time"
)

// BudgetRecalcMessage asks the worker to recompute the spent amount for one
// user's budget category. It carries only the keys; the worker derives the
// sum from the transactions table, so processing is idempotent.
type BudgetRecalcMessage struct {
	UserID    int64     `json:"user_id"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBudgetRecalcMessage creates a recalc message for a user's category.
func NewBudgetRecalcMessage(userID int64, category string) *BudgetRecalcMessage {
	return &BudgetRecalcMessage{
		UserID:    userID,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *BudgetRecalcMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BudgetRecalcMessageFromJSON creates a message from JSON bytes
func BudgetRecalcMessageFromJSON(data []byte) (*BudgetRecalcMessage, error) {
	var msg BudgetRecalcMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
