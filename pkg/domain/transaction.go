package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO-8601 calendar date format used on the wire.
const DateLayout = "2006-01-02"

// Transaction is a single posted transaction as reported by the provider.
// Amount keeps the provider's sign convention.
type Transaction struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
	Category []string        `json:"category"`
}

// MarshalJSON writes Amount as a bare JSON number, the way providers send it,
// so exported documents stay numeric.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name     string      `json:"name"`
		Amount   json.Number `json:"amount"`
		Date     string      `json:"date"`
		Category []string    `json:"category"`
	}{t.Name, json.Number(t.Amount.String()), t.Date, t.Category})
}

func (t *Transaction) JSON() ([]byte, error) {
	return json.Marshal(t)
}
