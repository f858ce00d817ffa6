package provider

import (
	"github.com/voidshard/secretary/pkg/domain"

	"github.com/shopspring/decimal"
)

const errProductNotReady = "PRODUCT_NOT_READY"

type sandboxTokenRequest struct {
	ClientID        string   `json:"client_id"`
	Secret          string   `json:"secret"`
	InstitutionID   string   `json:"institution_id"`
	InitialProducts []string `json:"initial_products"`
}

type sandboxTokenReply struct {
	PublicToken *string `json:"public_token"`
	ItemID      string  `json:"item_id"`
	RequestID   string  `json:"request_id"`
}

type exchangeRequest struct {
	ClientID    string `json:"client_id"`
	Secret      string `json:"secret"`
	PublicToken string `json:"public_token"`
}

type exchangeReply struct {
	AccessToken *string `json:"access_token"`
	ItemID      string  `json:"item_id"`
	RequestID   string  `json:"request_id"`
}

type transactionsRequest struct {
	ClientID    string              `json:"client_id"`
	Secret      string              `json:"secret"`
	AccessToken string              `json:"access_token"`
	StartDate   string              `json:"start_date"`
	EndDate     string              `json:"end_date"`
	Options     transactionsOptions `json:"options"`
}

type transactionsOptions struct {
	Count  int `json:"count"`
	Offset int `json:"offset"`
}

type transactionsReply struct {
	Transactions []plaidTransaction `json:"transactions"`
}

// plaidTransaction is a small subset of what Plaid sends; every field may be
// missing.
type plaidTransaction struct {
	Name     *string          `json:"name"`
	Amount   *decimal.Decimal `json:"amount"`
	Date     *string          `json:"date"`
	Category []string         `json:"category"`
}

// plaidError is the error object Plaid embeds in a reply body.
type plaidError struct {
	ErrorCode      string `json:"error_code"`
	ErrorMessage   string `json:"error_message"`
	ErrorType      string `json:"error_type"`
	DisplayMessage string `json:"display_message"`
}

func toTransactions(raw []plaidTransaction) []domain.Transaction {
	txns := make([]domain.Transaction, 0, len(raw))
	for _, t := range raw {
		txn := domain.Transaction{Name: "Unknown", Category: t.Category}
		if t.Name != nil {
			txn.Name = *t.Name
		}
		if t.Amount != nil {
			txn.Amount = *t.Amount
		}
		if t.Date != nil {
			txn.Date = *t.Date
		}
		txns = append(txns, txn)
	}
	return txns
}

// clampCount keeps a page size within what transactions/get accepts.
func clampCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}
