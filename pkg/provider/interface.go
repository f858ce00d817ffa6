package provider

import (
	"context"

	"github.com/voidshard/secretary/pkg/domain"
)

// Provider fetches the transactions posted within a window.
type Provider interface {
	Transactions(context.Context, domain.DateWindow) ([]domain.Transaction, error)
}
