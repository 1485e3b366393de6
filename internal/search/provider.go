package search

import (
	"context"

	"github.com/beggab/storechina/internal/models"
)

// Provider is a read-only catalog oracle. Implementations never mutate the
// store; persisting results is the caller's business.
type Provider interface {
	Search(ctx context.Context, query string, limit int) ([]models.Product, error)
}
