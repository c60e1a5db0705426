package store

import (
	"context"
	"errors"

	"github.com/osintlabs/threatlens/pkg/models"
)

var ErrNotFound = errors.New("resource not found")

// Store is the data access interface. All database operations go through here.
type Store interface {
	Ping(ctx context.Context) error

	// CreateThreat inserts a new record and returns it with the
	// store-assigned ID and creation timestamp filled in.
	CreateThreat(ctx context.Context, t *models.Threat) (*models.Threat, error)

	// ListThreats returns records in insertion order, paginated.
	ListThreats(ctx context.Context, offset, limit int) ([]*models.Threat, error)

	// ListPrioritized returns at most limit records ordered by
	// priority_score descending, ties broken by insertion order.
	ListPrioritized(ctx context.Context, limit int) ([]*models.Threat, error)

	// GetThreat returns one record or ErrNotFound.
	GetThreat(ctx context.Context, id int64) (*models.Threat, error)

	// ListTitles returns the titles of every stored record. The ingestor
	// reads this once per cycle as its deduplication set.
	ListTitles(ctx context.Context) ([]string, error)
}
