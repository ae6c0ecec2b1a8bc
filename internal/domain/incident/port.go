package incident

import (
	"context"
)

// Repository defines persistence for incidents
type Repository interface {
	Save(ctx context.Context, i *Incident) error
	ListRecent(ctx context.Context, limit int) ([]*Incident, error)
}
