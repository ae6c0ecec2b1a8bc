package analysis

import "context"

// Repository port for persisting and querying analyses
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	// LatestByUser returns nil, nil when the user has no analysis yet.
	LatestByUser(ctx context.Context, userID string) (*Analysis, error)
	// List returns the newest analyses first.
	List(ctx context.Context, limit int) ([]*Analysis, error)
}
