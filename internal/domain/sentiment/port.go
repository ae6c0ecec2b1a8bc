package sentiment

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, e *Entry) error
	// Feed returns the newest entries first.
	Feed(ctx context.Context, limit int) ([]*Entry, error)
	Counts(ctx context.Context) (Counts, error)
	Regions(ctx context.Context) ([]RegionCount, error)
}
