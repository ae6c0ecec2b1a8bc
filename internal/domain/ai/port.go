package ai

import "context"

// Client sends one chat completion to the active provider and returns the raw
// assistant text. One attempt, no retries.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ArtifactStore keeps generated code/markup outside the database.
type ArtifactStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}
