package ai

import "errors"

// ErrNoProvider means no credential was configured, so no backend is active.
var ErrNoProvider = errors.New("ai provider not configured")

// ErrTransport covers network failures and non-2xx answers from the provider.
var ErrTransport = errors.New("ai transport failure")

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrEmptyResponse is returned when the provider answered without any choice.
var ErrEmptyResponse = errors.New("ai response has no choices")

// ErrMalformedResponse reports that the provider text was not the JSON object we asked for
// and had to be repaired locally.
var ErrMalformedResponse = errors.New("ai response malformed")
