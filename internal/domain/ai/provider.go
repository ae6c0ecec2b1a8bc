package ai

import "strings"

// Provider is the backend chosen for the process lifetime.
type Provider int

const (
	ProviderNone Provider = iota
	ProviderPrimary
	ProviderSecondary
)

// secondaryKeyPrefix identifies Perplexity credentials; anything else non-empty is OpenAI.
const secondaryKeyPrefix = "pplx-"

// SelectProvider classifies the configured credential.
func SelectProvider(credential string) Provider {
	key := strings.TrimSpace(credential)
	switch {
	case key == "":
		return ProviderNone
	case strings.HasPrefix(key, secondaryKeyPrefix):
		return ProviderSecondary
	default:
		return ProviderPrimary
	}
}

func (p Provider) String() string {
	switch p {
	case ProviderPrimary:
		return "primary"
	case ProviderSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// Vendor is the name reported to API consumers.
func (p Provider) Vendor() string {
	switch p {
	case ProviderPrimary:
		return "openai"
	case ProviderSecondary:
		return "perplexity"
	default:
		return "mock"
	}
}

func (p Provider) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
