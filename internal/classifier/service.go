package classifier

import "context"

// Service is the contract for artifact classification. Implementations are
// assumed slow and fallible: callers bound every invocation with a context
// and must not assume repeated calls on identical input agree.
type Service interface {
	Classify(ctx context.Context, data []byte, mimeType string) (*Result, error)
}
