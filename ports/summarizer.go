package ports

import "context"

// Summarizer condenses an ordered list of insight messages into a short
// summary string. A nil result with nil error means the collaborator is
// disabled or declined; callers must degrade gracefully and never fail the
// insight pipeline on a summarizer error.
type Summarizer interface {
	Summarize(ctx context.Context, messages []string) (*string, error)
}
