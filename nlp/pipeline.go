package nlp

import (
	"context"
	"errors"
	"fmt"

	"github.com/poiesic/aiosion/core"
)

// ErrPipelineUnavailable is returned by a pipeline that failed to initialize.
var ErrPipelineUnavailable = errors.New("nlp pipeline unavailable")

// Pipeline analyzes text into a document.
// Implementations must be safe for concurrent use and must not retain or
// modify a returned document.
type Pipeline interface {
	// Analyze runs the pipeline over text.
	Analyze(ctx context.Context, text string) (*core.AnalyzedDocument, error)

	// Name identifies the pipeline and its model.
	Name() string
}

type unavailable struct {
	name  string
	cause error
}

// Unavailable returns a Pipeline whose every call fails with
// ErrPipelineUnavailable, carrying cause when one is given.
func Unavailable(name string, cause error) Pipeline {
	return &unavailable{name: name, cause: cause}
}

func (u *unavailable) Analyze(ctx context.Context, text string) (*core.AnalyzedDocument, error) {
	if u.cause == nil {
		return nil, fmt.Errorf("%s: %w", u.name, ErrPipelineUnavailable)
	}
	return nil, fmt.Errorf("%s: %w: %w", u.name, ErrPipelineUnavailable, u.cause)
}

func (u *unavailable) Name() string { return u.name }
