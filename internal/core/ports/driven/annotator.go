package driven

import (
	"context"

	"github.com/korpus-labs/korpus-cli/internal/core/domain"
)

// Annotator produces the morphological annotation graph for a text:
// sentence segmentation, tokenization, lemmas, part-of-speech tags and
// grammar features, with rune offsets relative to the owning sentence.
//
// Annotation must be deterministic given the same text and model
// configuration.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*domain.Annotation, error)
}
