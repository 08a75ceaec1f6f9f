package engine

import (
	"slices"

	"bangler/core/types"
	"bangler/internal/errors"
)

// Validate checks a specification against the business rules before
// any computation runs. The first violation found is returned.
func (e *Engine) Validate(spec types.BangleSpec) error {
	if spec.Size < e.rules.MinSize || spec.Size > e.rules.MaxSize {
		return errors.Newf(errors.TypeInvalidInput,
			"size %d is not in the valid range %d-%d",
			spec.Size, e.rules.MinSize, e.rules.MaxSize)
	}

	if !slices.Contains(e.rules.ValidShapes, spec.Shape) {
		return errors.Newf(errors.TypeInvalidInput,
			"shape %q is not offered", spec.Shape).
			WithDetail("valid shapes: %v", e.rules.ValidShapes)
	}

	if !slices.Contains(e.rules.ValidColors, spec.Color) {
		return errors.Newf(errors.TypeInvalidInput,
			"color %q is not offered", spec.Color).
			WithDetail("valid colors: %v", e.rules.ValidColors)
	}

	if spec.Color.IsKarat() {
		if spec.Quality == "" {
			return errors.InvalidInput("quality is required for karat gold colors")
		}
		if !slices.Contains(e.rules.ValidQualities, spec.Quality) {
			return errors.Newf(errors.TypeInvalidInput,
				"quality %q is not offered", spec.Quality).
				WithDetail("valid qualities: %v", e.rules.ValidQualities)
		}
	} else if spec.Quality != "" {
		return errors.Newf(errors.TypeInvalidInput,
			"quality must not be specified for %s", spec.Color)
	}

	if spec.Width == "" {
		return errors.InvalidInput("width is required")
	}
	if spec.Thickness == "" {
		return errors.InvalidInput("thickness is required")
	}

	return nil
}

func (e *Engine) notify(step Step, detail string) {
	for _, o := range e.observers {
		o(step, detail)
	}
}
