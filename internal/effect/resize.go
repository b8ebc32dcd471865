package effect

import (
	"fmt"

	"github.com/jo-hoe/rokkastyle/internal/stack"
)

// rokka resize modes
const (
	resizeModeAbsolute = "absolute"
	resizeModeBox      = "box"
	resizeModeFill     = "fill"
)

// ResizeBuilder maps image_resize to a resize to the exact dimensions,
// ignoring the aspect ratio.
type ResizeBuilder struct{}

func (ResizeBuilder) Build(config Configuration) ([]stack.Operation, error) {
	width, err := getPositiveIntParam(config, "width")
	if err != nil {
		return nil, err
	}
	height, err := getPositiveIntParam(config, "height")
	if err != nil {
		return nil, err
	}

	return []stack.Operation{
		stack.NewOperation(stack.OperationResize, map[string]any{
			"width":  width,
			"height": height,
			"mode":   resizeModeAbsolute,
		}),
	}, nil
}

// ScaleBuilder maps image_scale to a resize that keeps the aspect ratio and
// fits into the box. Either dimension may be left out, not both.
type ScaleBuilder struct{}

func (ScaleBuilder) Build(config Configuration) ([]stack.Operation, error) {
	options := map[string]any{
		"mode":    resizeModeBox,
		"upscale": GetBoolParam(config, "upscale", false),
	}

	found := 0
	for _, key := range []string{"width", "height"} {
		value, ok, err := GetOptionalIntParam(config, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if value <= 0 {
			return nil, fmt.Errorf("%w: parameter %s must be positive, got %d", ErrInvalidConfiguration, key, value)
		}
		options[key] = value
		found++
	}
	if found == 0 {
		return nil, fmt.Errorf("%w: at least one of width or height is required", ErrInvalidConfiguration)
	}

	return []stack.Operation{stack.NewOperation(stack.OperationResize, options)}, nil
}
