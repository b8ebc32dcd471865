package effect

import (
	"fmt"
	"strings"

	"github.com/jo-hoe/rokkastyle/internal/stack"
)

const defaultAnchor = "center-center"

var (
	horizontalAnchors = map[string]bool{"left": true, "center": true, "right": true}
	verticalAnchors   = map[string]bool{"top": true, "center": true, "bottom": true}
)

// CropBuilder maps image_crop to a crop around the configured anchor.
type CropBuilder struct{}

func (CropBuilder) Build(config Configuration) ([]stack.Operation, error) {
	crop, err := cropOperation(config)
	if err != nil {
		return nil, err
	}
	return []stack.Operation{crop}, nil
}

// ScaleAndCropBuilder maps image_scale_and_crop to a fill resize followed by
// a crop, which is what the CMS does locally.
type ScaleAndCropBuilder struct{}

func (ScaleAndCropBuilder) Build(config Configuration) ([]stack.Operation, error) {
	crop, err := cropOperation(config)
	if err != nil {
		return nil, err
	}

	resize := stack.NewOperation(stack.OperationResize, map[string]any{
		"width":  crop.Options["width"],
		"height": crop.Options["height"],
		"mode":   resizeModeFill,
	})
	return []stack.Operation{resize, crop}, nil
}

func cropOperation(config Configuration) (stack.Operation, error) {
	width, err := getPositiveIntParam(config, "width")
	if err != nil {
		return stack.Operation{}, err
	}
	height, err := getPositiveIntParam(config, "height")
	if err != nil {
		return stack.Operation{}, err
	}
	anchor, err := convertAnchor(GetStringParam(config, "anchor", defaultAnchor))
	if err != nil {
		return stack.Operation{}, err
	}

	return stack.NewOperation(stack.OperationCrop, map[string]any{
		"width":  width,
		"height": height,
		"anchor": anchor,
	}), nil
}

// convertAnchor turns "left-top" into rokka's "left_top".
func convertAnchor(anchor string) (string, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(anchor)), "-")
	if len(parts) != 2 || !horizontalAnchors[parts[0]] || !verticalAnchors[parts[1]] {
		return "", fmt.Errorf("%w: invalid anchor %q", ErrInvalidConfiguration, anchor)
	}
	return parts[0] + "_" + parts[1], nil
}
