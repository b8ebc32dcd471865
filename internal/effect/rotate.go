package effect

import "github.com/jo-hoe/rokkastyle/internal/stack"

// NormalizeAngle reduces angle to its representative in [0, 360).
func NormalizeAngle(angle int) int {
	angle %= 360
	if angle < 0 {
		angle += 360
	}
	return angle
}

// RotateBuilder maps the image_rotate effect (degrees, bgcolor) to a single
// rotate operation.
type RotateBuilder struct{}

func (RotateBuilder) Build(config Configuration) ([]stack.Operation, error) {
	return BuildRotate(config)
}

// BuildRotate returns one rotate operation with the normalized angle. The
// background color is handed through as is, whatever its type.
func BuildRotate(config Configuration) ([]stack.Operation, error) {
	degrees, err := GetIntParam(config, "degrees")
	if err != nil {
		return nil, err
	}

	return []stack.Operation{
		stack.NewOperation(stack.OperationRotate, map[string]any{
			"angle":            NormalizeAngle(degrees),
			"background_color": config["bgcolor"],
		}),
	}, nil
}
