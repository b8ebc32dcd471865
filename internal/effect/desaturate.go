package effect

import "github.com/jo-hoe/rokkastyle/internal/stack"

// DesaturateBuilder maps image_desaturate to grayscale. It takes no options.
type DesaturateBuilder struct{}

func (DesaturateBuilder) Build(Configuration) ([]stack.Operation, error) {
	return []stack.Operation{stack.NewOperation(stack.OperationGrayscale, nil)}, nil
}
