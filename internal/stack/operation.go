package stack

// Operation names understood by rokka.io.
const (
	OperationRotate    = "rotate"
	OperationResize    = "resize"
	OperationCrop      = "crop"
	OperationGrayscale = "grayscale"
	OperationNoop      = "noop"
)

// Operation is a single rokka.io stack operation: a name plus its options.
type Operation struct {
	Name    string         `json:"name"`
	Options map[string]any `json:"options"`
}

// NewOperation returns an operation with a non-nil options map so that it
// always serializes as an object.
func NewOperation(name string, options map[string]any) Operation {
	if options == nil {
		options = map[string]any{}
	}
	return Operation{
		Name:    name,
		Options: options,
	}
}
