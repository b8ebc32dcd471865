// Package effect turns CMS image style effect configurations into rokka.io
// stack operations.
package effect

import (
	"errors"

	"github.com/jo-hoe/rokkastyle/internal/stack"
)

// Effect plugin ids as configured in an image style.
const (
	IDRotate       = "image_rotate"
	IDResize       = "image_resize"
	IDScale        = "image_scale"
	IDCrop         = "image_crop"
	IDScaleAndCrop = "image_scale_and_crop"
	IDDesaturate   = "image_desaturate"
)

var (
	// ErrInvalidConfiguration is returned when an effect configuration cannot
	// be turned into operations, e.g. a non-numeric angle.
	ErrInvalidConfiguration = errors.New("invalid effect configuration")
	// ErrUnknownEffect is returned when no builder is registered for an id.
	ErrUnknownEffect = errors.New("unknown effect")
)

// Configuration is the loosely typed data of a single style effect.
type Configuration map[string]any

// Builder converts one effect configuration into the operations that
// reproduce it on rokka.io. Implementations hold no state.
type Builder interface {
	Build(config Configuration) ([]stack.Operation, error)
}

// BuilderFunc adapts a plain function to the Builder interface.
type BuilderFunc func(config Configuration) ([]stack.Operation, error)

func (f BuilderFunc) Build(config Configuration) ([]stack.Operation, error) {
	return f(config)
}
