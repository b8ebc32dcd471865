// Package style compiles CMS image styles into rokka.io stacks.
package style

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jo-hoe/rokkastyle/internal/effect"
	"github.com/jo-hoe/rokkastyle/internal/stack"
)

// ErrInvalidStyle is returned for styles that cannot be compiled at all.
var ErrInvalidStyle = errors.New("invalid image style")

// EffectConfig is one effect of an image style.
type EffectConfig struct {
	ID     string               `yaml:"id" json:"id" validate:"required"`
	Weight int                  `yaml:"weight" json:"weight"`
	Data   effect.Configuration `yaml:"data" json:"data"`
}

// ImageStyle is an ordered set of effects under a machine name.
type ImageStyle struct {
	Name    string         `yaml:"name" json:"name" validate:"required"`
	Label   string         `yaml:"label" json:"label,omitempty"`
	Effects []EffectConfig `yaml:"effects" json:"effects" validate:"dive"`
}

// Compile builds every effect of the style in weight order and concatenates
// the resulting operations. Effects whose operations cannot be JSON encoded
// fail with effect.ErrInvalidConfiguration. A style without effects compiles to a single noop
// since rokka does not accept empty stacks.
func Compile(registry *effect.Registry, imageStyle ImageStyle) (stack.Stack, error) {
	name := strings.TrimSpace(imageStyle.Name)
	if name == "" {
		return stack.Stack{}, fmt.Errorf("%w: name is required", ErrInvalidStyle)
	}

	effects := make([]EffectConfig, len(imageStyle.Effects))
	copy(effects, imageStyle.Effects)
	sort.SliceStable(effects, func(i, j int) bool {
		return effects[i].Weight < effects[j].Weight
	})

	operations := make([]stack.Operation, 0, len(effects))
	for i, e := range effects {
		ops, err := registry.Build(e.ID, e.Data)
		if err != nil {
			return stack.Stack{}, fmt.Errorf("style %s, effect %d: %w", name, i, err)
		}
		// pass-through values such as bgcolor may hold YAML maps with
		// non-string keys, which cannot be sent to rokka
		if _, err := (stack.Stack{Operations: ops}).Hash(); err != nil {
			return stack.Stack{}, fmt.Errorf("style %s, effect %d: %w: %s produced unencodable options: %v",
				name, i, effect.ErrInvalidConfiguration, e.ID, err)
		}
		operations = append(operations, ops...)
	}

	if len(operations) == 0 {
		operations = append(operations, stack.NewOperation(stack.OperationNoop, nil))
	}

	return stack.Stack{
		Name:       name,
		Operations: operations,
	}, nil
}
