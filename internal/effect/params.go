package effect

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

// GetIntParam extracts a required integer parameter. Integer kinds, finite
// floats (truncated toward zero) and decimal strings are accepted; a missing or nil
// value, a bool or anything non-numeric yields ErrInvalidConfiguration.
func GetIntParam(config Configuration, key string) (int, error) {
	value, ok, err := GetOptionalIntParam(config, key)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: missing required parameter %s", ErrInvalidConfiguration, key)
	}
	return value, nil
}

// GetOptionalIntParam behaves like GetIntParam but reports ok=false instead
// of failing when the parameter is missing, nil or an empty string.
func GetOptionalIntParam(config Configuration, key string) (value int, ok bool, err error) {
	raw, exists := config[key]
	if !exists || raw == nil {
		return 0, false, nil
	}

	switch v := raw.(type) {
	case bool:
		return 0, false, fmt.Errorf("%w: parameter %s must be numeric, got bool", ErrInvalidConfiguration, key)
	case float32, float64:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return 0, false, fmt.Errorf("%w: parameter %s must be numeric, got %T", ErrInvalidConfiguration, key, raw)
		}
		i, err := truncateFloat(f)
		if err != nil {
			return 0, false, fmt.Errorf("%w: parameter %s %v", ErrInvalidConfiguration, key, err)
		}
		return i, true, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, nil
		}
		i, err := parseDecimal(s)
		if err != nil {
			return 0, false, fmt.Errorf("%w: parameter %s must be a decimal number, got %q", ErrInvalidConfiguration, key, v)
		}
		return i, true, nil
	}

	i, err := cast.ToIntE(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%w: parameter %s must be numeric, got %T", ErrInvalidConfiguration, key, raw)
	}
	return i, true, nil
}

// decimalPattern captures sign, the number without leading zeros, and the
// exponent. Prefixes like 0x, 0b or a leading 0 never select another base.
var decimalPattern = regexp.MustCompile(`^([+-]?)0*(\d+(?:\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

func parseDecimal(s string) (int, error) {
	match := decimalPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("not a decimal number: %q", s)
	}
	sign, number, exponent := match[1], match[2], match[3]

	if exponent == "" && !strings.ContainsRune(number, '.') {
		return cast.ToIntE(sign + number)
	}

	f, err := cast.ToFloat64E(sign + number + exponent)
	if err != nil {
		return 0, err
	}
	return truncateFloat(f)
}

// truncateFloat truncates toward zero and rejects NaN, infinities and values
// outside the int range.
func truncateFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("must be a finite number, got %v", f)
	}
	t := math.Trunc(f)
	if t < math.MinInt || t >= math.MaxInt {
		return 0, fmt.Errorf("is out of range, got %v", f)
	}
	return int(t), nil
}

// GetStringParam safely extracts a string parameter from the configuration
func GetStringParam(config Configuration, key string, defaultValue string) string {
	if val, ok := config[key]; ok {
		if strVal, ok := val.(string); ok && strings.TrimSpace(strVal) != "" {
			return strVal
		}
	}
	return defaultValue
}

// GetBoolParam safely extracts a bool parameter from the configuration.
// Form submissions store checkboxes as 0/1 or "0"/"1", so those are accepted
// alongside real booleans and "true"/"false".
func GetBoolParam(config Configuration, key string, defaultValue bool) bool {
	val, ok := config[key]
	if !ok || val == nil {
		return defaultValue
	}
	if s, ok := val.(string); ok {
		val = strings.ToLower(strings.TrimSpace(s))
	}
	b, err := cast.ToBoolE(val)
	if err != nil {
		return defaultValue
	}
	return b
}

func getPositiveIntParam(config Configuration, key string) (int, error) {
	value, err := GetIntParam(config, key)
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("%w: parameter %s must be positive, got %d", ErrInvalidConfiguration, key, value)
	}
	return value, nil
}
