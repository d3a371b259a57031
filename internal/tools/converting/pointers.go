package converting

import "strings"

// If nil returns the default value for the type
func Unwrap[T any](x *T) (r T) {
	if x != nil {
		r = *x
	}

	return
}

func PointerToValue[T any](v T) *T {
	return &v
}

// NonEmpty returns nil for blank strings so optional fields are dropped from payloads.
func NonEmpty(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
