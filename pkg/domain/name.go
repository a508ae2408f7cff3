package domain

import "fmt"

const maxNameLength = 128

// ValidateName checks that name can key an automaton in every store:
// 1 to 128 characters from [A-Za-z0-9._-], not starting with a dot.
func ValidateName(name string) error {
	if name == "" || len(name) > maxNameLength {
		return fmt.Errorf("%w: %q must be 1 to %d characters", ErrInvalidName, name, maxNameLength)
	}
	if name[0] == '.' {
		return fmt.Errorf("%w: %q must not start with a dot", ErrInvalidName, name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '.', r == '_', r == '-':
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidName, name, r)
		}
	}
	return nil
}
