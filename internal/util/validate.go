package util

import (
	"fmt"
	"regexp"
	"strings"
)

// validLabelChars matches only alphanumeric characters and hyphens.
var validLabelChars = regexp.MustCompile(`^[a-zA-Z0-9\-]+$`)

// ValidateHostname checks that a hostname conforms to RFC 1123 rules:
//   - 1 to 253 characters, split into dot-separated labels
//   - each label is 1 to 63 characters of a-z, A-Z, 0-9 and hyphens
//   - no label starts or ends with a hyphen
func ValidateHostname(name string) error {
	if name == "" {
		return fmt.Errorf("hostname cannot be empty")
	}
	if len(name) > 253 {
		return fmt.Errorf("hostname must be at most 253 characters, got %d", len(name))
	}

	for _, label := range strings.Split(name, ".") {
		if label == "" {
			return fmt.Errorf("hostname %q contains an empty label", name)
		}
		if len(label) > 63 {
			return fmt.Errorf("hostname label %q exceeds 63 characters", label)
		}
		if !validLabelChars.MatchString(label) {
			return fmt.Errorf("hostname label %q contains invalid characters (only a-z, A-Z, 0-9 and hyphens are allowed)", label)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("hostname label %q must not start or end with a hyphen", label)
		}
	}

	return nil
}
