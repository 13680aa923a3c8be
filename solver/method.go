// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"strings"
)

// Method selects the iteration scheme.
type Method int

const (
	// TrustRegion is the dogleg trust-region method (default).
	TrustRegion Method = iota
	// Newton is Newton's method with a line search.
	Newton
)

var methodNames = map[Method]string{
	TrustRegion: "trust_region",
	Newton:      "newton",
}

func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}

	return fmt.Sprintf("Method(%d)", int(m))
}

// Description is the long, human-readable name used in result summaries.
func (m Method) Description(autoscale bool) string {
	switch m {
	case TrustRegion:
		if autoscale {
			return "Trust-region with dogleg and autoscaling"
		}
		return "Trust-region with dogleg"
	case Newton:
		return "Newton with line-search"
	default:
		return m.String()
	}
}

// ParseMethod accepts "trust_region", "trust-region", "trustregion" or "newton" (any case).
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "trust_region", "trust-region", "trustregion":
		return TrustRegion, nil
	case "newton":
		return Newton, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if _, ok := methodNames[m]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(b []byte) error {
	v, err := ParseMethod(string(b))
	if err != nil {
		return err
	}
	*m = v

	return nil
}
