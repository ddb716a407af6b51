package messaging

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a protocol version. The zero value means unset.
type Version struct {
	Major int
	Minor int
}

// IsZero reports whether the version is unset
func (v Version) IsZero() bool {
	return v == Version{}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParseVersion parses "major" or "major.minor"
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("%w: empty version", ErrUnsupportedVersion)
	}

	majorStr, minorStr, hasMinor := strings.Cut(s, ".")
	major, err := strconv.Atoi(majorStr)
	if err != nil || major < 0 {
		return Version{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
	}

	var minor int
	if hasMinor {
		minor, err = strconv.Atoi(minorStr)
		if err != nil || minor < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
		}
	}

	v := Version{Major: major, Minor: minor}
	if v.IsZero() {
		return Version{}, fmt.Errorf("%w: %q", ErrUnsupportedVersion, s)
	}
	return v, nil
}
