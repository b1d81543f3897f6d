package plugin

import (
	"fmt"
	"strconv"
	"strings"
)

// MinCompatibleVersion is the oldest plugin protocol version a host accepts.
const MinCompatibleVersion = "0.1.0"

// Version is a parsed MAJOR.MINOR.PATCH protocol version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a version string in "MAJOR.MINOR.PATCH" format.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("invalid version format: %s (expected MAJOR.MINOR.PATCH)", s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Version{}, fmt.Errorf("invalid version component %q in %s", p, s)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v Version) less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

// CheckCompatible returns nil when a plugin speaking version can be used by
// this host. The major version must match and the plugin must not be older
// than MinCompatibleVersion; newer minor and patch versions are accepted.
func CheckCompatible(version string) error {
	pv, err := ParseVersion(version)
	if err != nil {
		return fmt.Errorf("failed to parse plugin version: %w", err)
	}
	current, _ := ParseVersion(ProtocolVersion)
	minimum, _ := ParseVersion(MinCompatibleVersion)

	if pv.Major != current.Major {
		return fmt.Errorf("incompatible major version: plugin is %s, swatches requires %d.x.x", pv, current.Major)
	}
	if pv.less(minimum) {
		return fmt.Errorf("plugin version %s is too old, minimum required is %s", pv, MinCompatibleVersion)
	}
	return nil
}
