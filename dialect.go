package mtlximport

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects host node type names that changed between host releases.
type Dialect string

const (
	// DialectCurrent targets hosts from 20.0 on.
	DialectCurrent Dialect = "current"
	// DialectLegacy targets hosts before 20.0, which ship the color correct node under another name.
	DialectLegacy Dialect = "legacy"
)

// ColorCorrectType returns the color correct node type for the dialect.
func (d Dialect) ColorCorrectType() NodeType {
	if d == DialectLegacy {
		return NodeLegacyColorCorrect
	}
	return NodeColorCorrect
}

// DialectForVersion returns the dialect for a host version.
func DialectForVersion(major, minor, build int) Dialect {
	if compareVersion([3]int{major, minor, build}, [3]int{20, 0, 0}) < 0 {
		return DialectLegacy
	}
	return DialectCurrent
}

// ParseDialect parses "current", "legacy" or a dotted host version such as "19.5.640".
func ParseDialect(s string) (Dialect, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", string(DialectCurrent):
		return DialectCurrent, nil
	case string(DialectLegacy):
		return DialectLegacy, nil
	}

	var v [3]int
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return "", fmt.Errorf("%w: dialect or version %q", ErrInput, s)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return "", fmt.Errorf("%w: dialect or version %q", ErrInput, s)
		}
		v[i] = n
	}

	return DialectForVersion(v[0], v[1], v[2]), nil
}

// compareVersion compares two version triples.
func compareVersion(a, b [3]int) int {
	for i := range a {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
