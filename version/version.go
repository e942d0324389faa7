// Package version implements parsing and ordering of dotted-integer
// version strings such as "1.2.10".
//
// A version is a sequence of dot-separated non-negative integers.
// Comparison is element-wise; when two versions have a different number
// of segments, the shorter one is padded with zeros, so "1.2" and
// "1.2.0" compare equal. This matches the usual expectation that a
// missing patch segment means zero, and makes "1.9" sort below "1.10".
package version

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ParseError is returned when a version string is not a sequence of
// dot-separated non-negative integers.
type ParseError struct {
	// Version is the offending version string.
	Version string

	// Segment is the segment that failed to parse.
	Segment string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed version %q: segment %q is not a non-negative integer", e.Version, e.Segment)
}

// Parse parses a version string into its integer segments.
func Parse(s string) ([]int, error) {
	if s == "" {
		return nil, &ParseError{Version: s, Segment: ""}
	}

	parts := strings.Split(s, ".")
	segments := make([]int, len(parts))
	for i, part := range parts {
		if !isDigits(part) {
			return nil, &ParseError{Version: s, Segment: part}
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, &ParseError{Version: s, Segment: part}
		}
		segments[i] = n
	}
	return segments, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Compare compares two version strings.
// Returns -1 if a < b, 0 if a == b, 1 if a > b.
//
// Both versions must be valid; an error is returned otherwise so that
// malformed input never silently reorders a candidate list.
func Compare(a, b string) (int, error) {
	va, err := Parse(a)
	if err != nil {
		return 0, err
	}
	vb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return compareSegments(va, vb), nil
}

// compareSegments compares two segment lists, zero-padding the shorter.
func compareSegments(a, b []int) int {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		var sa, sb int
		if i < len(a) {
			sa = a[i]
		}
		if i < len(b) {
			sb = b[i]
		}
		if sa != sb {
			if sa < sb {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Sort sorts a slice of version strings in ascending order for
// display. Malformed versions sort first, compared as plain strings
// among themselves, so valid entries come out grouped at the end in
// version order.
func Sort(versions []string) {
	slices.SortFunc(versions, func(a, b string) int {
		va, errA := Parse(a)
		vb, errB := Parse(b)
		switch {
		case errA != nil && errB != nil:
			return strings.Compare(a, b)
		case errA != nil:
			return -1
		case errB != nil:
			return 1
		}
		return compareSegments(va, vb)
	})
}

// Max returns the higher of two versions. If either fails to parse,
// the error is propagated.
func Max(a, b string) (string, error) {
	c, err := Compare(a, b)
	if err != nil {
		return "", err
	}
	if c >= 0 {
		return a, nil
	}
	return b, nil
}

// MaxOf returns the highest version in a non-empty list.
func MaxOf(versions []string) (string, error) {
	if len(versions) == 0 {
		return "", fmt.Errorf("no versions to select from")
	}
	best := versions[0]
	for _, v := range versions[1:] {
		m, err := Max(best, v)
		if err != nil {
			return "", err
		}
		best = m
	}
	return best, nil
}
