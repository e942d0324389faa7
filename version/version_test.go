package version

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int
		wantErr bool
	}{
		{name: "single segment", input: "1", want: []int{1}},
		{name: "two segments", input: "1.2", want: []int{1, 2}},
		{name: "deep version", input: "1.2.10.4", want: []int{1, 2, 10, 4}},
		{name: "zero version", input: "0.0.0", want: []int{0, 0, 0}},
		{name: "leading zeros allowed", input: "01.002", want: []int{1, 2}},
		{name: "empty string", input: "", wantErr: true},
		{name: "empty segment", input: "1..2", wantErr: true},
		{name: "trailing dot", input: "1.2.", wantErr: true},
		{name: "negative segment", input: "1.-2", wantErr: true},
		{name: "plus sign", input: "+1.2", wantErr: true},
		{name: "letters", input: "1.2.beta", wantErr: true},
		{name: "semver prerelease", input: "1.0.0-rc1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.input, got)
				}
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("Parse(%q) error = %v, want *ParseError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "equal", a: "1.2.3", b: "1.2.3", want: 0},
		{name: "less", a: "1.2", b: "1.3", want: -1},
		{name: "greater", a: "2.0", b: "1.9", want: 1},
		{name: "numeric not lexicographic", a: "1.9", b: "1.10", want: -1},
		{name: "shorter padded with zeros", a: "1.2", b: "1.2.0", want: 0},
		{name: "padding does not hide difference", a: "1.2", b: "1.2.1", want: -1},
		{name: "longer but smaller", a: "1.0.0.1", b: "1.1", want: -1},
		{name: "leading zeros compare numerically", a: "1.02", b: "1.2", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compare(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Compare(%q, %q) unexpected error: %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareMalformed(t *testing.T) {
	if _, err := Compare("1.x", "1.0"); err == nil {
		t.Error("Compare with malformed first argument: want error")
	}
	if _, err := Compare("1.0", ""); err == nil {
		t.Error("Compare with malformed second argument: want error")
	}
}

func TestSort(t *testing.T) {
	versions := []string{"1.10", "0.9", "2.0", "1.2.1", "1.2"}
	Sort(versions)

	want := []string{"0.9", "1.2", "1.2.1", "1.10", "2.0"}
	if !reflect.DeepEqual(versions, want) {
		t.Errorf("Sort = %v, want %v", versions, want)
	}
}

func TestSortMalformedFirst(t *testing.T) {
	versions := []string{"1.0", "beta", "0.5"}
	Sort(versions)

	if versions[len(versions)-1] != "1.0" {
		t.Errorf("Sort = %v, want valid versions last", versions)
	}
}

func TestMaxOf(t *testing.T) {
	got, err := MaxOf([]string{"1.0", "1.10", "1.9"})
	if err != nil {
		t.Fatalf("MaxOf unexpected error: %v", err)
	}
	if got != "1.10" {
		t.Errorf("MaxOf = %q, want %q", got, "1.10")
	}

	if _, err := MaxOf(nil); err == nil {
		t.Error("MaxOf(nil): want error")
	}
	if _, err := MaxOf([]string{"1.0", "oops"}); err == nil {
		t.Error("MaxOf with malformed version: want error")
	}
}
