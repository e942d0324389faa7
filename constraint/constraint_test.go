package constraint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		name    string
		spec    string
		want    Requirement
		wantErr bool
	}{
		{
			name: "bare name",
			spec: "web_framework",
			want: Requirement{Name: "web_framework"},
		},
		{
			name: "single constraint",
			spec: "web_framework>=1.0",
			want: Requirement{
				Name:        "web_framework",
				Constraints: []Constraint{{Op: OpGE, Version: "1.0"}},
			},
		},
		{
			name: "constraint list",
			spec: "web_framework>=1.0,<3.0",
			want: Requirement{
				Name: "web_framework",
				Constraints: []Constraint{
					{Op: OpGE, Version: "1.0"},
					{Op: OpLT, Version: "3.0"},
				},
			},
		},
		{
			name: "exact pin",
			spec: "json_parser==2.0",
			want: Requirement{
				Name:        "json_parser",
				Constraints: []Constraint{{Op: OpEq, Version: "2.0"}},
			},
		},
		{
			name: "hyphenated name",
			spec: "http-core>1.2.3",
			want: Requirement{
				Name:        "http-core",
				Constraints: []Constraint{{Op: OpGT, Version: "1.2.3"}},
			},
		},
		{name: "empty spec", spec: "", wantErr: true},
		{name: "no name", spec: ">=1.0", wantErr: true},
		{name: "operator without version", spec: "pkg>=", wantErr: true},
		{name: "garbage after name", spec: "pkg@1.0", wantErr: true},
		{name: "malformed version", spec: "pkg>=1.x", wantErr: true},
		{name: "dangling comma", spec: "pkg>=1.0,", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequirement(tt.spec)
			if tt.wantErr {
				require.Error(t, err)
				var parseErr *ParseError
				require.ErrorAs(t, err, &parseErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequirementString(t *testing.T) {
	req, err := ParseRequirement("web_framework>=1.0,<3.0")
	require.NoError(t, err)
	assert.Equal(t, "web_framework>=1.0,<3.0", req.String())
}

func TestParseConstraints(t *testing.T) {
	got, err := ParseConstraints(">=1.0, <2.0")
	require.NoError(t, err)
	assert.Equal(t, []Constraint{
		{Op: OpGE, Version: "1.0"},
		{Op: OpLT, Version: "2.0"},
	}, got)

	got, err = ParseConstraints("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = ParseConstraints("1.0")
	assert.Error(t, err, "constraint without operator must be rejected")
}

func TestParseGEIsNotGTThenEquals(t *testing.T) {
	got, err := ParseConstraints(">=1.0")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, OpGE, got[0].Op)
	assert.Equal(t, "1.0", got[0].Version)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		constraints string
		want        bool
	}{
		{name: "in range", version: "1.5", constraints: ">=1.0,<2.0", want: true},
		{name: "below range", version: "0.9", constraints: ">=1.0,<2.0", want: false},
		{name: "at inclusive lower bound", version: "1.0", constraints: ">=1.0,<2.0", want: true},
		{name: "at exclusive upper bound", version: "2.0", constraints: ">=1.0,<2.0", want: false},
		{name: "exact match", version: "2.0", constraints: "==2.0", want: true},
		{name: "exact with padding", version: "2.0.0", constraints: "==2.0", want: true},
		{name: "exact mismatch", version: "2.1", constraints: "==2.0", want: false},
		{name: "strict bounds", version: "1.5", constraints: ">1.0,<=1.5", want: true},
		{name: "empty list matches all", version: "9.9", constraints: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := ParseConstraints(tt.constraints)
			require.NoError(t, err)

			got, err := Match(tt.version, cs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchMalformedVersion(t *testing.T) {
	cs, err := ParseConstraints(">=1.0")
	require.NoError(t, err)

	_, err = Match("not-a-version", cs)
	assert.Error(t, err)
}
