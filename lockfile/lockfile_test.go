package lockfile

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetNames(t *testing.T) {
	lf := New()
	lf.Set("web_framework", "1.5")
	lf.Set("json_parser", "2.0")
	lf.Set("web_framework", "2.0") // overwrite

	v, ok := lf.Get("web_framework")
	require.True(t, ok)
	assert.Equal(t, "2.0", v)

	_, ok = lf.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, 2, lf.Len())
	assert.Equal(t, []string{"json_parser", "web_framework"}, lf.Names())
}

func TestMarshalDeterministic(t *testing.T) {
	lf := New()
	lf.Set("b_pkg", "2.0")
	lf.Set("a_pkg", "1.0")
	lf.Set("c_pkg", "0.1")

	first, err := lf.Marshal()
	require.NoError(t, err)

	// Identical content marshals identically regardless of insertion order.
	other := New()
	other.Set("c_pkg", "0.1")
	other.Set("a_pkg", "1.0")
	other.Set("b_pkg", "2.0")
	second, err := other.Marshal()
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "marshal output must be byte-identical")

	want := "{\n  \"a_pkg\": \"1.0\",\n  \"b_pkg\": \"2.0\",\n  \"c_pkg\": \"0.1\"\n}\n"
	assert.Equal(t, want, string(first))
}

func TestMarshalEmpty(t *testing.T) {
	data, err := New().Marshal()
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestParseRoundTrip(t *testing.T) {
	lf := New()
	lf.Set("web_framework", "1.5")
	lf.Set("json_parser", "2.0")

	data, err := lf.Marshal()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, lf.Pins, parsed.Pins)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`{"pkg": 1}`))
	assert.Error(t, err, "non-string pin must be rejected")

	_, err = Parse([]byte("not json"))
	assert.Error(t, err)
}

func TestParseNull(t *testing.T) {
	lf, err := Parse([]byte("null"))
	require.NoError(t, err)
	assert.NotNil(t, lf.Pins)
	assert.Equal(t, 0, lf.Len())
}

func TestWriteAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prod.lock.json")

	lf := New()
	lf.Set("http_core", "1.2")
	require.NoError(t, lf.WriteFile(path))
	assert.True(t, Exists(path))

	read, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, lf.Pins, read.Pins)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	old := New()
	old.Set("kept", "1.0")
	old.Set("removed", "1.0")
	old.Set("bumped", "1.0")

	updated := New()
	updated.Set("kept", "1.0")
	updated.Set("added", "0.1")
	updated.Set("bumped", "2.0")

	diff := Compare(old, updated)
	assert.False(t, diff.IsEmpty())
	assert.Equal(t, []string{"added"}, diff.Added)
	assert.Equal(t, []string{"removed"}, diff.Removed)
	assert.Equal(t, []VersionChange{
		{Name: "bumped", OldVersion: "1.0", NewVersion: "2.0"},
	}, diff.Changed)
}

func TestCompareIdentical(t *testing.T) {
	a := New()
	a.Set("pkg", "1.0")
	b := New()
	b.Set("pkg", "1.0")

	assert.True(t, Compare(a, b).IsEmpty())
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "lock.json", DefaultPath(""))
	assert.Equal(t, "prod.lock.json", DefaultPath("prod"))
}
