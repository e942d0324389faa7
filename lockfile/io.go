package lockfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// lockfilePermissions is the file mode for written lockfiles.
const lockfilePermissions = 0o644

// ReadFile reads and parses a lockfile from the given path.
func ReadFile(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lockfile: %w", err)
	}
	return Parse(data)
}

// Parse parses lockfile JSON data.
func Parse(data []byte) (*Lockfile, error) {
	var pins map[string]string
	if err := json.Unmarshal(data, &pins); err != nil {
		return nil, fmt.Errorf("parse lockfile JSON: %w", err)
	}
	if pins == nil {
		pins = make(map[string]string)
	}
	return &Lockfile{Pins: pins}, nil
}

// WriteFile writes the lockfile to the given path with deterministic
// formatting.
func (l *Lockfile) WriteFile(path string) error {
	data, err := l.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, lockfilePermissions)
}

// WriteTo writes the lockfile to the given writer.
func (l *Lockfile) WriteTo(w io.Writer) (int64, error) {
	data, err := l.Marshal()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Marshal serializes the lockfile to indented JSON with sorted keys,
// so identical snapshots are byte-identical.
func (l *Lockfile) Marshal() ([]byte, error) {
	if len(l.Pins) == 0 {
		return []byte("{}\n"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, name := range l.Names() {
		if i > 0 {
			buf.WriteString(",\n")
		}
		keyJSON, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		valJSON, err := json.Marshal(l.Pins[name])
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(keyJSON)
		buf.WriteString(": ")
		buf.Write(valJSON)
	}
	buf.WriteString("\n}\n")
	return buf.Bytes(), nil
}

// Exists reports whether a lockfile exists at the given path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DefaultPath returns the conventional lockfile path for an
// environment name.
func DefaultPath(env string) string {
	if env == "" {
		return "lock.json"
	}
	return env + ".lock.json"
}
