package cloud

import (
	"encoding/json"
	"fmt"
	"os"
)

// Snapshot is the serialized form of a computed layout.
type Snapshot struct {
	Radius float64      `json:"radius"`
	Words  []VisualWord `json:"words"`
}

// NewSnapshot lays out words and wraps the result with its radius.
func NewSnapshot(words []WordItem, opts Options) Snapshot {
	return Snapshot{Radius: opts.Radius, Words: Layout(words, opts)}
}

// MarshalSnapshot serializes a Snapshot to pretty-printed JSON bytes.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	if s.Words == nil {
		s.Words = []VisualWord{}
	}
	return json.MarshalIndent(s, "", "  ")
}

// UnmarshalSnapshot deserializes JSON bytes into a Snapshot.
// The radius must be positive; an empty word list is valid.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if !(s.Radius > 0) {
		return Snapshot{}, fmt.Errorf("snapshot radius must be positive, got %v", s.Radius)
	}
	if s.Words == nil {
		s.Words = []VisualWord{}
	}
	return s, nil
}

// WriteSnapshotFile writes a Snapshot to a JSON file.
func WriteSnapshotFile(s Snapshot, path string) error {
	data, err := MarshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadSnapshotFile reads a Snapshot from a JSON file.
func ReadSnapshotFile(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalSnapshot(data)
}
