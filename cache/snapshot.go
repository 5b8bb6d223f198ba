package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Snapshot is the JSON structure for persisting a memory cache between
// runs, so a CLI invocation can reuse translations from the previous one.
type Snapshot struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []SnapshotEntry   `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// SnapshotEntry is a single cache entry.
type SnapshotEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// WriteSnapshot writes the non-expired contents of a memory cache to w.
func WriteSnapshot(w io.Writer, c *Memory, metadata map[string]string) error {
	entries := c.Entries()

	snap := Snapshot{
		Version:    "1",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    make([]SnapshotEntry, 0, len(entries)),
		Metadata:   metadata,
	}
	for key, value := range entries {
		snap.Entries = append(snap.Entries, SnapshotEntry{Key: key, Value: value})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("writing cache snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot loads entries from a snapshot into a memory cache, applying
// ttl to every restored entry.
func ReadSnapshot(r io.Reader, c *Memory, ttl time.Duration) (int, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return 0, fmt.Errorf("reading cache snapshot: %w", err)
	}

	for _, e := range snap.Entries {
		if e.Key == "" {
			continue
		}
		_ = c.Set(context.Background(), e.Key, e.Value, ttl)
	}
	return len(snap.Entries), nil
}
