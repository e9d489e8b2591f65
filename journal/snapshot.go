package journal

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SnapshotFile publishes portfolio snapshots to a JSON file, overwriting
// the previous snapshot each time. Observers read the latest state only.
type SnapshotFile struct {
	path string
}

func NewSnapshotFile(path string) (*SnapshotFile, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return &SnapshotFile{path: path}, nil
}

func (s *SnapshotFile) RecordTrade(TradeRecord) error { return nil }

func (s *SnapshotFile) PublishSnapshot(snap Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func (s *SnapshotFile) Close() error { return nil }
