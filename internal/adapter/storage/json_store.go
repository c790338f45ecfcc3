// internal/adapter/storage/json_store.go

// Package storage persists collection runs as flat JSON documents in a
// data directory.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"sovradar/internal/domain/sov"
)

const (
	recordsFile   = "records.json"
	overallFile   = "overall_sov.json"
	byKeywordFile = "sov_by_keyword.json"
	insightsFile  = "insights.md"
	runInfoFile   = "run.json"
)

// SnapshotStore implements the metrics.Store contract over a directory
// of flat files. Writes replace documents wholesale: the content goes
// to a temp file first and is renamed into place.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore creates a store rooted at dir. The directory is
// created on first write.
func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// SaveRecords persists the raw collected record list.
func (s *SnapshotStore) SaveRecords(_ context.Context, records []sov.Record) error {
	return s.writeJSON(recordsFile, records)
}

// LoadRecords loads the raw collected record list.
func (s *SnapshotStore) LoadRecords(_ context.Context) ([]sov.Record, error) {
	var records []sov.Record
	if err := s.readJSON(recordsFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SaveOverall persists the aggregate metrics document.
func (s *SnapshotStore) SaveOverall(_ context.Context, result sov.MetricsResult) error {
	return s.writeJSON(overallFile, result)
}

// LoadOverall loads the aggregate metrics document.
func (s *SnapshotStore) LoadOverall(_ context.Context) (sov.MetricsResult, error) {
	var result sov.MetricsResult
	if err := s.readJSON(overallFile, &result); err != nil {
		return sov.MetricsResult{}, err
	}
	return result, nil
}

// SaveByKeyword persists the per-keyword metrics document.
func (s *SnapshotStore) SaveByKeyword(_ context.Context, results map[string]sov.MetricsResult) error {
	return s.writeJSON(byKeywordFile, results)
}

// LoadByKeyword loads the per-keyword metrics document.
func (s *SnapshotStore) LoadByKeyword(_ context.Context) (map[string]sov.MetricsResult, error) {
	var results map[string]sov.MetricsResult
	if err := s.readJSON(byKeywordFile, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// SaveInsights persists the narrative text as opaque markdown.
func (s *SnapshotStore) SaveInsights(_ context.Context, text string) error {
	return s.write(insightsFile, []byte(text))
}

// LoadInsights loads the narrative text.
func (s *SnapshotStore) LoadInsights(_ context.Context) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, insightsFile))
	if os.IsNotExist(err) {
		return "", sov.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", insightsFile, err)
	}
	return string(data), nil
}

// SaveRunInfo persists the run metadata.
func (s *SnapshotStore) SaveRunInfo(_ context.Context, info sov.RunInfo) error {
	return s.writeJSON(runInfoFile, info)
}

// LoadRunInfo loads the run metadata.
func (s *SnapshotStore) LoadRunInfo(_ context.Context) (sov.RunInfo, error) {
	var info sov.RunInfo
	if err := s.readJSON(runInfoFile, &info); err != nil {
		return sov.RunInfo{}, err
	}
	return info, nil
}

func (s *SnapshotStore) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	return s.write(name, data)
}

func (s *SnapshotStore) write(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (s *SnapshotStore) readJSON(name string, v interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return sov.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}
