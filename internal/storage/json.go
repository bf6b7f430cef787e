package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Veraticus/piggy/internal/common"
	"github.com/Veraticus/piggy/internal/model"
)

// DefaultJSONPath is the goal store used when nothing else is configured.
const DefaultJSONPath = "goals.json"

// document is the on-disk layout of the JSON goal store.
type document struct {
	Categories []string           `json:"categories"`
	Goals      []model.GoalRecord `json:"goals"`
}

// JSONStorage keeps the whole goal collection in one human-readable JSON file.
type JSONStorage struct {
	path string
	perm os.FileMode
}

// NewJSONStorage creates a JSON store backed by path. The file is not touched
// until the first Load or Save.
func NewJSONStorage(path string) (*JSONStorage, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	return &JSONStorage{path: path, perm: 0600}, nil
}

// Location returns the file path of the store.
func (s *JSONStorage) Location() string {
	return s.path
}

// Load reads the store. A missing file is not an error and yields nil.
func (s *JSONStorage) Load(ctx context.Context) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read goal store %s: %w", s.path, err)
	}

	// Goals are decoded on their own so a bad goal record keeps the categories.
	var doc struct {
		Categories []string        `json:"categories"`
		Goals      json.RawMessage `json:"goals"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrStorageDecode, s.path, err)
	}

	var records []model.GoalRecord
	if len(doc.Goals) > 0 {
		if err := json.Unmarshal(doc.Goals, &records); err != nil {
			return &model.Snapshot{Categories: doc.Categories},
				fmt.Errorf("%w: %s: goals: %v", common.ErrStorageDecode, s.path, err)
		}
	}

	snapshot := &model.Snapshot{
		Categories: doc.Categories,
		Goals:      make([]model.Goal, 0, len(records)),
	}
	for i, rec := range records {
		goal, err := model.GoalFromRecord(rec)
		if err != nil {
			return &model.Snapshot{Categories: doc.Categories},
				fmt.Errorf("goal at index %d in %s: %w", i, s.path, err)
		}
		snapshot.Goals = append(snapshot.Goals, goal)
	}

	common.LogDebug("loaded goal store", common.Fields{
		"path":       s.path,
		"goals":      len(snapshot.Goals),
		"categories": len(snapshot.Categories),
	})
	return snapshot, nil
}

// Save overwrites the store with snapshot.
func (s *JSONStorage) Save(ctx context.Context, snapshot *model.Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSnapshot(snapshot); err != nil {
		return err
	}

	data, err := encodeDocument(snapshot)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorageWrite, err)
	}

	if err := writeFileAtomic(s.path, data, s.perm); err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrStorageWrite, s.path, err)
	}

	common.LogDebug("saved goal store", common.Fields{
		"path":  s.path,
		"goals": len(snapshot.Goals),
		"bytes": len(data),
	})
	return nil
}

// Close is a no-op; the file is opened and closed per call.
func (s *JSONStorage) Close() error {
	return nil
}

func encodeDocument(snapshot *model.Snapshot) ([]byte, error) {
	doc := document{
		Categories: snapshot.Categories,
		Goals:      make([]model.GoalRecord, 0, len(snapshot.Goals)),
	}
	if doc.Categories == nil {
		doc.Categories = []string{}
	}
	for _, goal := range snapshot.Goals {
		doc.Goals = append(doc.Goals, goal.Record())
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode goal store: %w", err)
	}
	return buf.Bytes(), nil
}
