package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Dicklesworthstone/radius_viewer/pkg/model"
)

// Session is the slider position persisted between viewer runs.
type Session struct {
	Selection model.Selection `json:"selection"`
	Saved     time.Time       `json:"saved"`
}

// LoadSession reads a saved session. ok is false when none exists.
func LoadSession(path string) (s Session, ok bool, err error) {
	if path == "" {
		return Session{}, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("read session: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, false, fmt.Errorf("decode session %s: %w", path, err)
	}
	if err := s.Selection.Validate(); err != nil {
		return Session{}, false, fmt.Errorf("session %s: %w", path, err)
	}
	return s, true, nil
}

// SaveSession writes sel to path.
func SaveSession(path string, sel model.Selection, now time.Time) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(Session{Selection: sel, Saved: now}, "", "  ")
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
