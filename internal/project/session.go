package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/svgmontage/internal/model"
)

// SaveSession persists a montage session (source list, grid spec, output
// name) to the given path as JSON.
func SaveSession(path string, session model.Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSession reads a montage session from the given path. Source paths
// stored relative are resolved against the session file's directory.
func LoadSession(path string) (model.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Session{}, fmt.Errorf("cannot read session %s: %w", path, err)
	}

	session := model.NewSession()
	if err := json.Unmarshal(data, &session); err != nil {
		return model.Session{}, fmt.Errorf("invalid session %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i, src := range session.Sources {
		if !filepath.IsAbs(src) {
			session.Sources[i] = filepath.Join(dir, src)
		}
	}
	if session.Output == "" {
		session.Output = model.DefaultOutputName
	}
	return session, nil
}
