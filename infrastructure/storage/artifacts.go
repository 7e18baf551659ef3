package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Artifacts stores failure artifacts of one suite run under dir/runID
type Artifacts struct {
	dir string
}

// NewArtifacts - creates artifact storage for a run; nothing is written until a save
func NewArtifacts(baseDir, runID string) *Artifacts {
	return &Artifacts{
		dir: filepath.Join(baseDir, runID),
	}
}

// Dir - returns the directory artifacts are written to
func (a *Artifacts) Dir() string {
	return a.dir
}

// SaveScreenshot - writes a PNG named after the scenario and returns its path
func (a *Artifacts) SaveScreenshot(scenario string, png []byte) (string, error) {
	if len(png) == 0 {
		return "", fmt.Errorf("empty screenshot for %q", scenario)
	}
	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create artifacts directory: %w", err)
	}

	path := filepath.Join(a.dir, FileName(scenario)+".png")
	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}
	return path, nil
}

// FileName - turns a scenario name into a safe file name
func FileName(scenario string) string {
	name := strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(scenario), "_"), "_")
	if name == "" {
		return "scenario"
	}
	return name
}
