package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	studyout "studybuddy/internal/modules/study/port/out"
)

type FileArtifactStore struct{}

func NewFileArtifactStore() studyout.ArtifactStore {
	return FileArtifactStore{}
}

func (FileArtifactStore) Write(_ context.Context, dir, name string, payload []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func (FileArtifactStore) Read(_ context.Context, path string) ([]byte, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return payload, nil
}
