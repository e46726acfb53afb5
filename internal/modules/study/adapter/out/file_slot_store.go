package out

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	studyout "studybuddy/internal/modules/study/port/out"
	apperrors "studybuddy/internal/platform/errors"
)

type FileSlotStore struct {
	path string
}

func NewFileSlotStore(path string) studyout.Slot {
	return &FileSlotStore{path: path}
}

func (s *FileSlotStore) Read(_ context.Context) ([]byte, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.ErrSlotEmpty
		}
		return nil, fmt.Errorf("read slot: %w", err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, apperrors.ErrSlotEmpty
	}
	return payload, nil
}

func (s *FileSlotStore) Write(_ context.Context, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create slot dir: %w", err)
	}
	if err := writeFileAtomic(s.path, payload); err != nil {
		return fmt.Errorf("write slot: %w", err)
	}
	return nil
}

// writeFileAtomic replaces path through a synced temp file and rename, so a
// crash mid-write leaves the previous document in place.
func writeFileAtomic(path string, payload []byte) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := f.Write(payload); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
