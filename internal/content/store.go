package content

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/Checo3x/Washington-Commanders-Hub/internal/usecase"
)

// Store serves the editorial content document (articles and podcasts) from a
// JSON file on disk. The file is re-read on every fetch so the newsroom can
// swap it without a restart.
type Store struct {
	path string
}

func NewStore(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: content file path is required", usecase.ErrConfiguration)
	}
	return &Store{path: path}, nil
}

// Fetch returns the raw document. The payload keeps its on-disk shape; the
// usecase layer decides what inside it is usable.
func (s *Store) Fetch(_ context.Context) ([]byte, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read content file: %v", usecase.ErrProcessing, err)
	}
	if !sonic.Valid(raw) {
		return nil, fmt.Errorf("%w: content file is not valid JSON", usecase.ErrFormat)
	}
	return raw, nil
}
