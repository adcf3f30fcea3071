package content

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Checo3x/Washington-Commanders-Hub/internal/usecase"
)

func writeContentFile(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "content.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write content file: %v", err)
	}
	return path
}

func TestStore_FetchReturnsDocument(t *testing.T) {
	t.Parallel()

	doc := `{"articles":[{"title":"Draft recap"}],"podcasts":[]}`
	store, err := NewStore(writeContentFile(t, doc))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	raw, err := store.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(raw) != doc {
		t.Fatalf("got %q, want %q", raw, doc)
	}
}

func TestStore_FetchSeesFileSwap(t *testing.T) {
	t.Parallel()

	path := writeContentFile(t, `{"articles":[]}`)
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, err := store.Fetch(context.Background()); err != nil {
		t.Fatalf("first Fetch: %v", err)
	}

	updated := `{"articles":[{"title":"New head coach"}]}`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite content file: %v", err)
	}

	raw, err := store.Fetch(context.Background())
	if err != nil {
		t.Fatalf("second Fetch: %v", err)
	}
	if string(raw) != updated {
		t.Fatalf("got %q after swap", raw)
	}
}

func TestStore_InvalidJSONIsFormatError(t *testing.T) {
	t.Parallel()

	store, err := NewStore(writeContentFile(t, "{broken"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, err := store.Fetch(context.Background()); !errors.Is(err, usecase.ErrFormat) {
		t.Fatalf("error %v is not ErrFormat", err)
	}
}

func TestStore_MissingFileIsProcessingError(t *testing.T) {
	t.Parallel()

	store, err := NewStore(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if _, err := store.Fetch(context.Background()); !errors.Is(err, usecase.ErrProcessing) {
		t.Fatalf("error %v is not ErrProcessing", err)
	}
}

func TestNewStore_RequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := NewStore("  "); !errors.Is(err, usecase.ErrConfiguration) {
		t.Fatalf("error %v is not ErrConfiguration", err)
	}
}
