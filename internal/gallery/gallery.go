package gallery

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"asset-studio/internal/studio"
)

// Gallery writes every generated image to a directory as <uuid>.png.
type Gallery struct {
	dir string

	mu   sync.RWMutex
	last string
}

func New(dir string) (*Gallery, error) {
	if dir == "" {
		return nil, fmt.Errorf("gallery directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create gallery directory: %w", err)
	}
	return &Gallery{dir: dir}, nil
}

// Save decodes a base64 PNG and writes it, returning the file path.
func (g *Gallery) Save(image string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(image)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	path := filepath.Join(g.dir, uuid.New().String()+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	g.mu.Lock()
	g.last = path
	g.mu.Unlock()
	return path, nil
}

// LastSaved is the path saved by the most recent attempt, or "" when that
// attempt saved nothing.
func (g *Gallery) LastSaved() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.last
}

// Record implements studio.Recorder. Failed attempts are skipped and save
// errors are only logged; they never reach the page.
func (g *Gallery) Record(ctx context.Context, attempt studio.Attempt) {
	g.mu.Lock()
	g.last = ""
	g.mu.Unlock()

	if attempt.Outcome.State != studio.Success || attempt.Image == "" {
		return
	}

	path, err := g.Save(attempt.Image)
	if err != nil {
		log.Printf("[Gallery] Failed to save image for prompt %.50q: %v", attempt.Prompt, err)
		return
	}
	log.Printf("[Gallery] Saved %s (%s)", path, attempt.Duration.Round(time.Millisecond))
}
