package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// TextLoader reads a plain-text context block from disk.
type TextLoader struct{}

func (t *TextLoader) Load(ctx context.Context, source string) (*Block, error) {
	if err := validateFile(source); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("could not read file %s: %w", source, err)
	}

	text := string(data)
	if len(text) == 0 {
		return nil, fmt.Errorf("file %s is empty", source)
	}

	return &Block{
		Text:      text,
		Source:    filepath.Base(source),
		WordCount: wordCount(text),
	}, nil
}
