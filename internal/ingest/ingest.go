// Package ingest loads the free-text production context blocks (visual
// templates, character profiles, screenplay excerpts) that accompany a
// creative brief, from local files, URLs, or PDFs.
package ingest

import (
	"context"
	"fmt"
	"os"
	"strings"
)

type SourceType string

const (
	SourceURL  SourceType = "url"
	SourcePDF  SourceType = "pdf"
	SourceText SourceType = "text"

	// maxInputSize caps one context block at 10 MB; blocks are prompt
	// material, not media.
	maxInputSize = 10 * 1024 * 1024
)

func (s SourceType) String() string {
	return string(s)
}

// Block is one loaded context block.
type Block struct {
	Text      string
	Source    string
	WordCount int
}

// Loader extracts a context block's text from one source kind.
type Loader interface {
	Load(ctx context.Context, source string) (*Block, error)
}

// DetectSource classifies an input reference by shape.
func DetectSource(input string) SourceType {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return SourceURL
	}
	if strings.HasSuffix(strings.ToLower(input), ".pdf") {
		return SourcePDF
	}
	return SourceText
}

// NewLoader picks the loader for the given input reference.
func NewLoader(input string) Loader {
	switch DetectSource(input) {
	case SourceURL:
		return &URLLoader{}
	case SourcePDF:
		return &PDFLoader{}
	default:
		return &TextLoader{}
	}
}

// LoadBlock is the one-shot helper the CLI uses: detect, load, return text.
func LoadBlock(ctx context.Context, source string) (string, error) {
	if source == "" {
		return "", nil
	}
	block, err := NewLoader(source).Load(ctx, source)
	if err != nil {
		return "", err
	}
	return block.Text, nil
}

func wordCount(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			inWord = false
		} else if !inWord {
			inWord = true
			count++
		}
	}
	return count
}

func validateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	if info.Size() > maxInputSize {
		return fmt.Errorf("%s is too large (%d MB, max %d MB)", path, info.Size()/(1024*1024), maxInputSize/(1024*1024))
	}
	return nil
}
