package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectSource(t *testing.T) {
	assert.Equal(t, SourceURL, DetectSource("https://example.com/brief"))
	assert.Equal(t, SourceURL, DetectSource("http://example.com/brief"))
	assert.Equal(t, SourcePDF, DetectSource("deck.pdf"))
	assert.Equal(t, SourcePDF, DetectSource("/tmp/Deck.PDF"))
	assert.Equal(t, SourceText, DetectSource("notes.txt"))
	assert.Equal(t, SourceText, DetectSource("example.com/deck"))
}

func TestNewLoaderPicksByShape(t *testing.T) {
	assert.IsType(t, &URLLoader{}, NewLoader("https://example.com"))
	assert.IsType(t, &PDFLoader{}, NewLoader("deck.pdf"))
	assert.IsType(t, &TextLoader{}, NewLoader("notes.md"))
}

func TestTextLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("neon signage\twet asphalt\nlow angle"), 0644))

	block, err := (&TextLoader{}).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", block.Source)
	assert.Equal(t, 6, block.WordCount)
	assert.Contains(t, block.Text, "wet asphalt")
}

func TestTextLoaderEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := (&TextLoader{}).Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestTextLoaderRejectsDirectory(t *testing.T) {
	_, err := (&TextLoader{}).Load(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory")
}

func TestLoadBlockEmptySourceIsNoop(t *testing.T) {
	text, err := LoadBlock(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, wordCount(""))
	assert.Equal(t, 0, wordCount("  \n\t"))
	assert.Equal(t, 3, wordCount("one  two\nthree"))
}
