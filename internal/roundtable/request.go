package roundtable

import (
	"fmt"
	"strings"
)

// ContextBundle aggregates the optional free-text production context blocks
// that accompany a brief. Empty fields are simply absent from the combined
// context; none are required.
type ContextBundle struct {
	VisualTemplate  string `json:"visual_template,omitempty"`
	CharacterVoices string `json:"character_voices,omitempty"`
	Settings        string `json:"settings,omitempty"`
	Screenplay      string `json:"screenplay,omitempty"`
	StyleDirectives string `json:"style_directives,omitempty"`
}

// Combined concatenates the present blocks into the single context string
// consumed by every persona prompt. Block order is fixed so identical
// bundles always produce identical prompts.
func (c ContextBundle) Combined() string {
	blocks := []struct {
		label string
		text  string
	}{
		{"VISUAL TEMPLATE", c.VisualTemplate},
		{"CHARACTER & VOICE PROFILES", c.CharacterVoices},
		{"SETTINGS", c.Settings},
		{"SCREENPLAY EXCERPT", c.Screenplay},
		{"STYLE DIRECTIVES", c.StyleDirectives},
	}

	var b strings.Builder
	for _, blk := range blocks {
		if strings.TrimSpace(blk.text) == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%s]\n%s", blk.label, strings.TrimSpace(blk.text))
	}
	return b.String()
}

// Request is the creative brief plus context for one roundtable session.
type Request struct {
	Brief    string        `json:"brief"`
	Platform string        `json:"platform"`
	Context  ContextBundle `json:"context"`
}

// Validate checks the request is runnable.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Brief) == "" {
		return fmt.Errorf("brief is required")
	}
	return nil
}
