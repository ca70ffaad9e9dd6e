package render

import (
	"fmt"
	"strings"

	"github.com/reelsmith/roundtable/internal/roundtable"
)

// FormatMarkdown renders a finished session as a single markdown document:
// the final production document and shot list first, then the roundtable
// record (transcript and debate) as an appendix.
func FormatMarkdown(r *roundtable.SessionResult) string {
	var b strings.Builder

	b.WriteString("# Production Document\n\n")
	if r.Status == roundtable.StatusFailed {
		fmt.Fprintf(&b, "> Session failed: %s\n\n", r.FailureReason)
	}

	if r.Synthesis.FinalPrompt != "" {
		b.WriteString(strings.TrimSpace(r.Synthesis.FinalPrompt))
		b.WriteString("\n\n")
	}
	if r.Synthesis.ShotList != "" {
		b.WriteString("## Shot List\n\n")
		b.WriteString(strings.TrimSpace(r.Synthesis.ShotList))
		b.WriteString("\n\n")
	}

	b.WriteString("---\n\n# Roundtable Record\n")
	for _, round := range r.Round1 {
		fmt.Fprintf(&b, "\n## %s\n\n", round.DisplayName)
		if round.Conversational.Error != "" {
			fmt.Fprintf(&b, "_Dropped out: %s_\n", round.Conversational.Error)
			continue
		}
		b.WriteString(strings.TrimSpace(round.Conversational.Text))
		b.WriteString("\n")
	}

	if r.Debate.ChallengeText != "" || r.Debate.Error != "" {
		b.WriteString("\n## Debate\n\n")
		if r.Debate.Error != "" {
			fmt.Fprintf(&b, "_Abandoned: %s_\n", r.Debate.Error)
		} else {
			fmt.Fprintf(&b, "**%s:** %s\n\n", r.Debate.ChallengerID, strings.TrimSpace(r.Debate.ChallengeText))
			fmt.Fprintf(&b, "**%s:** %s\n", r.Debate.ResponderID, strings.TrimSpace(r.Debate.ResponseText))
		}
	}

	return b.String()
}
