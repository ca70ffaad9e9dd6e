// Package render turns the session event stream into a live terminal
// transcript: styled speaker turns on a TTY, timestamped plain lines
// otherwise.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"

	"github.com/reelsmith/roundtable/internal/persona"
	"github.com/reelsmith/roundtable/internal/roundtable"
)

// speakerPalette cycles across registry order.
var speakerPalette = []string{"#7D56F4", "#04B575", "#F2A33C", "#3C9EF2", "#F25C5C"}

var (
	bannerStyle = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25C5C"))
)

// TranscriptRenderer implements roundtable.Sink for terminal output.
type TranscriptRenderer struct {
	out    io.Writer
	start  time.Time
	isTTY  bool
	width  int
	styles map[persona.ID]lipgloss.Style
	names  map[persona.ID]string

	typingShown bool // a "is typing" line is on screen and not yet cleared
	inTurn      bool // a speaker header has been printed for the open turn
}

// NewTranscriptRenderer creates a renderer writing to out, with one color
// per persona in registry order. TTY mode and width are auto-detected.
func NewTranscriptRenderer(out *os.File, reg *persona.Registry) *TranscriptRenderer {
	tty := isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())

	width := 80
	if tty {
		if w, _, err := term.GetSize(out.Fd()); err == nil && w > 0 {
			width = w
		}
	}

	styles := make(map[persona.ID]lipgloss.Style)
	names := make(map[persona.ID]string)
	for i, p := range reg.All() {
		color := speakerPalette[i%len(speakerPalette)]
		styles[p.ID()] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
		names[p.ID()] = fmt.Sprintf("%s (%s)", p.DisplayName(), p.Role())
	}

	return &TranscriptRenderer{
		out:    out,
		start:  time.Now(),
		isTTY:  tty,
		width:  width,
		styles: styles,
		names:  names,
	}
}

// Send renders one event. It satisfies roundtable.Sink and never returns an
// error: a terminal is not a transport that can reject delivery.
func (r *TranscriptRenderer) Send(e roundtable.Event) error {
	if r.isTTY {
		r.renderTTY(e)
	} else {
		r.renderPlain(e)
	}
	return nil
}

func (r *TranscriptRenderer) renderTTY(e roundtable.Event) {
	switch e.Type {
	case roundtable.EventStatus:
		fmt.Fprintf(r.out, "\n%s\n", bannerStyle.Render("  "+e.Message))

	case roundtable.EventTypingStart:
		fmt.Fprintf(r.out, "\n%s", faintStyle.Render(fmt.Sprintf("  %s is thinking...", r.name(e.PersonaID))))
		r.typingShown = true
		r.inTurn = false

	case roundtable.EventMessageChunk:
		r.clearTyping()
		if !r.inTurn {
			fmt.Fprintf(r.out, "\n%s\n", r.style(e.PersonaID).Render("  "+r.name(e.PersonaID)))
			r.inTurn = true
		}
		fmt.Fprint(r.out, wrapIndent(e.Text, r.width))

	case roundtable.EventMessageComplete:
		fmt.Fprintln(r.out)
		r.inTurn = false

	case roundtable.EventAgentError:
		r.clearTyping()
		fmt.Fprintf(r.out, "\n%s\n", errStyle.Render(fmt.Sprintf("  %s dropped out: %s", r.name(e.PersonaID), e.Reason)))

	case roundtable.EventTypingStop:
		r.clearTyping()

	case roundtable.EventDebateStart:
		fmt.Fprintf(r.out, "\n%s\n", bannerStyle.Render(fmt.Sprintf("  Debate: %s vs %s", r.name(e.From), r.name(e.To))))

	case roundtable.EventDebateChunk:
		if !r.inTurn {
			fmt.Fprintf(r.out, "\n%s\n", r.style(e.PersonaID).Render("  "+r.name(e.PersonaID)))
			r.inTurn = true
		}
		fmt.Fprint(r.out, e.Text)

	case roundtable.EventDebateMessage:
		fmt.Fprintln(r.out)
		r.inTurn = false

	case roundtable.EventDebateComplete:
		fmt.Fprintf(r.out, "\n%s\n", faintStyle.Render("  Debate settled."))

	case roundtable.EventDebateError:
		fmt.Fprintf(r.out, "\n%s\n", errStyle.Render("  Debate abandoned: "+e.Reason))
		r.inTurn = false

	case roundtable.EventSynthesisStart:
		fmt.Fprintf(r.out, "\n%s\n", bannerStyle.Render("  Synthesizing final document"))

	case roundtable.EventSynthesisChunk, roundtable.EventShotsChunk:
		fmt.Fprint(r.out, e.Text)

	case roundtable.EventSynthesisComplete:
		fmt.Fprintf(r.out, "\n%s\n", faintStyle.Render("  Document complete."))

	case roundtable.EventSynthesisError:
		fmt.Fprintf(r.out, "\n%s\n", errStyle.Render("  Synthesis failed: "+e.Reason))

	case roundtable.EventShotsComplete:
		fmt.Fprintf(r.out, "\n%s\n", faintStyle.Render(fmt.Sprintf("  Shot list complete. Total: %s", formatElapsed(time.Since(r.start)))))
	}
}

func (r *TranscriptRenderer) renderPlain(e roundtable.Event) {
	elapsed := formatElapsed(time.Since(r.start))
	switch e.Type {
	case roundtable.EventTypingStart, roundtable.EventTypingStop,
		roundtable.EventSynthesisChunk, roundtable.EventShotsChunk, roundtable.EventDebateChunk:
		// Skipped off-TTY: these are animation, not transcript.
	case roundtable.EventMessageChunk:
		fmt.Fprintf(r.out, "[%s] %s: %s\n", elapsed, e.PersonaID, strings.TrimSpace(e.Text))
	case roundtable.EventMessageComplete:
		fmt.Fprintf(r.out, "[%s] %s: (turn complete)\n", elapsed, e.PersonaID)
	case roundtable.EventAgentError:
		fmt.Fprintf(r.out, "[%s] %s: ERROR %s\n", elapsed, e.PersonaID, e.Reason)
	case roundtable.EventDebateMessage:
		fmt.Fprintf(r.out, "[%s] debate %s -> %s: %s\n", elapsed, e.From, e.To, strings.TrimSpace(e.Text))
	case roundtable.EventSynthesisError, roundtable.EventDebateError:
		fmt.Fprintf(r.out, "[%s] %s: %s\n", elapsed, e.Type, e.Reason)
	default:
		msg := e.Message
		if msg == "" {
			msg = string(e.Type)
		}
		fmt.Fprintf(r.out, "[%s] %s\n", elapsed, msg)
	}
}

func (r *TranscriptRenderer) clearTyping() {
	if r.typingShown {
		fmt.Fprint(r.out, "\r\033[2K")
		r.typingShown = false
	}
}

func (r *TranscriptRenderer) name(id persona.ID) string {
	if n, ok := r.names[id]; ok {
		return n
	}
	return string(id)
}

func (r *TranscriptRenderer) style(id persona.ID) lipgloss.Style {
	if s, ok := r.styles[id]; ok {
		return s
	}
	return bannerStyle
}

// wrapIndent is a cheap soft-wrap: it only inserts breaks at spaces that
// would cross the terminal edge, keeping streamed chunks readable without
// reflowing text already printed.
func wrapIndent(text string, width int) string {
	if width <= 20 {
		return text
	}
	limit := width - 4
	var b strings.Builder
	col := 0
	for _, word := range strings.SplitAfter(text, " ") {
		if col+len(word) > limit {
			b.WriteString("\n")
			col = 0
		}
		b.WriteString(word)
		col += len(word)
	}
	return b.String()
}

// formatElapsed formats a duration as M:SS.
func formatElapsed(d time.Duration) string {
	total := int(d.Seconds())
	mins := total / 60
	secs := total % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
