package roundtable

import "strings"

// sentenceBuffer accumulates streamed text deltas and emits complete
// sentences as they form. A sentence ends at '.', '!' or '?'; whatever
// remains when the stream ends is flushed as a final chunk.
type sentenceBuffer struct {
	buf  strings.Builder
	emit func(sentence string)
}

func newSentenceBuffer(emit func(string)) *sentenceBuffer {
	return &sentenceBuffer{emit: emit}
}

// Write appends a delta and emits every complete sentence now in the
// buffer. A single delta may complete several sentences.
func (s *sentenceBuffer) Write(delta string) {
	s.buf.WriteString(delta)

	for {
		text := s.buf.String()
		end := strings.IndexAny(text, ".!?")
		if end < 0 {
			return
		}
		// Include the terminator, plus any that immediately follow it
		// ("?!", "...") so ellipses stay in one chunk.
		end++
		for end < len(text) && (text[end] == '.' || text[end] == '!' || text[end] == '?') {
			end++
		}

		sentence := text[:end]
		s.buf.Reset()
		s.buf.WriteString(text[end:])

		if strings.TrimSpace(sentence) != "" {
			s.emit(sentence)
		}
	}
}

// Flush emits any buffered remainder. Safe to call when empty.
func (s *sentenceBuffer) Flush() {
	text := s.buf.String()
	s.buf.Reset()
	if strings.TrimSpace(text) != "" {
		s.emit(text)
	}
}
