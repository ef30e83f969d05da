// Package jsonview is the entry inspector: a vertically scrolling,
// syntax-highlighted JSON rendering of the selected entry, its times and its
// computed geometry. Lines wider than the panel are cut with an ellipsis.
package jsonview

import (
	"encoding/json"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/x/ansi"

	"github.com/kpumuk/lazytimeline/internal/mathutil"
	"github.com/kpumuk/lazytimeline/internal/timeline"
	"github.com/kpumuk/lazytimeline/internal/ui/format"
)

// Styles holds styles for JSON tokens. The zero value renders plain text.
type Styles struct {
	Text        lipgloss.Style
	Key         lipgloss.Style
	String      lipgloss.Style
	Number      lipgloss.Style
	Bool        lipgloss.Style
	Null        lipgloss.Style
	Punctuation lipgloss.Style
	Muted       lipgloss.Style
}

func (s Styles) token(tok chroma.Token) lipgloss.Style {
	switch {
	case tok.Type == chroma.NameTag:
		return s.Key
	case tok.Type.InSubCategory(chroma.LiteralString):
		return s.String
	case tok.Type.InSubCategory(chroma.LiteralNumber):
		return s.Number
	case tok.Type.InCategory(chroma.Keyword) && tok.Value == "null":
		return s.Null
	case tok.Type.InCategory(chroma.Keyword):
		return s.Bool
	case tok.Type == chroma.Punctuation:
		return s.Punctuation
	default:
		return s.Text
	}
}

// Inspection is the document shown for a selected entry.
type Inspection struct {
	Entry      timeline.Entry           `json:"entry"`
	Start      string                   `json:"start"`
	End        string                   `json:"end"`
	Duration   string                   `json:"duration"`
	Dimensions timeline.EntryDimensions `json:"dimensions"`
}

// NewInspection builds the inspector document for an entry.
func NewInspection(e timeline.Entry, d timeline.EntryDimensions) Inspection {
	return Inspection{
		Entry:      e,
		Start:      format.Timestamp(e.Start),
		End:        format.Timestamp(e.End),
		Duration:   format.Span(e.End - e.Start),
		Dimensions: d,
	}
}

// Model is the inspector state.
type Model struct {
	styles        Styles
	width, height int
	yOffset       int
	emptyMessage  string

	// lines holds one token run per JSON line.
	lines [][]chroma.Token
}

// Option is used to set options in New.
type Option func(*Model)

// New creates an empty inspector.
func New(opts ...Option) Model {
	m := Model{emptyMessage: "Nothing selected"}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithSize sets the dimensions.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// WithEmptyMessage sets the text shown when there is no value.
func WithEmptyMessage(msg string) Option {
	return func(m *Model) {
		m.emptyMessage = msg
	}
}

// SetStyles sets the styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// SetSize sets the dimensions and keeps the offset in range.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ScrollBy(0)
}

// LineCount returns the number of JSON lines.
func (m Model) LineCount() int {
	return len(m.lines)
}

// YOffset returns the first rendered line.
func (m Model) YOffset() int {
	return m.yOffset
}

// ScrollBy moves the view by lines, stopping when the last line is at the
// bottom.
func (m *Model) ScrollBy(lines int) {
	m.yOffset = mathutil.Clamp(m.yOffset+lines, 0, max(len(m.lines)-m.height, 0))
}

// SetEntry shows the inspector document for an entry.
func (m *Model) SetEntry(e timeline.Entry, d timeline.EntryDimensions) {
	m.SetValue(NewInspection(e, d))
}

// Clear removes the current value.
func (m *Model) Clear() {
	m.SetValue(nil)
}

// SetValue shows value as indented JSON and scrolls back to the top.
func (m *Model) SetValue(value any) {
	m.yOffset = 0
	m.lines = nil
	if value == nil {
		return
	}

	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		m.lines = [][]chroma.Token{{{Type: chroma.Error, Value: "cannot format value: " + err.Error()}}}
		return
	}
	m.lines = highlight(string(b))
}

// View renders the visible lines, padded to the full size.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	rows := make([]string, m.height)
	blank := strings.Repeat(" ", m.width)
	for i := range rows {
		rows[i] = blank
	}
	if len(m.lines) == 0 {
		msg := ansi.Truncate(m.emptyMessage, m.width, "…")
		rows[0] = m.styles.Muted.Render(msg) + strings.Repeat(" ", m.width-ansi.StringWidth(msg))
		return strings.Join(rows, "\n")
	}

	for i := range rows {
		if line := m.yOffset + i; line < len(m.lines) {
			rows[i] = m.renderLine(m.lines[line])
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderLine(tokens []chroma.Token) string {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(m.styles.token(tok).Render(tok.Value))
	}
	line := ansi.Truncate(b.String(), m.width, "…")
	return line + strings.Repeat(" ", max(m.width-ansi.StringWidth(line), 0))
}

var jsonLexer = func() chroma.Lexer {
	if lexer := lexers.Get("json"); lexer != nil {
		return chroma.Coalesce(lexer)
	}
	return nil
}()

// highlight splits text into per-line token runs. Without a lexer every line
// is a single Text token.
func highlight(text string) [][]chroma.Token {
	plain := strings.Split(text, "\n")
	fallback := func() [][]chroma.Token {
		lines := make([][]chroma.Token, len(plain))
		for i, line := range plain {
			lines[i] = []chroma.Token{{Type: chroma.Text, Value: line}}
		}
		return lines
	}
	if jsonLexer == nil {
		return fallback()
	}
	it, err := jsonLexer.Tokenise(nil, text)
	if err != nil {
		return fallback()
	}

	lines := make([][]chroma.Token, 1, len(plain))
	for tok := it(); tok.Type != chroma.EOFType; tok = it() {
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], chroma.Token{Type: tok.Type, Value: part})
			}
		}
	}
	if len(lines) != len(plain) {
		return fallback()
	}
	return lines
}
