package measure

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Segment is a piece of a wrapped line drawn with a single style.
type Segment struct {
	Text  string
	Style Run
	Width float64
}

// Line is one wrapped line of text.
type Line struct {
	Segments []Segment
	Width    float64
	Height   float64
}

// String returns the line's text.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l.Segments {
		b.WriteString(s.Text)
	}
	return b.String()
}

// metrics is what the wrapping algorithm needs from a measurement backend.
type metrics interface {
	advance(s string, style Run) float64
	lineHeight(style Run) float64
}

type itemKind int

const (
	itemWord itemKind = iota
	itemSpace
	itemNewline
)

// item is a breakable unit. A word may span several runs, so it is stored as
// a list of parts.
type item struct {
	kind  itemKind
	parts []Run
}

// tokenize splits attributed text into words, spaces and hard line breaks.
// Adjacent non-space text from different runs joins into one word.
func tokenize(t Text) []item {
	var items []item
	var current *item

	flush := func() {
		if current != nil {
			items = append(items, *current)
			current = nil
		}
	}

	for _, run := range t.Runs {
		style := run.style()
		var b strings.Builder
		kind := itemWord
		emit := func() {
			if b.Len() == 0 {
				return
			}
			part := style
			part.Text = b.String()
			b.Reset()
			if kind == itemWord && current != nil && current.kind == itemWord {
				current.parts = append(current.parts, part)
				return
			}
			flush()
			current = &item{kind: kind, parts: []Run{part}}
		}

		for _, r := range run.Text {
			switch {
			case r == '\n':
				emit()
				flush()
				items = append(items, item{kind: itemNewline})
			case unicode.IsSpace(r):
				if kind != itemSpace {
					emit()
					kind = itemSpace
				}
				b.WriteRune(r)
			default:
				if kind != itemWord {
					emit()
					kind = itemWord
				}
				b.WriteRune(r)
			}
		}
		emit()
		// A space run must not absorb the next run's leading word.
		if current != nil && current.kind == itemSpace {
			flush()
		}
	}
	flush()
	return items
}

// wrap breaks text into lines no wider than maxWidth. Words wider than
// maxWidth are broken between runes; each line holds at least one rune.
func wrap(t Text, maxWidth float64, m metrics) []Line {
	items := tokenize(t)
	if len(items) == 0 {
		return nil
	}

	var (
		lines   []Line
		line    Line
		pending []Run // whitespace waiting for the next word on this line
		started bool
	)

	finish := func() {
		lines = append(lines, line)
		line = Line{}
		pending = nil
		started = false
	}

	appendParts := func(parts []Run) {
		for _, p := range parts {
			w := m.advance(p.Text, p)
			line.Segments = append(line.Segments, Segment{Text: p.Text, Style: p.style(), Width: w})
			line.Width += w
			if h := m.lineHeight(p); h > line.Height {
				line.Height = h
			}
		}
		started = true
	}

	for _, it := range items {
		switch it.kind {
		case itemNewline:
			if !started {
				line.Height = m.lineHeight(Run{})
			}
			finish()
		case itemSpace:
			if started {
				pending = append(pending, it.parts...)
			}
		case itemWord:
			wordWidth := partsWidth(it.parts, m)
			spaceWidth := partsWidth(pending, m)

			if started && line.Width+spaceWidth+wordWidth <= maxWidth {
				appendParts(pending)
				appendParts(it.parts)
				pending = nil
				continue
			}
			if started {
				finish()
			}
			if wordWidth <= maxWidth {
				appendParts(it.parts)
				continue
			}
			for i, chunk := range breakWord(it.parts, maxWidth, m) {
				if i > 0 {
					finish()
				}
				appendParts(chunk)
			}
		}
	}
	if started {
		finish()
	}
	return lines
}

func partsWidth(parts []Run, m metrics) float64 {
	var w float64
	for _, p := range parts {
		w += m.advance(p.Text, p)
	}
	return w
}

// breakWord splits an over-long word into chunks that each fit maxWidth.
// Breaks fall between grapheme clusters and every chunk holds at least one.
func breakWord(parts []Run, maxWidth float64, m metrics) [][]Run {
	var (
		chunks [][]Run
		chunk  []Run
		width  float64
	)

	for _, p := range parts {
		var b strings.Builder
		style := p.style()
		flushPart := func() {
			if b.Len() == 0 {
				return
			}
			part := style
			part.Text = b.String()
			chunk = append(chunk, part)
			b.Reset()
		}

		g := uniseg.NewGraphemes(p.Text)
		for g.Next() {
			cluster := g.Str()
			cw := m.advance(cluster, style)
			if width > 0 && width+cw > maxWidth {
				flushPart()
				chunks = append(chunks, chunk)
				chunk = nil
				width = 0
			}
			b.WriteString(cluster)
			width += cw
		}
		flushPart()
	}
	if len(chunk) > 0 {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// extent returns the bounding size of wrapped lines.
func extent(lines []Line) (width, height float64) {
	for _, l := range lines {
		if l.Width > width {
			width = l.Width
		}
		height += l.Height
	}
	return width, height
}
