package measure

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// ErrInvalidMarkup is returned when markup cannot be parsed.
var ErrInvalidMarkup = errors.New("invalid markup")

// Scales applied by <big> and <small>, matching Pango's factor.
const (
	BigScale   = 1.2
	SmallScale = 1 / 1.2
)

// ParseMarkup parses a Pango-style subset (<b>, <strong>, <i>, <em>, <big>,
// <small>) into attributed text. Entities such as &amp; are decoded.
func ParseMarkup(s string) (Text, error) {
	decoder := xml.NewDecoder(strings.NewReader("<markup>" + s + "</markup>"))

	var (
		text  Text
		stack = []Run{{}}
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Text{}, fmt.Errorf("%w: %v", ErrInvalidMarkup, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			top := stack[len(stack)-1]
			switch strings.ToLower(t.Name.Local) {
			case "markup":
				continue
			case "b", "strong":
				top.Bold = true
			case "i", "em":
				top.Italic = true
			case "big":
				top.Scale = top.scale() * BigScale
			case "small":
				top.Scale = top.scale() * SmallScale
			default:
				return Text{}, fmt.Errorf("%w: unsupported tag <%s>", ErrInvalidMarkup, t.Name.Local)
			}
			stack = append(stack, top)

		case xml.EndElement:
			if t.Name.Local == "markup" {
				continue
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(t) == 0 {
				continue
			}
			run := stack[len(stack)-1]
			run.Text = string(t)
			text.Runs = appendRun(text.Runs, run)
		}
	}

	return text, nil
}

// appendRun merges r into the previous run when their attributes match.
func appendRun(runs []Run, r Run) []Run {
	if n := len(runs); n > 0 && runs[n-1].style() == r.style() {
		runs[n-1].Text += r.Text
		return runs
	}
	return append(runs, r)
}

// Markup renders text back to Pango markup, escaping the content.
func (t Text) Markup() string {
	var b strings.Builder
	for _, r := range t.Runs {
		var open, closing []string
		if r.Bold {
			open = append(open, "<b>")
			closing = append([]string{"</b>"}, closing...)
		}
		if r.Italic {
			open = append(open, "<i>")
			closing = append([]string{"</i>"}, closing...)
		}
		tag := "big"
		steps := scaleSteps(r.scale())
		if steps < 0 {
			tag, steps = "small", -steps
		}
		for range steps {
			open = append(open, "<"+tag+">")
			closing = append([]string{"</" + tag + ">"}, closing...)
		}
		b.WriteString(strings.Join(open, ""))
		_ = xml.EscapeText(&b, []byte(r.Text))
		b.WriteString(strings.Join(closing, ""))
	}
	return b.String()
}

// scaleSteps is the number of nested <big> (positive) or <small> (negative)
// tags that reproduce scale. Any scale other than 1 is at least one step.
func scaleSteps(scale float64) int {
	if scale <= 0 || math.Abs(scale-1) < 1e-9 {
		return 0
	}
	n := int(math.Round(math.Log(scale) / math.Log(BigScale)))
	switch {
	case n != 0:
		return n
	case scale > 1:
		return 1
	default:
		return -1
	}
}
