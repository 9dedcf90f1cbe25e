package publisher

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"product_design_agent/generator"
)

const (
	designBanner = "================= GENERATED DESIGN ================="
	designRule   = "===================================================="
)

// Format is the rendering applied to a collected design.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", "md":
		return FormatMarkdown, nil
	case FormatMarkdown, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want markdown or html)", s)
	}
}

// design docs lean on GFM tables for endpoints and entities
var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Publisher writes collected designs and raw events to an output stream.
// It implements generator.Sink.
type Publisher struct {
	out    io.Writer
	format Format
	enc    *json.Encoder
}

func New(out io.Writer, format Format) (*Publisher, error) {
	if out == nil {
		return nil, errors.New("output writer is required")
	}
	if format == "" {
		format = FormatMarkdown
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return &Publisher{out: out, format: format, enc: enc}, nil
}

// Event writes ev as a single JSON line.
func (p *Publisher) Event(ev generator.Event) error {
	return p.enc.Encode(ev)
}

// Design writes the final design. Markdown is framed by the banner; HTML is printed bare.
func (p *Publisher) Design(md string) error {
	if p.format == FormatHTML {
		html, err := mdToHTML(md)
		if err != nil {
			return err
		}
		_, err = io.WriteString(p.out, html)
		return err
	}
	_, err := fmt.Fprintf(p.out, "\n%s\n\n%s\n\n%s\n\n", designBanner, md, designRule)
	return err
}

func mdToHTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

var _ generator.Sink = (*Publisher)(nil)
