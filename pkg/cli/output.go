package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mchmarny/pwcheck/pkg/config"
	"github.com/mchmarny/pwcheck/pkg/strength"
	"gopkg.in/yaml.v3"
)

const separatorWidth = 30

var separator = strings.Repeat("-", separatorWidth)

// checkResult pairs a report with the 1-based position of its input.
// The password itself is never part of the output.
type checkResult struct {
	Input  int             `json:"input" yaml:"input"`
	Report strength.Report `json:"report" yaml:"report"`
}

type renderer struct {
	w      io.Writer
	format string
	yml    *yaml.Encoder
}

func newRenderer(w io.Writer, format string) *renderer {
	return &renderer{w: w, format: format}
}

// isText reports whether output is meant for a human rather than a parser.
func (r *renderer) isText() bool {
	return r.format != config.FormatJSON && r.format != config.FormatYAML
}

func (r *renderer) report(rep strength.Report) error {
	if r.isText() {
		return writeTextReport(r.w, rep)
	}
	return r.encode(rep)
}

func (r *renderer) results(list []checkResult) error {
	if !r.isText() {
		return r.encode(list)
	}
	for _, res := range list {
		if err := writeTextReport(r.w, res.Report); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) encode(v any) error {
	switch r.format {
	case config.FormatYAML:
		if r.yml == nil {
			r.yml = yaml.NewEncoder(r.w)
		}
		return r.yml.Encode(v)
	default:
		e := json.NewEncoder(r.w)
		e.SetIndent("", "  ")
		return e.Encode(v)
	}
}

// close flushes any buffered YAML document.
func (r *renderer) close() error {
	if r.yml == nil {
		return nil
	}
	err := r.yml.Close()
	r.yml = nil
	return err
}

func writeTextReport(w io.Writer, rep strength.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nPassword Strength: %s (Score: %d)\n", rep.Strength, rep.Score)
	b.WriteString("Feedback:\n")
	for _, f := range rep.Feedback {
		b.WriteString("- " + f + "\n")
	}
	b.WriteString(separator + "\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
