package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mchmarny/pwcheck/pkg/strength"
	urfave "github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const (
	banner        = "--- Password Strength Checker ---"
	promptText    = "Enter a password to check (or 'q' to quit): "
	farewell      = "Exiting Password Checker. Goodbye!"
	emptyInputMsg = "Error: Password cannot be empty. Please enter a password."
	quitSentinel  = "q"
)

// lineReader yields one line of input per call, without the line terminator.
type lineReader interface {
	ReadLine() (string, error)
}

type bufferedLineReader struct {
	r *bufio.Reader
}

func newBufferedLineReader(r io.Reader) *bufferedLineReader {
	return &bufferedLineReader{r: bufio.NewReader(r)}
}

func (b *bufferedLineReader) ReadLine() (string, error) {
	line, err := b.r.ReadString('\n')
	if err != nil {
		// last line without a trailing newline
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

// hiddenLineReader reads from a terminal with echo disabled.
type hiddenLineReader struct {
	fd  int
	out io.Writer
}

func (h *hiddenLineReader) ReadLine() (string, error) {
	b, err := term.ReadPassword(h.fd)
	// the newline typed by the user is not echoed
	fmt.Fprintln(h.out)
	if err != nil {
		return "", err
	}
	return trimEOL(string(b)), nil
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// newLineReader returns a no-echo reader when hidden is requested and in
// is a terminal, otherwise a buffered reader.
func newLineReader(in io.Reader, hidden bool, echo io.Writer) lineReader {
	if hidden {
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return &hiddenLineReader{fd: int(f.Fd()), out: echo}
		}
		slog.Debug("stdin is not a terminal, hidden input disabled")
	}
	return newBufferedLineReader(in)
}

func isQuit(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), quitSentinel)
}

func cmdInteractive(ctx context.Context, cmd *urfave.Command) error {
	cfg := getConfig(cmd)
	out := newRenderer(writer(cmd), cfg.Format)

	// keep stdout clean for parsers when reports are structured
	prompts := writer(cmd)
	if !out.isText() {
		prompts = errWriter(cmd)
	}

	in := newLineReader(reader(cmd), cfg.Hidden, prompts)
	return runSession(ctx, in, prompts, out)
}

// runSession runs the loop and flushes the renderer. A loop error wins
// over a flush error.
func runSession(ctx context.Context, in lineReader, prompts io.Writer, out *renderer) error {
	err := runInteractive(ctx, in, prompts, out)
	if cerr := out.close(); cerr != nil && err == nil {
		return fmt.Errorf("flushing output: %w", cerr)
	}
	return err
}

// runInteractive prompts for passwords until the quit sentinel or end of input.
func runInteractive(ctx context.Context, in lineReader, prompts io.Writer, out *renderer) error {
	fmt.Fprintln(prompts, banner)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(prompts, promptText)

		line, err := in.ReadLine()
		if errors.Is(err, io.EOF) {
			// end of input quits like the sentinel
			fmt.Fprintln(prompts)
			fmt.Fprintln(prompts, farewell)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		if isQuit(line) {
			fmt.Fprintln(prompts, farewell)
			return nil
		}

		if line == "" {
			fmt.Fprintln(prompts, emptyInputMsg)
			continue
		}

		rep := strength.Evaluate(line)
		slog.Debug("password evaluated", "length", utf8.RuneCountInString(line), "score", rep.Score)

		if err := out.report(rep); err != nil {
			return fmt.Errorf("rendering report: %w", err)
		}
	}
}
