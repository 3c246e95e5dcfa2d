package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/mchmarny/pwcheck/pkg/strength"
	urfave "github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const stdinFileName = "-"

var (
	// ErrBelowMinScore is returned by check when a password scores under --min-score.
	ErrBelowMinScore = errors.New("password below minimum score")
	// ErrBelowMinStrength is returned by check when a password rates under --min-strength.
	ErrBelowMinStrength = errors.New("password below minimum strength")
)

const (
	checkFileFlagName     = "file"
	checkParallelFlagName = "parallel"
	checkMinScoreFlagName = "min-score"
	checkMinLabelFlagName = "min-strength"
)

func newCheckCmd() *urfave.Command {
	return &urfave.Command{
		Name:      "check",
		Aliases:   []string{"c"},
		Usage:     "Score passwords non-interactively",
		ArgsUsage: "[PASSWORD...]",
		UsageText: `pwcheck check 'Abcdef1!'                           # score one password
   pwcheck --format json check --file words.txt     # score a word list
   cat words.txt | pwcheck check -f - --min-score 4 # policy gate
   pwcheck check --min-strength "very strong" 'x'   # gate on label`,
		HideHelpCommand: true,
		Action:          cmdCheck,
		Flags: []urfave.Flag{
			&urfave.StringFlag{
				Name:    checkFileFlagName,
				Aliases: []string{"f"},
				Usage:   "Read passwords from file, one per line ('-' for stdin)",
			},
			&urfave.IntFlag{
				Name:  checkParallelFlagName,
				Usage: "Number of passwords scored concurrently",
				Value: runtime.NumCPU(),
			},
			&urfave.IntFlag{
				Name:  checkMinScoreFlagName,
				Usage: "Fail when any password scores below this value (optional)",
			},
			&urfave.StringFlag{
				Name:  checkMinLabelFlagName,
				Usage: "Fail when any password rates below this label, e.g. Strong (optional)",
			},
		},
	}
}

// candidate is a password with its 1-based position in the input.
type candidate struct {
	index    int
	password string
}

func cmdCheck(ctx context.Context, cmd *urfave.Command) error {
	cfg := getConfig(cmd)

	minLabel := strength.VeryWeak
	if cmd.IsSet(checkMinLabelFlagName) {
		l, err := strength.ParseStrength(cmd.String(checkMinLabelFlagName))
		if err != nil {
			return fmt.Errorf("parsing --%s: %w", checkMinLabelFlagName, err)
		}
		minLabel = l
	}

	list, err := collectCandidates(cmd)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return urfave.ShowSubcommandHelp(cmd)
	}

	results, err := scoreAll(ctx, list, cmd.Int(checkParallelFlagName))
	if err != nil {
		return fmt.Errorf("scoring passwords: %w", err)
	}

	out := newRenderer(writer(cmd), cfg.Format)
	if err := out.results(results); err != nil {
		return fmt.Errorf("rendering results: %w", err)
	}
	if err := out.close(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	if cmd.IsSet(checkMinScoreFlagName) {
		if err := enforceMinScore(results, cmd.Int(checkMinScoreFlagName)); err != nil {
			return err
		}
	}
	return enforceMinStrength(results, minLabel)
}

func collectCandidates(cmd *urfave.Command) ([]candidate, error) {
	path := cmd.String(checkFileFlagName)
	if path == "" {
		args := cmd.Args().Slice()
		list := make([]candidate, 0, len(args))
		for i, a := range args {
			if a == "" {
				slog.Debug("skipping empty argument", "input", i+1)
				continue
			}
			list = append(list, candidate{index: i + 1, password: a})
		}
		return list, nil
	}

	if path == stdinFileName {
		return readCandidates(reader(cmd))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening password file %s: %w", path, err)
	}
	defer f.Close()

	return readCandidates(f)
}

// readCandidates reads one password per line, skipping empty lines.
// Lines have no length limit.
func readCandidates(r io.Reader) ([]candidate, error) {
	var list []candidate
	lr := newBufferedLineReader(r)
	for n := 1; ; n++ {
		line, err := lr.ReadLine()
		if errors.Is(err, io.EOF) {
			return list, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading passwords: %w", err)
		}
		if line == "" {
			slog.Debug("skipping empty line", "input", n)
			continue
		}
		list = append(list, candidate{index: n, password: line})
	}
}

// scoreAll evaluates every candidate on a bounded pool. Results keep input order.
func scoreAll(ctx context.Context, list []candidate, parallel int) ([]checkResult, error) {
	if parallel < 1 {
		parallel = 1
	}

	results := make([]checkResult, len(list))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, c := range list {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = checkResult{
				Input:  c.index,
				Report: strength.Evaluate(c.password),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("passwords scored", "count", len(results), "parallel", parallel)
	return results, nil
}

func enforceMinScore(results []checkResult, minScore int) error {
	var failed []int
	for _, r := range results {
		if r.Report.Score < minScore {
			failed = append(failed, r.Input)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%w %d: %d of %d inputs %v", ErrBelowMinScore, minScore, len(failed), len(results), failed)
}

// enforceMinStrength fails when any report rates below minLabel.
// VeryWeak accepts everything.
func enforceMinStrength(results []checkResult, minLabel strength.Strength) error {
	var failed []int
	for _, r := range results {
		if r.Report.Strength < minLabel {
			failed = append(failed, r.Input)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return fmt.Errorf("%w %q: %d of %d inputs %v", ErrBelowMinStrength, minLabel, len(failed), len(results), failed)
}
