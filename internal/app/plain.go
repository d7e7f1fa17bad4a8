package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/maturiz/internal/diagnostic"
	"github.com/abhisek/maturiz/internal/enrichment"
	"github.com/abhisek/maturiz/internal/questionbank"
	"github.com/abhisek/maturiz/internal/runner"
	"github.com/abhisek/maturiz/internal/ui/report"
	"github.com/abhisek/maturiz/internal/ui/theme"
)

// plainWidth is the report width in line mode.
const plainWidth = 80

// ErrInputClosed is returned when the input ends before the run completes.
var ErrInputClosed = errors.New("input closed before the diagnostic completed")

// RunPlain runs a diagnostic as numbered prompts read from in, then prints
// the report to out.
func RunPlain(ctx context.Context, deps Deps, in io.Reader, out io.Writer) error {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	run, err := deps.Recorder.Start(deps.Options)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		q, ok := run.Session.CurrentQuestion()
		if !ok {
			break
		}
		idx, err := prompt(scanner, out, run.Session.Progress(), q)
		if err != nil {
			return err
		}

		before := run.Session.AnsweredCount()
		if err := deps.Recorder.Answer(ctx, run, q.ID, idx); err != nil {
			if run.Session.AnsweredCount() == before {
				fmt.Fprintln(out, theme.Failure.Render(err.Error()))
				continue
			}
			logger.Warn("answer accepted but not stored", zap.String("run_id", run.ID), zap.Error(err))
		}
	}

	res, err := run.Session.Result()
	if err != nil {
		return fmt.Errorf("diagnostic stopped after %d answers: %w", run.Session.AnsweredCount(), err)
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, report.Render(run.Organisation, res, plainWidth))
	if !run.Saved() {
		fmt.Fprintln(out, theme.Warning.Render("Ce diagnostic n'a pas été enregistré."))
	}

	if deps.Enrichment != nil {
		fmt.Fprintln(out)
		enrich(ctx, deps, run, out, logger)
	}
	return nil
}

// prompt asks q until a valid option number is read and returns its index.
func prompt(scanner *bufio.Scanner, out io.Writer, p diagnostic.Progress, q questionbank.Question) (int, error) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.Subtitle.Render(fmt.Sprintf("[%d/%d (%d%%)] %s", p.Current, p.Total, p.Percentage, q.Category)))
	fmt.Fprintln(out, theme.Body.Bold(true).Render(q.Text))
	for i, o := range q.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, o.Text)
	}

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("read answer: %w", err)
			}
			return 0, ErrInputClosed
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || n < 1 || n > len(q.Options) {
			fmt.Fprintf(out, "Réponse invalide, saisissez un nombre entre 1 et %d.\n", len(q.Options))
			continue
		}
		return n - 1, nil
	}
}

func enrich(ctx context.Context, deps Deps, run *runner.Run, out io.Writer, logger *zap.Logger) {
	in, err := enrichment.InputFromSession(run.Session)
	if err != nil {
		logger.Warn("enrichment input", zap.Error(err))
		return
	}

	type outcome struct {
		report *enrichment.Report
		err    error
	}
	ch := make(chan outcome, 1)
	accepted := deps.Enrichment.Submit(ctx, in, func(r *enrichment.Report, err error) {
		ch <- outcome{r, err}
	})
	if !accepted {
		fmt.Fprintln(out, theme.Warning.Render("Analyse IA indisponible : file d'attente pleine"))
		return
	}

	fmt.Fprintln(out, theme.Hint.Render("Analyse IA en cours..."))
	var res outcome
	select {
	case res = <-ch:
	case <-ctx.Done():
		res.err = ctx.Err()
	}
	if res.err != nil {
		logger.Warn("enrichment failed", zap.String("run_id", run.ID), zap.Error(res.err))
		fmt.Fprintln(out, theme.Warning.Render("Analyse IA indisponible : "+res.err.Error()))
		return
	}

	fmt.Fprint(out, report.RenderEnrichment(res.report, plainWidth))
	if run.Saved() {
		if err := deps.Recorder.AttachEnrichment(ctx, run.ID, res.report); err != nil {
			logger.Warn("failed to store enrichment", zap.String("run_id", run.ID), zap.Error(err))
		}
	}
}
