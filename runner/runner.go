// Package runner drives automata against live input sources. Where
// automaton.Run wants the whole input up front, a Runner pulls symbols
// from a Source one at a time, so a machine can be run against stdin,
// a file, or any other stream, with per-step tracing. A machine that
// loops forever runs forever; callers wanting a bound opt in with
// WithMaxSteps or cancel the run's context.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/silver-ag/finity/automaton"
)

// StepEvent records one transition taken during a run.
type StepEvent struct {
	Seq      int                // Position in the run, starting at 0
	From     string             // State the machine was in
	To       string             // State the machine moved to
	Consumed *automaton.Symbol  // Symbol consumed, nil for unconditional steps
	Emitted  []automaton.Symbol // Output produced by the transition
}

// Result summarizes a finished or aborted run.
type Result struct {
	RunID    string             // Unique identifier for this run
	Start    string             // State the run began in
	Last     string             // State the run ended in
	Halted   bool               // Whether the machine reached a halt
	Steps    int                // Number of transitions taken
	Output   []automaton.Symbol // Everything the machine emitted
	Trace    []StepEvent        // One event per transition
	Started  time.Time
	Duration time.Duration
}

// OutputString renders the run's output as text.
func (r Result) OutputString() string {
	return automaton.OutputString(r.Output)
}

// Summary renders a one-line digest of the run.
func (r Result) Summary() string {
	status := "aborted"
	if r.Halted {
		status = "halted"
	}
	return fmt.Sprintf("run %s: %s to %s, %s after %d steps, output %q",
		r.RunID, r.Start, r.Last, status, r.Steps, r.OutputString())
}

// Print prints a human-readable run summary.
func (r Result) Print() {
	fmt.Println("=== Run Summary ===")
	fmt.Printf("Run: %s\n", r.RunID)
	fmt.Printf("States: %s to %s\n", r.Start, r.Last)
	fmt.Printf("Halted: %v\n", r.Halted)
	fmt.Printf("Steps: %d\n", r.Steps)
	fmt.Printf("Output: %q\n", r.OutputString())
	fmt.Printf("Duration: %v\n", r.Duration)
}

// Runner executes an automaton against a symbol source.
type Runner struct {
	machine  *automaton.Automaton
	source   Source
	logger   *slog.Logger
	out      io.Writer
	maxSteps int
}

// New creates a runner with default settings.
func New(machine *automaton.Automaton, source Source) *Runner {
	return &Runner{
		machine: machine,
		source:  source,
		logger:  slog.Default(),
	}
}

// WithLogger sets the logger used for run progress.
func (r *Runner) WithLogger(logger *slog.Logger) *Runner {
	r.logger = logger
	return r
}

// WithOutput streams emitted symbols to a writer as the run produces
// them, so interactive runs show output before the machine halts.
func (r *Runner) WithOutput(w io.Writer) *Runner {
	r.out = w
	return r
}

// WithMaxSteps caps the number of transitions a run may take; exceeding
// the cap aborts the run with ErrStepLimit. Runs are unbounded by
// default, and a non-positive n leaves them unbounded.
func (r *Runner) WithMaxSteps(n int) *Runner {
	r.maxSteps = n
	return r
}

// Run executes the machine from its start state until it halts, the
// context is cancelled, or an opted-in step cap trips. The returned
// Result is meaningful even on error: it describes the run up to the
// abort.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	res := Result{
		RunID:   uuid.New().String(),
		Start:   r.machine.Start(),
		Started: time.Now(),
	}
	res.Last = res.Start
	logger := r.logger.With("run_id", res.RunID)
	logger.Info("Run started", "state", res.Start)

	current := res.Start
	for {
		select {
		case <-ctx.Done():
			res.Duration = time.Since(res.Started)
			logger.Info("Run cancelled", "state", current, "steps", res.Steps)
			return res, ctx.Err()
		default:
		}

		state := r.machine.State(current)
		if state.Descriptor == nil {
			res.Halted = true
			res.Duration = time.Since(res.Started)
			logger.Info("Run halted", "state", current, "steps", res.Steps)
			return res, nil
		}

		if r.maxSteps > 0 && res.Steps >= r.maxSteps {
			res.Duration = time.Since(res.Started)
			logger.Warn("Run exceeded step limit", "state", current, "steps", res.Steps)
			return res, fmt.Errorf("%w: %d", ErrStepLimit, r.maxSteps)
		}

		var buffer []automaton.Symbol
		if _, wantsInput := state.Descriptor.(automaton.TransitionRow); wantsInput {
			sym, err := r.source.ReadSymbol()
			if err != nil {
				res.Duration = time.Since(res.Started)
				return res, err
			}
			buffer = []automaton.Symbol{sym}
		}

		step, err := r.machine.Step(current, buffer)
		if err != nil {
			res.Duration = time.Since(res.Started)
			return res, err
		}
		if step.Halted {
			// The row had no entry for the symbol we fetched: a stuck halt.
			res.Halted = true
			res.Duration = time.Since(res.Started)
			logger.Info("Run halted on uncovered input",
				"state", current, "symbol", buffer[0].String(), "steps", res.Steps)
			return res, nil
		}

		event := StepEvent{
			Seq:     res.Steps,
			From:    current,
			To:      step.Next,
			Emitted: step.Output,
		}
		if len(buffer) > 0 && len(step.Rest) == 0 {
			sym := buffer[0]
			event.Consumed = &sym
		}
		res.Trace = append(res.Trace, event)
		res.Output = append(res.Output, step.Output...)
		res.Steps++
		res.Last = step.Next
		if r.out != nil && len(step.Output) > 0 {
			fmt.Fprint(r.out, automaton.OutputString(step.Output))
		}
		logger.Debug("Step taken",
			"from", current, "to", step.Next, "emitted", automaton.OutputString(step.Output))
		current = step.Next
	}
}
