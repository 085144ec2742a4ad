// Package orchestrator runs one analysis at a time: it validates the input,
// orders it remotely or locally depending on the strategy, classifies the
// result and hands it to a renderer.
package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/josephgoksu/taskrank/internal/task"
	"github.com/josephgoksu/taskrank/models"
)

// Analyzer scores a validated batch remotely.
type Analyzer interface {
	RequestAnalysis(ctx context.Context, tasks []models.Task, strategy models.Strategy) ([]models.AnalyzedTask, error)
}

// Renderer presents the outcome of a run. Render is called exactly once per
// successful run; Reset followed by ShowError once per failed run.
type Renderer interface {
	Render(tasks []models.RankedTask, strategy models.Strategy) error
	// Reset clears shown results and restores the "no results yet" state.
	Reset()
	ShowError(msg string)
}

// Trigger is the control that starts a run. It is disabled while a run is
// in flight and enabled again when the run ends, whatever the outcome.
type Trigger interface {
	SetEnabled(enabled bool)
}

// Result is a completed run.
type Result struct {
	RunID    string
	Strategy models.Strategy
	Tasks    []models.RankedTask
	Duration time.Duration
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTrigger sets the control toggled around each run.
func WithTrigger(t Trigger) Option {
	return func(o *Orchestrator) { o.trigger = t }
}

// WithLogger sets the logger; slog.Default() is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithObserver registers a callback invoked after every state change.
func WithObserver(fn func(from, to State)) Option {
	return func(o *Orchestrator) { o.observer = fn }
}

// WithRunIDs overrides how run ids are generated.
func WithRunIDs(fn func() string) Option {
	return func(o *Orchestrator) { o.newRunID = fn }
}

// Orchestrator coordinates analysis runs. It is safe for concurrent use;
// only one run proceeds at a time and others are rejected.
type Orchestrator struct {
	analyzer Analyzer
	renderer Renderer
	trigger  Trigger
	logger   *slog.Logger
	observer func(from, to State)
	newRunID func() string

	inFlight atomic.Bool

	mu    sync.Mutex
	state State
}

// New creates an Orchestrator. analyzer may be nil when only local
// strategies will be used.
func New(analyzer Analyzer, renderer Renderer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		analyzer: analyzer,
		renderer: renderer,
		logger:   slog.Default(),
		newRunID: func() string { return uuid.NewString() },
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// InFlight reports whether a run is in progress.
func (o *Orchestrator) InFlight() bool {
	return o.inFlight.Load()
}

// Run performs one analysis of raw input with strategy. It returns
// ErrRunInFlight without side effects if another run holds the lock; any
// other failure is a *RunError and has already been shown to the user.
func (o *Orchestrator) Run(ctx context.Context, raw []byte, strategy models.Strategy) (*Result, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		o.logger.Debug("analysis run rejected", "reason", "run in flight", "strategy", strategy)
		return nil, ErrRunInFlight
	}

	runID := o.newRunID()
	log := o.logger.With("run_id", runID, "strategy", string(strategy))
	o.setTriggerEnabled(false)
	defer o.finish(log)

	start := time.Now()
	log.Debug("analysis run started", "input_bytes", len(raw))

	ranked, stage, err := o.execute(ctx, log, raw, strategy)
	if err != nil {
		return nil, o.fail(log, runID, stage, err)
	}

	res := &Result{
		RunID:    runID,
		Strategy: strategy,
		Tasks:    ranked,
		Duration: time.Since(start),
	}
	log.Info("analysis run completed", "tasks", len(ranked), "elapsed", res.Duration.Round(time.Millisecond))
	return res, nil
}

// execute walks the run states and returns the stage that failed, if any.
func (o *Orchestrator) execute(ctx context.Context, log *slog.Logger, raw []byte, strategy models.Strategy) ([]models.RankedTask, State, error) {
	if err := o.enter(StateValidating); err != nil {
		return nil, o.State(), err
	}
	if !strategy.Valid() {
		return nil, StateValidating, models.ErrUnknownStrategy
	}
	tasks, err := task.Validate(raw)
	if err != nil {
		return nil, StateValidating, err
	}
	if cycle := task.FindDependencyCycle(tasks); cycle != nil {
		log.Warn("input contains a dependency cycle", "path", cycle.Path)
	}

	var analyzed []models.AnalyzedTask
	if strategy.IsRemote() {
		if err := o.enter(StateRequesting); err != nil {
			return nil, o.State(), err
		}
		if o.analyzer == nil {
			return nil, StateRequesting, errors.New("no scoring service is configured")
		}
		analyzed, err = o.analyzer.RequestAnalysis(ctx, tasks, strategy)
		if err != nil {
			return nil, StateRequesting, err
		}
	} else {
		if err := o.enter(StateLocalSorting); err != nil {
			return nil, o.State(), err
		}
		sorted, err := task.Sort(tasks, strategy)
		if err != nil {
			return nil, StateLocalSorting, err
		}
		analyzed = task.Unscored(sorted)
	}

	if err := o.enter(StateClassifying); err != nil {
		return nil, o.State(), err
	}
	ranked := task.Rank(analyzed, strategy)

	if err := o.renderer.Render(ranked, strategy); err != nil {
		return nil, StateClassifying, err
	}
	if err := o.enter(StateRendered); err != nil {
		return nil, o.State(), err
	}
	return ranked, StateRendered, nil
}

func (o *Orchestrator) fail(log *slog.Logger, runID string, stage State, err error) error {
	if transErr := o.enter(StateErrored); transErr != nil {
		log.Error("could not enter errored state", "error", transErr)
	}

	o.renderer.Reset()
	o.renderer.ShowError("Error: " + err.Error())

	// Already shown by the renderer.
	log.Info("analysis run failed", "stage", string(stage), "error", err)
	return &RunError{RunID: runID, Stage: stage, Err: err}
}

// finish releases the run lock on every exit path.
func (o *Orchestrator) finish(log *slog.Logger) {
	if err := o.enter(StateIdle); err != nil {
		log.Error("run ended outside a terminal state", "error", err)
		o.mu.Lock()
		o.state = StateIdle
		o.mu.Unlock()
	}
	o.setTriggerEnabled(true)
	o.inFlight.Store(false)
}

func (o *Orchestrator) enter(to State) error {
	o.mu.Lock()
	from := o.state
	if !CanTransition(from, to) {
		o.mu.Unlock()
		return illegalTransition(from, to)
	}
	o.state = to
	observer := o.observer
	o.mu.Unlock()

	if observer != nil {
		observer(from, to)
	}
	return nil
}

func (o *Orchestrator) setTriggerEnabled(enabled bool) {
	if o.trigger != nil {
		o.trigger.SetEnabled(enabled)
	}
}
