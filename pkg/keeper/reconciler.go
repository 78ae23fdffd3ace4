package keeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"searchops/keeper/pkg/document"
)

// Outcome is the terminal state of one entity in a batch operation. Every
// entity ends in exactly one outcome; a failure never aborts the batch.
type Outcome int

const (
	// OutcomeCreated: the entity had no remote counterpart and was created
	// with an unconditional write.
	OutcomeCreated Outcome = iota
	// OutcomeUpdated: the entity differed and was updated, conditioned on
	// the concurrency token captured at read time.
	OutcomeUpdated
	// OutcomeSkippedNoChange: remote and local content are semantically
	// equal after normalization; no write was issued.
	OutcomeSkippedNoChange
	// OutcomeSkippedDeclined: the operator rejected the presented change.
	OutcomeSkippedDeclined
	// OutcomeFailed: the entity could not be processed (conflict, malformed
	// data, or a remote call failure).
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkippedNoChange:
		return "skipped (no changes)"
	case OutcomeSkippedDeclined:
		return "skipped (declined)"
	default:
		return "failed"
	}
}

// Result records what happened to a single entity during publish.
type Result struct {
	Name    string
	Outcome Outcome
	Changes document.ChangeSet
	Err     error
}

// ConfirmFunc decides whether a presented change set should be applied.
type ConfirmFunc func(name string, changes document.ChangeSet) bool

// PublishOptions controls the confirm step of a publish batch. Force
// auto-approves every change; otherwise Confirm is consulted per entity. A
// nil Confirm with Force unset approves everything, which keeps
// non-interactive callers working.
type PublishOptions struct {
	Force   bool
	Confirm ConfirmFunc
}

// Reconciler orchestrates list/save/publish/delete workflows for one entity
// kind against one environment. It is kind-agnostic: all per-kind behavior
// lives behind the Remote interface.
type Reconciler struct {
	remote Remote
	local  Local
	ignore []string
	logger *slog.Logger
}

// NewReconciler wires a remote store, a local store and the ordered ignore
// pattern list into a reconciler.
func NewReconciler(remote Remote, local Local, ignorePatterns []string, logger *slog.Logger) *Reconciler {
	return &Reconciler{remote: remote, local: local, ignore: ignorePatterns, logger: logger}
}

// List returns remote entities, excluding ignored names and, when pattern is
// non-empty, names not matching the glob. Ignored entities are dropped
// before any other processing, regardless of the pattern.
func (r *Reconciler) List(ctx context.Context, pattern string) ([]Entity, error) {
	entities, err := r.remote.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := entities[:0]
	for _, ent := range entities {
		if r.ignored(ent.Name) {
			continue
		}
		if pattern != "" {
			ok, err := path.Match(pattern, ent.Name)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
		}
		filtered = append(filtered, ent)
	}
	return filtered, nil
}

// Save persists the filtered remote listing to the local store, one file per
// entity, and returns the paths written. A single entity's write failure is
// logged and skipped; the rest of the batch proceeds.
func (r *Reconciler) Save(ctx context.Context, pattern string) ([]string, error) {
	entities, err := r.List(ctx, pattern)
	if err != nil {
		return nil, err
	}

	var saved []string
	for _, ent := range entities {
		file, err := r.local.Save(ent.Name, ent.Document)
		if err != nil {
			r.logger.Error("failed to save entity", "name", ent.Name, "error", err)
			continue
		}
		r.logger.Debug("saved entity", "name", ent.Name, "file", file)
		saved = append(saved, file)
	}
	return saved, nil
}

// Publish pushes local entities matching pattern to the remote store. Per
// entity: resolve remote state, diff, confirm, apply. Entities missing
// remotely are created unconditionally; existing ones are updated under the
// concurrency token captured during resolve, and a token mismatch marks the
// entity failed without retry. The batch never aborts early.
func (r *Reconciler) Publish(ctx context.Context, pattern string, opts PublishOptions) ([]Result, error) {
	names, err := r.local.List(pattern)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, name := range names {
		if r.ignored(name) {
			continue
		}
		results = append(results, r.publishOne(ctx, name, opts))
	}
	return results, nil
}

func (r *Reconciler) publishOne(ctx context.Context, name string, opts PublishOptions) Result {
	doc, err := r.local.Load(name)
	if err != nil {
		r.logger.Error("failed to load local entity", "name", name, "error", err)
		return Result{Name: name, Outcome: OutcomeFailed, Err: err}
	}
	doc = r.remote.Normalize(doc)

	// Resolve remote state. NotFound selects the create path; any other
	// failure ends this entity without touching the rest of the batch.
	remote, err := r.remote.Get(ctx, name)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.logger.Error("failed to resolve remote entity", "name", name, "error", err)
			return Result{Name: name, Outcome: OutcomeFailed, Err: err}
		}
		if err := r.remote.Put(ctx, name, doc, nil); err != nil {
			r.logger.Error("failed to create entity", "name", name, "error", err)
			return Result{Name: name, Outcome: OutcomeFailed, Err: err}
		}
		r.logger.Info("created entity", "name", name)
		return Result{Name: name, Outcome: OutcomeCreated}
	}

	changes := document.Compare(remote.Document, doc)
	if !changes.HasChanges() {
		r.logger.Debug("entity unchanged", "name", name)
		return Result{Name: name, Outcome: OutcomeSkippedNoChange}
	}

	if !opts.Force && opts.Confirm != nil && !opts.Confirm(name, changes) {
		r.logger.Info("change declined", "name", name)
		return Result{Name: name, Outcome: OutcomeSkippedDeclined, Changes: changes}
	}

	if err := r.remote.Put(ctx, name, doc, remote.Token); err != nil {
		r.logger.Error("failed to update entity", "name", name, "error", err)
		return Result{Name: name, Outcome: OutcomeFailed, Changes: changes, Err: err}
	}
	r.logger.Info("updated entity", "name", name)
	return Result{Name: name, Outcome: OutcomeUpdated, Changes: changes}
}

// Delete removes one remote entity by name. No diffing, no ignore filtering:
// deletion is explicit and irreversible, so the caller is responsible for
// confirming it.
func (r *Reconciler) Delete(ctx context.Context, name string) error {
	if err := r.remote.Delete(ctx, name); err != nil {
		return err
	}
	r.logger.Info("deleted entity", "name", name)
	return nil
}

func (r *Reconciler) ignored(name string) bool {
	for _, pattern := range r.ignore {
		if ok, err := path.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Summary aggregates a batch of publish results for reporting.
type Summary struct {
	Created         int
	Updated         int
	SkippedNoChange int
	SkippedDeclined int
	Failed          int
	FailedNames     []string
}

// Summarize folds publish results into per-outcome counts plus the names of
// failed entities. No partial success is hidden.
func Summarize(results []Result) Summary {
	var s Summary
	for _, res := range results {
		switch res.Outcome {
		case OutcomeCreated:
			s.Created++
		case OutcomeUpdated:
			s.Updated++
		case OutcomeSkippedNoChange:
			s.SkippedNoChange++
		case OutcomeSkippedDeclined:
			s.SkippedDeclined++
		case OutcomeFailed:
			s.Failed++
			s.FailedNames = append(s.FailedNames, res.Name)
		}
	}
	return s
}
