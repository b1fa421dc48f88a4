// Package batch runs build backends over a set of targets.
//
// Per-target steps (stage, configure, clean) are mapped over the targets with
// bounded parallelism. Compilation is a gather step that runs once per
// backend over the targets that survived the map steps. Without keep-going
// the first failure cancels outstanding work and later steps are skipped.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Step names, also used as span names.
const (
	StepStage     = "stage"
	StepConfigure = "configure"
	StepCompile   = "compile"
	StepClean     = "clean"
)

// Harness dispatches commands to the backend of each target.
type Harness struct {
	backends map[string]ports.Backend
	tracer   ports.Tracer
}

// New creates a Harness serving the given backends.
func New(tracer ports.Tracer, backends ...ports.Backend) *Harness {
	h := &Harness{
		backends: make(map[string]ports.Backend, len(backends)),
		tracer:   tracer,
	}
	for _, b := range backends {
		h.backends[b.Name()] = b
	}
	return h
}

type targetState struct {
	target  *domain.BuildTarget
	backend ports.Backend
	err     error
	skipped bool
}

func (s *targetState) live() bool {
	return s.err == nil && !s.skipped
}

type run struct {
	h       *Harness
	opts    domain.BuildOptions
	states  []*targetState
	limit   int
	stopped bool
}

// Execute runs spec over targets and returns one result per target, in input order.
func (h *Harness) Execute(ctx context.Context, spec domain.CommandSpec, targets []*domain.BuildTarget) domain.BatchOutcome {
	r := &run{h: h, opts: spec.Options, limit: spec.Options.Parallelism}
	if r.limit < 1 {
		r.limit = runtime.NumCPU()
	}

	for _, t := range targets {
		st := &targetState{target: t, backend: h.backends[t.Backend]}
		if st.backend == nil {
			st.err = zerr.With(errors.Join(domain.ErrUnknownBackend, zerr.New("no backend for "+t.Backend)), "target", t.Name)
		}
		r.states = append(r.states, st)
	}
	r.checkStop()

	switch spec.Kind {
	case domain.CommandBuild:
		r.mapStep(ctx, StepStage, func(ctx context.Context, st *targetState) error {
			return st.backend.Stage(ctx, st.target, r.opts)
		})
		if r.opts.CompileTargetCode {
			r.mapStep(ctx, StepConfigure, func(ctx context.Context, st *targetState) error {
				return st.backend.Configure(ctx, st.target, r.opts)
			})
			r.gather(ctx)
		}
	case domain.CommandClean:
		r.mapStep(ctx, StepClean, func(ctx context.Context, st *targetState) error {
			return st.backend.Clean(ctx, st.target)
		})
	default:
		for _, st := range r.states {
			if st.live() {
				st.err = zerr.With(zerr.New("unsupported command"), "command", string(spec.Kind))
			}
		}
	}

	return r.outcome()
}

// checkStop marks every live target skipped once a failure occurred without keep-going.
func (r *run) checkStop() {
	if r.opts.KeepGoing || r.stopped {
		return
	}
	for _, st := range r.states {
		if st.err != nil {
			r.stopped = true
			break
		}
	}
	if r.stopped {
		for _, st := range r.states {
			if st.live() {
				st.skipped = true
			}
		}
	}
}

func (r *run) mapStep(ctx context.Context, step string, fn func(context.Context, *targetState) error) {
	if r.stopped {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	for _, st := range r.states {
		if !st.live() {
			continue
		}
		g.Go(func() error {
			if gctx.Err() != nil && ctx.Err() == nil {
				st.skipped = true
				return nil
			}

			summary := ""
			if step == StepClean {
				summary = "Cleaned " + st.target.Name
			}
			err := r.traced(gctx, step+" "+st.target.Name, summary, func(ctx context.Context) error {
				return fn(ctx, st)
			})
			if err == nil {
				return nil
			}
			if gctx.Err() != nil && ctx.Err() == nil && errors.Is(err, context.Canceled) {
				// cancelled because a sibling failed
				st.skipped = true
				return nil
			}

			st.err = zerr.With(zerr.Wrap(err, step+" failed"), "target", st.target.Name)
			if r.opts.KeepGoing {
				return nil
			}
			return err
		})
	}

	_ = g.Wait()
	r.checkStop()
}

// gather compiles the surviving targets, once per backend, in order of first appearance.
func (r *run) gather(ctx context.Context) {
	if r.stopped {
		return
	}

	var order []ports.Backend
	groups := make(map[ports.Backend][]*targetState)
	for _, st := range r.states {
		if !st.live() {
			continue
		}
		if _, ok := groups[st.backend]; !ok {
			order = append(order, st.backend)
		}
		groups[st.backend] = append(groups[st.backend], st)
	}

	for _, backend := range order {
		if r.stopped {
			for _, st := range groups[backend] {
				st.skipped = true
			}
			continue
		}

		states := groups[backend]
		targets := make([]*domain.BuildTarget, len(states))
		for i, st := range states {
			targets[i] = st.target
		}

		names := make([]string, len(targets))
		for i, t := range targets {
			names[i] = t.Name
		}
		name := fmt.Sprintf("%s %s", StepCompile, backend.Name())
		summary := "Built " + strings.Join(names, ", ")
		err := r.traced(ctx, name, summary, func(ctx context.Context) error {
			return backend.Compile(ctx, targets, r.opts)
		})
		if err != nil {
			for _, st := range states {
				st.err = zerr.With(zerr.Wrap(err, StepCompile+" failed"), "target", st.target.Name)
			}
		}
		r.checkStop()
	}
}

// traced runs fn in a span. A non-empty summary is reported on success.
func (r *run) traced(ctx context.Context, name, summary string, fn func(context.Context) error) error {
	ctx, span := r.h.tracer.Start(ctx, name)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		return err
	}
	if summary != "" {
		span.SetAttribute(ports.SummaryAttribute, summary)
	}
	return nil
}

func (r *run) outcome() domain.BatchOutcome {
	out := domain.BatchOutcome{Results: make([]domain.TargetResult, 0, len(r.states))}
	for _, st := range r.states {
		out.Results = append(out.Results, domain.TargetResult{
			Target:  st.target.Name,
			Err:     st.err,
			Skipped: st.skipped,
		})
	}
	return out
}
