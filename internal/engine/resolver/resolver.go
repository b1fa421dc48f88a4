// Package resolver discovers the dependency graph of a project, selects one
// version per package and keeps Lingo.lock in step with the selection.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/lingo/internal/engine/lockmgr"
	"go.trai.ch/zerr"
)

// Request describes one resolution pass.
type Request struct {
	Layout   domain.Layout
	Manifest *domain.Manifest
	// VerifyLock re-hashes cached packages before reusing a lock.
	VerifyLock bool
	// Update ignores an existing lock and resolves from scratch.
	Update bool
}

// Resolver drives resolution: reuse a valid lock, otherwise drain the work
// queue through the Builder, select, and persist the new lock.
type Resolver struct {
	builder *Builder
	locks   *lockmgr.Manager
	cache   ports.LibraryCache
	logger  ports.Logger
	tracer  ports.Tracer
}

// New creates a new Resolver.
func New(
	builder *Builder,
	locks *lockmgr.Manager,
	cache ports.LibraryCache,
	logger ports.Logger,
	tracer ports.Tracer,
) *Resolver {
	return &Resolver{
		builder: builder,
		locks:   locks,
		cache:   cache,
		logger:  logger,
		tracer:  tracer,
	}
}

// Resolve returns the selection for req.Manifest. The cache lock is held for
// the whole pass. A stale lock is reported as a warning and replaced.
func (r *Resolver) Resolve(ctx context.Context, req Request) (sel domain.Selection, err error) {
	ctx, span := r.tracer.Start(ctx, "resolve")
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
	}()

	release, err := r.cache.Acquire(ctx, req.Layout.CacheDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := release(); rerr != nil && err == nil {
			err = zerr.Wrap(rerr, "failed to release library cache")
		}
	}()

	if !req.Update && exists(req.Layout.LockFile) {
		reused, rerr := r.reuse(ctx, req)
		if rerr == nil {
			span.SetAttribute(ports.SummaryAttribute, fmt.Sprintf("Using %s (%d packages)", domain.LockFileName, len(reused)))
			return reused, nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		r.logger.Warn(domain.LockFileName + " is out of date, resolving dependencies again")
	}

	graph, err := r.discover(ctx, req)
	if err != nil {
		return nil, err
	}

	sel, err = Select(graph)
	if err != nil {
		return nil, err
	}

	if err := r.locks.Persist(sel, req.Layout.LockFile); err != nil {
		return nil, err
	}

	span.SetAttribute(ports.SummaryAttribute, fmt.Sprintf("Resolved %d packages", len(sel)))
	return sel, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func (r *Resolver) reuse(ctx context.Context, req Request) (domain.Selection, error) {
	lock, sel, err := r.locks.LoadAndValidate(ctx, req.Layout.LockFile, req.Layout.CacheDir, req.VerifyLock)
	if err != nil {
		return nil, err
	}
	if err := r.locks.CheckDrift(lock, req.Manifest); err != nil {
		return nil, err
	}
	return sel, nil
}

// discover drains the work queue. A package requested again from the same
// origin is not fetched twice; only the new edge is recorded, which also
// stops dependency cycles.
func (r *Resolver) discover(ctx context.Context, req Request) (*domain.DependencyGraph, error) {
	graph := domain.NewDependencyGraph()
	queue := NewQueue()
	queue.PushAll(domain.RootID, req.Layout.Root, req.Manifest.Dependencies)

	built := make(map[string]domain.NodeID)
	for queue.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		item, _ := queue.Pop()
		key := item.Ref.Name + "@" + item.Ref.Origin.Key()
		if id, ok := built[key]; ok {
			node, _ := graph.Node(id)
			if !item.Ref.Requirement.Allows(node.Version) {
				found := zerr.New("already resolved to version " + node.Version.String())
				err := zerr.With(errors.Join(domain.ErrVersionMismatch, found), "package", item.Ref.Name)
				err = zerr.With(err, "requested", item.Ref.Requirement.String())
				return nil, zerr.With(err, "found", node.Version.String())
			}
			graph.AddEdge(item.Parent, id, item.Ref.Requirement)
			continue
		}

		node, err := r.build(ctx, item, req.Layout.CacheDir, graph, queue)
		if err != nil {
			return nil, err
		}
		built[key] = node.ID
	}
	return graph, nil
}

func (r *Resolver) build(
	ctx context.Context,
	item WorkItem,
	cacheRoot string,
	graph *domain.DependencyGraph,
	queue *Queue,
) (domain.DependencyNode, error) {
	ctx, span := r.tracer.Start(ctx, "fetch "+item.Ref.Name)
	defer span.End()

	node, err := r.builder.Build(ctx, item, cacheRoot, graph, queue)
	if err != nil {
		span.RecordError(err)
		return node, err
	}

	span.SetAttribute("lingo.package.version", node.Version.String())
	span.SetAttribute(ports.SummaryAttribute, fmt.Sprintf("Fetched %s %s", node.Name, node.Version))
	return node, nil
}
