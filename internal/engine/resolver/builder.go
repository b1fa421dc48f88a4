package resolver

import (
	"context"
	"errors"

	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/zerr"
)

// Builder turns one WorkItem into a cached DependencyNode.
type Builder struct {
	fetcher   ports.SourceFetcher
	hasher    ports.ContentHasher
	manifests ports.ManifestReader
	cache     ports.LibraryCache
}

// NewBuilder creates a new Builder.
func NewBuilder(
	fetcher ports.SourceFetcher,
	hasher ports.ContentHasher,
	manifests ports.ManifestReader,
	cache ports.LibraryCache,
) *Builder {
	return &Builder{
		fetcher:   fetcher,
		hasher:    hasher,
		manifests: manifests,
		cache:     cache,
	}
}

// Build fetches item into a scratch directory, validates the fetched
// manifest against the request, queues the package's own dependencies with
// the new node as parent, and commits the sources into the cache under
// cacheRoot. The node is added to graph together with the edge from
// item.Parent. Nothing reaches the cache when validation fails.
func (b *Builder) Build(
	ctx context.Context,
	item WorkItem,
	cacheRoot string,
	graph *domain.DependencyGraph,
	queue *Queue,
) (domain.DependencyNode, error) {
	ref := item.Ref

	scratch, err := b.cache.Scratch(cacheRoot)
	if err != nil {
		return domain.DependencyNode{}, zerr.With(err, "package", ref.Name)
	}
	defer func() {
		_ = b.cache.Discard(scratch)
	}()

	rev, err := b.fetcher.Fetch(ctx, ref.Origin.Resolve(item.Base), scratch)
	if err != nil {
		return domain.DependencyNode{}, zerr.With(errors.Join(domain.ErrFetchFailed, err), "package", ref.Name)
	}

	hash, err := b.hasher.Checksum(scratch)
	if err != nil {
		return domain.DependencyNode{}, zerr.With(zerr.Wrap(err, "failed to hash package"), "package", ref.Name)
	}

	manifest, err := b.manifests.Read(scratch)
	if err != nil {
		return domain.DependencyNode{}, zerr.With(err, "package", ref.Name)
	}
	if !manifest.IsLibrary() {
		return domain.DependencyNode{}, zerr.With(
			errors.Join(domain.ErrNotALibrary, zerr.New("manifest has no [lib] section")), "package", ref.Name)
	}
	if !ref.Requirement.Allows(manifest.Package.Version) {
		found := zerr.New("manifest declares version " + manifest.Package.Version.String())
		err := zerr.With(errors.Join(domain.ErrVersionMismatch, found), "package", ref.Name)
		err = zerr.With(err, "requested", ref.Requirement.String())
		return domain.DependencyNode{}, zerr.With(err, "found", manifest.Package.Version.String())
	}

	id := domain.NodeID(graph.Len())
	queue.PushAll(id, item.Base, manifest.Dependencies)

	location, err := b.cache.Commit(cacheRoot, scratch, hash)
	if err != nil {
		return domain.DependencyNode{}, zerr.With(err, "package", ref.Name)
	}

	if rev == "" {
		rev = ref.Origin.Rev
	}
	node := domain.DependencyNode{
		Name:        ref.Name,
		Ref:         ref,
		Location:    location,
		IncludePath: manifest.Library.Location,
		Hash:        hash,
		Version:     manifest.Package.Version,
		Revision:    rev,
		Properties:  manifest.Library.Properties,
	}
	node.ID = graph.AddNode(node)
	graph.AddEdge(item.Parent, node.ID, ref.Requirement)
	return node, nil
}
