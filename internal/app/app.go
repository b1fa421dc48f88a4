// Package app implements the application layer for lingo.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/lingo/internal/engine/batch"
	"go.trai.ch/lingo/internal/engine/lockmgr"
	"go.trai.ch/lingo/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	settings  ports.SettingsLoader
	manifests ports.ManifestReader
	resolver  *resolver.Resolver
	locks     *lockmgr.Manager
	harness   *batch.Harness
	logger    ports.Logger
}

// New creates a new App instance.
func New(
	settings ports.SettingsLoader,
	manifests ports.ManifestReader,
	res *resolver.Resolver,
	locks *lockmgr.Manager,
	harness *batch.Harness,
	log ports.Logger,
) *App {
	return &App{
		settings:  settings,
		manifests: manifests,
		resolver:  res,
		locks:     locks,
		harness:   harness,
		logger:    log,
	}
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// Dir is the project root; empty means the working directory.
	Dir string
	// Targets restricts the build to the named apps. Empty builds every app.
	Targets     []string
	Release     bool
	KeepGoing   bool
	CodegenOnly bool
}

// project is everything derived from a project root before any work starts.
type project struct {
	layout   domain.Layout
	manifest *domain.Manifest
	settings domain.Settings
}

// SetJSON switches the logger to JSON output when it supports it.
func (a *App) SetJSON(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// Build resolves the dependencies of the project, materializes them and runs
// the backends of the selected apps.
func (a *App) Build(ctx context.Context, opts BuildOptions) error {
	// 1. Load settings and manifest
	p, err := a.load(opts.Dir)
	if err != nil {
		return err
	}

	// 2. Validate targets before touching the network
	apps, err := selectApps(p.manifest, opts.Targets)
	if err != nil {
		return err
	}

	// 3. Resolve and materialize
	sel, err := a.resolve(ctx, p, false)
	if err != nil {
		return err
	}

	// 4. Run the backends once over all targets
	targets := buildTargets(p, apps, domain.AggregateProperties(sel))
	outcome := a.harness.Execute(ctx, domain.CommandSpec{
		Kind: domain.CommandBuild,
		Options: domain.BuildOptions{
			Profile:           profile(opts.Release),
			KeepGoing:         opts.KeepGoing || p.settings.KeepGoing,
			CompileTargetCode: !opts.CodegenOnly,
			Parallelism:       p.settings.Parallelism,
			Tools:             p.settings.Tools,
		},
	}, targets)

	if skipped := outcome.Skipped(); len(skipped) > 0 {
		a.logger.Warn("skipped " + strings.Join(skipped, ", "))
	}
	return outcome.Err()
}

// Update discards the lock file, resolves every dependency again and
// materializes the new selection.
func (a *App) Update(ctx context.Context, dir string) error {
	p, err := a.load(dir)
	if err != nil {
		return err
	}
	_, err = a.resolve(ctx, p, true)
	return err
}

// Clean removes the build output of every app of the project.
func (a *App) Clean(ctx context.Context, dir string) error {
	p, err := a.load(dir)
	if err != nil {
		return err
	}
	if len(p.manifest.Apps) == 0 {
		a.logger.Info("nothing to clean")
		return nil
	}

	targets := buildTargets(p, p.manifest.Apps, domain.TargetProperties{})
	outcome := a.harness.Execute(ctx, domain.CommandSpec{
		Kind:    domain.CommandClean,
		Options: domain.BuildOptions{Parallelism: p.settings.Parallelism},
	}, targets)
	return outcome.Err()
}

// Cleanup removes untracked materialized libraries together with the lock
// file, so the next build starts from a clean slate.
func (a *App) Cleanup(ctx context.Context, dir string) error {
	p, err := a.load(dir)
	if err != nil {
		return err
	}

	report, err := a.locks.Cleanup(ctx, p.layout)
	if err != nil {
		return zerr.Wrap(err, "cleanup failed")
	}

	switch {
	case report.LockRemoved:
		a.logger.Info(fmt.Sprintf("removed %s and %d library directories", domain.LockFileName, len(report.Removed)))
	default:
		a.logger.Info("no " + domain.LockFileName + " found, nothing to clean up")
	}
	return nil
}

func (a *App) load(dir string) (project, error) {
	if dir == "" {
		dir = "."
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return project{}, zerr.With(zerr.Wrap(err, "failed to resolve project root"), "dir", dir)
	}

	settings, err := a.settings.Load(root)
	if err != nil {
		return project{}, zerr.Wrap(err, "failed to load settings")
	}

	manifest, err := a.manifests.Read(root)
	if err != nil {
		return project{}, zerr.Wrap(err, "failed to load manifest")
	}

	return project{
		layout:   domain.NewLayout(root).WithCacheDir(settings.CacheDir),
		manifest: manifest,
		settings: settings,
	}, nil
}

func (a *App) resolve(ctx context.Context, p project, update bool) (domain.Selection, error) {
	sel, err := a.resolver.Resolve(ctx, resolver.Request{
		Layout:     p.layout,
		Manifest:   p.manifest,
		VerifyLock: p.settings.VerifyLock,
		Update:     update,
	})
	if err != nil {
		return nil, zerr.Wrap(err, "dependency resolution failed")
	}
	if err := a.locks.Materialize(sel, p.layout.IncludeDir); err != nil {
		return nil, err
	}
	return sel, nil
}

// selectApps returns the apps named in names, in manifest order.
func selectApps(manifest *domain.Manifest, names []string) ([]domain.AppSpec, error) {
	if len(manifest.Apps) == 0 {
		return nil, domain.ErrNoTargets
	}
	if len(names) == 0 {
		return manifest.Apps, nil
	}

	var unknown []string
	for _, name := range names {
		if !declared(manifest.Apps, name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, zerr.With(
			errors.Join(domain.ErrUnknownTarget, zerr.New("not declared in "+domain.ManifestFileName)),
			"targets", strings.Join(unknown, ", "),
		)
	}

	apps := make([]domain.AppSpec, 0, len(names))
	for _, spec := range manifest.Apps {
		for _, name := range names {
			if spec.Name == name {
				apps = append(apps, spec)
				break
			}
		}
	}
	return apps, nil
}

func declared(apps []domain.AppSpec, name string) bool {
	for _, spec := range apps {
		if spec.Name == name {
			return true
		}
	}
	return false
}

func buildTargets(p project, apps []domain.AppSpec, props domain.TargetProperties) []*domain.BuildTarget {
	targets := make([]*domain.BuildTarget, 0, len(apps))
	for _, spec := range apps {
		main := spec.Main
		if !filepath.IsAbs(main) {
			main = filepath.Join(p.layout.Root, main)
		}
		targets = append(targets, &domain.BuildTarget{
			Name:       spec.Name,
			Main:       main,
			Backend:    spec.Target,
			OutputRoot: p.layout.OutputRoot(spec.Name),
			IncludeDir: p.layout.IncludeDir,
			Properties: props,
		})
	}
	return targets
}

func profile(release bool) domain.BuildProfile {
	if release {
		return domain.ProfileRelease
	}
	return domain.ProfileDebug
}
