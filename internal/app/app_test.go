package app_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lingo/internal/adapters/cas"
	"go.trai.ch/lingo/internal/adapters/config"
	"go.trai.ch/lingo/internal/adapters/fetch"
	lfs "go.trai.ch/lingo/internal/adapters/fs"
	"go.trai.ch/lingo/internal/adapters/lockfile"
	"go.trai.ch/lingo/internal/adapters/manifest"
	"go.trai.ch/lingo/internal/adapters/telemetry"
	"go.trai.ch/lingo/internal/adapters/vcs"
	"go.trai.ch/lingo/internal/app"
	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports/mocks"
	"go.trai.ch/lingo/internal/engine/batch"
	"go.trai.ch/lingo/internal/engine/lockmgr"
	"go.trai.ch/lingo/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

// fixture is a project at <tmp>/project depending on a library at <tmp>/libs/greet.
type fixture struct {
	root    string
	backend *mocks.MockBackend
	logger  *mocks.MockLogger
	app     *app.App
}

func newFixture(t *testing.T, apps string) *fixture {
	t.Helper()
	tmp := t.TempDir()
	root := filepath.Join(tmp, "project")
	lib := filepath.Join(tmp, "libs", "greet")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(lib, "src"), 0o750))

	require.NoError(t, os.WriteFile(filepath.Join(lib, domain.ManifestFileName), []byte(`[package]
name = "greet"
version = "1.2.0"

[lib]
location = "src"

[lib.properties]
link-flags = ["-lm"]
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(lib, "src", "Greet.lf"), []byte("reactor Greet {}"), 0o600))

	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ManifestFileName), []byte(`[package]
name = "hello"
version = "0.1.0"
`+apps+`
[dependencies]
greet = { version = "^1.0", path = "../libs/greet" }
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "Main.lf"), []byte("main reactor {}"), 0o600))

	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().Name().Return("Cpp").AnyTimes()
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	walker := lfs.NewWalker()
	hasher := lfs.NewHasher(walker)
	copier := lfs.NewCopier(walker)
	reader := manifest.NewReader()
	cache := cas.NewStore()
	tracer := telemetry.NewNoOpTracer()
	locks := lockmgr.NewManager(lockfile.NewStore(), reader, hasher, cache, copier, vcs.NewGit(), log)
	res := resolver.New(resolver.NewBuilder(fetch.New(copier), hasher, reader, cache), locks, cache, log, tracer)

	return &fixture{
		root:    root,
		backend: backend,
		logger:  log,
		app:     app.New(config.NewLoader(), reader, res, locks, batch.New(tracer, backend), log),
	}
}

const twoApps = `
[[app]]
name = "hello"
main = "src/Main.lf"
target = "Cpp"

[[app]]
name = "other"
main = "src/Main.lf"
target = "Cpp"
`

func targetNames(targets []*domain.BuildTarget) []string {
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, t.Name)
	}
	return names
}

func TestApp_Build(t *testing.T) {
	f := newFixture(t, twoApps)

	var mu sync.Mutex
	var staged []*domain.BuildTarget
	f.backend.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, target *domain.BuildTarget, opts domain.BuildOptions) error {
			assert.Equal(t, domain.ProfileDebug, opts.Profile)
			assert.True(t, opts.CompileTargetCode)
			mu.Lock()
			staged = append(staged, target)
			mu.Unlock()
			return nil
		}).Times(2)
	f.backend.EXPECT().Configure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.backend.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, targets []*domain.BuildTarget, _ domain.BuildOptions) error {
			assert.Equal(t, []string{"hello", "other"}, targetNames(targets))
			return nil
		})

	err := f.app.Build(context.Background(), app.BuildOptions{Dir: f.root})
	require.NoError(t, err)

	require.Len(t, staged, 2)
	hello := staged[0]
	if hello.Name != "hello" {
		hello = staged[1]
	}
	assert.Equal(t, filepath.Join(f.root, "src", "Main.lf"), hello.Main)
	assert.Equal(t, filepath.Join(f.root, "target", "hello"), hello.OutputRoot)
	assert.Equal(t, filepath.Join(f.root, "target", domain.IncludeDirName), hello.IncludeDir)
	assert.Equal(t, []string{"-lm"}, hello.Properties.LinkFlags)

	assert.FileExists(t, filepath.Join(f.root, domain.LockFileName))
	assert.FileExists(t, filepath.Join(f.root, "target", domain.IncludeDirName, "greet", "Greet.lf"))
}

func TestApp_Build_SelectedTargets(t *testing.T) {
	f := newFixture(t, twoApps)

	f.backend.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, target *domain.BuildTarget, opts domain.BuildOptions) error {
			assert.Equal(t, "other", target.Name)
			assert.Equal(t, domain.ProfileRelease, opts.Profile)
			assert.False(t, opts.CompileTargetCode)
			assert.True(t, opts.KeepGoing)
			return nil
		})

	err := f.app.Build(context.Background(), app.BuildOptions{
		Dir:         f.root,
		Targets:     []string{"other"},
		Release:     true,
		KeepGoing:   true,
		CodegenOnly: true,
	})
	require.NoError(t, err)
}

func TestApp_Build_TargetErrors(t *testing.T) {
	t.Run("unknown target", func(t *testing.T) {
		f := newFixture(t, twoApps)

		err := f.app.Build(context.Background(), app.BuildOptions{Dir: f.root, Targets: []string{"hello", "nope"}})
		require.ErrorIs(t, err, domain.ErrUnknownTarget)
		assert.NoFileExists(t, filepath.Join(f.root, domain.LockFileName), "nothing is resolved")
	})

	t.Run("no apps", func(t *testing.T) {
		f := newFixture(t, "")

		err := f.app.Build(context.Background(), app.BuildOptions{Dir: f.root})
		require.ErrorIs(t, err, domain.ErrNoTargets)
	})

	t.Run("missing manifest", func(t *testing.T) {
		f := newFixture(t, twoApps)

		err := f.app.Build(context.Background(), app.BuildOptions{Dir: t.TempDir()})
		require.ErrorIs(t, err, domain.ErrManifestMissing)
	})
}

func TestApp_Build_Failure(t *testing.T) {
	f := newFixture(t, twoApps)
	boom := errors.New("boom")

	f.backend.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.backend.EXPECT().Configure(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.backend.EXPECT().Compile(gomock.Any(), gomock.Any(), gomock.Any()).Return(boom)

	err := f.app.Build(context.Background(), app.BuildOptions{Dir: f.root})
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	require.ErrorIs(t, err, boom)
}

func TestApp_Build_ResolutionFailure(t *testing.T) {
	f := newFixture(t, twoApps)
	path := filepath.Join(f.root, domain.ManifestFileName)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte(strings.Replace(string(data), "^1.0", "^2.0", 1)), 0o600))

	err = f.app.Build(context.Background(), app.BuildOptions{Dir: f.root})
	require.ErrorIs(t, err, domain.ErrVersionMismatch)
}

func TestApp_Update(t *testing.T) {
	f := newFixture(t, "")

	require.NoError(t, f.app.Update(context.Background(), f.root))
	assert.FileExists(t, filepath.Join(f.root, domain.LockFileName))
	assert.DirExists(t, filepath.Join(f.root, "target", domain.IncludeDirName, "greet"))

	require.NoError(t, os.RemoveAll(filepath.Join(f.root, "target", domain.IncludeDirName)))
	require.NoError(t, f.app.Update(context.Background(), f.root))
	assert.DirExists(t, filepath.Join(f.root, "target", domain.IncludeDirName, "greet"))
}

func TestApp_Clean(t *testing.T) {
	f := newFixture(t, twoApps)

	var mu sync.Mutex
	var cleaned []string
	f.backend.EXPECT().Clean(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, target *domain.BuildTarget) error {
			mu.Lock()
			cleaned = append(cleaned, target.Name)
			mu.Unlock()
			return nil
		}).Times(2)

	require.NoError(t, f.app.Clean(context.Background(), f.root))
	assert.ElementsMatch(t, []string{"hello", "other"}, cleaned)
}

func TestApp_Cleanup(t *testing.T) {
	f := newFixture(t, "")
	require.NoError(t, f.app.Update(context.Background(), f.root))

	require.NoError(t, f.app.Cleanup(context.Background(), f.root))

	assert.NoFileExists(t, filepath.Join(f.root, domain.LockFileName))
	assert.DirExists(t, filepath.Join(f.root, "target", domain.IncludeDirName, "greet"), "not a git repository")

	require.NoError(t, f.app.Cleanup(context.Background(), f.root), "second run finds no lock")
}
