// Package cmake builds C++ targets with CMake.
package cmake

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports"
	"go.trai.ch/zerr"
)

// Name is the manifest target served by this backend.
const Name = "Cpp"

const (
	cmakeListsName = "CMakeLists.txt"
	defaultTool    = "cmake"
)

// Backend implements ports.Backend by driving the cmake executable.
type Backend struct {
	runner ports.CommandRunner
}

// New creates a CMake backend.
func New(runner ports.CommandRunner) *Backend {
	return &Backend{runner: runner}
}

// Name implements ports.Backend.
func (b *Backend) Name() string {
	return Name
}

// Stage copies the main source and its CMakeLists.txt into the output root
// and hooks the aggregated library properties into the build.
func (b *Backend) Stage(ctx context.Context, target *domain.BuildTarget, _ domain.BuildOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(buildDir(target), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create build directory"), "path", buildDir(target))
	}

	mainDst := filepath.Join(target.OutputRoot, filepath.Base(target.Main))
	if err := copyFile(target.Main, mainDst); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stage main source"), "path", target.Main)
	}

	listsDst := filepath.Join(target.OutputRoot, cmakeListsName)
	err := copyFile(filepath.Join(filepath.Dir(target.Main), cmakeListsName), listsDst)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := os.WriteFile(listsDst, []byte(defaultCMakeLists(target)), domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write CMakeLists.txt"), "path", listsDst)
		}
	case err != nil:
		return zerr.With(zerr.Wrap(err, "failed to stage CMakeLists.txt"), "path", listsDst)
	}

	aggregated := filepath.Join(target.OutputRoot, domain.AggregatedCMakeFileName)
	if err := os.WriteFile(aggregated, []byte(target.Properties.CMakeScript()), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write aggregated cmake include"), "path", aggregated)
	}

	return appendHooks(listsDst, target.IncludeDir, aggregated)
}

// Configure runs the cmake configure step for a staged target.
func (b *Backend) Configure(ctx context.Context, target *domain.BuildTarget, opts domain.BuildOptions) error {
	buildType := "DEBUG"
	if opts.Profile == domain.ProfileRelease {
		buildType = "RELEASE"
	}

	return b.runner.Run(ctx, domain.Command{
		Name: tool(opts),
		Args: []string{
			"-DCMAKE_BUILD_TYPE=" + buildType,
			"-DCMAKE_INSTALL_BINDIR=bin",
			"-DREACTOR_CPP_VALIDATE=ON",
			"-DREACTOR_CPP_TRACE=OFF",
			"-DREACTOR_CPP_LOG_LEVEL=3",
			"-S", target.OutputRoot,
			"-B", buildDir(target),
		},
		Dir: buildDir(target),
		Env: colorEnv(),
	})
}

// Compile runs cmake --build for every configured target. Every target is
// attempted; failures are joined.
func (b *Backend) Compile(ctx context.Context, targets []*domain.BuildTarget, opts domain.BuildOptions) error {
	var errs []error
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := b.runner.Run(ctx, domain.Command{
			Name: tool(opts),
			Args: []string{"--build", buildDir(target)},
			Dir:  buildDir(target),
			Env:  colorEnv(),
		})
		if err != nil {
			errs = append(errs, zerr.With(err, "target", target.Name))
		}
	}
	return errors.Join(errs...)
}

// Clean removes the output root of a target.
func (b *Backend) Clean(_ context.Context, target *domain.BuildTarget) error {
	if err := os.RemoveAll(target.OutputRoot); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove build output"), "path", target.OutputRoot)
	}
	return nil
}

func buildDir(target *domain.BuildTarget) string {
	return filepath.Join(target.OutputRoot, domain.BuildDirName)
}

func tool(opts domain.BuildOptions) string {
	if opts.Tools.CMake != "" {
		return opts.Tools.CMake
	}
	return defaultTool
}

func colorEnv() map[string]string {
	return map[string]string{"CMAKE_COLOR_MAKEFILE": "YES"}
}

func defaultCMakeLists(target *domain.BuildTarget) string {
	return fmt.Sprintf(`cmake_minimum_required(VERSION 3.16)
project(%[1]s LANGUAGES CXX)

add_executable(%[1]s %[2]s)
install(TARGETS %[1]s)
`, target.Name, filepath.Base(target.Main))
}

func appendHooks(listsFile, includeDir, aggregated string) error {
	f, err := os.OpenFile(listsFile, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open CMakeLists.txt"), "path", listsFile)
	}
	_, err = fmt.Fprintf(f, "\ninclude_directories(%q)\ninclude(%q)\n",
		filepath.ToSlash(includeDir), filepath.ToSlash(aggregated))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to update CMakeLists.txt"), "path", listsFile)
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, domain.FilePerm)
}
