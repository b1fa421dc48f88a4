package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

// BuildProfile selects optimization settings.
type BuildProfile string

const (
	// ProfileDebug builds without optimizations.
	ProfileDebug BuildProfile = "debug"
	// ProfileRelease builds with optimizations.
	ProfileRelease BuildProfile = "release"
)

// BuildOptions configures a build command.
type BuildOptions struct {
	Profile   BuildProfile
	KeepGoing bool
	// CompileTargetCode is false for codegen-only builds.
	CompileTargetCode bool
	// Parallelism bounds concurrent map steps; values below 1 mean NumCPU.
	Parallelism int
	Tools       ToolSettings
}

// CommandKind is the operation a backend is asked to run.
type CommandKind string

const (
	// CommandBuild builds targets.
	CommandBuild CommandKind = "build"
	// CommandClean removes the artifacts of targets.
	CommandClean CommandKind = "clean"
)

// CommandSpec is dispatched to backends through the batch harness.
type CommandSpec struct {
	Kind    CommandKind
	Options BuildOptions
}

// BuildTarget is one app of the project, ready to hand to a backend.
type BuildTarget struct {
	Name string
	// Main is the absolute path of the main source file.
	Main string
	// Backend is the manifest's target language, e.g. "Cpp".
	Backend    string
	OutputRoot string
	IncludeDir string
	Properties TargetProperties
}

// TargetResult is the outcome of one target in a batch.
type TargetResult struct {
	Target string
	Err    error
	// Skipped is set when the batch stopped before the target finished.
	Skipped bool
}

// BatchOutcome aggregates a batch run, one result per target in input order.
type BatchOutcome struct {
	Results []TargetResult
}

// Failed returns the names of targets that failed.
func (o BatchOutcome) Failed() []string {
	var names []string
	for _, r := range o.Results {
		if r.Err != nil {
			names = append(names, r.Target)
		}
	}
	return names
}

// Skipped returns the names of targets that never finished.
func (o BatchOutcome) Skipped() []string {
	var names []string
	for _, r := range o.Results {
		if r.Skipped {
			names = append(names, r.Target)
		}
	}
	return names
}

// Err returns nil when every target succeeded, otherwise ErrBuildFailed joined with each failure.
func (o BatchOutcome) Err() error {
	var errs []error
	for _, r := range o.Results {
		if r.Err != nil {
			errs = append(errs, zerr.With(r.Err, "target", r.Target))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrBuildFailed}, errs...)...)
}
