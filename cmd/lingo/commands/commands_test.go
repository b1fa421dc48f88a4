package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lingo/cmd/lingo/commands"
	"go.trai.ch/lingo/internal/app"
	"go.trai.ch/lingo/internal/build"
)

type mockApp struct {
	buildFunc   func(ctx context.Context, opts app.BuildOptions) error
	updateFunc  func(ctx context.Context, dir string) error
	cleanFunc   func(ctx context.Context, dir string) error
	cleanupFunc func(ctx context.Context, dir string) error
	json        bool
}

func (m *mockApp) Build(ctx context.Context, opts app.BuildOptions) error {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Update(ctx context.Context, dir string) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, dir)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, dir string) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, dir)
	}
	return nil
}

func (m *mockApp) Cleanup(ctx context.Context, dir string) error {
	if m.cleanupFunc != nil {
		return m.cleanupFunc(ctx, dir)
	}
	return nil
}

func (m *mockApp) SetJSON(enable bool) {
	m.json = enable
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.BuildOptions
		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.BuildOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"-C", "proj", "build", "hello", "world", "--release", "-k", "--codegen-only"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.BuildOptions{
			Dir:         "proj",
			Targets:     []string{"hello", "world"},
			Release:     true,
			KeepGoing:   true,
			CodegenOnly: true,
		}, captured)
	})

	t.Run("defaults", func(t *testing.T) {
		var captured app.BuildOptions
		mock := &mockApp{
			buildFunc: func(_ context.Context, opts app.BuildOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, ".", captured.Dir)
		assert.Empty(t, captured.Targets)
		assert.False(t, captured.Release)
		assert.False(t, mock.json)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(_ context.Context, _ app.BuildOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"build"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_JSON(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)
	cli.SetArgs([]string{"--json", "update"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, mock.json)
}

func TestCommands_ProjectCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "update", args: []string{"update", "--dir", "p"}},
		{name: "clean", args: []string{"clean", "-C", "p"}},
		{name: "cleanup", args: []string{"--dir=p", "cleanup"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := ""
			record := func(name string) func(context.Context, string) error {
				return func(_ context.Context, dir string) error {
					assert.Equal(t, "p", dir)
					called = name
					return nil
				}
			}
			mock := &mockApp{
				updateFunc:  record("update"),
				cleanFunc:   record("clean"),
				cleanupFunc: record("cleanup"),
			}

			cli := commands.New(mock)
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.name, called)
		})
	}
}

func TestCommands_RejectsArguments(t *testing.T) {
	for _, name := range []string{"update", "clean", "cleanup"} {
		t.Run(name, func(t *testing.T) {
			cli := commands.New(&mockApp{})
			cli.SetArgs([]string{name, "extra"})
			cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

			require.Error(t, cli.Execute(context.Background()))
		})
	}
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{}
	cli := commands.New(mock)

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "lingo version "+build.Version)
	assert.Contains(t, buf.String(), build.Commit)
}

func TestCommands_VersionFlag(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "lingo version "+build.Version)
}
