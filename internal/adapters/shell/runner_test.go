package shell_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lingo/internal/adapters/shell"
	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestRunner_Run_MultiLineOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		mockLogger.EXPECT().Info("line1"),
		mockLogger.EXPECT().Info("line2"),
	)

	runner := shell.NewRunner(mockLogger)
	err := runner.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo line1; echo line2"},
		Dir:  t.TempDir(),
	})
	require.NoError(t, err)
}

func TestRunner_Run_FragmentedOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Info("part1part2").Times(1)

	runner := shell.NewRunner(mockLogger)
	err := runner.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "printf part1; sleep 0.1; echo part2"},
	})
	require.NoError(t, err)
}

func TestRunner_Run_UnterminatedLineIsFlushed(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Info("no newline").Times(1)

	runner := shell.NewRunner(mockLogger)
	err := runner.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "printf 'no newline'"},
	})
	require.NoError(t, err)
}

func TestRunner_Run_Environment(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Info("YES").Times(1)

	runner := shell.NewRunner(mockLogger)
	err := runner.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo $CMAKE_COLOR_MAKEFILE"},
		Env:  map[string]string{"CMAKE_COLOR_MAKEFILE": "YES"},
	})
	require.NoError(t, err)
}

func TestRunner_Run_WorkingDirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	dir := t.TempDir()
	mockLogger.EXPECT().Info(gomock.Any()).Times(1)

	runner := shell.NewRunner(mockLogger)
	err := runner.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "test \"$(pwd -P)\" = \"$(cd " + dir + " && pwd -P)\" && echo ok"},
		Dir:  dir,
	})
	require.NoError(t, err)
}

func TestRunner_Run_CommandFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Warn("boom").Times(1)

	runner := shell.NewRunner(mockLogger)
	err := runner.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo boom >&2; exit 3"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCommandFailed))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	meta := zErr.Metadata()
	assert.Equal(t, 3, meta["exit_code"])
	assert.Equal(t, "boom", meta["stderr"])
	assert.Equal(t, "sh -c echo boom >&2; exit 3", meta["command"])
}

func TestRunner_Run_InvalidCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	runner := shell.NewRunner(mockLogger)
	err := runner.Run(context.Background(), domain.Command{Name: "lingo-no-such-binary"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCommandFailed))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, -1, zErr.Metadata()["exit_code"])
}

func TestRunner_Run_EmptyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	runner := shell.NewRunner(mocks.NewMockLogger(ctrl))

	err := runner.Run(context.Background(), domain.Command{})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCommandFailed.Error())
}

func TestMergeEnvironment(t *testing.T) {
	env := shell.MergeEnvironment(
		[]string{"PATH=/bin", "HOME=/root", "broken"},
		map[string]string{"HOME": "/tmp", "CC": "clang"},
	)
	assert.Equal(t, []string{"CC=clang", "HOME=/tmp", "PATH=/bin"}, env)
}
