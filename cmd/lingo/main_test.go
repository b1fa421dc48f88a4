package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/lingo/internal/app"
	"go.trai.ch/lingo/internal/core/domain"
	"go.trai.ch/lingo/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newComponents(ctrl *gomock.Controller) (*app.Components, *mocks.MockSettingsLoader, *mocks.MockLogger) {
	settings := mocks.NewMockSettingsLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)
	application := app.New(settings, mocks.NewMockManifestReader(ctrl), nil, nil, nil, log)
	return &app.Components{App: application, Logger: log}, settings, log
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	components, _, _ := newComponents(ctrl)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that command errors are logged and yield exit code 1.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	components, settings, log := newComponents(ctrl)

	settings.EXPECT().Load(gomock.Any()).Return(domain.Settings{}, domain.ErrConfigParse)
	log.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrConfigParse)
	})

	cleaned := false
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() { cleaned = true }, nil
	}

	exitCode := run(context.Background(), []string{"build", "-C", t.TempDir()}, new(bytes.Buffer), provider)

	assert.Equal(t, 1, exitCode)
	assert.True(t, cleaned)
}

// TestRun_Options verifies that options are applied to the app before execution.
func TestRun_Options(t *testing.T) {
	ctrl := gomock.NewController(t)
	components, _, _ := newComponents(ctrl)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	var seen *app.App
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), provider, func(a *app.App) {
		seen = a
	})

	assert.Equal(t, 0, exitCode)
	assert.Same(t, components.App, seen)
}
