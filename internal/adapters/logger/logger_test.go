package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lingo/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	lg.SetOutput(buf)

	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Info("some message")

	goldie.New(t).Assert(t, "logger_info", buf.Bytes())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Warn("some warning")

	goldie.New(t).Assert(t, "logger_warn", buf.Bytes())
}

func TestLogger_Error_Chain(t *testing.T) {
	lg, buf := newTestLogger(t)

	err := zerr.With(zerr.Wrap(zerr.New("repository not found"), "git operation failed"), "package", "foo")
	lg.Error(err)

	goldie.New(t).Assert(t, "logger_error_chain", buf.Bytes())
}

func TestLogger_Error_Joined(t *testing.T) {
	lg, buf := newTestLogger(t)

	sentinel := zerr.New("failed to fetch dependency")
	err := errors.Join(sentinel, errors.New("connection refused\nretry later"))
	lg.Error(err)

	goldie.New(t).Assert(t, "logger_error_joined", buf.Bytes())
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)

	lg.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_JSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)

	lg.Error(zerr.New("boom"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "operation failed", record["msg"])
	assert.Contains(t, record["error"], "boom")
}

func TestLogger_SetJSON_KeepsOutput(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.SetJSON(false)

	lg.Info("back to pretty")

	assert.Equal(t, "back to pretty\n", buf.String())
}
