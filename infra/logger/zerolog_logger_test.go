package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Infow("info", map[string]any{"k": 2})
	l.Warnf("warn")
	l.Errorf("error")
}

func TestNewWithOptionsWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithOptions("engine", Options{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)
	l.Infow("simulation end", map[string]any{"score": 8})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "engine", line["component"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "simulation end", line["message"])
	assert.EqualValues(t, 8, line["score"])
}

func TestNewWithOptionsFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithOptions("engine", Options{Level: "warn", Format: "json", Output: &buf})
	require.NoError(t, err)
	l.Debugw("hidden", nil)
	l.Infof("hidden")
	l.Warnf("shown")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWithOptionsUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithOptions("engine", Options{Level: "loud", Output: &buf})
	assert.Error(t, err)
	require.NotNil(t, l)
	l.Infof("still works")
	assert.Contains(t, buf.String(), "still works")
}

func TestConfigureSetsDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Configure(Options{Level: "error", Format: "json", Output: &buf}))
	t.Cleanup(func() { _ = Configure(Options{}) })

	l := New("cli")
	l.Warnf("hidden")
	l.Errorf("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"component":"cli"`)

	assert.Error(t, Configure(Options{Level: "loud"}))
	New("cli").Errorf("after rejected configure")
	assert.Contains(t, buf.String(), "after rejected configure")
}
