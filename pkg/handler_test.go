package hww

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewSlogLogger(&out, &errOut)

	l.Info("Reading events", "reader")
	assert.Regexp(t, `^\[\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2}\] \[reader\] Reading events\n$`, out.String())

	l.Error("cannot open file")
	var record map[string]any
	require.NoError(t, json.Unmarshal(errOut.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "cannot open file", record["msg"])
}

func TestSetLoggerNil(t *testing.T) {
	defer SetLogger(nil)

	var out, errOut bytes.Buffer
	SetLogger(NewSlogLogger(&out, &errOut))
	logger.Info("hello", "test")
	assert.NotEmpty(t, out.String())

	SetLogger(nil)
	assert.NotPanics(t, func() { logger.Info("dropped", "test") })
}

func TestHandlerPutsModuleFirst(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(NewHandler(&out, nil))

	log.Info("Stored cutflow", "run", 14001, moduleKey, "database")
	assert.Regexp(t, `\] \[database\] \[14001\] Stored cutflow\n$`, out.String())

	out.Reset()
	log.With(moduleKey, "writer", "file", "out.h5").Info("Closing file", "rows", 8)
	assert.Regexp(t, `\] \[writer\] \[out\.h5\] \[8\] Closing file\n$`, out.String())

	out.Reset()
	log.WithGroup("ignored").Info("No attributes")
	assert.Regexp(t, `^\[[0-9/: ]+\] No attributes\n$`, out.String())
}

func TestHandlerLevel(t *testing.T) {
	var out bytes.Buffer
	log := slog.New(NewHandler(&out, &slog.HandlerOptions{Level: slog.LevelWarn}))

	log.Info("dropped")
	log.Debug("dropped")
	assert.Empty(t, out.String())

	log.Warn("kept")
	assert.Contains(t, out.String(), "kept")
}
