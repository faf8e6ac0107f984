package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, setupLogger("DEBUG").GetLevel())
	assert.Equal(t, zerolog.WarnLevel, setupLogger("warn").GetLevel())
	assert.Equal(t, zerolog.ErrorLevel, setupLogger("error").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, setupLogger("bogus").GetLevel())
}

func TestRenderIdentity(t *testing.T) {
	var buf bytes.Buffer
	renderIdentity(&buf, builtinPairs())
	out := buf.String()

	lines := map[string]string{}
	for _, line := range strings.Split(out, "\n") {
		for _, p := range builtinPairs() {
			if strings.Contains(line, p.Name) {
				lines[p.Name] = line
			}
		}
	}

	want := map[string]string{
		"null vs false":       "true",
		"null vs composite":   "false",
		"string vs number":    "true",
		"string vs composite": "false",
		"key ignored":         "true",
		"types differ":        "false",
		"composite vs empty":  "false",
	}
	for name, result := range want {
		line, ok := lines[name]
		require.True(t, ok, "missing row %q in\n%s", name, out)
		assert.Contains(t, line, result, name)
	}
	assert.Contains(t, out, `<a key="k1">`)
}

func TestRunScenario(t *testing.T) {
	cfg := benchConfig{components: 3, updates: 10, iters: 2}

	unbatched, err := runScenario(cfg, false, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, int64(20), unbatched.renders)
	assert.Equal(t, uint64(20), unbatched.flushes)

	batched, err := runScenario(cfg, true, zerolog.Nop())
	require.NoError(t, err)
	// repeated enqueues of the same component collapse into one render
	assert.Equal(t, int64(6), batched.renders)
	assert.Equal(t, uint64(2), batched.flushes)

	var buf bytes.Buffer
	renderBench(&buf, cfg, []benchResult{unbatched, batched})
	assert.Contains(t, buf.String(), "batched")
	assert.Contains(t, buf.String(), "Enqueue 10 updates over 3 components")
}
