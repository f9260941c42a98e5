package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/rigidbox/internal/core"
	"github.com/vovakirdan/rigidbox/internal/registry"
)

func headless(t *testing.T, id string, ticks, every uint64) (string, core.RunSummary) {
	t.Helper()
	scenario, err := registry.Create(id)
	require.NoError(t, err)
	cfg := core.DefaultConfig()
	cfg.Seed = 3
	scenario.Reset(cfg)

	var out bytes.Buffer
	summary := simulate(scenario, ticks, 1.0/60.0, every, &out)
	return out.String(), summary
}

func TestSimulateIsDeterministic(t *testing.T) {
	a, sumA := headless(t, "rain", 400, 0)
	b, sumB := headless(t, "rain", 400, 0)

	assert.Equal(t, a, b)
	assert.Equal(t, sumA, sumB)
	assert.Equal(t, uint64(400), sumA.Ticks)
	assert.Contains(t, a, "hash=")
}

func TestSimulatePrintsEveryReport(t *testing.T) {
	out, _ := headless(t, "drop", 160, 40)

	// Reports at 40, 80 and 120 plus the final table.
	assert.Equal(t, 4, strings.Count(out, "tick "))
	assert.Contains(t, out, "ground")
	assert.Contains(t, out, "static")
}

func TestPortOf(t *testing.T) {
	assert.Equal(t, "23234", portOf(":23234"))
	assert.Equal(t, "2222", portOf("0.0.0.0:2222"))
	assert.Equal(t, "nope", portOf("nope"))
}
