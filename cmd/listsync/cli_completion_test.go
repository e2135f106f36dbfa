package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictScenarioFiles(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"a.yaml", "b.yml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("source: []\n"), 0o600))
	}

	predictions := predictScenarioFiles.Predict(dir + string(filepath.Separator))

	assert.Contains(t, predictions, filepath.Join(dir, "a.yaml"))
	assert.Contains(t, predictions, filepath.Join(dir, "b.yml"))
	assert.NotContains(t, predictions, filepath.Join(dir, "notes.txt"))
}
