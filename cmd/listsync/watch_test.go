package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	otherPath := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: []\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := make(chan error, 1)

	go func() {
		done <- watchFile(ctx, path, 10*time.Millisecond, func() { calls.Add(1) }, zerolog.Nop())
	}()

	//give the watcher time to start.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(otherPath, []byte("source: []\n"), 0o600))
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, calls.Load())

	//several writes in a row result in a single call.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("source: [1]\n"), 0o600))
	}

	assert.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		assert.FailNow(t, "watchFile should have returned")
	}
}

func TestWatchFileCancellationDuringDebounce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: []\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changeSeen atomic.Bool
	logger := zerolog.New(io.Discard).Hook(zerolog.HookFunc(func(e *zerolog.Event, level zerolog.Level, msg string) {
		if msg == "scenario file changed" {
			changeSeen.Store(true)
		}
	}))

	const debounceDuration = 200 * time.Millisecond

	var calls atomic.Int32
	done := make(chan error, 1)

	go func() {
		done <- watchFile(ctx, path, debounceDuration, func() { calls.Add(1) }, logger)
	}()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("source: [1]\n"), 0o600))

	require.Eventually(t, changeSeen.Load, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		assert.FailNow(t, "watchFile should have returned")
	}

	time.Sleep(2 * debounceDuration)
	assert.Zero(t, calls.Load())
}
