package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// waitForUpdate 等待满足条件的重新加载结果
func waitForUpdate(t *testing.T, w *Watcher, match func(*ShowcaseConfig) bool) *ShowcaseConfig {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-w.Updates():
			if match(cfg) {
				return cfg
			}
		case <-deadline:
			t.Fatal("timed out waiting for config reload")
			return nil
		}
	}
}

func TestWatcher_ReloadsValidChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "showcase.yaml")
	require.NoError(t, os.WriteFile(path, []byte("slider:\n  initialPosition: 10\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	doc := "stageCurve:\n  entranceThreshold: 0.25\n  exitThreshold: 0.75\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg := waitForUpdate(t, w, func(c *ShowcaseConfig) bool { return c.StageCurve.EntranceThreshold == 0.25 })
	assert.Equal(t, 0.25, cfg.StageCurve.EntranceThreshold)
	assert.Equal(t, 0.75, cfg.StageCurve.ExitThreshold)

	require.NoError(t, w.Stop())
}

// TestWatcher_IgnoresInvalidChanges 非法修改不会发布
func TestWatcher_IgnoresInvalidChanges(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "showcase.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(path, []byte("slider:\n  initialPosition: 500\n"), 0o644))
	// 其他文件的修改被忽略
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))

	select {
	case cfg := <-w.Updates():
		t.Fatalf("unexpected reload: %+v", cfg)
	case <-time.After(300 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("slider:\n  initialPosition: 70\n"), 0o644))
	cfg := waitForUpdate(t, w, func(c *ShowcaseConfig) bool { return c.Slider.InitialPosition == 70 })
	assert.Equal(t, 70.0, cfg.Slider.InitialPosition)

	require.NoError(t, w.Stop())
}

// TestWatcher_CoalescesBurst 连续写入只在安静之后重新加载一次
func TestWatcher_CoalescesBurst(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "showcase.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.delay = 300 * time.Millisecond
	require.NoError(t, w.Start(context.Background()))

	for _, pos := range []string{"10", "20", "30", "40"} {
		doc := "slider:\n  initialPosition: " + pos + "\n"
		require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case cfg := <-w.Updates():
		assert.Equal(t, 40.0, cfg.Slider.InitialPosition, "first reload must see the final write")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}

	select {
	case cfg := <-w.Updates():
		t.Fatalf("unexpected second reload: %+v", cfg)
	case <-time.After(2 * w.delay):
	}

	require.NoError(t, w.Stop())
}

func TestWatcher_StopOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "showcase.yaml")
	w, err := NewWatcher(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()
	require.NoError(t, w.Stop())
}
