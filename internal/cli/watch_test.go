package cli

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/fpgaflow/pkg/project"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
)

func TestWatchTargets(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "board")
	cfg := project.Default()
	cfg.Top = "blinky"
	cfg.Libraries = []string{"../lib/uart.v", "pll.v"}

	dirs, files := watchTargets(dir, cfg, "")

	assert.Equal(t, []string{dir, filepath.Join(dir, "..", "lib")}, dirs)
	assert.True(t, files[filepath.Join(dir, "blinky.v")])
	assert.True(t, files[filepath.Join(dir, "..", "lib", "uart.v")])
	assert.True(t, files[filepath.Join(dir, "logicbone-rev0.lpf")])
	assert.True(t, files[filepath.Join(dir, "fpgaflow.yaml")])

	t.Run("Build outputs never trigger a rebuild", func(t *testing.T) {
		set := project.NewArtifactSet(cfg)
		for _, out := range []string{set.Netlist(), set.RoutedConfig(), set.TestBitstream(), set.Bitstream()} {
			assert.False(t, files[filepath.Join(dir, out)], out)
		}
	})

	t.Run("Explicit config path replaces the probed names", func(t *testing.T) {
		cfgPath := filepath.Join(dir, "custom.yaml")
		_, files := watchTargets(dir, cfg, cfgPath)
		assert.True(t, files[cfgPath])
		assert.False(t, files[filepath.Join(dir, "fpgaflow.yaml")])
	})
}

func TestIsRelevant(t *testing.T) {
	files := map[string]bool{"/p/top.v": true}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"Write to source", fsnotify.Event{Name: "/p/top.v", Op: fsnotify.Write}, true},
		{"Editor rename", fsnotify.Event{Name: "/p/top.v", Op: fsnotify.Rename}, true},
		{"Chmod only", fsnotify.Event{Name: "/p/top.v", Op: fsnotify.Chmod}, false},
		{"Netlist written by the build", fsnotify.Event{Name: "/p/top.json", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRelevant(tt.event, files))
		})
	}
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	req, trigger := newDebouncer(20 * time.Millisecond)

	for range 5 {
		trigger()
	}

	select {
	case <-req:
	case <-time.After(time.Second):
		t.Fatal("expected a rebuild request")
	}
	select {
	case <-req:
		t.Fatal("burst should produce a single request")
	case <-time.After(100 * time.Millisecond):
	}
}
