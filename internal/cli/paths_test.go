package cli

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/matzehuels/bpmnlayout/pkg/config"
)

func TestCacheDirXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME is only honoured on Linux")
	}
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir(config.Cache{})
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheDirConfigured(t *testing.T) {
	dir, err := cacheDir(config.Cache{Dir: "/srv/cache"})
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/srv/cache" {
		t.Errorf("cacheDir() = %q, want /srv/cache", dir)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, format, want string
	}{
		{"order.bpmn", "bpmn", "order.layout.bpmn"},
		{"dir/order.bpmn", "svg", "dir/order.layout.svg"},
		{"order.xml", "graph", "order.layout.svg"},
		{"order", "dot", "order.layout.gv"},
		{"-", "json", "stdin.layout.json"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.input, tt.format); got != tt.want {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.input, tt.format, got, tt.want)
		}
	}
}
