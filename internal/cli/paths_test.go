package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/matzehuels/wordsphere/pkg/config"
)

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	c := New(io.Discard, LogInfo)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestCacheDirFromConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Cache.Dir = "/srv/wordsphere-cache"

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != "/srv/wordsphere-cache" {
		t.Errorf("cacheDir() = %q, want the configured dir", dir)
	}
}

func TestResolveConfigPath(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	c := New(io.Discard, LogInfo)
	path, err := c.resolveConfigPath()
	if err != nil {
		t.Fatalf("resolveConfigPath() error: %v", err)
	}
	if want := filepath.Join(configHome, config.AppName, "config.toml"); path != want {
		t.Errorf("resolveConfigPath() = %q, want %q", path, want)
	}

	c.configPath = "custom.toml"
	if path, _ := c.resolveConfigPath(); path != "custom.toml" {
		t.Errorf("resolveConfigPath() with --config = %q, want custom.toml", path)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derived from input", "", "data/words.json", "data/words"},
		{"stdin", "", "-", appName},
		{"url only", "", "", appName},
		{"output with format extension", "out/cloud.svg", "words.json", "out/cloud"},
		{"output without extension", "out/cloud", "words.json", "out/cloud"},
		{"output with foreign extension", "out/cloud.txt", "words.json", "out/cloud.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestTrimLayoutSuffix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"cloud.layout.json", "cloud.json"},
		{"dir/cloud.layout.json", "dir/cloud.json"},
		{"snapshot.json", "snapshot.json"},
	}
	for _, tt := range tests {
		if got := trimLayoutSuffix(tt.in); got != tt.want {
			t.Errorf("trimLayoutSuffix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"empty defaults to svg", "", []string{"svg"}, false},
		{"single format", "png", []string{"png"}, false},
		{"multiple formats", "svg,pdf,json", []string{"svg", "pdf", "json"}, false},
		{"duplicates and blanks", "svg, ,SVG,json", []string{"svg", "json"}, false},
		{"invalid format", "svg,gif", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFormats(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFormats(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}
