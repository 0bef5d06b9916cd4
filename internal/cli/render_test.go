package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/wordsphere/pkg/cloud"
)

func TestWriteArtifactsNaming(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte(`{"radius":18,"words":[]}`),
	}

	tests := []struct {
		name    string
		formats []string
		input   string
		output  string
		want    []string
	}{
		{
			name:    "derived from input",
			formats: []string{"svg", "json"},
			input:   filepath.Join(dir, "a.json"),
			want:    []string{"a.svg", "a.layout.json"},
		},
		{
			name:    "single format exact output",
			formats: []string{"svg"},
			input:   filepath.Join(dir, "b.json"),
			output:  filepath.Join(dir, "custom-name.svg"),
			want:    []string{"custom-name.svg"},
		},
		{
			name:    "multiple formats use output as base",
			formats: []string{"svg", "json"},
			input:   filepath.Join(dir, "c.json"),
			output:  filepath.Join(dir, "base.svg"),
			want:    []string{"base.svg", "base.layout.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := writeArtifacts(artifactWriteParams{
				artifacts: artifacts,
				formats:   tt.formats,
				input:     tt.input,
				output:    tt.output,
			})
			if err != nil {
				t.Fatalf("writeArtifacts: %v", err)
			}
			for _, name := range tt.want {
				if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
					t.Errorf("expected %s: %v", name, err)
				}
			}
		})
	}
}

func TestWriteArtifactsSkipsMissingFormats(t *testing.T) {
	dir := t.TempDir()
	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		formats:   []string{"svg", "png"},
		input:     filepath.Join(dir, "words.json"),
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "words.png")); !os.IsNotExist(err) {
		t.Error("png written without artifact data")
	}
}

func TestFormatWeight(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.0000"},
		{0.12345, "0.1235"},
		{0, "0.0000"},
		{-0.5, "-0.5000"},
	}
	for _, tt := range tests {
		if got := formatWeight(tt.in); got != tt.want {
			t.Errorf("formatWeight(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWordTable(t *testing.T) {
	out := wordTable([]cloud.WordItem{
		{Word: "sphere", Weight: 0.9},
		{Word: "camera", Weight: 0.25},
	}, -1)

	for _, want := range []string{"Keyword", "Weight", "sphere", "0.9000", "camera", "0.2500"} {
		if !strings.Contains(out, want) {
			t.Errorf("wordTable output missing %q:\n%s", want, out)
		}
	}
}

func TestLayoutOptionsRadiusOverride(t *testing.T) {
	c := New(io.Discard, LogInfo)

	opts := c.layoutOptions(0)
	if opts.Layout.Radius != cloud.DefaultRadius {
		t.Errorf("Radius = %v, want default %v", opts.Layout.Radius, cloud.DefaultRadius)
	}

	opts = c.layoutOptions(7)
	if opts.Layout.Radius != 7 {
		t.Errorf("Radius = %v, want 7", opts.Layout.Radius)
	}
	if c.Config.Layout.Radius != cloud.DefaultRadius {
		t.Error("layoutOptions modified the config")
	}
}
