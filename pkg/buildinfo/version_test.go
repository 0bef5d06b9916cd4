package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplateIncludesBuildInfo(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	defer func() { Version = old }()

	for _, s := range []string{Template(), String()} {
		if !strings.Contains(s, "v9.9.9") {
			t.Errorf("missing version in %q", s)
		}
	}
	if got := UserAgent(); got != "wordsphere/v9.9.9" {
		t.Errorf("UserAgent() = %q", got)
	}
}
