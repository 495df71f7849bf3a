package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func withBuildInfo(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestResolvedPrefersLdflags(t *testing.T) {
	Version, Commit, Date = "v1.2.3", "abc123", "2025-01-01"
	defer func() { Version, Commit, Date = devVersion, "none", "unknown" }()
	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "v9.9.9"}})

	v, c, d := Resolved()
	if v != "v1.2.3" || c != "abc123" || d != "2025-01-01" {
		t.Errorf("Resolved() = %q, %q, %q", v, c, d)
	}
}

func TestResolvedFallsBackToBuildInfo(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeef"},
			{Key: "vcs.time", Value: "2025-06-01T10:00:00Z"},
		},
	})

	v, c, d := Resolved()
	if v != "v0.4.0" || c != "deadbeef" || d != "2025-06-01T10:00:00Z" {
		t.Errorf("Resolved() = %q, %q, %q", v, c, d)
	}
}

func TestResolvedDevelBuild(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

	if v, _, _ := Resolved(); v != "dev" {
		t.Errorf("version = %q, want dev", v)
	}
}

func TestTemplate(t *testing.T) {
	withBuildInfo(t, nil)

	tmpl := Template()
	for _, want := range []string{"{{.Name}} version dev", "commit: none", "go: go"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() missing %q:\n%s", want, tmpl)
		}
	}
}
