package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet_ReportsBuildVariables(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })
	Version, Commit = "1.4.0", "abc1234"

	info := Get()
	if info.Version != "1.4.0" || info.GitCommit != "abc1234" {
		t.Fatalf("got %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}

	s := info.String()
	for _, want := range []string{"promptcompile version 1.4.0", "commit: abc1234", runtime.GOOS + "/" + runtime.GOARCH} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
