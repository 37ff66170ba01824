package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	if Short() != Version {
		t.Errorf("Short() = %q, want %q", Short(), Version)
	}
	info := Info()
	for _, want := range []string{"Version:", "Commit SHA:", "Build Time:", "Go Version:"} {
		if !strings.Contains(info, want) {
			t.Errorf("Info() missing %q:\n%s", want, info)
		}
	}
}
