package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setFlag(t *testing.T, p *string, v string) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

func TestRunPlayReturnsErrors(t *testing.T) {
	dir := t.TempDir()
	badConfig := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badConfig, []byte("embark:\n  width: .inf\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	tests := []struct {
		name     string
		config   string
		logLevel string
		want     string
	}{
		{"invalid config", badConfig, "info", "embark: dimensions"},
		{"invalid log level", "", "loud", "--log-level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setFlag(t, &flagConfig, tc.config)
			setFlag(t, &flagLogLevel, tc.logLevel)
			setFlag(t, &flagLogFile, filepath.Join(dir, "outpost.log"))
			setFlag(t, &flagDBPath, filepath.Join(dir, "journal.db"))

			err := runPlay(playCmd, nil)
			if err == nil {
				t.Fatal("runPlay() should fail")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("runPlay() error = %q, expected it to mention %q", err, tc.want)
			}
		})
	}
}
