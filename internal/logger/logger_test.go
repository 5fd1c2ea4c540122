package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"
)

func capture(t *testing.T, verboseOn bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseOn)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)

	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestLevels_WhenVerbose(t *testing.T) {
	tests := []struct {
		name     string
		log      func()
		expected string
	}{
		{"debug", func() { Debug("route %s", "ok") }, "[DEBUG] route ok\n"},
		{"info", func() { Info("info message %d", 42) }, "[INFO] info message 42\n"},
		{"warn", func() { Warn("warning message") }, "[WARN] warning message\n"},
		{"error", func() { Error("boom") }, "[ERROR] boom\n"},
		{"section", func() { Section("Routing") }, "\n=== Routing ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			if buf.String() != tt.expected {
				t.Errorf("unexpected output: %q", buf.String())
			}
		})
	}
}

func TestQuietLevels_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Warn("hidden")
	Section("hidden")

	if buf.Len() > 0 {
		t.Errorf("expected no output when verbose is disabled, got %q", buf.String())
	}
}

func TestError_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Error("history unavailable: %v", "disk full")

	if buf.String() != "[ERROR] history unavailable: disk full\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestNamed_PrefixesComponent(t *testing.T) {
	buf := capture(t, true)
	log := Named("session")

	log.Debug("seq %d dropped", 3)
	log.Info("ready")
	log.Warn("slow")

	want := "[DEBUG] session: seq 3 dropped\n[INFO] session: ready\n[WARN] session: slow\n"
	if buf.String() != want {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestNamed_ErrorIgnoresVerbosity(t *testing.T) {
	buf := capture(t, false)

	Named("osrm").Error("status %d", 502)
	Named("osrm").Debug("hidden")

	if buf.String() != "[ERROR] osrm: status 502\n" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestConcurrentAccess(t *testing.T) {
	buf := capture(t, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Debug("concurrent %d", i)
			IsVerbose()
		}()
	}
	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 10 {
		t.Errorf("expected 10 lines, got %d", got)
	}
}
