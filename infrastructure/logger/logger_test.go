package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantOK  bool
		wantStr string
	}{
		{"trace", LevelTrace, true, "TRC"},
		{"DBG", LevelDebug, true, "DBG"},
		{"info", LevelInfo, true, "INF"},
		{"wrn", LevelWarn, true, "WRN"},
		{"error", LevelError, true, "ERR"},
		{"critical", LevelCritical, true, "CRT"},
		{"off", LevelOff, true, "OFF"},
		{"verbose", LevelInfo, false, "INF"},
	}

	for _, test := range tests {
		level, ok := LevelFromString(test.in)
		if level != test.want || ok != test.wantOK {
			t.Errorf("LevelFromString(%q): got (%v, %t), want (%v, %t)",
				test.in, level, ok, test.want, test.wantOK)
		}
		if level.String() != test.wantStr {
			t.Errorf("Level.String(): got %s, want %s", level, test.wantStr)
		}
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	backend := NewBackendWithFlags(0)
	err := backend.AddLogWriter(&buf, LevelTrace)
	if err != nil {
		t.Fatalf("AddLogWriter: %v", err)
	}

	log := backend.Logger("TEST")
	log.Infof("dropped while off")
	if buf.Len() != 0 {
		t.Fatalf("logger wrote while its level is off: %q", buf.String())
	}

	log.SetLevel(LevelInfo)
	log.Debugf("dropped below level")
	log.Infof("signed %d inputs", 2)
	log.Warn("careful")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("filtered message was written: %q", out)
	}
	if !strings.Contains(out, "[INF] TEST: signed 2 inputs\n") {
		t.Errorf("missing info line in %q", out)
	}
	if !strings.Contains(out, "[WRN] TEST: careful\n") {
		t.Errorf("missing warn line in %q", out)
	}
}

func TestBackendRunAndClose(t *testing.T) {
	var buf bytes.Buffer
	backend := NewBackendWithFlags(0)
	err := backend.AddLogWriter(&buf, LevelWarn)
	if err != nil {
		t.Fatalf("AddLogWriter: %v", err)
	}
	if err := backend.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := backend.Run(); err == nil {
		t.Fatalf("second Run succeeded")
	}
	if err := backend.AddLogWriter(&buf, LevelWarn); err == nil {
		t.Fatalf("AddLogWriter succeeded on a running backend")
	}

	log := backend.Logger("TEST")
	log.SetLevel(LevelTrace)
	log.Infof("below writer level")
	log.Errorf("boom")
	backend.Close()

	out := buf.String()
	if strings.Contains(out, "below writer level") {
		t.Errorf("writer level not honoured: %q", out)
	}
	if !strings.Contains(out, "[ERR] TEST: boom") {
		t.Errorf("entry not flushed on Close: %q", out)
	}
}

func TestRegisterSubSystem(t *testing.T) {
	first := RegisterSubSystem("UTST")
	second := RegisterSubSystem("UTST")
	if first != second {
		t.Fatalf("RegisterSubSystem returned distinct loggers for one tag")
	}

	found := false
	for _, tag := range SupportedSubsystems() {
		if tag == "UTST" {
			found = true
		}
	}
	if !found {
		t.Errorf("UTST missing from SupportedSubsystems")
	}

	if err := ParseAndSetLogLevels("nonsense"); err == nil {
		t.Errorf("ParseAndSetLogLevels accepted an invalid level")
	}
	if err := ParseAndSetLogLevels("debug"); err != nil {
		t.Fatalf("ParseAndSetLogLevels: %v", err)
	}
	if first.Level() != LevelDebug {
		t.Errorf("level not applied: got %v", first.Level())
	}
	SetLogLevels(LevelOff)
}
