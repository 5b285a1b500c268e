package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", LevelNormal, false},
		{"none", LevelNone, false},
		{"debug", LevelDebug, false},
		{"verbose", "", true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLevelsRouteOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	log, err := NewWithWriters(LevelNormal, &out, &errOut)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("hidden")
	log.Info("shown")
	log.Error("failed")
	_ = log.Sync()

	if strings.Contains(out.String(), "hidden") {
		t.Error("debug message should be filtered at normal level")
	}
	if !strings.Contains(out.String(), "shown") {
		t.Errorf("stdout = %q, want info message", out.String())
	}
	if strings.Contains(out.String(), "failed") || !strings.Contains(errOut.String(), "failed") {
		t.Errorf("errors should go to stderr only: out=%q err=%q", out.String(), errOut.String())
	}
}

func TestDebugAndNone(t *testing.T) {
	var out bytes.Buffer
	log, err := NewWithWriters(LevelDebug, &out, &out)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("detail")
	if !strings.Contains(out.String(), "detail") {
		t.Errorf("debug level should log debug messages, got %q", out.String())
	}

	out.Reset()
	log, err = NewWithWriters(LevelNone, &out, &out)
	if err != nil {
		t.Fatal(err)
	}
	log.Error("quiet")
	if out.Len() != 0 {
		t.Errorf("none level wrote %q", out.String())
	}
}
