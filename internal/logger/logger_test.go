package logger

import (
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	var quiet, loud strings.Builder

	q := New(&quiet, false)
	q.Infof("hidden %d", 1)
	q.Errorf("shown %d", 2)
	if strings.Contains(quiet.String(), "hidden") {
		t.Errorf("info logged while quiet: %q", quiet.String())
	}
	if !strings.Contains(quiet.String(), "[ERROR] shown 2") {
		t.Errorf("missing error line: %q", quiet.String())
	}

	l := New(&loud, true)
	l.Infof("hello %s", "world")
	if !strings.Contains(loud.String(), "[INFO] hello world") {
		t.Errorf("missing info line: %q", loud.String())
	}
}
