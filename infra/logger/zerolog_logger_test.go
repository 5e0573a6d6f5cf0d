package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("COURTFLOW_ENV", "dev"))
	defer func() { assert.NoError(t, os.Unsetenv("COURTFLOW_ENV")) }()
	l := NewZerologLogger("scheduler")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"case_id": "c1"})
	l.Infof("info %s", "scheduled")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerJSONMode(t *testing.T) {
	assert.NoError(t, os.Unsetenv("COURTFLOW_ENV"))
	l := NewZerologLogger("store")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Infof("round trip")
}
