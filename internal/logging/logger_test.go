package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{level: "debug", wantDebug: true, wantInfo: true},
		{level: "info", wantDebug: false, wantInfo: true},
		{level: "ERROR", wantDebug: false, wantInfo: false},
		{level: "bogus", wantDebug: false, wantInfo: true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var out, errOut bytes.Buffer
			l := NewWithWriters(tt.level, &out, &errOut)

			l.Debug("debug %d", 1)
			l.Info("info %d", 2)
			l.Error("error %d", 3)

			assert.Equal(t, tt.wantDebug, bytes.Contains(out.Bytes(), []byte("DEBUG: ")))
			assert.Equal(t, tt.wantInfo, bytes.Contains(out.Bytes(), []byte("info 2")))
			assert.Contains(t, errOut.String(), "ERROR: ")
			assert.Contains(t, errOut.String(), "logger_test.go")
		})
	}
}

func TestDiscardLogger(t *testing.T) {
	l := NewDiscardLogger()
	l.Info("nothing")
	l.Error("nothing")
	l.Debug("nothing")
}
