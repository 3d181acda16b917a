package logging

import (
	"path/filepath"
	"testing"
)

func TestNewLogger(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		l, err := NewLogger(LogLevelInfo, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer l.Close()
		if l.level != LogLevelInfo {
			t.Errorf("level = %d, want %d", l.level, LogLevelInfo)
		}
		if l.file != nil {
			t.Error("file should be nil when no path given")
		}
	})

	t.Run("with file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.log")
		l, err := NewLogger(LogLevelDebug, path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer l.Close()
		if l.file == nil {
			t.Error("file should not be nil")
		}
		if l.fileLog == nil {
			t.Error("fileLog should not be nil")
		}
	})

	t.Run("invalid path", func(t *testing.T) {
		_, err := NewLogger(LogLevelInfo, "/nonexistent/dir/test.log")
		if err == nil {
			t.Error("expected error for invalid path")
		}
	})
}

func TestSetGetLevel(t *testing.T) {
	l, err := NewLogger(LogLevelSilent, "")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	l.SetLevel(LogLevelDebug)
	if got := l.GetLevel(); got != LogLevelDebug {
		t.Errorf("level = %d, want %d", got, LogLevelDebug)
	}
}

func TestLogFrameDoesNotPanic(t *testing.T) {
	l, err := NewLogger(LogLevelSilent, "")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	l.LogFrame("RT_CLASS_1 (8000)", "00:0c:29:aa:bb:cc", "00:0c:29:dd:ee:ff", 40, nil)
	l.LogHex("payload", []byte{0x01, 0x02, 0x03})
}
