// Package debug writes a trace log when TSUZUKI_DEBUG=1.
// The TUI owns stdout, so nothing here ever prints to the terminal.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	once sync.Once
	log  *os.File
)

// Path returns where the log is written
func Path() string {
	if p := os.Getenv("TSUZUKI_DEBUG_LOG"); p != "" {
		return p
	}
	return filepath.Join(os.TempDir(), "tsuzuki-debug.log")
}

// Enabled reports whether debug logging is switched on
func Enabled() bool {
	return os.Getenv("TSUZUKI_DEBUG") == "1"
}

func open() {
	if !Enabled() {
		return
	}
	log, _ = os.OpenFile(Path(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// Logf appends a timestamped line to the debug log
func Logf(format string, args ...interface{}) {
	once.Do(open)
	if log == nil {
		return
	}
	fmt.Fprintf(log, time.Now().Format("15:04:05.000")+" "+format+"\n", args...)
	log.Sync()
}
