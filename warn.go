package hll

import (
	"log"
	"os"
	"sync"
)

// Warning is the non-fatal leg of the error taxonomy: it is logged rather
// than returned, since none of the host operations that can produce one
// (hashing with a negative seed) have a failure mode to propagate.
type Warning string

var warnLoggerLock sync.RWMutex
var warnLogger = log.New(os.Stderr, "hll: ", log.LstdFlags)

// SetWarningLogger redirects where non-fatal warnings are written. Passing
// nil silences warnings entirely. This mirrors the package's other
// process-wide, mutex-guarded configuration (see Config).
func SetWarningLogger(l *log.Logger) {
	warnLoggerLock.Lock()
	defer warnLoggerLock.Unlock()
	warnLogger = l
}

func warnf(format string, args ...interface{}) {
	warnLoggerLock.RLock()
	l := warnLogger
	warnLoggerLock.RUnlock()

	if l != nil {
		l.Printf(format, args...)
	}
}
