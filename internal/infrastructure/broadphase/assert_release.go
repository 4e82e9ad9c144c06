//go:build !debug

package broadphase

import "log"

// assertf logs a broken invariant and lets the frame carry on
func assertf(l *log.Logger, format string, args ...any) {
	if l == nil {
		l = log.Default()
	}
	l.Printf("broadphase: "+format, args...)
}
