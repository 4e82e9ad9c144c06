//go:build debug

package broadphase

import (
	"fmt"
	"log"
)

// assertf fails hard in debug builds
func assertf(_ *log.Logger, format string, args ...any) {
	panic(fmt.Sprintf("broadphase: "+format, args...))
}
