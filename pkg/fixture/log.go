package fixture

import "go.uber.org/zap"

// log is the package logger, nop unless configured. The library stays
// silent by default so embedding applications control all output.
var log = zap.NewNop()

// SetLogger installs a logger for construction and fallback diagnostics.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}
