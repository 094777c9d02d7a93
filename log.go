package mempool

import (
	"go.uber.org/zap"
)

var logger = zap.NewNop()

// UseLogger use logger for pools created without WithLogger and for the
// default pool
func UseLogger(zapLogger *zap.Logger) {
	logger = zapLogger
}

func adjustLogger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return logger
	}
	return l
}
