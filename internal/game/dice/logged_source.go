package dice

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// LoggedSource wraps a Source and logs every draw at debug level with the
// requested bound, the value produced, and a running draw counter.
type LoggedSource struct {
	src    Source
	logger *zap.Logger
	draws  atomic.Uint64
}

// NewLoggedSource creates a LoggedSource that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedSource(src Source, logger *zap.Logger) *LoggedSource {
	return &LoggedSource{src: src, logger: logger}
}

// Intn draws from the wrapped source and logs the result.
//
// Precondition: n > 0.
// Postcondition: Returns the wrapped source's value unchanged.
func (l *LoggedSource) Intn(n int) int {
	v := l.src.Intn(n)
	l.logger.Debug("random draw",
		zap.Uint64("draw", l.draws.Add(1)),
		zap.Int("bound", n),
		zap.Int("value", v),
	)
	return v
}

// Draws returns how many values have been drawn so far.
func (l *LoggedSource) Draws() uint64 {
	return l.draws.Load()
}
