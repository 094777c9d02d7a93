package mempool

import (
	"go.uber.org/zap"
)

// Option pool option
type Option func(*Pool)

// WithLogger set logger for the pool
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

// WithHost set the host allocation primitive used to acquire and release the
// pool buffer. Default is HeapHost.
func WithHost(host Host) Option {
	return func(p *Pool) {
		p.options.host = host
	}
}

// WithZeroOnAlloc clear the payload of every block before Alloc hands it out.
// Resize clears the grown tail of a block extended in place.
func WithZeroOnAlloc(value bool) Option {
	return func(p *Pool) {
		p.options.zeroOnAlloc = value
	}
}

func (p *Pool) adjust() {
	p.logger = adjustLogger(p.logger).Named("mempool")
	if p.options.host == nil {
		p.options.host = HeapHost()
	}
}
