// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify

import "github.com/H0llyW00dzZ/tls-trust-verifier/src/logger"

type options struct {
	now   TimeFunc
	paths PathEngine
	sigs  SignatureEngine
	scts  SCTEngine
	log   logger.Logger
}

// Option configures a verifier.
type Option func(*options)

func newOptions(opts []Option) options {
	o := options{
		now:   TryNow,
		paths: WebPKIPathEngine{},
		sigs:  WebPKISignatureEngine{},
		scts:  CTSCTEngine{},
		log:   logger.Discard,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTimeFunc sets the time source used for validity and SCT timestamp checks.
func WithTimeFunc(now TimeFunc) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithPathEngine replaces the X.509 path-validation engine.
func WithPathEngine(engine PathEngine) Option {
	return func(o *options) {
		if engine != nil {
			o.paths = engine
		}
	}
}

// WithSignatureEngine replaces the handshake signature engine.
func WithSignatureEngine(engine SignatureEngine) Option {
	return func(o *options) {
		if engine != nil {
			o.sigs = engine
		}
	}
}

// WithSCTEngine replaces the SCT verification engine.
func WithSCTEngine(engine SCTEngine) Option {
	return func(o *options) {
		if engine != nil {
			o.scts = engine
		}
	}
}

// WithLogger sets the logger for diagnostics. Verification outcomes never
// depend on it.
func WithLogger(log logger.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}
