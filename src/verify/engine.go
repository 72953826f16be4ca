// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify

import (
	"crypto/tls"
	"errors"
	"time"

	"github.com/H0llyW00dzZ/tls-trust-verifier/src/anchors"
	x509chain "github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/x509/chain"
	x509sct "github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/x509/sct"
)

// Certificate is a DER-encoded X.509 certificate as received on the wire.
type Certificate []byte

// DigitallySignedStruct is a signature together with the scheme the peer
// claims it was made with.
type DigitallySignedStruct struct {
	Scheme    tls.SignatureScheme
	Signature []byte
}

// Usage selects server or client certificate semantics.
type Usage = x509chain.Usage

// Usages understood by the path engine.
const (
	UsageServer = x509chain.UsageServer
	UsageClient = x509chain.UsageClient
)

// SignatureMode selects legacy (TLS 1.2) or TLS 1.3 signature rules.
type SignatureMode = x509chain.SignatureMode

// Signature modes understood by the signature engine.
const (
	ModeLegacy = x509chain.ModeLegacy
	ModeTLS13  = x509chain.ModeTLS13
)

// SignatureAlgorithm is one entry of a path-validation allow-list.
type SignatureAlgorithm = x509chain.SignatureAlgorithm

// Log is a trusted Certificate Transparency log.
type Log = x509sct.Log

// EndEntity is a parsed end-entity certificate handle produced by a [PathEngine].
type EndEntity interface {
	VerifyForUsage(usage Usage, algs []*SignatureAlgorithm, trust []anchors.TrustAnchor, intermediates [][]byte, now time.Time) error
	VerifyDNSName(name string) error
}

// PathEngine performs X.509 path validation.
type PathEngine interface {
	ParseEndEntity(der []byte) (EndEntity, error)
}

// SignatureEngine checks a raw signature with the key of a certificate.
type SignatureEngine interface {
	VerifySignature(sig, message, certDER []byte, scheme tls.SignatureScheme, mode SignatureMode) error
}

// SCTEngine checks a single SCT. On failure, an error implementing
// ShouldBeFatal() bool decides whether the remaining SCTs are still
// considered; errors without that method are treated as fatal.
type SCTEngine interface {
	VerifySCT(certDER, sct []byte, nowMillis uint64, logs []*Log) (int, error)
}

type fatalError interface {
	ShouldBeFatal() bool
}

func isFatal(err error) bool {
	var f fatalError
	if errors.As(err, &f) {
		return f.ShouldBeFatal()
	}
	return true
}

// WebPKIPathEngine is the default [PathEngine], backed by crypto/x509.
type WebPKIPathEngine struct{}

// ParseEndEntity implements [PathEngine].
func (WebPKIPathEngine) ParseEndEntity(der []byte) (EndEntity, error) {
	ee, err := x509chain.ParseEndEntity(der)
	if err != nil {
		return nil, err
	}
	return ee, nil
}

// WebPKISignatureEngine is the default [SignatureEngine].
type WebPKISignatureEngine struct{}

// VerifySignature implements [SignatureEngine].
func (WebPKISignatureEngine) VerifySignature(sig, message, certDER []byte, scheme tls.SignatureScheme, mode SignatureMode) error {
	return x509chain.VerifySignature(sig, message, certDER, scheme, mode)
}

// CTSCTEngine is the default [SCTEngine], backed by certificate-transparency-go.
type CTSCTEngine struct{}

// VerifySCT implements [SCTEngine].
func (CTSCTEngine) VerifySCT(certDER, sct []byte, nowMillis uint64, logs []*Log) (int, error) {
	return x509sct.VerifySCT(certDER, sct, nowMillis, logs)
}
