// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify

import (
	"github.com/H0llyW00dzZ/tls-trust-verifier/src/anchors"
	x509chain "github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/x509/chain"
)

// supportedSigAlgs is the allow-list of certificate signature algorithms
// accepted during path validation. It covers what both TLS 1.2 and TLS 1.3
// peers use in practice.
var supportedSigAlgs = []*SignatureAlgorithm{
	x509chain.ECDSAP256SHA256,
	x509chain.ECDSAP256SHA384,
	x509chain.ECDSAP384SHA256,
	x509chain.ECDSAP384SHA384,
	x509chain.RSAPSS2048To8192SHA256LegacyKey,
	x509chain.RSAPSS2048To8192SHA384LegacyKey,
	x509chain.RSAPSS2048To8192SHA512LegacyKey,
	x509chain.RSAPKCS12048To8192SHA256,
	x509chain.RSAPKCS12048To8192SHA384,
	x509chain.RSAPKCS12048To8192SHA512,
	x509chain.RSAPKCS13072To8192SHA384,
}

// SupportedSigAlgs returns a copy of the path-validation allow-list used by
// every verifier in this package. Changing the result has no effect on
// verification.
func SupportedSigAlgs() []*SignatureAlgorithm {
	algs := make([]*SignatureAlgorithm, len(supportedSigAlgs))
	for i, alg := range supportedSigAlgs {
		c := *alg
		algs[i] = &c
	}
	return algs
}

// ServerCertVerifier decides whether a server's certificate chain is
// acceptable for dnsName.
type ServerCertVerifier interface {
	// VerifyServerCert validates presented (end-entity first) against roots.
	// ocspResponse is the stapled OCSP response, possibly empty.
	VerifyServerCert(roots *anchors.RootStore, presented []Certificate, dnsName string, ocspResponse []byte) (ServerCertVerified, error)
}

// WebPKIVerifier is the default [ServerCertVerifier]. It holds no mutable
// state and is safe for concurrent use.
type WebPKIVerifier struct {
	opts options
}

var _ ServerCertVerifier = (*WebPKIVerifier)(nil)

// NewWebPKIVerifier creates a server verifier.
func NewWebPKIVerifier(opts ...Option) *WebPKIVerifier {
	return &WebPKIVerifier{opts: newOptions(opts)}
}

// VerifyServerCert implements [ServerCertVerifier].
//
// The chain is validated for server usage at the current time, then the
// end-entity certificate is checked against dnsName. A token is returned
// only when both succeed. The OCSP response is logged but not validated.
func (v *WebPKIVerifier) VerifyServerCert(roots *anchors.RootStore, presented []Certificate, dnsName string, ocspResponse []byte) (ServerCertVerified, error) {
	ee, intermediates, trust, err := prepare(v.opts.paths, roots, presented)
	if err != nil {
		return ServerCertVerified{}, err
	}

	now, err := currentTime(v.opts.now)
	if err != nil {
		return ServerCertVerified{}, err
	}

	if err := ee.VerifyForUsage(UsageServer, SupportedSigAlgs(), trust, intermediates, now); err != nil {
		return ServerCertVerified{}, &PathValidationError{Err: err}
	}

	if len(ocspResponse) > 0 {
		logOCSPResponse(v.opts.log, ocspResponse)
	}

	if err := ee.VerifyDNSName(dnsName); err != nil {
		return ServerCertVerified{}, &PathValidationError{Err: err}
	}

	return assertServerCertVerified(), nil
}
