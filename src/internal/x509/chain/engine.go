// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/H0llyW00dzZ/tls-trust-verifier/src/anchors"
)

// Usage selects which extended key usage a chain is validated for.
type Usage int

const (
	// UsageServer validates a TLS server certificate (id-kp-serverAuth).
	UsageServer Usage = iota
	// UsageClient validates a TLS client certificate (id-kp-clientAuth).
	UsageClient
)

func (u Usage) String() string {
	switch u {
	case UsageServer:
		return "server"
	case UsageClient:
		return "client"
	default:
		return fmt.Sprintf("Usage(%d)", int(u))
	}
}

func (u Usage) extKeyUsage() x509.ExtKeyUsage {
	if u == UsageClient {
		return x509.ExtKeyUsageClientAuth
	}
	return x509.ExtKeyUsageServerAuth
}

// EndEntity is a parsed end-entity certificate awaiting validation.
//
// An EndEntity holds no mutable state; it is safe for concurrent use.
type EndEntity struct {
	cert *x509.Certificate
}

// ParseEndEntity parses the DER encoding of an end-entity certificate.
//
// Parameters:
//   - der: DER-encoded certificate
//
// Returns:
//   - *EndEntity: Parsed certificate handle
//   - error: [ErrBadDER] wrapping the parser error
func ParseEndEntity(der []byte) (*EndEntity, error) {
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDER, err)
	}
	return &EndEntity{cert: cert}, nil
}

// Certificate returns the parsed certificate.
func (e *EndEntity) Certificate() *x509.Certificate { return e.cert }

// VerifyForUsage validates the end-entity certificate against the trust
// anchors, using intermediates to build the path, at time now.
//
// A path is accepted only when crypto/x509 can build it, every certificate
// on it permits usage, and every signature along it was made with one of
// algs. Intermediates are used in the order given and never deduplicated.
//
// Parameters:
//   - usage: Server or client certificate semantics
//   - algs: Allow-list of signature algorithms
//   - trust: Trust anchors, typically from [anchors.RootStore.TrustAnchors]
//   - intermediates: DER-encoded intermediate certificates
//   - now: Validation time
//
// Returns:
//   - error: A wrapped package sentinel describing the failure, or nil
//
// Thread Safety: Safe for concurrent use.
func (e *EndEntity) VerifyForUsage(usage Usage, algs []*SignatureAlgorithm, trust []anchors.TrustAnchor, intermediates [][]byte, now time.Time) error {
	if len(trust) == 0 {
		return fmt.Errorf("%w: no trust anchors configured", ErrUnknownIssuer)
	}

	roots := x509.NewCertPool()
	for _, ta := range trust {
		roots.AddCert(ta.Cert)
	}

	pool := x509.NewCertPool()
	for i, der := range intermediates {
		cert, err := x509.ParseCertificate(der)
		if err != nil {
			return fmt.Errorf("%w: intermediate %d: %w", ErrBadDER, i, err)
		}
		pool.AddCert(cert)
	}

	chains, err := e.cert.Verify(x509.VerifyOptions{
		Roots:         roots,
		Intermediates: pool,
		CurrentTime:   now,
		KeyUsages:     []x509.ExtKeyUsage{usage.extKeyUsage()},
	})
	if err != nil {
		return classify(err)
	}

	for _, chain := range chains {
		if chainAllowed(chain, algs) {
			return nil
		}
	}

	return fmt.Errorf("%w: no path uses only permitted algorithms", ErrUnsupportedSignatureAlgorithm)
}

// VerifyDNSName checks that the certificate's subjectAltName covers name.
// The subject common name is never consulted. IP literals, bracketed or
// not, are rejected because only DNS name bindings are checked.
func (e *EndEntity) VerifyDNSName(name string) error {
	if net.ParseIP(strings.TrimSuffix(strings.TrimPrefix(name, "["), "]")) != nil {
		return fmt.Errorf("%w: %q is an IP address, not a DNS name", ErrCertNotValidForName, name)
	}
	if err := e.cert.VerifyHostname(name); err != nil {
		return fmt.Errorf("%w: %w", ErrCertNotValidForName, err)
	}
	return nil
}

// IsSelfSigned checks if a certificate is self-signed.
//
// It verifies the certificate's signature against itself.
func IsSelfSigned(cert *x509.Certificate) bool {
	return cert.CheckSignatureFrom(cert) == nil
}
