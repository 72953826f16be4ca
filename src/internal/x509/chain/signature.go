// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"fmt"

	// Register the hash implementations used by the schemes below.
	_ "crypto/sha256"
	_ "crypto/sha512"
)

// SignatureMode selects the rules applied to a handshake signature.
type SignatureMode int

const (
	// ModeLegacy applies TLS 1.2 rules: ECDSA schemes name only the hash,
	// so either supported curve is accepted, and PKCS#1 v1.5 is allowed.
	ModeLegacy SignatureMode = iota
	// ModeTLS13 applies TLS 1.3 rules: ECDSA schemes bind the curve and
	// PKCS#1 v1.5 is refused.
	ModeTLS13
)

func (m SignatureMode) String() string {
	if m == ModeTLS13 {
		return "tls13"
	}
	return "legacy"
}

type schemeKind int

const (
	kindECDSA schemeKind = iota
	kindPSS
	kindPKCS1
)

type schemeParams struct {
	kind  schemeKind
	hash  crypto.Hash
	curve elliptic.Curve
}

var schemes = map[tls.SignatureScheme]schemeParams{
	tls.ECDSAWithP256AndSHA256: {kind: kindECDSA, hash: crypto.SHA256, curve: elliptic.P256()},
	tls.ECDSAWithP384AndSHA384: {kind: kindECDSA, hash: crypto.SHA384, curve: elliptic.P384()},
	tls.PSSWithSHA256:          {kind: kindPSS, hash: crypto.SHA256},
	tls.PSSWithSHA384:          {kind: kindPSS, hash: crypto.SHA384},
	tls.PSSWithSHA512:          {kind: kindPSS, hash: crypto.SHA512},
	tls.PKCS1WithSHA256:        {kind: kindPKCS1, hash: crypto.SHA256},
	tls.PKCS1WithSHA384:        {kind: kindPKCS1, hash: crypto.SHA384},
	tls.PKCS1WithSHA512:        {kind: kindPKCS1, hash: crypto.SHA512},
}

const (
	minRSABits = 2048
	maxRSABits = 8192
)

// VerifySignature checks sig over message using the public key of the
// certificate encoded in certDER, under scheme and mode.
//
// The certificate is not validated here; callers must have verified the
// chain it belongs to first.
//
// Parameters:
//   - sig: Raw signature bytes from the peer
//   - message: Exact bytes that were signed
//   - certDER: DER-encoded end-entity certificate carrying the key
//   - scheme: Negotiated signature scheme
//   - mode: [ModeLegacy] or [ModeTLS13]
//
// Returns:
//   - error: A wrapped package sentinel, or nil if the signature is valid
//
// Thread Safety: Safe for concurrent use.
func VerifySignature(sig, message, certDER []byte, scheme tls.SignatureScheme, mode SignatureMode) error {
	cert, err := x509.ParseCertificate(certDER)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadDER, err)
	}

	params, ok := schemes[scheme]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnsupportedSignatureAlgorithm, scheme)
	}
	if mode == ModeTLS13 && params.kind == kindPKCS1 {
		return fmt.Errorf("%w: %v is not permitted in TLS 1.3", ErrUnsupportedSignatureAlgorithm, scheme)
	}

	h := params.hash.New()
	h.Write(message)
	digest := h.Sum(nil)

	switch pub := cert.PublicKey.(type) {
	case *ecdsa.PublicKey:
		if params.kind != kindECDSA {
			return fmt.Errorf("%w: %v with ECDSA key", ErrUnsupportedSignatureAlgorithmForPublicKey, scheme)
		}
		if pub.Curve != elliptic.P256() && pub.Curve != elliptic.P384() {
			return fmt.Errorf("%w: curve %s", ErrUnsupportedSignatureAlgorithmForPublicKey, pub.Curve.Params().Name)
		}
		if mode == ModeTLS13 && pub.Curve != params.curve {
			return fmt.Errorf("%w: %v with curve %s", ErrUnsupportedSignatureAlgorithmForPublicKey, scheme, pub.Curve.Params().Name)
		}
		if !ecdsa.VerifyASN1(pub, digest, sig) {
			return ErrInvalidSignatureForPublicKey
		}
		return nil

	case *rsa.PublicKey:
		if params.kind == kindECDSA {
			return fmt.Errorf("%w: %v with RSA key", ErrUnsupportedSignatureAlgorithmForPublicKey, scheme)
		}
		if bits := pub.N.BitLen(); bits < minRSABits || bits > maxRSABits {
			return fmt.Errorf("%w: %d-bit RSA key", ErrUnsupportedSignatureAlgorithmForPublicKey, bits)
		}

		if params.kind == kindPSS {
			err = rsa.VerifyPSS(pub, params.hash, digest, sig, &rsa.PSSOptions{
				SaltLength: rsa.PSSSaltLengthEqualsHash,
				Hash:       params.hash,
			})
		} else {
			err = rsa.VerifyPKCS1v15(pub, params.hash, digest, sig)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidSignatureForPublicKey, err)
		}
		return nil

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedSignatureAlgorithmForPublicKey, pub)
	}
}
