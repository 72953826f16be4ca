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
	"crypto/x509"
)

// SignatureAlgorithm describes one acceptable combination of issuer key and
// certificate signature algorithm during path validation.
type SignatureAlgorithm struct {
	Name      string
	Signature x509.SignatureAlgorithm
	// Curve is the required issuer curve for ECDSA algorithms.
	Curve elliptic.Curve
	// MinRSABits and MaxRSABits bound the issuer modulus for RSA algorithms.
	MinRSABits int
	MaxRSABits int
}

// Accepts reports whether a certificate signed with sig by a key pub fits a.
func (a *SignatureAlgorithm) Accepts(sig x509.SignatureAlgorithm, pub crypto.PublicKey) bool {
	if a.Signature != sig {
		return false
	}

	switch key := pub.(type) {
	case *ecdsa.PublicKey:
		return a.Curve != nil && key.Curve == a.Curve
	case *rsa.PublicKey:
		if a.MinRSABits == 0 {
			return false
		}
		bits := key.N.BitLen()
		return bits >= a.MinRSABits && bits <= a.MaxRSABits
	default:
		return false
	}
}

func (a *SignatureAlgorithm) String() string { return a.Name }

// Signature algorithms recognised during path validation.
var (
	ECDSAP256SHA256 = &SignatureAlgorithm{Name: "ECDSA_P256_SHA256", Signature: x509.ECDSAWithSHA256, Curve: elliptic.P256()}
	ECDSAP256SHA384 = &SignatureAlgorithm{Name: "ECDSA_P256_SHA384", Signature: x509.ECDSAWithSHA384, Curve: elliptic.P256()}
	ECDSAP384SHA256 = &SignatureAlgorithm{Name: "ECDSA_P384_SHA256", Signature: x509.ECDSAWithSHA256, Curve: elliptic.P384()}
	ECDSAP384SHA384 = &SignatureAlgorithm{Name: "ECDSA_P384_SHA384", Signature: x509.ECDSAWithSHA384, Curve: elliptic.P384()}

	// The PSS variants accept keys encoded as rsaEncryption, which is how
	// crypto/x509 parses every RSA key it returns.
	RSAPSS2048To8192SHA256LegacyKey = &SignatureAlgorithm{Name: "RSA_PSS_2048_8192_SHA256_LEGACY_KEY", Signature: x509.SHA256WithRSAPSS, MinRSABits: 2048, MaxRSABits: 8192}
	RSAPSS2048To8192SHA384LegacyKey = &SignatureAlgorithm{Name: "RSA_PSS_2048_8192_SHA384_LEGACY_KEY", Signature: x509.SHA384WithRSAPSS, MinRSABits: 2048, MaxRSABits: 8192}
	RSAPSS2048To8192SHA512LegacyKey = &SignatureAlgorithm{Name: "RSA_PSS_2048_8192_SHA512_LEGACY_KEY", Signature: x509.SHA512WithRSAPSS, MinRSABits: 2048, MaxRSABits: 8192}

	RSAPKCS12048To8192SHA256 = &SignatureAlgorithm{Name: "RSA_PKCS1_2048_8192_SHA256", Signature: x509.SHA256WithRSA, MinRSABits: 2048, MaxRSABits: 8192}
	RSAPKCS12048To8192SHA384 = &SignatureAlgorithm{Name: "RSA_PKCS1_2048_8192_SHA384", Signature: x509.SHA384WithRSA, MinRSABits: 2048, MaxRSABits: 8192}
	RSAPKCS12048To8192SHA512 = &SignatureAlgorithm{Name: "RSA_PKCS1_2048_8192_SHA512", Signature: x509.SHA512WithRSA, MinRSABits: 2048, MaxRSABits: 8192}
	RSAPKCS13072To8192SHA384 = &SignatureAlgorithm{Name: "RSA_PKCS1_3072_8192_SHA384", Signature: x509.SHA384WithRSA, MinRSABits: 3072, MaxRSABits: 8192}
)

// chainAllowed reports whether every signature in chain, from the end-entity
// up to the anchor, was made with an algorithm in algs. The anchor's own
// self-signature is not checked.
func chainAllowed(chain []*x509.Certificate, algs []*SignatureAlgorithm) bool {
	for i := 0; i+1 < len(chain); i++ {
		cert, issuer := chain[i], chain[i+1]

		ok := false
		for _, alg := range algs {
			if alg.Accepts(cert.SignatureAlgorithm, issuer.PublicKey) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
