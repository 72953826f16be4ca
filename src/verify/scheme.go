// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify

import (
	"crypto/tls"
	"fmt"
	"slices"
)

var tls12Schemes = []tls.SignatureScheme{
	tls.ECDSAWithP256AndSHA256,
	tls.ECDSAWithP384AndSHA384,
	tls.PKCS1WithSHA256,
	tls.PKCS1WithSHA384,
	tls.PKCS1WithSHA512,
	tls.PSSWithSHA256,
	tls.PSSWithSHA384,
	tls.PSSWithSHA512,
}

var tls13Schemes = []tls.SignatureScheme{
	tls.ECDSAWithP256AndSHA256,
	tls.ECDSAWithP384AndSHA384,
	tls.PSSWithSHA256,
	tls.PSSWithSHA384,
	tls.PSSWithSHA512,
}

// AcceptForTLS12 checks that scheme may be used for a TLS 1.2
// ServerKeyExchange or CertificateVerify signature.
func AcceptForTLS12(scheme tls.SignatureScheme) error {
	if slices.Contains(tls12Schemes, scheme) {
		return nil
	}
	return &PeerMisbehavedError{
		Msg:    fmt.Sprintf("received unadvertised sig scheme %v", scheme),
		Scheme: scheme,
	}
}

// AcceptForTLS13 checks that scheme may be used for a TLS 1.3
// CertificateVerify signature. PKCS#1 v1.5 is not permitted.
func AcceptForTLS13(scheme tls.SignatureScheme) error {
	if slices.Contains(tls13Schemes, scheme) {
		return nil
	}
	return &PeerMisbehavedError{
		Msg:    fmt.Sprintf("received unsupported sig scheme %v", scheme),
		Scheme: scheme,
	}
}

// SupportedVerifySchemes returns the schemes this package can verify,
// strongest first, suitable for a signature_algorithms extension.
func SupportedVerifySchemes() []tls.SignatureScheme {
	return []tls.SignatureScheme{
		tls.ECDSAWithP384AndSHA384,
		tls.ECDSAWithP256AndSHA256,
		tls.PSSWithSHA512,
		tls.PSSWithSHA384,
		tls.PSSWithSHA256,
		tls.PKCS1WithSHA512,
		tls.PKCS1WithSHA384,
		tls.PKCS1WithSHA256,
	}
}
