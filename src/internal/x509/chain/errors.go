// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/x509"
	"errors"
	"fmt"
)

var (
	// ErrBadDER indicates a certificate that could not be parsed.
	ErrBadDER = errors.New("x509chain: bad DER encoding")

	// ErrUnknownIssuer indicates that no path to a trust anchor could be built.
	ErrUnknownIssuer = errors.New("x509chain: unknown issuer")

	// ErrCertNotValidForTime indicates a certificate outside its validity window.
	ErrCertNotValidForTime = errors.New("x509chain: certificate expired or not yet valid")

	// ErrCertNotValidForName indicates the end-entity certificate does not cover the requested name.
	ErrCertNotValidForName = errors.New("x509chain: certificate not valid for name")

	// ErrInvalidUsage indicates a certificate whose extended key usage forbids the requested role.
	ErrInvalidUsage = errors.New("x509chain: certificate not valid for usage")

	// ErrInvalidCA indicates an issuer that is not allowed to sign certificates.
	ErrInvalidCA = errors.New("x509chain: issuer is not a valid CA")

	// ErrUnsupportedSignatureAlgorithm indicates a signature made with an algorithm outside the allow-list.
	ErrUnsupportedSignatureAlgorithm = errors.New("x509chain: unsupported signature algorithm")

	// ErrUnsupportedSignatureAlgorithmForPublicKey indicates a scheme that does not fit the certificate key.
	ErrUnsupportedSignatureAlgorithmForPublicKey = errors.New("x509chain: unsupported signature algorithm for public key")

	// ErrInvalidSignatureForPublicKey indicates a signature that does not verify.
	ErrInvalidSignatureForPublicKey = errors.New("x509chain: invalid signature for public key")

	// ErrPathValidation is the catch-all for path validation failures not covered above.
	ErrPathValidation = errors.New("x509chain: path validation failed")
)

// classify maps a crypto/x509 verification error onto the package sentinels,
// keeping the original error for diagnostics.
func classify(err error) error {
	var (
		invalid  x509.CertificateInvalidError
		unknown  x509.UnknownAuthorityError
		hostname x509.HostnameError
		sentinel = ErrPathValidation
	)

	switch {
	case errors.As(err, &unknown):
		sentinel = ErrUnknownIssuer
	case errors.As(err, &hostname):
		sentinel = ErrCertNotValidForName
	case errors.As(err, &invalid):
		switch invalid.Reason {
		case x509.Expired:
			sentinel = ErrCertNotValidForTime
		case x509.IncompatibleUsage:
			sentinel = ErrInvalidUsage
		case x509.NotAuthorizedToSign, x509.CANotAuthorizedForThisName, x509.TooManyIntermediates:
			sentinel = ErrInvalidCA
		}
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}
