// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package verify is the certificate trust layer of a TLS stack. It decides
// whether a peer's certificate chain, handshake signature and Certificate
// Transparency evidence are acceptable before application data may flow.
//
// # Proof Tokens
//
// Every successful check returns a proof token: [ServerCertVerified],
// [ClientCertVerified], [HandshakeSignatureValid] or
// [FinishedMessageVerified]. Tokens carry a seal that only this package can
// set, so a token obtained any other way, such as the zero value, reports
// false from Valid. Code that moves a connection forward should take tokens
// as parameters and pass them to [Authenticated] or [RequireVerified]:
//
//	certOK, err := verifier.VerifyServerCert(roots, chain, "example.com", ocsp)
//	if err != nil {
//		return err // abort the handshake
//	}
//	sigOK, err := verify.VerifyTLS13(chain[0], dss, transcriptHash, serverContext)
//	if err != nil {
//		return err
//	}
//	finOK, err := verify.VerifyFinished(expected, received)
//	if err != nil {
//		return err
//	}
//	peer, err := verify.Authenticated(certOK, sigOK, finOK)
//
// # Policies
//
// [WebPKIVerifier] validates server chains against a [anchors.RootStore] and
// binds them to the requested DNS name. Client authentication is chosen with
// one of [NoClientAuth], [DenyClientAuth], [AllowAnyAuthenticatedClient] or
// [AllowAnyAnonymousOrAuthenticatedClient].
//
// # Engines
//
// Path validation, signature checks and SCT checks are performed by
// pluggable engines ([PathEngine], [SignatureEngine], [SCTEngine]). The
// defaults are built on crypto/x509 and certificate-transparency-go. The
// time source is injectable with [WithTimeFunc] and is never silently
// replaced when it fails.
//
// Errors from this package are recoverable at the handshake layer: the
// connection is aborted with a suitable alert. The only panics are
// [*ContractViolation] values raised by [NoClientAuth] when the handshake
// layer calls an operation the policy declared it never needs.
package verify
