// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify

import (
	"bytes"
	"crypto/subtle"
)

// tls13SignaturePad is the number of 0x20 bytes that open every TLS 1.3
// CertificateVerify payload (RFC 8446, section 4.4.3).
const tls13SignaturePad = 64

// SignatureVerifier checks handshake signatures.
//
// The certificate passed to its methods must already have been verified
// with a [ServerCertVerifier] or [ClientCertVerifier]; it is not
// re-validated here.
type SignatureVerifier struct {
	opts options
}

// NewSignatureVerifier creates a handshake signature verifier.
func NewSignatureVerifier(opts ...Option) *SignatureVerifier {
	return &SignatureVerifier{opts: newOptions(opts)}
}

var defaultSignatureVerifier = NewSignatureVerifier()

// VerifySignedStruct checks a TLS 1.2 signature over message.
func (v *SignatureVerifier) VerifySignedStruct(message []byte, cert Certificate, dss DigitallySignedStruct) (HandshakeSignatureValid, error) {
	if err := AcceptForTLS12(dss.Scheme); err != nil {
		return HandshakeSignatureValid{}, err
	}

	if err := v.opts.sigs.VerifySignature(dss.Signature, message, cert, dss.Scheme, ModeLegacy); err != nil {
		return HandshakeSignatureValid{}, &SignatureError{Err: err}
	}

	return assertHandshakeSignatureValid(), nil
}

// VerifyTLS13 checks a TLS 1.3 CertificateVerify signature.
//
// contextStringWith0 must include its terminating zero byte, for example
// "TLS 1.3, server CertificateVerify\x00".
func (v *SignatureVerifier) VerifyTLS13(cert Certificate, dss DigitallySignedStruct, handshakeHash, contextStringWith0 []byte) (HandshakeSignatureValid, error) {
	if err := AcceptForTLS13(dss.Scheme); err != nil {
		return HandshakeSignatureValid{}, err
	}

	message := ConstructTLS13Message(handshakeHash, contextStringWith0)
	if err := v.opts.sigs.VerifySignature(dss.Signature, message, cert, dss.Scheme, ModeTLS13); err != nil {
		return HandshakeSignatureValid{}, &SignatureError{Err: err}
	}

	return assertHandshakeSignatureValid(), nil
}

// VerifySignedStruct checks a TLS 1.2 signature with the default engine.
func VerifySignedStruct(message []byte, cert Certificate, dss DigitallySignedStruct) (HandshakeSignatureValid, error) {
	return defaultSignatureVerifier.VerifySignedStruct(message, cert, dss)
}

// VerifyTLS13 checks a TLS 1.3 CertificateVerify signature with the default engine.
func VerifyTLS13(cert Certificate, dss DigitallySignedStruct, handshakeHash, contextStringWith0 []byte) (HandshakeSignatureValid, error) {
	return defaultSignatureVerifier.VerifyTLS13(cert, dss, handshakeHash, contextStringWith0)
}

// ConstructTLS13Message builds the payload covered by a TLS 1.3
// CertificateVerify signature: 64 spaces, the context string (with its
// terminating zero), then the transcript hash.
func ConstructTLS13Message(handshakeHash, contextStringWith0 []byte) []byte {
	msg := make([]byte, 0, tls13SignaturePad+len(contextStringWith0)+len(handshakeHash))
	msg = append(msg, bytes.Repeat([]byte{0x20}, tls13SignaturePad)...)
	msg = append(msg, contextStringWith0...)
	msg = append(msg, handshakeHash...)
	return msg
}

// VerifyFinished compares the verify_data of a received Finished message
// with the expected value in constant time.
func VerifyFinished(expected, received []byte) (FinishedMessageVerified, error) {
	if len(expected) == 0 || subtle.ConstantTimeCompare(expected, received) != 1 {
		return FinishedMessageVerified{}, ErrFinishedMismatch
	}
	return assertFinishedMessageVerified(), nil
}
