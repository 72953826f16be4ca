// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain_test

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	x509chain "github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/x509/testpki"
)

func sign(t *testing.T, key crypto.Signer, message []byte, hash crypto.Hash, pss bool) []byte {
	t.Helper()

	h := hash.New()
	h.Write(message)
	digest := h.Sum(nil)

	var opts crypto.SignerOpts = hash
	if pss {
		opts = &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: hash}
	}

	sig, err := key.Sign(rand.Reader, digest, opts)
	require.NoError(t, err)
	return sig
}

func TestVerifySignature(t *testing.T) {
	root, err := testpki.NewRoot(testpki.Options{CommonName: "Signature Root"})
	require.NoError(t, err)

	leaf := func(kt testpki.KeyType) *testpki.Issued {
		opts := testpki.Server("signer.example")
		opts.Key = kt
		issued, err := root.Issue(opts)
		require.NoError(t, err)
		return issued
	}
	p256, p384, rsa2048, rsa1024 := leaf(testpki.ECDSAP256), leaf(testpki.ECDSAP384), leaf(testpki.RSA2048), leaf(testpki.RSA1024)

	message := []byte("handshake transcript")

	tests := []struct {
		name      string
		signer    *testpki.Issued
		hash      crypto.Hash
		pss       bool
		scheme    tls.SignatureScheme
		mode      x509chain.SignatureMode
		message   []byte
		wantErr   error
		garbleSig bool
	}{
		{name: "P256_Legacy", signer: p256, hash: crypto.SHA256, scheme: tls.ECDSAWithP256AndSHA256, mode: x509chain.ModeLegacy},
		{name: "P256_TLS13", signer: p256, hash: crypto.SHA256, scheme: tls.ECDSAWithP256AndSHA256, mode: x509chain.ModeTLS13},
		{name: "P384_TLS13", signer: p384, hash: crypto.SHA384, scheme: tls.ECDSAWithP384AndSHA384, mode: x509chain.ModeTLS13},
		{name: "P256_Key_SHA384_Legacy", signer: p256, hash: crypto.SHA384, scheme: tls.ECDSAWithP384AndSHA384, mode: x509chain.ModeLegacy},
		{
			name: "P256_Key_SHA384_TLS13_Curve_Mismatch", signer: p256, hash: crypto.SHA384,
			scheme: tls.ECDSAWithP384AndSHA384, mode: x509chain.ModeTLS13,
			wantErr: x509chain.ErrUnsupportedSignatureAlgorithmForPublicKey,
		},
		{name: "PKCS1_Legacy", signer: rsa2048, hash: crypto.SHA256, scheme: tls.PKCS1WithSHA256, mode: x509chain.ModeLegacy},
		{name: "PKCS1_SHA512_Legacy", signer: rsa2048, hash: crypto.SHA512, scheme: tls.PKCS1WithSHA512, mode: x509chain.ModeLegacy},
		{
			name: "PKCS1_TLS13_Refused", signer: rsa2048, hash: crypto.SHA256,
			scheme: tls.PKCS1WithSHA256, mode: x509chain.ModeTLS13,
			wantErr: x509chain.ErrUnsupportedSignatureAlgorithm,
		},
		{name: "PSS_Legacy", signer: rsa2048, hash: crypto.SHA256, pss: true, scheme: tls.PSSWithSHA256, mode: x509chain.ModeLegacy},
		{name: "PSS_SHA384_TLS13", signer: rsa2048, hash: crypto.SHA384, pss: true, scheme: tls.PSSWithSHA384, mode: x509chain.ModeTLS13},
		{
			name: "PSS_Signature_Under_PKCS1_Scheme", signer: rsa2048, hash: crypto.SHA256, pss: true,
			scheme: tls.PKCS1WithSHA256, mode: x509chain.ModeLegacy,
			wantErr: x509chain.ErrInvalidSignatureForPublicKey,
		},
		{
			name: "Small_RSA_Key", signer: rsa1024, hash: crypto.SHA256, pss: true,
			scheme: tls.PSSWithSHA256, mode: x509chain.ModeTLS13,
			wantErr: x509chain.ErrUnsupportedSignatureAlgorithmForPublicKey,
		},
		{
			name: "ECDSA_Scheme_With_RSA_Key", signer: rsa2048, hash: crypto.SHA256,
			scheme: tls.ECDSAWithP256AndSHA256, mode: x509chain.ModeLegacy,
			wantErr: x509chain.ErrUnsupportedSignatureAlgorithmForPublicKey,
		},
		{
			name: "RSA_Scheme_With_ECDSA_Key", signer: p256, hash: crypto.SHA256,
			scheme: tls.PSSWithSHA256, mode: x509chain.ModeTLS13,
			wantErr: x509chain.ErrUnsupportedSignatureAlgorithmForPublicKey,
		},
		{
			name: "Unknown_Scheme", signer: p256, hash: crypto.SHA256,
			scheme: tls.Ed25519, mode: x509chain.ModeTLS13,
			wantErr: x509chain.ErrUnsupportedSignatureAlgorithm,
		},
		{
			name: "Tampered_Message", signer: p256, hash: crypto.SHA256,
			scheme: tls.ECDSAWithP256AndSHA256, mode: x509chain.ModeTLS13,
			message: []byte("another transcript"),
			wantErr: x509chain.ErrInvalidSignatureForPublicKey,
		},
		{
			name: "Garbled_Signature", signer: rsa2048, hash: crypto.SHA384, pss: true,
			scheme: tls.PSSWithSHA384, mode: x509chain.ModeLegacy, garbleSig: true,
			wantErr: x509chain.ErrInvalidSignatureForPublicKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := sign(t, tt.signer.Key, message, tt.hash, tt.pss)
			if tt.garbleSig {
				sig[len(sig)/2] ^= 0xff
			}

			verified := message
			if tt.message != nil {
				verified = tt.message
			}

			err := x509chain.VerifySignature(sig, verified, tt.signer.DER, tt.scheme, tt.mode)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("Bad_Certificate", func(t *testing.T) {
		err := x509chain.VerifySignature([]byte{1}, message, []byte("junk"), tls.ECDSAWithP256AndSHA256, x509chain.ModeLegacy)
		assert.ErrorIs(t, err, x509chain.ErrBadDER)
	})
}

func TestSignatureModeString(t *testing.T) {
	assert.Equal(t, "legacy", x509chain.ModeLegacy.String())
	assert.Equal(t, "tls13", x509chain.ModeTLS13.String())
}
