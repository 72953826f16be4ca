// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify_test

import (
	"crypto/x509"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ocsp"

	"github.com/H0llyW00dzZ/tls-trust-verifier/src/anchors"
	x509chain "github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/x509/chain"
	"github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/x509/testpki"
	"github.com/H0llyW00dzZ/tls-trust-verifier/src/verify"
)

// stubEndEntity records the checks a verifier asked for.
type stubEndEntity struct {
	usage     verify.Usage
	algs      []*verify.SignatureAlgorithm
	usageErr  error
	nameErr   error
	nameCalls []string
	now       time.Time
	inters    [][]byte
	trust     []anchors.TrustAnchor
}

func (s *stubEndEntity) VerifyForUsage(usage verify.Usage, algs []*verify.SignatureAlgorithm, trust []anchors.TrustAnchor, intermediates [][]byte, now time.Time) error {
	s.usage, s.algs, s.trust, s.inters, s.now = usage, algs, trust, intermediates, now
	return s.usageErr
}

func (s *stubEndEntity) VerifyDNSName(name string) error {
	s.nameCalls = append(s.nameCalls, name)
	return s.nameErr
}

type stubPathEngine struct {
	ee       *stubEndEntity
	parseErr error
}

func (s *stubPathEngine) ParseEndEntity([]byte) (verify.EndEntity, error) {
	if s.parseErr != nil {
		return nil, s.parseErr
	}
	return s.ee, nil
}

func TestWebPKIVerifier(t *testing.T) {
	pki := newTestPKI(t)

	otherRoot, err := testpki.NewRoot(testpki.Options{CommonName: "Unrelated Root"})
	require.NoError(t, err)
	otherRoots := anchors.NewRootStore()
	require.NoError(t, otherRoots.Add(otherRoot.Cert))

	tests := []struct {
		name      string
		roots     *anchors.RootStore
		presented []verify.Certificate
		dnsName   string
		now       verify.TimeFunc
		wantErr   error
	}{
		{name: "Valid", roots: pki.roots, presented: pki.serverChain(), dnsName: "example.com"},
		{name: "Valid_Second_SAN", roots: pki.roots, presented: pki.serverChain(), dnsName: "www.example.com"},
		{name: "Name_Mismatch", roots: pki.roots, presented: pki.serverChain(), dnsName: "example.net", wantErr: x509chain.ErrCertNotValidForName},
		{name: "Empty_Chain", roots: pki.roots, dnsName: "example.com", wantErr: verify.ErrNoCertificatesPresented},
		{name: "Empty_Chain_Empty_Store", roots: anchors.NewRootStore(), dnsName: "example.com", wantErr: verify.ErrNoCertificatesPresented},
		{name: "Unknown_Issuer", roots: otherRoots, presented: pki.serverChain(), dnsName: "example.com", wantErr: x509chain.ErrUnknownIssuer},
		{name: "Missing_Intermediate", roots: pki.roots, presented: pki.serverChain()[:1], dnsName: "example.com", wantErr: x509chain.ErrUnknownIssuer},
		{name: "Client_Cert_As_Server", roots: pki.roots, presented: pki.clientChain(), dnsName: "client.example", wantErr: x509chain.ErrInvalidUsage},
		{name: "Expired", roots: pki.roots, presented: pki.serverChain(), dnsName: "example.com", now: verify.FixedTime(testpki.Epoch.AddDate(20, 0, 0)), wantErr: x509chain.ErrCertNotValidForTime},
		{name: "Malformed_End_Entity", roots: pki.roots, presented: []verify.Certificate{[]byte("garbage")}, dnsName: "example.com", wantErr: x509chain.ErrBadDER},
		{
			name: "Clock_Failure", roots: pki.roots, presented: pki.serverChain(), dnsName: "example.com",
			now:     func() (time.Time, error) { return time.Time{}, errClockBroken },
			wantErr: verify.ErrFailedToGetCurrentTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			if now == nil {
				now = verify.FixedTime(validAt)
			}
			v := verify.NewWebPKIVerifier(verify.WithTimeFunc(now))

			tok, err := v.VerifyServerCert(tt.roots, tt.presented, tt.dnsName, nil)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.True(t, tok.Valid())
				return
			}

			assert.False(t, tok.Valid())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSupportedSigAlgsIsACopy(t *testing.T) {
	pki := newTestPKI(t)
	v := verify.NewWebPKIVerifier(verify.WithTimeFunc(verify.FixedTime(validAt)))

	algs := verify.SupportedSigAlgs()
	require.Len(t, algs, 11)
	assert.NotSame(t, algs[0], verify.SupportedSigAlgs()[0])

	for _, alg := range algs {
		alg.Signature = x509.UnknownSignatureAlgorithm
		alg.Curve = nil
		alg.MinRSABits = 0
	}
	algs[0] = nil

	_, err := v.VerifyServerCert(pki.roots, pki.serverChain(), "example.com", nil)
	require.NoError(t, err)

	ee := &stubEndEntity{}
	stubbed := verify.NewWebPKIVerifier(
		verify.WithTimeFunc(verify.FixedTime(validAt)),
		verify.WithPathEngine(&stubPathEngine{ee: ee}),
	)
	_, err = stubbed.VerifyServerCert(pki.roots, pki.serverChain(), "example.com", nil)
	require.NoError(t, err)
	require.Len(t, ee.algs, 11)
	assert.Equal(t, x509.ECDSAWithSHA256, ee.algs[0].Signature)

	ee.algs[0].Signature = x509.UnknownSignatureAlgorithm
	assert.Equal(t, x509.ECDSAWithSHA256, verify.SupportedSigAlgs()[0].Signature)
}

func TestWebPKIVerifierErrorShapes(t *testing.T) {
	pki := newTestPKI(t)
	v := verify.NewWebPKIVerifier(verify.WithTimeFunc(verify.FixedTime(validAt)))

	_, err := v.VerifyServerCert(pki.roots, pki.serverChain(), "example.net", nil)
	var pathErr *verify.PathValidationError
	require.ErrorAs(t, err, &pathErr)
	assert.ErrorIs(t, pathErr.Err, x509chain.ErrCertNotValidForName)

	_, err = v.VerifyServerCert(pki.roots, []verify.Certificate{[]byte("garbage")}, "example.com", nil)
	require.ErrorAs(t, err, &pathErr)

	_, err = v.VerifyServerCert(pki.roots, nil, "example.com", nil)
	assert.False(t, errors.As(err, &pathErr))
}

func TestWebPKIVerifierOrdering(t *testing.T) {
	pki := newTestPKI(t)

	t.Run("Name_Checked_After_Chain", func(t *testing.T) {
		ee := &stubEndEntity{}
		v := verify.NewWebPKIVerifier(
			verify.WithPathEngine(&stubPathEngine{ee: ee}),
			verify.WithTimeFunc(verify.FixedTime(validAt)),
		)

		tok, err := v.VerifyServerCert(pki.roots, []verify.Certificate{{1}, {2}, {2}, {3}}, "host.example", nil)
		require.NoError(t, err)
		assert.True(t, tok.Valid())

		assert.Equal(t, verify.UsageServer, ee.usage)
		assert.Equal(t, validAt, ee.now)
		assert.Equal(t, [][]byte{{2}, {2}, {3}}, ee.inters)
		assert.Equal(t, pki.roots.TrustAnchors(), ee.trust)
		assert.Equal(t, []string{"host.example"}, ee.nameCalls)
	})

	t.Run("Chain_Failure_Skips_Name", func(t *testing.T) {
		ee := &stubEndEntity{usageErr: x509chain.ErrUnknownIssuer}
		v := verify.NewWebPKIVerifier(verify.WithPathEngine(&stubPathEngine{ee: ee}))

		_, err := v.VerifyServerCert(pki.roots, []verify.Certificate{{1}}, "host.example", nil)
		assert.ErrorIs(t, err, x509chain.ErrUnknownIssuer)
		assert.Empty(t, ee.nameCalls)
	})

	t.Run("Name_Failure_After_Valid_Chain", func(t *testing.T) {
		ee := &stubEndEntity{nameErr: x509chain.ErrCertNotValidForName}
		v := verify.NewWebPKIVerifier(verify.WithPathEngine(&stubPathEngine{ee: ee}))

		tok, err := v.VerifyServerCert(pki.roots, []verify.Certificate{{1}}, "host.example", nil)
		assert.ErrorIs(t, err, x509chain.ErrCertNotValidForName)
		assert.False(t, tok.Valid())
	})

	t.Run("Clock_Read_Once", func(t *testing.T) {
		clock := &countingClock{now: validAt}
		v := verify.NewWebPKIVerifier(
			verify.WithPathEngine(&stubPathEngine{ee: &stubEndEntity{}}),
			verify.WithTimeFunc(clock.Now),
		)

		_, err := v.VerifyServerCert(pki.roots, []verify.Certificate{{1}}, "host.example", nil)
		require.NoError(t, err)
		assert.Equal(t, 1, clock.reads)
	})
}

func TestWebPKIVerifierOCSP(t *testing.T) {
	pki := newTestPKI(t)

	response, err := ocsp.CreateResponse(pki.inter.Cert, pki.inter.Cert, ocsp.Response{
		Status:       ocsp.Good,
		SerialNumber: big.NewInt(42),
		ThisUpdate:   validAt,
		NextUpdate:   validAt.Add(24 * time.Hour),
	}, pki.inter.Key)
	require.NoError(t, err)

	tests := []struct {
		name     string
		response []byte
		want     string
	}{
		{name: "Parsable", response: response, want: "status good"},
		{name: "Garbage", response: []byte{0x30, 0x00}, want: "unparsable"},
		{name: "Revoked_Is_Not_Enforced", response: mustRevoked(t, pki), want: "status revoked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, log := bufferLogger()
			v := verify.NewWebPKIVerifier(verify.WithTimeFunc(verify.FixedTime(validAt)), verify.WithLogger(log))

			tok, err := v.VerifyServerCert(pki.roots, pki.serverChain(), "example.com", tt.response)
			require.NoError(t, err)
			assert.True(t, tok.Valid())
			assert.Contains(t, buf.String(), "Unvalidated OCSP response")
			assert.Contains(t, buf.String(), tt.want)
		})
	}

	t.Run("Absent_Not_Logged", func(t *testing.T) {
		buf, log := bufferLogger()
		v := verify.NewWebPKIVerifier(verify.WithTimeFunc(verify.FixedTime(validAt)), verify.WithLogger(log))

		_, err := v.VerifyServerCert(pki.roots, pki.serverChain(), "example.com", nil)
		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func mustRevoked(t *testing.T, pki *testPKI) []byte {
	t.Helper()

	response, err := ocsp.CreateResponse(pki.inter.Cert, pki.inter.Cert, ocsp.Response{
		Status:           ocsp.Revoked,
		SerialNumber:     pki.server.Cert.SerialNumber,
		ThisUpdate:       validAt,
		RevokedAt:        validAt.Add(-time.Hour),
		RevocationReason: ocsp.KeyCompromise,
	}, pki.inter.Key)
	require.NoError(t, err)
	return response
}
