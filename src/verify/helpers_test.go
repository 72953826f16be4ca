// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/H0llyW00dzZ/tls-trust-verifier/src/anchors"
	"github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/x509/testpki"
	"github.com/H0llyW00dzZ/tls-trust-verifier/src/logger"
	"github.com/H0llyW00dzZ/tls-trust-verifier/src/verify"
)

// validAt is inside the validity window of every testpki certificate.
var validAt = testpki.Epoch.Add(48 * time.Hour)

var errClockBroken = errors.New("clock broken")

type testPKI struct {
	root   *testpki.Issued
	inter  *testpki.Issued
	server *testpki.Issued
	client *testpki.Issued
	roots  *anchors.RootStore
}

func newTestPKI(t *testing.T) *testPKI {
	t.Helper()

	root, err := testpki.NewRoot(testpki.Options{CommonName: "Verify Root"})
	require.NoError(t, err)
	inter, err := root.Issue(testpki.Intermediate("Verify Intermediate"))
	require.NoError(t, err)
	server, err := inter.Issue(testpki.Server("example.com", "www.example.com"))
	require.NoError(t, err)
	client, err := inter.Issue(testpki.Client("client.example"))
	require.NoError(t, err)

	roots := anchors.NewRootStore()
	require.NoError(t, roots.Add(root.Cert))

	return &testPKI{root: root, inter: inter, server: server, client: client, roots: roots}
}

func (p *testPKI) serverChain() []verify.Certificate {
	return []verify.Certificate{p.server.DER, p.inter.DER}
}

func (p *testPKI) clientChain() []verify.Certificate {
	return []verify.Certificate{p.client.DER, p.inter.DER}
}

// countingClock is a TimeFunc that records how often it was read.
type countingClock struct {
	now   time.Time
	err   error
	reads int
}

func (c *countingClock) Now() (time.Time, error) {
	c.reads++
	return c.now, c.err
}

func bufferLogger() (*bytes.Buffer, logger.Logger) {
	var buf bytes.Buffer
	return &buf, logger.NewJSONLogger(&buf, false)
}
