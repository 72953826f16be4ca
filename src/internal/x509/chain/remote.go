// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrNoPeerCertificates indicates a server that completed a handshake without a certificate.
var ErrNoPeerCertificates = errors.New("x509chain: no certificates received from server")

// Presented is what a server sent during a handshake, before any checking.
type Presented struct {
	// Certificates is the chain in wire order, end-entity first.
	Certificates [][]byte
	// OCSPResponse is the stapled OCSP response, if any.
	OCSPResponse []byte
	// SCTs are the signed certificate timestamps sent in the TLS extension.
	SCTs [][]byte
	// ServerName is the name sent in SNI.
	ServerName string
	// Version is the negotiated protocol version.
	Version uint16
}

// FetchPresented establishes a TLS connection to the target host and
// returns what the server presented. Nothing is verified: crypto/tls
// verification is switched off so the caller's verifier makes the decision.
func FetchPresented(ctx context.Context, hostname string, port int, timeout time.Duration) (*Presented, error) {
	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		// We just want what the peer presented, not to verify
		Config: &tls.Config{ServerName: hostname, InsecureSkipVerify: true},
	}

	// ctx bounds both the TCP connect and the handshake
	raw, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(hostname, fmt.Sprint(port)))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s:%d: %w", hostname, port, err)
	}
	defer raw.Close()

	conn, ok := raw.(*tls.Conn)
	if !ok {
		return nil, fmt.Errorf("failed to connect to %s:%d: unexpected connection type %T", hostname, port, raw)
	}

	state := conn.ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return nil, ErrNoPeerCertificates
	}

	presented := &Presented{
		OCSPResponse: state.OCSPResponse,
		SCTs:         state.SignedCertificateTimestamps,
		ServerName:   hostname,
		Version:      state.Version,
	}
	for _, cert := range state.PeerCertificates {
		presented.Certificates = append(presented.Certificates, cert.Raw)
	}

	return presented, nil
}
