// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify

// seal marks a token as issued by this package. Its address is the proof:
// code outside the package can neither name the type nor obtain a pointer
// to one of the values below.
type seal struct{ kind string }

var (
	serverCertSeal = &seal{kind: "server certificate"}
	clientCertSeal = &seal{kind: "client certificate"}
	signatureSeal  = &seal{kind: "handshake signature"}
	finishedSeal   = &seal{kind: "finished message"}
	peerSeal       = &seal{kind: "peer authenticated"}
)

// Token is implemented by every proof token.
type Token interface {
	// Valid reports whether the token was produced by a successful verification.
	Valid() bool
}

// ServerCertVerified proves that a server certificate chain was validated
// and bound to the requested DNS name.
//
// The zero value is not a proof; check Valid before relying on it.
type ServerCertVerified struct{ s *seal }

func assertServerCertVerified() ServerCertVerified { return ServerCertVerified{s: serverCertSeal} }

// Valid reports whether t was issued by a successful server verification.
func (t ServerCertVerified) Valid() bool { return t.s == serverCertSeal }

func (ServerCertVerified) certProof() {}

// ClientCertVerified proves that a client certificate chain was validated.
//
// The zero value is not a proof; check Valid before relying on it.
type ClientCertVerified struct{ s *seal }

func assertClientCertVerified() ClientCertVerified { return ClientCertVerified{s: clientCertSeal} }

// Valid reports whether t was issued by a successful client verification.
func (t ClientCertVerified) Valid() bool { return t.s == clientCertSeal }

func (ClientCertVerified) certProof() {}

// HandshakeSignatureValid proves that a CertificateVerify or
// ServerKeyExchange signature was checked against the peer certificate.
type HandshakeSignatureValid struct{ s *seal }

func assertHandshakeSignatureValid() HandshakeSignatureValid {
	return HandshakeSignatureValid{s: signatureSeal}
}

// Valid reports whether t was issued by a successful signature check.
func (t HandshakeSignatureValid) Valid() bool { return t.s == signatureSeal }

// FinishedMessageVerified proves that the peer's Finished message matched.
type FinishedMessageVerified struct{ s *seal }

func assertFinishedMessageVerified() FinishedMessageVerified {
	return FinishedMessageVerified{s: finishedSeal}
}

// Valid reports whether t was issued by a successful Finished check.
func (t FinishedMessageVerified) Valid() bool { return t.s == finishedSeal }

// CertProof is a proof that the peer's certificate chain was validated,
// either as a server or as a client. Only [ServerCertVerified] and
// [ClientCertVerified] implement it.
type CertProof interface {
	Token
	certProof()
}

// PeerAuthenticated proves that every check required before application
// data may flow has passed.
type PeerAuthenticated struct {
	s      *seal
	client bool
}

// Valid reports whether p was issued by [Authenticated].
func (p PeerAuthenticated) Valid() bool { return p.s == peerSeal }

// IsClient reports whether the authenticated peer is a client.
func (p PeerAuthenticated) IsClient() bool { return p.client }

// RequireVerified returns [ErrUnverified] unless every token is valid.
// A nil token counts as unverified.
func RequireVerified(tokens ...Token) error {
	for _, t := range tokens {
		if t == nil || !t.Valid() {
			return ErrUnverified
		}
	}
	return nil
}

// Authenticated combines the proofs a handshake must hold before it moves to
// the traffic stage. It fails with [ErrUnverified] if any of them is not a
// genuine proof.
func Authenticated(cert CertProof, sig HandshakeSignatureValid, fin FinishedMessageVerified) (PeerAuthenticated, error) {
	if err := RequireVerified(cert, sig, fin); err != nil {
		return PeerAuthenticated{}, err
	}
	_, client := cert.(ClientCertVerified)
	return PeerAuthenticated{s: peerSeal, client: client}, nil
}
