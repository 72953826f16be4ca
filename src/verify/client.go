// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify

import "github.com/H0llyW00dzZ/tls-trust-verifier/src/anchors"

// ClientCertVerifier is a server-side policy for client authentication.
//
// Where a method returns ok == false, the handshake must be aborted; it is
// never a synonym for "not required".
type ClientCertVerifier interface {
	// OfferClientAuth reports whether a CertificateRequest is sent at all.
	OfferClientAuth() bool
	// ClientAuthMandatory reports whether the client must present a
	// certificate, given the SNI the client sent (empty if none).
	ClientAuthMandatory(sni string) (mandatory bool, ok bool)
	// ClientAuthRootSubjects returns the root subjects advertised in the
	// CertificateRequest.
	ClientAuthRootSubjects(sni string) (subjects anchors.DistinguishedNames, ok bool)
	// VerifyClientCert validates the chain presented by the client,
	// end-entity first.
	VerifyClientCert(presented []Certificate, sni string) (ClientCertVerified, error)
}

// DefaultClientAuthMandatory is the behaviour of a policy that has no
// opinion beyond whether it offers client authentication.
func DefaultClientAuthMandatory(v ClientCertVerifier) (mandatory bool, ok bool) {
	return v.OfferClientAuth(), true
}

// NoClientAuth never requests client certificates. Asking it for root
// subjects or to verify a certificate is a bug in the caller and panics
// with a [*ContractViolation].
type NoClientAuth struct{}

var _ ClientCertVerifier = NoClientAuth{}

// OfferClientAuth implements [ClientCertVerifier].
func (NoClientAuth) OfferClientAuth() bool { return false }

// ClientAuthMandatory implements [ClientCertVerifier].
func (n NoClientAuth) ClientAuthMandatory(string) (bool, bool) {
	return DefaultClientAuthMandatory(n)
}

// ClientAuthRootSubjects implements [ClientCertVerifier]. It always panics.
func (NoClientAuth) ClientAuthRootSubjects(string) (anchors.DistinguishedNames, bool) {
	panic(&ContractViolation{Policy: "NoClientAuth", Op: "ClientAuthRootSubjects"})
}

// VerifyClientCert implements [ClientCertVerifier]. It always panics.
func (NoClientAuth) VerifyClientCert([]Certificate, string) (ClientCertVerified, error) {
	panic(&ContractViolation{Policy: "NoClientAuth", Op: "VerifyClientCert"})
}

// DenyClientAuth never requests client certificates and refuses every
// client verification request with an error instead of a panic.
type DenyClientAuth struct{}

var _ ClientCertVerifier = DenyClientAuth{}

// OfferClientAuth implements [ClientCertVerifier].
func (DenyClientAuth) OfferClientAuth() bool { return false }

// ClientAuthMandatory implements [ClientCertVerifier].
func (d DenyClientAuth) ClientAuthMandatory(string) (bool, bool) {
	return DefaultClientAuthMandatory(d)
}

// ClientAuthRootSubjects implements [ClientCertVerifier]. It always aborts.
func (DenyClientAuth) ClientAuthRootSubjects(string) (anchors.DistinguishedNames, bool) {
	return nil, false
}

// VerifyClientCert implements [ClientCertVerifier]. It always fails.
func (DenyClientAuth) VerifyClientCert([]Certificate, string) (ClientCertVerified, error) {
	return ClientCertVerified{}, &ContractViolation{Policy: "DenyClientAuth", Op: "VerifyClientCert"}
}

// AllowAnyAuthenticatedClient requires every client to present a
// certificate chaining to one of its roots. The name of the client is not
// checked.
type AllowAnyAuthenticatedClient struct {
	roots *anchors.RootStore
	opts  options
}

var _ ClientCertVerifier = (*AllowAnyAuthenticatedClient)(nil)

// NewAllowAnyAuthenticatedClient creates the policy over a snapshot of roots.
// Later changes to roots do not affect the policy.
func NewAllowAnyAuthenticatedClient(roots *anchors.RootStore, opts ...Option) *AllowAnyAuthenticatedClient {
	snapshot := anchors.NewRootStore()
	if roots != nil {
		snapshot = roots.Clone()
	}
	return &AllowAnyAuthenticatedClient{roots: snapshot, opts: newOptions(opts)}
}

// OfferClientAuth implements [ClientCertVerifier].
func (*AllowAnyAuthenticatedClient) OfferClientAuth() bool { return true }

// ClientAuthMandatory implements [ClientCertVerifier].
func (*AllowAnyAuthenticatedClient) ClientAuthMandatory(string) (bool, bool) { return true, true }

// ClientAuthRootSubjects implements [ClientCertVerifier].
func (a *AllowAnyAuthenticatedClient) ClientAuthRootSubjects(string) (anchors.DistinguishedNames, bool) {
	return a.roots.Subjects(), true
}

// VerifyClientCert implements [ClientCertVerifier]. The chain is validated
// for client usage at the current time.
func (a *AllowAnyAuthenticatedClient) VerifyClientCert(presented []Certificate, _ string) (ClientCertVerified, error) {
	ee, intermediates, trust, err := prepare(a.opts.paths, a.roots, presented)
	if err != nil {
		return ClientCertVerified{}, err
	}

	now, err := currentTime(a.opts.now)
	if err != nil {
		return ClientCertVerified{}, err
	}

	if err := ee.VerifyForUsage(UsageClient, SupportedSigAlgs(), trust, intermediates, now); err != nil {
		return ClientCertVerified{}, &PathValidationError{Err: err}
	}

	return assertClientCertVerified(), nil
}

// AllowAnyAnonymousOrAuthenticatedClient lets clients connect without a
// certificate, but validates any certificate they do present.
//
// The handshake layer must skip VerifyClientCert when the client sent an
// empty Certificate message; called with an empty chain it fails with
// [ErrNoCertificatesPresented].
type AllowAnyAnonymousOrAuthenticatedClient struct {
	inner *AllowAnyAuthenticatedClient
}

var _ ClientCertVerifier = (*AllowAnyAnonymousOrAuthenticatedClient)(nil)

// NewAllowAnyAnonymousOrAuthenticatedClient creates the policy over a snapshot of roots.
func NewAllowAnyAnonymousOrAuthenticatedClient(roots *anchors.RootStore, opts ...Option) *AllowAnyAnonymousOrAuthenticatedClient {
	return &AllowAnyAnonymousOrAuthenticatedClient{inner: NewAllowAnyAuthenticatedClient(roots, opts...)}
}

// OfferClientAuth implements [ClientCertVerifier].
func (a *AllowAnyAnonymousOrAuthenticatedClient) OfferClientAuth() bool {
	return a.inner.OfferClientAuth()
}

// ClientAuthMandatory implements [ClientCertVerifier]. A certificate is
// never required, whatever the SNI.
func (*AllowAnyAnonymousOrAuthenticatedClient) ClientAuthMandatory(string) (bool, bool) {
	return false, true
}

// ClientAuthRootSubjects implements [ClientCertVerifier].
func (a *AllowAnyAnonymousOrAuthenticatedClient) ClientAuthRootSubjects(sni string) (anchors.DistinguishedNames, bool) {
	return a.inner.ClientAuthRootSubjects(sni)
}

// VerifyClientCert implements [ClientCertVerifier].
func (a *AllowAnyAnonymousOrAuthenticatedClient) VerifyClientCert(presented []Certificate, sni string) (ClientCertVerified, error) {
	return a.inner.VerifyClientCert(presented, sni)
}
