// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package anchors

import (
	"crypto/x509"
	"errors"
	"fmt"

	x509certs "github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/x509/certs"
)

var (
	// ErrNilCertificate is returned when a nil certificate is added to a store.
	ErrNilCertificate = errors.New("anchors: nil certificate")

	// ErrEmptyBundle is returned when a trust bundle contains no usable roots.
	ErrEmptyBundle = errors.New("anchors: no trust anchors found in bundle")
)

// DistinguishedName is a DER-encoded X.501 Name, as advertised in a
// CertificateRequest's certificate_authorities list.
type DistinguishedName []byte

// DistinguishedNames is the list of root subjects advertised to a client.
type DistinguishedNames []DistinguishedName

// TrustAnchor is the view of a root that the path-validation engine consumes.
type TrustAnchor struct {
	// Subject is the DER-encoded subject name of the root.
	Subject []byte
	// SPKI is the DER-encoded SubjectPublicKeyInfo of the root.
	SPKI []byte
	// Cert is the parsed root certificate.
	Cert *x509.Certificate
}

// OwnedTrustAnchor is a root held by a [RootStore].
type OwnedTrustAnchor struct {
	cert *x509.Certificate
}

// ToTrustAnchor converts the stored root into the engine representation.
func (o OwnedTrustAnchor) ToTrustAnchor() TrustAnchor {
	return TrustAnchor{
		Subject: o.cert.RawSubject,
		SPKI:    o.cert.RawSubjectPublicKeyInfo,
		Cert:    o.cert,
	}
}

// Subject returns the DER-encoded subject of the root.
func (o OwnedTrustAnchor) Subject() DistinguishedName { return DistinguishedName(o.cert.RawSubject) }

// RootStore is a collection of trusted root certificates.
//
// A RootStore is populated once during configuration and then only read.
// Verification never mutates it, so a populated store may be shared by any
// number of concurrent handshakes without locking. Adding roots while the
// store is in use by verifiers is not safe.
type RootStore struct {
	roots   []OwnedTrustAnchor
	decoder *x509certs.Certificate
}

// NewRootStore creates an empty store.
func NewRootStore() *RootStore {
	return &RootStore{decoder: x509certs.New()}
}

// Add appends cert to the store.
func (s *RootStore) Add(cert *x509.Certificate) error {
	if cert == nil {
		return ErrNilCertificate
	}
	s.roots = append(s.roots, OwnedTrustAnchor{cert: cert})
	return nil
}

// AddDER parses a single DER (or PKCS#7) encoded root and appends it.
func (s *RootStore) AddDER(der []byte) error {
	cert, err := s.decoder.Decode(der)
	if err != nil {
		return fmt.Errorf("anchors: failed to add root: %w", err)
	}
	return s.Add(cert)
}

// AddParsable adds every root in ders that parses, skipping the rest.
// It returns how many roots were added and how many were rejected.
func (s *RootStore) AddParsable(ders [][]byte) (valid, invalid int) {
	for _, der := range ders {
		if err := s.AddDER(der); err != nil {
			invalid++
			continue
		}
		valid++
	}
	return valid, invalid
}

// AddBundle decodes a PEM, DER or PKCS#7 bundle and adds every root in it.
// It returns the number of roots added.
func (s *RootStore) AddBundle(data []byte) (int, error) {
	certs, err := s.decoder.DecodeMultiple(data)
	if err != nil {
		return 0, fmt.Errorf("anchors: failed to decode bundle: %w", err)
	}
	if len(certs) == 0 {
		return 0, ErrEmptyBundle
	}
	for _, cert := range certs {
		s.roots = append(s.roots, OwnedTrustAnchor{cert: cert})
	}
	return len(certs), nil
}

// LoadFile reads a trust bundle from path and adds every root in it.
func (s *RootStore) LoadFile(path string) (int, error) {
	data, err := s.decoder.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("anchors: failed to read %s: %w", path, err)
	}
	return s.AddBundle(data)
}

// Clone returns an independent store holding the same roots.
// Roots added to either store afterwards are not seen by the other.
func (s *RootStore) Clone() *RootStore {
	return &RootStore{roots: s.Roots(), decoder: s.decoder}
}

// Len returns the number of roots in the store.
func (s *RootStore) Len() int { return len(s.roots) }

// IsEmpty reports whether the store holds no roots.
func (s *RootStore) IsEmpty() bool { return len(s.roots) == 0 }

// Roots returns the stored roots in insertion order.
// The returned slice is a copy; the roots themselves are shared.
func (s *RootStore) Roots() []OwnedTrustAnchor {
	return append([]OwnedTrustAnchor(nil), s.roots...)
}

// TrustAnchors converts every root into the engine representation,
// preserving insertion order.
func (s *RootStore) TrustAnchors() []TrustAnchor {
	anchors := make([]TrustAnchor, 0, len(s.roots))
	for _, root := range s.roots {
		anchors = append(anchors, root.ToTrustAnchor())
	}
	return anchors
}

// Subjects returns the subject names of every root, in insertion order.
func (s *RootStore) Subjects() DistinguishedNames {
	names := make(DistinguishedNames, 0, len(s.roots))
	for _, root := range s.roots {
		names = append(names, root.Subject())
	}
	return names
}
