// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package testpki

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"math/big"
	"net"
	"time"
)

// KeyType selects the key generated for an issued certificate.
type KeyType int

const (
	// ECDSAP256 generates a NIST P-256 key. It is the default.
	ECDSAP256 KeyType = iota
	// ECDSAP384 generates a NIST P-384 key.
	ECDSAP384
	// RSA2048 generates a 2048-bit RSA key.
	RSA2048
	// RSA1024 generates a 1024-bit RSA key, below every supported minimum.
	RSA1024
)

// Options describes a certificate to issue.
type Options struct {
	CommonName  string
	DNSNames    []string
	IPAddresses []net.IP
	NotBefore   time.Time
	NotAfter    time.Time
	Key         KeyType
	ExtKeyUsage []x509.ExtKeyUsage
	IsCA        bool
}

// Issued is a certificate together with its private key.
type Issued struct {
	Cert *x509.Certificate
	DER  []byte
	Key  crypto.Signer
}

var serial = big.NewInt(1000)

// Epoch is the fixed validity start used when Options leave NotBefore unset.
var Epoch = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

func generateKey(kt KeyType) (crypto.Signer, error) {
	switch kt {
	case ECDSAP256:
		return ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	case ECDSAP384:
		return ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	case RSA2048:
		return rsa.GenerateKey(rand.Reader, 2048)
	case RSA1024:
		return rsa.GenerateKey(rand.Reader, 1024)
	default:
		return nil, errors.New("testpki: unknown key type")
	}
}

func template(opts Options) *x509.Certificate {
	notBefore, notAfter := opts.NotBefore, opts.NotAfter
	if notBefore.IsZero() {
		notBefore = Epoch
	}
	if notAfter.IsZero() {
		notAfter = notBefore.AddDate(10, 0, 0)
	}

	tmpl := &x509.Certificate{
		SerialNumber:          new(big.Int).Add(serial, big.NewInt(time.Now().UnixNano())),
		Subject:               pkix.Name{CommonName: opts.CommonName, Organization: []string{"tls-trust-verifier tests"}},
		DNSNames:              opts.DNSNames,
		IPAddresses:           opts.IPAddresses,
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		ExtKeyUsage:           opts.ExtKeyUsage,
		BasicConstraintsValid: true,
		IsCA:                  opts.IsCA,
	}
	if opts.IsCA {
		tmpl.KeyUsage = x509.KeyUsageCertSign | x509.KeyUsageCRLSign | x509.KeyUsageDigitalSignature
	} else {
		tmpl.KeyUsage = x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment
	}
	return tmpl
}

func create(tmpl, parent *x509.Certificate, pub crypto.PublicKey, signer crypto.Signer, key crypto.Signer) (*Issued, error) {
	der, err := x509.CreateCertificate(rand.Reader, tmpl, parent, pub, signer)
	if err != nil {
		return nil, err
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, err
	}
	return &Issued{Cert: cert, DER: der, Key: key}, nil
}

// NewRoot creates a self-signed root CA with the given options.
// IsCA is forced on.
func NewRoot(opts Options) (*Issued, error) {
	opts.IsCA = true
	key, err := generateKey(opts.Key)
	if err != nil {
		return nil, err
	}
	tmpl := template(opts)
	return create(tmpl, tmpl, key.Public(), key, key)
}

// Issue signs a new certificate described by opts with ca's key.
func (ca *Issued) Issue(opts Options) (*Issued, error) {
	key, err := generateKey(opts.Key)
	if err != nil {
		return nil, err
	}
	return create(template(opts), ca.Cert, key.Public(), ca.Key, key)
}

// PEM returns the certificate PEM-encoded.
func (i *Issued) PEM() []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: i.DER})
}

// Server returns options for a server leaf valid for the given names.
func Server(names ...string) Options {
	cn := ""
	if len(names) > 0 {
		cn = names[0]
	}
	return Options{
		CommonName:  cn,
		DNSNames:    names,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}
}

// Client returns options for a client leaf.
func Client(cn string) Options {
	return Options{
		CommonName:  cn,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
	}
}

// Intermediate returns options for an intermediate CA.
func Intermediate(cn string) Options {
	return Options{CommonName: cn, IsCA: true}
}
