// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509certs

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"

	"github.com/cloudflare/cfssl/crypto/pkcs7"
	"github.com/cloudflare/cfssl/helpers"

	"github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/helper/gc"
)

var (
	// ErrInvalidPEMBlock indicates that the provided data does not contain a valid PEM block.
	ErrInvalidPEMBlock = errors.New("x509certs: invalid PEM block")

	// ErrInvalidBlockType indicates that the PEM block type is not the expected certificate type.
	ErrInvalidBlockType = errors.New("x509certs: invalid block type")

	// ErrParseCertificate indicates a failure to parse the certificate from the provided data.
	ErrParseCertificate = errors.New("x509certs: failed to parse certificate")

	// ErrNoCertificatesInPKCS indicates that no certificates were found in the PKCS7 data.
	ErrNoCertificatesInPKCS = errors.New("x509certs: no certificates found in PKCS7 data")

	// ErrNoCertificates indicates that a bundle decoded to zero certificates.
	ErrNoCertificates = errors.New("x509certs: no certificates found")
)

// Certificate provides methods to decode and encode [X.509] certificates
// for trust bundles and presented chains.
//
// [X.509]: https://en.wikipedia.org/wiki/X.509
type Certificate struct {
	certBlockType string
}

// New creates a new Certificate with default settings.
func New() *Certificate {
	return &Certificate{
		certBlockType: "CERTIFICATE",
	}
}

// IsPEM checks if the data is in PEM format.
func (c *Certificate) IsPEM(data []byte) bool {
	block, _ := pem.Decode(data)
	return block != nil
}

// decodePEMBlock decodes a PEM block and checks its type.
func (c *Certificate) decodePEMBlock(data []byte) (*pem.Block, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEMBlock
	}
	if block.Type != c.certBlockType {
		return nil, ErrInvalidBlockType
	}
	return block, nil
}

// DecodeMultiple decodes one or more certificates from data, keeping their order.
//
// PEM input may mix CERTIFICATE and PKCS7 blocks. DER input may be a
// concatenation of certificates or a PKCS#7 / PKCS#12 bundle; both are
// handled by cfssl's helpers.
func (c *Certificate) DecodeMultiple(data []byte) ([]*x509.Certificate, error) {
	if c.IsPEM(data) {
		for rest := data; len(rest) > 0; {
			block, next := pem.Decode(rest)
			if block == nil {
				break
			}
			if block.Type != c.certBlockType && block.Type != "PKCS7" {
				return nil, ErrInvalidBlockType
			}
			rest = next
		}

		certs, err := helpers.ParseCertificatesPEM(data)
		if err != nil {
			return nil, ErrParseCertificate
		}
		return certs, nil
	}

	if certs, err := x509.ParseCertificates(data); err == nil {
		return certs, nil
	}

	certs, _, err := helpers.ParseCertificatesDER(data, "")
	if err != nil {
		return nil, ErrParseCertificate
	}

	return certs, nil
}

// DecodeChain decodes a presented chain into raw DER certificates, in the
// order they appear. The end-entity certificate is expected first.
func (c *Certificate) DecodeChain(data []byte) ([][]byte, error) {
	certs, err := c.DecodeMultiple(data)
	if err != nil {
		return nil, err
	}
	if len(certs) == 0 {
		return nil, ErrNoCertificates
	}

	chain := make([][]byte, 0, len(certs))
	for _, cert := range certs {
		chain = append(chain, c.EncodeDER(cert))
	}
	return chain, nil
}

// Decode decodes a single certificate from data.
func (c *Certificate) Decode(data []byte) (*x509.Certificate, error) {
	if c.IsPEM(data) {
		block, err := c.decodePEMBlock(data)
		if err != nil {
			return nil, err
		}

		data = block.Bytes
	}

	cert, err := x509.ParseCertificate(data)
	if err == nil {
		return cert, nil
	}

	// Attempt to parse as PKCS7 using Cloudflare's library
	p, err := pkcs7.ParsePKCS7(data)
	if err != nil {
		return nil, ErrParseCertificate
	}
	if len(p.Content.SignedData.Certificates) == 0 {
		return nil, ErrNoCertificatesInPKCS
	}

	return p.Content.SignedData.Certificates[0], nil
}

// ReadFile reads a certificate file through the shared buffer pool.
func (c *Certificate) ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return gc.ReadAll(f)
}

// EncodePEM encodes a certificate to PEM format.
func (c *Certificate) EncodePEM(cert *x509.Certificate) []byte {
	block := pem.Block{
		Type:  c.certBlockType,
		Bytes: cert.Raw,
	}
	return pem.EncodeToMemory(&block)
}

// EncodeDER encodes a certificate to DER format.
func (c *Certificate) EncodeDER(cert *x509.Certificate) []byte { return cert.Raw }

// EncodeMultiplePEM encodes multiple certificates to PEM format.
func (c *Certificate) EncodeMultiplePEM(certs []*x509.Certificate) []byte {
	var data []byte

	for _, cert := range certs {
		data = append(data, c.EncodePEM(cert)...)
	}

	return data
}
