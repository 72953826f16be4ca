// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509chain

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// RenderASCIITree renders a presented chain as an ASCII tree diagram.
//
// It displays the certificates in wire order with their role and an
// indicator of the overall verification verdict.
//
// Parameters:
//   - certs: Presented chain, end-entity first
//   - verified: Whether the verifier accepted the chain
//
// Returns:
//   - string: ASCII tree representation of the certificate chain
func RenderASCIITree(certs []*x509.Certificate, verified bool) string {
	if len(certs) == 0 {
		return "No certificates in chain"
	}

	statusIcon := "✓"
	if !verified {
		statusIcon = "✗"
	}

	var result strings.Builder
	for i, cert := range certs {
		connector := "├── "
		if i == len(certs)-1 {
			connector = "└── "
		}

		fmt.Fprintf(&result, "%s[%s] %s (%s)\n", connector, statusIcon, cert.Subject.CommonName, certificateRole(i, len(certs)))
	}

	return result.String()
}

// RenderTable renders a presented chain as a formatted markdown table.
//
// It displays role, subject, issuer, validity, key size and signature
// algorithm for each certificate using tablewriter.
//
// Parameters:
//   - certs: Presented chain, end-entity first
//   - verified: Whether the verifier accepted the chain
//
// Returns:
//   - string: Markdown table representation of the certificate chain
func RenderTable(certs []*x509.Certificate, verified bool) string {
	if len(certs) == 0 {
		return "No certificates to display"
	}

	status := "verified"
	if !verified {
		status = "rejected"
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRenderer(renderer.NewMarkdown(tw.Rendition{Streaming: true})),
	)

	table.Header([]string{"#", "Role", "Subject", "Issuer", "Valid Until", "Key", "Signature", "Status"})

	var rows [][]string
	for i, cert := range certs {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			certificateRole(i, len(certs)),
			cert.Subject.CommonName,
			cert.Issuer.CommonName,
			cert.NotAfter.Format("2006-01-02"),
			keyDescription(cert),
			cert.SignatureAlgorithm.String(),
			status,
		})
	}

	table.Bulk(rows)
	table.Render()
	return buf.String()
}

// ToVisualizationJSON converts a presented chain and its verdict to JSON.
//
// Parameters:
//   - certs: Presented chain, end-entity first
//   - verdict: Verification outcome, "verified" or the error text
//
// Returns:
//   - []byte: JSON representation of the certificate chain
//   - error: Error if JSON marshaling fails
func ToVisualizationJSON(certs []*x509.Certificate, verdict string) ([]byte, error) {
	type CertificateVizData struct {
		Index              int       `json:"index"`
		Role               string    `json:"role"`
		Subject            string    `json:"subject"`
		Issuer             string    `json:"issuer"`
		SerialNumber       string    `json:"serialNumber"`
		SignatureAlgorithm string    `json:"signatureAlgorithm"`
		PublicKey          string    `json:"publicKey"`
		DNSNames           []string  `json:"dnsNames,omitempty"`
		NotBefore          time.Time `json:"notBefore"`
		NotAfter           time.Time `json:"notAfter"`
		IsCA               bool      `json:"isCA"`
	}

	type VisualizationData struct {
		Timestamp    string               `json:"timestamp"`
		ChainLength  int                  `json:"chainLength"`
		Verdict      string               `json:"verdict"`
		Certificates []CertificateVizData `json:"certificates"`
	}

	data := VisualizationData{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		ChainLength:  len(certs),
		Verdict:      verdict,
		Certificates: make([]CertificateVizData, len(certs)),
	}

	for i, cert := range certs {
		data.Certificates[i] = CertificateVizData{
			Index:              i,
			Role:               certificateRole(i, len(certs)),
			Subject:            cert.Subject.CommonName,
			Issuer:             cert.Issuer.CommonName,
			SerialNumber:       cert.SerialNumber.String(),
			SignatureAlgorithm: cert.SignatureAlgorithm.String(),
			PublicKey:          keyDescription(cert),
			DNSNames:           cert.DNSNames,
			NotBefore:          cert.NotBefore,
			NotAfter:           cert.NotAfter,
			IsCA:               cert.IsCA,
		}
	}

	return json.MarshalIndent(data, "", "  ")
}

func keyDescription(cert *x509.Certificate) string {
	switch key := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		return fmt.Sprintf("%d-bit RSA", key.N.BitLen())
	case *ecdsa.PublicKey:
		return fmt.Sprintf("%d-bit ECDSA", key.Curve.Params().BitSize)
	default:
		return cert.PublicKeyAlgorithm.String()
	}
}

// certificateRole describes the position of a certificate in a presented chain.
// Unlike a built path, a presented chain usually ends at an intermediate,
// so only the first position is special.
func certificateRole(index, total int) string {
	switch {
	case index == 0 && total == 1:
		return "End-Entity Certificate (no intermediates)"
	case index == 0:
		return "End-Entity Certificate"
	default:
		return "Intermediate Certificate"
	}
}
