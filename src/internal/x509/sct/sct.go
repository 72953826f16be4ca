// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509sct

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	ct "github.com/google/certificate-transparency-go"
	cttls "github.com/google/certificate-transparency-go/tls"
	ctx509 "github.com/google/certificate-transparency-go/x509"
)

// ErrorKind classifies why a single SCT was rejected.
type ErrorKind int

const (
	// MalformedSCT means the record could not be decoded.
	MalformedSCT ErrorKind = iota
	// InvalidSignature means the log signature does not verify.
	InvalidSignature
	// TimestampInFuture means the SCT claims a time after now.
	TimestampInFuture
	// UnsupportedSCTVersion means the record uses a version other than v1.
	UnsupportedSCTVersion
	// UnknownLog means the record names a log that is not trusted.
	UnknownLog
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedSCT:
		return "malformed SCT"
	case InvalidSignature:
		return "invalid SCT signature"
	case TimestampInFuture:
		return "SCT timestamp in future"
	case UnsupportedSCTVersion:
		return "unsupported SCT version"
	case UnknownLog:
		return "SCT from unknown log"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the classified failure of one SCT.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "x509sct: " + e.Kind.String()
	}
	return fmt.Sprintf("x509sct: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ShouldBeFatal reports whether the failure must abort verification of the
// whole SCT list. Records from unknown logs or future versions are skipped;
// anything else indicates a broken or lying server.
func (e *Error) ShouldBeFatal() bool {
	return e.Kind != UnknownLog && e.Kind != UnsupportedSCTVersion
}

// Log is a Certificate Transparency log trusted to issue SCTs.
//
// Logs are normally built with [NewLog] or [LoadLogList]. A Log assembled
// as a literal works too; its signature verifier is then derived from Key
// on each use.
type Log struct {
	// Description is the human-readable name of the log.
	Description string
	// URL is the log's submission endpoint.
	URL string
	// OperatedBy names the organisation running the log.
	OperatedBy string
	// Key is the DER-encoded SubjectPublicKeyInfo of the log key.
	Key []byte
	// ID is the SHA-256 of Key, as carried in SCTs.
	ID [sha256.Size]byte
	// MaxMergeDelay is the log's maximum merge delay.
	MaxMergeDelay time.Duration

	verifier *ct.SignatureVerifier
}

// signatureVerifier returns the cached verifier, or builds one from Key
// without storing it so a shared Log is never written to.
func (l *Log) signatureVerifier() (*ct.SignatureVerifier, error) {
	if l.verifier != nil {
		return l.verifier, nil
	}

	pub, err := ctx509.ParsePKIXPublicKey(l.Key)
	if err != nil {
		return nil, fmt.Errorf("log %q: failed to parse key: %w", l.Description, err)
	}
	return ct.NewSignatureVerifier(pub)
}

// NewLog creates a log from its DER-encoded public key. The log ID is derived from the key.
func NewLog(description, url, operatedBy string, key []byte, mmd time.Duration) (*Log, error) {
	pub, err := ctx509.ParsePKIXPublicKey(key)
	if err != nil {
		return nil, fmt.Errorf("x509sct: log %q: failed to parse key: %w", description, err)
	}

	verifier, err := ct.NewSignatureVerifier(pub)
	if err != nil {
		return nil, fmt.Errorf("x509sct: log %q: %w", description, err)
	}

	return &Log{
		Description:   description,
		URL:           url,
		OperatedBy:    operatedBy,
		Key:           key,
		ID:            sha256.Sum256(key),
		MaxMergeDelay: mmd,
		verifier:      verifier,
	}, nil
}

// VerifySCT checks a single serialized SCT for the end-entity certificate
// certDER against the trusted logs at nowMillis, in milliseconds since the
// Unix epoch.
//
// The signature is checked before the timestamp, so a forged SCT always
// reports [InvalidSignature].
//
// Returns:
//   - int: Index into logs of the log that issued the SCT
//   - error: A [*Error] describing the failure
func VerifySCT(certDER, sctData []byte, nowMillis uint64, logs []*Log) (int, error) {
	if len(sctData) == 0 {
		return 0, &Error{Kind: MalformedSCT, Err: errors.New("empty record")}
	}
	if ct.Version(sctData[0]) != ct.V1 {
		return 0, &Error{Kind: UnsupportedSCTVersion, Err: fmt.Errorf("version %d", sctData[0])}
	}

	var sct ct.SignedCertificateTimestamp
	rest, err := cttls.Unmarshal(sctData, &sct)
	if err != nil {
		return 0, &Error{Kind: MalformedSCT, Err: err}
	}
	if len(rest) > 0 {
		return 0, &Error{Kind: MalformedSCT, Err: fmt.Errorf("%d trailing bytes", len(rest))}
	}

	index := -1
	for i, log := range logs {
		if log != nil && log.ID == sct.LogID.KeyID {
			index = i
			break
		}
	}
	if index < 0 {
		return 0, &Error{Kind: UnknownLog, Err: fmt.Errorf("log ID %x", sct.LogID.KeyID)}
	}

	entry := ct.LogEntry{
		Leaf: ct.MerkleTreeLeaf{
			Version:  ct.V1,
			LeafType: ct.TimestampedEntryLeafType,
			TimestampedEntry: &ct.TimestampedEntry{
				Timestamp:  sct.Timestamp,
				EntryType:  ct.X509LogEntryType,
				X509Entry:  &ct.ASN1Cert{Data: certDER},
				Extensions: sct.Extensions,
			},
		},
	}
	verifier, err := logs[index].signatureVerifier()
	if err != nil {
		return index, &Error{Kind: InvalidSignature, Err: err}
	}
	if err := verifier.VerifySCTSignature(sct, entry); err != nil {
		return index, &Error{Kind: InvalidSignature, Err: err}
	}

	if sct.Timestamp > nowMillis {
		return index, &Error{Kind: TimestampInFuture, Err: fmt.Errorf("timestamp %d after %d", sct.Timestamp, nowMillis)}
	}

	return index, nil
}

// ParseSCTList splits a TLS-encoded SignedCertificateTimestampList, as found
// in the certificate extension or the TLS extension body, into its records.
func ParseSCTList(data []byte) ([][]byte, error) {
	var list ctx509.SignedCertificateTimestampList
	rest, err := cttls.Unmarshal(data, &list)
	if err != nil {
		return nil, &Error{Kind: MalformedSCT, Err: err}
	}
	if len(rest) > 0 {
		return nil, &Error{Kind: MalformedSCT, Err: fmt.Errorf("%d trailing bytes after SCT list", len(rest))}
	}

	scts := make([][]byte, 0, len(list.SCTList))
	for _, s := range list.SCTList {
		scts = append(scts, s.Val)
	}
	return scts, nil
}

// MarshalSCTList encodes records as a TLS SignedCertificateTimestampList.
func MarshalSCTList(scts [][]byte) ([]byte, error) {
	var list ctx509.SignedCertificateTimestampList
	for _, s := range scts {
		list.SCTList = append(list.SCTList, ctx509.SerializedSCT{Val: s})
	}
	return cttls.Marshal(list)
}
