// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package testpki

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"time"

	ct "github.com/google/certificate-transparency-go"
	cttls "github.com/google/certificate-transparency-go/tls"
)

// Log is a Certificate Transparency log able to issue SCTs in tests.
type Log struct {
	Key       *ecdsa.PrivateKey
	PublicDER []byte
	ID        [sha256.Size]byte
}

// NewLog creates a log with a fresh P-256 key.
func NewLog() (*Log, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	der, err := x509.MarshalPKIXPublicKey(key.Public())
	if err != nil {
		return nil, err
	}
	return &Log{Key: key, PublicDER: der, ID: sha256.Sum256(der)}, nil
}

// SignSCT issues a serialized v1 SCT for the X.509 entry certDER at timestamp,
// in milliseconds since the Unix epoch.
func (l *Log) SignSCT(certDER []byte, timestamp uint64) ([]byte, error) {
	sct := ct.SignedCertificateTimestamp{
		SCTVersion: ct.V1,
		LogID:      ct.LogID{KeyID: l.ID},
		Timestamp:  timestamp,
	}
	entry := ct.LogEntry{
		Leaf: ct.MerkleTreeLeaf{
			Version:  ct.V1,
			LeafType: ct.TimestampedEntryLeafType,
			TimestampedEntry: &ct.TimestampedEntry{
				Timestamp: timestamp,
				EntryType: ct.X509LogEntryType,
				X509Entry: &ct.ASN1Cert{Data: certDER},
			},
		},
	}

	input, err := ct.SerializeSCTSignatureInput(sct, entry)
	if err != nil {
		return nil, err
	}
	sig, err := cttls.CreateSignature(*l.Key, cttls.SHA256, input)
	if err != nil {
		return nil, err
	}
	sct.Signature = ct.DigitallySigned(sig)

	return cttls.Marshal(sct)
}

// Millis converts t to milliseconds since the Unix epoch.
func Millis(t time.Time) uint64 {
	return uint64(t.UnixMilli())
}
