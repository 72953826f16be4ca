// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify

import (
	"time"

	x509sct "github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/x509/sct"
	"github.com/H0llyW00dzZ/tls-trust-verifier/src/logger"
)

// SCTVerifier checks Certificate Transparency evidence for a certificate.
type SCTVerifier struct {
	opts options
}

// NewSCTVerifier creates an SCT verifier.
func NewSCTVerifier(opts ...Option) *SCTVerifier {
	return &SCTVerifier{opts: newOptions(opts)}
}

var defaultSCTVerifier = NewSCTVerifier()

// VerifySCTs checks the SCTs presented for cert against the trusted logs.
//
// Certificate Transparency is opportunistic: with no trusted logs or no
// SCTs the check passes without reading the clock. Otherwise one valid SCT
// is enough. A record from an unknown log or of an unknown version is
// skipped; any other failure rejects the whole list immediately.
func (v *SCTVerifier) VerifySCTs(cert Certificate, scts [][]byte, logs []*Log) error {
	if len(logs) == 0 || len(scts) == 0 {
		return nil
	}

	now, err := currentMillis(v.opts.now)
	if err != nil {
		return err
	}

	var (
		valid   int
		lastErr error
	)
	for _, sct := range scts {
		index, err := v.opts.scts.VerifySCT(cert, sct, now, logs)
		if err == nil {
			if index >= 0 && index < len(logs) && logs[index] != nil {
				logger.Debugf(v.opts.log, "Valid SCT signed by %s on %s", logs[index].OperatedBy, logs[index].Description)
			}
			valid++
			continue
		}

		if isFatal(err) {
			return &InvalidSCTError{Err: err}
		}
		logger.Debugf(v.opts.log, "SCT ignored because %v", err)
		lastErr = err
	}

	if valid > 0 {
		return nil
	}

	logger.Warnf(v.opts.log, "No valid SCTs provided")
	if lastErr == nil {
		return ErrSCTInvariant
	}
	return &InvalidSCTError{Err: lastErr}
}

// VerifySCTs checks SCTs with the wall clock and the default engine.
func VerifySCTs(cert Certificate, scts [][]byte, logs []*Log) error {
	return defaultSCTVerifier.VerifySCTs(cert, scts, logs)
}

// NewLog creates a trusted log from its DER-encoded public key.
func NewLog(description, url, operatedBy string, key []byte, mmd time.Duration) (*Log, error) {
	return x509sct.NewLog(description, url, operatedBy, key, mmd)
}

// LoadLogListFile reads a v3 JSON log list and returns its usable logs.
func LoadLogListFile(path string) ([]*Log, error) {
	logs, _, err := x509sct.LoadLogListFile(path)
	return logs, err
}

// ParseSCTList splits a TLS-encoded SignedCertificateTimestampList into records.
func ParseSCTList(data []byte) ([][]byte, error) {
	return x509sct.ParseSCTList(data)
}
