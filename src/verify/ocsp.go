// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify

import (
	"time"

	"golang.org/x/crypto/ocsp"

	"github.com/H0llyW00dzZ/tls-trust-verifier/src/logger"
)

// logOCSPResponse records a stapled OCSP response for diagnostics.
// The response is not validated and never affects the verification result.
func logOCSPResponse(log logger.Logger, response []byte) {
	// A nil issuer makes ParseResponse skip the signature check.
	resp, err := ocsp.ParseResponse(response, nil)
	if err != nil {
		logger.Debugf(log, "Unvalidated OCSP response: %d bytes, unparsable: %v", len(response), err)
		return
	}

	logger.Debugf(log, "Unvalidated OCSP response: %d bytes, status %s, produced at %s",
		len(response), ocspStatus(resp.Status), resp.ProducedAt.UTC().Format(time.RFC3339))
}

func ocspStatus(status int) string {
	switch status {
	case ocsp.Good:
		return "good"
	case ocsp.Revoked:
		return "revoked"
	case ocsp.Unknown:
		return "unknown"
	case ocsp.ServerFailed:
		return "server failed"
	default:
		return "invalid"
	}
}
