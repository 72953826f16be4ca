// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package x509sct

import (
	"fmt"
	"os"
	"time"

	"github.com/google/certificate-transparency-go/loglist3"

	"github.com/H0llyW00dzZ/tls-trust-verifier/src/internal/helper/gc"
)

// LoadLogList parses a log list in the v3 JSON schema published by Google
// and returns its usable logs, in file order.
//
// Logs in the retired or rejected state and logs whose key cannot be
// parsed are skipped; skipped reports how many.
//
// Parameters:
//   - data: Log list JSON
//
// Returns:
//   - []*Log: Trusted logs
//   - int: Number of entries skipped
//   - error: Error if the document is not a valid log list
func LoadLogList(data []byte) (logs []*Log, skipped int, err error) {
	list, err := loglist3.NewFromJSON(data)
	if err != nil {
		return nil, 0, fmt.Errorf("x509sct: failed to parse log list: %w", err)
	}

	for _, op := range list.Operators {
		for _, l := range op.Logs {
			if l.State != nil {
				if st := l.State.LogStatus(); st == loglist3.RetiredLogStatus || st == loglist3.RejectedLogStatus {
					skipped++
					continue
				}
			}

			log, err := NewLog(l.Description, l.URL, op.Name, l.Key, time.Duration(l.MMD)*time.Second)
			if err != nil {
				skipped++
				continue
			}
			logs = append(logs, log)
		}
	}

	return logs, skipped, nil
}

// LoadLogListFile reads and parses a log list file.
func LoadLogListFile(path string) ([]*Log, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("x509sct: failed to open log list: %w", err)
	}
	defer f.Close()

	data, err := gc.ReadAll(f)
	if err != nil {
		return nil, 0, fmt.Errorf("x509sct: failed to read log list: %w", err)
	}
	return LoadLogList(data)
}
