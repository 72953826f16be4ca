// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package posix

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultName is returned when the program name cannot be read from os.Args.
const DefaultName = "tls-trust-verifier"

// GetExecutableName returns the executable name for usage strings.
// The directory and a trailing ".exe" are stripped, and both slash
// styles are handled regardless of the host OS.
func GetExecutableName() string {
	if len(os.Args) == 0 {
		return DefaultName
	}
	return executableName(os.Args[0])
}

func executableName(arg0 string) string {
	parts := strings.FieldsFunc(arg0, func(r rune) bool {
		return r == '/' || r == '\\' || r == filepath.Separator
	})
	if len(parts) == 0 {
		return DefaultName
	}

	name := strings.TrimSuffix(parts[len(parts)-1], ".exe")
	if name == "" {
		return DefaultName
	}
	return name
}
