// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
// Use of this source code is governed by a BSD 3-Clause
// license that can be found in the LICENSE file.

// tls-trust-verifier is a command-line tool that runs the TLS trust
// verification layer against presented certificate chains: server
// authentication, client authentication policies, and Certificate
// Transparency checks.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/tls-trust-verifier/cmd/tls-trust-verifier@latest
//
// # Usage
//
//	tls-trust-verifier [COMMAND] [FLAGS]
//
// # Commands
//
//	server [CHAIN_FILE]   Verify a server chain for a DNS name
//	client [CHAIN_FILE]   Run a client chain through a client-auth policy
//	schemes               List the signature schemes the verifier accepts
//
// # Global Flags
//
//	    --config   Configuration file (JSON or YAML)
//	-r, --roots    Trust anchor bundle (PEM or DER)
//	-j, --json     Emit JSON output
//	-v, --verbose  Enable debug logging
//	    --at       Verify at a fixed RFC3339 time instead of now
//
// # Examples
//
// Verify a chain file for a host name:
//
//	tls-trust-verifier server chain.pem -r roots.pem -n example.com
//
// Capture and verify a live server, including its SCTs:
//
//	tls-trust-verifier server -c example.com -r roots.pem --log-list log_list.json --tree
//
// Check a client chain under the optional-auth policy:
//
//	tls-trust-verifier client client.pem -r ca.pem -p optional
package main
