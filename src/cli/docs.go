// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli implements the tls-trust-verifier command line.
//
// It wires the verify package to files, live servers and a configuration
// file (JSON or YAML, see [Config]), and renders results as text, JSON,
// ASCII trees or markdown tables. Subcommands:
//   - server: verify a server chain for a DNS name, with optional OCSP and SCT evidence
//   - client: run a client chain through a client authentication policy
//   - schemes: list signature schemes accepted under TLS 1.2 and TLS 1.3
package cli
