// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509chain is the path-validation and signature engine behind the
// verify package. It is built on crypto/x509 and provides:
//   - Validation of an end-entity certificate against trust anchors and
//     presented intermediates at a given time, for server or client usage,
//     restricted to an allow-list of signature algorithms.
//   - Name binding checks against the subjectAltName extension.
//   - Handshake signature checks in TLS 1.2 (legacy) or TLS 1.3 mode.
//   - Retrieval of what a live server presents, and chain rendering for reports.
//
// The engine is policy-free: which algorithms to allow, which time to use
// and how to map failures onto protocol errors is decided by the caller.
package x509chain
