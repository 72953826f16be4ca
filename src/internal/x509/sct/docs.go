// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package x509sct verifies Certificate Transparency signed certificate
// timestamps (RFC 6962) against a set of trusted logs.
//
// Decoding and signature checks are delegated to
// github.com/google/certificate-transparency-go. Each failure is classified
// with an [ErrorKind] so callers can decide whether to skip the record or
// abort; see [Error.ShouldBeFatal].
//
// Only SCTs over X.509 entries are supported. Precertificate SCTs embedded
// in the certificate are out of scope.
package x509sct
