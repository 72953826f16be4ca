// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify

import (
	"crypto/tls"
	"errors"
	"fmt"
)

var (
	// ErrNoCertificatesPresented indicates an empty peer certificate list.
	ErrNoCertificatesPresented = errors.New("verify: no certificates presented")

	// ErrFailedToGetCurrentTime indicates that the time source failed.
	// Verification never falls back to a default time.
	ErrFailedToGetCurrentTime = errors.New("verify: failed to get current time")

	// ErrContractViolation indicates the handshake layer called an operation
	// that the selected policy declared it would never need.
	ErrContractViolation = errors.New("verify: contract violation")

	// ErrUnverified indicates a proof token that was not produced by a
	// successful verification.
	ErrUnverified = errors.New("verify: proof token not issued by a verification")

	// ErrSCTInvariant indicates that SCT verification found no valid record
	// and recorded no error either. It signals a bug, not a peer problem.
	ErrSCTInvariant = errors.New("verify: internal error: no SCT validated and no error recorded")

	// ErrFinishedMismatch indicates a Finished message whose verify_data differs from the expected value.
	ErrFinishedMismatch = errors.New("verify: finished message mismatch")
)

// PathValidationError reports that a certificate chain was rejected.
// Err holds the engine error.
type PathValidationError struct {
	Err error
}

func (e *PathValidationError) Error() string {
	return fmt.Sprintf("verify: invalid certificate: %v", e.Err)
}

func (e *PathValidationError) Unwrap() error { return e.Err }

// SignatureError reports that a handshake signature was rejected by the engine.
type SignatureError struct {
	Err error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("verify: invalid signature: %v", e.Err)
}

func (e *SignatureError) Unwrap() error { return e.Err }

// PeerMisbehavedError reports a protocol violation by the peer, such as
// negotiating a signature scheme it was never offered.
type PeerMisbehavedError struct {
	Msg    string
	Scheme tls.SignatureScheme
}

func (e *PeerMisbehavedError) Error() string {
	return "verify: peer misbehaved: " + e.Msg
}

// InvalidSCTError reports that the SCTs presented with a certificate were
// rejected. Err is the classified engine error of the deciding record.
type InvalidSCTError struct {
	Err error
}

func (e *InvalidSCTError) Error() string {
	return fmt.Sprintf("verify: invalid SCT: %v", e.Err)
}

func (e *InvalidSCTError) Unwrap() error { return e.Err }

// ContractViolation is the panic value raised when a client policy is asked
// to do something it declared it never does. It matches [ErrContractViolation]
// under errors.Is.
type ContractViolation struct {
	Policy string
	Op     string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("verify: contract violation: %s called on %s", e.Op, e.Policy)
}

// Is reports whether target is [ErrContractViolation].
func (e *ContractViolation) Is(target error) bool { return target == ErrContractViolation }
