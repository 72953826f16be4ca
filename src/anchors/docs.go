// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package anchors holds trust anchors: the root certificates a verifier
// accepts as the top of a chain, plus the subject names advertised to
// clients when client authentication is requested.
//
// Stores are built once from configuration (PEM, DER or PKCS#7 bundles)
// and passed by reference into every verification call.
package anchors
