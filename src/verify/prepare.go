// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify

import "github.com/H0llyW00dzZ/tls-trust-verifier/src/anchors"

// prepare converts a presented chain and a root store into the inputs of
// the path engine. presented[0] is always the end-entity certificate; the
// rest become intermediates in wire order, duplicates included.
func prepare(engine PathEngine, roots *anchors.RootStore, presented []Certificate) (EndEntity, [][]byte, []anchors.TrustAnchor, error) {
	if len(presented) == 0 {
		return nil, nil, nil, ErrNoCertificatesPresented
	}

	ee, err := engine.ParseEndEntity(presented[0])
	if err != nil {
		return nil, nil, nil, &PathValidationError{Err: err}
	}

	intermediates := make([][]byte, 0, len(presented)-1)
	for _, cert := range presented[1:] {
		intermediates = append(intermediates, cert)
	}

	var trust []anchors.TrustAnchor
	if roots != nil {
		trust = roots.TrustAnchors()
	}

	return ee, intermediates, trust, nil
}
