// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package testpki issues throwaway certificate hierarchies and CT logs for tests.
// Certificates are valid from [Epoch] for ten years unless told otherwise, so
// tests verify at a fixed time instead of the wall clock.
package testpki
