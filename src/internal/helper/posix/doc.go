// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package posix provides small process helpers that behave the same on
// [POSIX] systems and Windows.
//
// The CLI uses [GetExecutableName] for the root command's usage line, so
// help output shows the name the binary was installed under.
//
// [POSIX]: https://en.wikipedia.org/wiki/POSIX
package posix
