// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package verify

import (
	"errors"
	"fmt"
	"time"
)

// TimeFunc returns the time at which certificates are validated.
type TimeFunc func() (time.Time, error)

// TryNow is the default [TimeFunc]. It reads the wall clock and fails when
// the clock reports a time before the Unix epoch.
func TryNow() (time.Time, error) {
	now := time.Now()
	if now.Before(time.Unix(0, 0)) {
		return time.Time{}, fmt.Errorf("%w: clock is before the Unix epoch", ErrFailedToGetCurrentTime)
	}
	return now, nil
}

// FixedTime returns a [TimeFunc] that always reports t.
func FixedTime(t time.Time) TimeFunc {
	return func() (time.Time, error) { return t, nil }
}

func currentTime(now TimeFunc) (time.Time, error) {
	t, err := now()
	if err != nil {
		if errors.Is(err, ErrFailedToGetCurrentTime) {
			return time.Time{}, err
		}
		return time.Time{}, fmt.Errorf("%w: %w", ErrFailedToGetCurrentTime, err)
	}
	return t, nil
}

// currentMillis reads the time source and converts it to milliseconds since
// the Unix epoch.
func currentMillis(now TimeFunc) (uint64, error) {
	t, err := currentTime(now)
	if err != nil {
		return 0, err
	}
	ms := t.UnixMilli()
	if ms < 0 {
		return 0, fmt.Errorf("%w: %s is before the Unix epoch", ErrFailedToGetCurrentTime, t.UTC().Format(time.RFC3339))
	}
	return uint64(ms), nil
}
