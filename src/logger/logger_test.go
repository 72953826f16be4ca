// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/H0llyW00dzZ/tls-trust-verifier/src/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, output string) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for i, line := range strings.Split(strings.TrimSpace(output), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "line %d: failed to parse JSON", i+1)
		entries = append(entries, entry)
	}
	return entries
}

func TestCLILogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Printf",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Printf("test message: %s", "hello")

				assert.Contains(t, buf.String(), "test message: hello")
			},
		},
		{
			name: "Println",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Println("test", "message")

				assert.Contains(t, buf.String(), "test message")
			},
		},
		{
			name: "Debug_Quiet_By_Default",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Debugf("hidden %d", 1)
				assert.Zero(t, buf.Len(), "debug output should be dropped when not verbose")

				log.SetVerbose(true)
				log.Debugf("shown %d", 2)
				assert.Contains(t, buf.String(), "debug: shown 2")
			},
		},
		{
			name: "Warnf",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				log.Warnf("no valid SCTs provided")

				assert.Contains(t, buf.String(), "warning: no valid SCTs provided")
			},
		},
		{
			name: "ConcurrentUsage",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewCLILogger()
				log.SetOutput(&buf)

				const numGoroutines = 50
				const messagesPerGoroutine = 10

				var wg sync.WaitGroup
				wg.Add(numGoroutines)

				for i := range numGoroutines {
					go func(id int) {
						defer wg.Done()
						for j := range messagesPerGoroutine {
							log.Printf("goroutine %d message %d", id, j)
						}
					}(i)
				}

				wg.Wait()

				lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
				assert.Len(t, lines, numGoroutines*messagesPerGoroutine)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}

func TestJSONLogger(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "Silent",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf, true)

				log.Printf("test message: %s", "hello")
				log.Println("another message")
				log.Debugf("debug")
				log.Warnf("warn")

				assert.Zero(t, buf.Len(), "expected no output in silent mode")
			},
		},
		{
			name: "Levels",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf, false)

				log.Printf("info %s", "message")
				log.Debugf("debug %s", "message")
				log.Warnf("warn %s", "message")

				entries := decodeLines(t, buf.String())
				require.Len(t, entries, 3)

				assert.Equal(t, "info", entries[0]["level"])
				assert.Equal(t, "info message", entries[0]["message"])
				assert.Equal(t, "debug", entries[1]["level"])
				assert.Equal(t, "warn", entries[2]["level"])
			},
		},
		{
			name: "SetOutput_Nil",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf, false)

				log.Println("before")

				log.SetOutput(nil)
				log.Println("after")

				assert.Contains(t, buf.String(), "before")
				assert.NotContains(t, buf.String(), "after")
			},
		},
		{
			name: "NilWriter",
			testFunc: func(t *testing.T) {
				log := logger.NewJSONLogger(nil, false)

				assert.NotPanics(t, func() {
					log.Printf("test")
					log.Println("test")
				})
			},
		},
		{
			name: "JSONEscaping",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf, false)

				for _, input := range []string{`test"quote`, `test\backslash`, "test\nnewline", "test\x01control"} {
					buf.Reset()
					log.Printf("%s", input)

					entries := decodeLines(t, buf.String())
					require.Len(t, entries, 1)
					assert.Equal(t, input, entries[0]["message"])
				}
			},
		},
		{
			name: "Concurrent",
			testFunc: func(t *testing.T) {
				var buf bytes.Buffer
				log := logger.NewJSONLogger(&buf, false)

				const numGoroutines = 50

				var wg sync.WaitGroup
				wg.Add(numGoroutines)
				for i := range numGoroutines {
					go func(id int) {
						defer wg.Done()
						log.Printf("goroutine %d", id)
					}(i)
				}
				wg.Wait()

				assert.Len(t, decodeLines(t, buf.String()), numGoroutines)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.testFunc(t)
		})
	}
}

// plainLogger is a Logger that does not implement logger.Leveled.
type plainLogger struct{ buf bytes.Buffer }

func (p *plainLogger) Printf(format string, v ...any) { fmt.Fprintf(&p.buf, format+"\n", v...) }
func (p *plainLogger) Println(v ...any)               { fmt.Fprintln(&p.buf, v...) }
func (p *plainLogger) SetOutput(_ io.Writer)          {}

func TestLevelHelpers(t *testing.T) {
	t.Run("Fallback_To_Printf", func(t *testing.T) {
		log := &plainLogger{}

		logger.Debugf(log, "valid SCT from %s", "log-a")
		logger.Warnf(log, "no valid SCTs provided")

		assert.Contains(t, log.buf.String(), "debug: valid SCT from log-a")
		assert.Contains(t, log.buf.String(), "warning: no valid SCTs provided")
	})

	t.Run("Leveled", func(t *testing.T) {
		var buf bytes.Buffer
		log := logger.NewJSONLogger(&buf, false)

		logger.Debugf(log, "x")
		logger.Warnf(log, "y")

		entries := decodeLines(t, buf.String())
		require.Len(t, entries, 2)
		assert.Equal(t, "debug", entries[0]["level"])
		assert.Equal(t, "warn", entries[1]["level"])
	})

	t.Run("Nil", func(t *testing.T) {
		assert.NotPanics(t, func() {
			logger.Debugf(nil, "x")
			logger.Warnf(nil, "y")
		})
	})
}
