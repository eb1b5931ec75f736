// Package testutil provides common utility functions for testing.
package testutil

import (
	"bytes"
	"io"
	"math"
	"os"
	"strings"
)

// AlmostEqual reports whether got is within tolerance of want.
func AlmostEqual(got, want, tolerance float64) bool {
	return math.Abs(got-want) <= tolerance
}

// ContainsString reports whether substr is within s.
func ContainsString(s, substr string) bool {
	return strings.Contains(s, substr)
}

// CaptureStdout runs fn with os.Stdout redirected and returns what it wrote.
func CaptureStdout(fn func()) string {
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()

	_ = w.Close()
	os.Stdout = oldStdout
	return <-done
}
