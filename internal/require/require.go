// Package require is a thin wrapper around testify/assert that fails the
// test immediately (t.FailNow) instead of continuing, mirroring the
// require package shape used across the ssa/frontend compiler packages
// this module is adapted from.
package require

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Equal fails the test if expected != actual.
func Equal(t *testing.T, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.Equal(t, expected, actual, msgAndArgs...) {
		t.FailNow()
	}
}

// NotEqual fails the test if expected == actual.
func NotEqual(t *testing.T, expected, actual interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.NotEqual(t, expected, actual, msgAndArgs...) {
		t.FailNow()
	}
}

// True fails the test if value is false.
func True(t *testing.T, value bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.True(t, value, msgAndArgs...) {
		t.FailNow()
	}
}

// False fails the test if value is true.
func False(t *testing.T, value bool, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.False(t, value, msgAndArgs...) {
		t.FailNow()
	}
}

// NoError fails the test if err != nil.
func NoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.NoError(t, err, msgAndArgs...) {
		t.FailNow()
	}
}

// Error fails the test if err == nil.
func Error(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.Error(t, err, msgAndArgs...) {
		t.FailNow()
	}
}

// Nil fails the test if value is not nil.
func Nil(t *testing.T, value interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.Nil(t, value, msgAndArgs...) {
		t.FailNow()
	}
}

// NotNil fails the test if value is nil.
func NotNil(t *testing.T, value interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.NotNil(t, value, msgAndArgs...) {
		t.FailNow()
	}
}

// Len fails the test if the length of value is not the given length.
func Len(t *testing.T, value interface{}, length int, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.Len(t, value, length, msgAndArgs...) {
		t.FailNow()
	}
}

// Contains fails the test if s does not contain contains.
func Contains(t *testing.T, s, contains interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	if !assert.Contains(t, s, contains, msgAndArgs...) {
		t.FailNow()
	}
}
