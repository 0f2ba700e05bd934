// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
	"testing"
)

// TestErrorCodeStringer tests the stringized output for the ErrorCode type.
func TestErrorCodeStringer(t *testing.T) {
	tests := []struct {
		in   ErrorCode
		want string
	}{
		{ErrNilBlock, "ErrNilBlock"},
		{ErrNilLookup, "ErrNilLookup"},
		{ErrDuplicateBlock, "ErrDuplicateBlock"},
		{ErrMissingParent, "ErrMissingParent"},
		{ErrUnexpectedDifficulty, "ErrUnexpectedDifficulty"},
		{ErrKnownInvalid, "ErrKnownInvalid"},
		{ErrBadCheckpoint, "ErrBadCheckpoint"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	// Detect additional error codes that don't have the stringer added.
	if len(tests)-1 != len(errorCodeStrings) {
		t.Errorf("It appears an error code was added without adding an " +
			"associated stringer test")
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result := test.in.String()
		if result != test.want {
			t.Errorf("String #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}
}

// TestRuleError tests the error output for the RuleError type.
func TestRuleError(t *testing.T) {
	tests := []struct {
		in   RuleError
		want string
	}{
		{
			RuleError{Description: "duplicate block"},
			"duplicate block",
		},
		{
			RuleError{Description: "human-readable error"},
			"human-readable error",
		},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result := test.in.Error()
		if result != test.want {
			t.Errorf("Error #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}
}

// TestIsErrorCode ensures IsErrorCode only matches rule errors carrying the
// requested code.
func TestIsErrorCode(t *testing.T) {
	err := ruleError(ErrMissingParent, "orphan")
	if !IsErrorCode(err, ErrMissingParent) {
		t.Fatalf("IsErrorCode did not match %v", err)
	}
	if IsErrorCode(err, ErrKnownInvalid) {
		t.Fatalf("IsErrorCode matched the wrong code")
	}
	if IsErrorCode(errors.New("plain"), ErrMissingParent) {
		t.Fatalf("IsErrorCode matched a non rule error")
	}
	if IsErrorCode(AssertError("boom"), ErrNilBlock) {
		t.Fatalf("IsErrorCode matched an assert error")
	}
}

// TestAssertError tests the error output for the AssertError type.
func TestAssertError(t *testing.T) {
	got := AssertError("zero retarget interval").Error()
	want := "assertion failed: zero retarget interval"
	if got != want {
		t.Fatalf("got: %s want: %s", got, want)
	}
}
