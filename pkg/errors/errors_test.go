package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeConfiguration, "alpha out of range: %v", 1.5)

	if err.Code != ErrCodeConfiguration {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeConfiguration)
	}

	if err.Message != "alpha out of range: 1.5" {
		t.Errorf("Message = %v, want %v", err.Message, "alpha out of range: 1.5")
	}

	expected := "CONFIGURATION: alpha out of range: 1.5"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("self-loop")
	err := Wrap(ErrCodeInvalidGraph, cause, "edge 3")

	if err.Code != ErrCodeInvalidGraph {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidGraph)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{"matching code", New(ErrCodeSearchTooLarge, "test"), ErrCodeSearchTooLarge, true},
		{"non-matching code", New(ErrCodeSearchTooLarge, "test"), ErrCodeInvalidGraph, false},
		{"wrapped error", Wrap(ErrCodeInvalidFormat, New(ErrCodeInvalidGraph, "inner"), "outer"), ErrCodeInvalidFormat, true},
		{"non-Error type", errors.New("plain error"), ErrCodeInvalidGraph, false},
		{"nil error", nil, ErrCodeInvalidGraph, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeConfiguration, "test"), ErrCodeConfiguration},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsCallerError(t *testing.T) {
	if !IsCallerError(New(ErrCodeInvalidGraph, "x")) {
		t.Error("INVALID_GRAPH should be a caller error")
	}
	if !IsCallerError(Wrap(ErrCodeConfiguration, errors.New("x"), "y")) {
		t.Error("CONFIGURATION should be a caller error")
	}
	if IsCallerError(New(ErrCodeInternal, "x")) {
		t.Error("INTERNAL_ERROR should not be a caller error")
	}
	if IsCallerError(errors.New("plain")) {
		t.Error("plain errors should not be caller errors")
	}
}
