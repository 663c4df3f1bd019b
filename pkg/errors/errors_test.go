package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeReadFailed, cause, "failed to read")

	if err.Code != ErrCodeReadFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeReadFailed)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
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
		{
			name:     "matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeReadFailed,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeReadFailed, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeReadFailed,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
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
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidManifest, "test"),
			expected: ErrCodeInvalidManifest,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
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
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessageWithCause(t *testing.T) {
	err := Wrap(ErrCodeReadFailed, errors.New("permission denied"), "read Cargo.toml")
	expected := "read Cargo.toml: permission denied"
	if got := UserMessage(err); got != expected {
		t.Errorf("UserMessage() = %v, want %v", got, expected)
	}
}

func TestManifestError(t *testing.T) {
	t.Run("with position", func(t *testing.T) {
		err := &ManifestError{Path: "Cargo.toml", Line: 3, Col: 7, Err: errors.New("expected '='")}
		expected := "Cargo.toml:3:7: expected '='"
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("line only", func(t *testing.T) {
		err := &ManifestError{Path: "Cargo.toml", Line: 2, Err: errors.New("bad")}
		expected := "Cargo.toml:2: bad"
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("without position", func(t *testing.T) {
		err := &ManifestError{Path: "Cargo.toml", Err: errors.New("bad")}
		expected := "Cargo.toml: bad"
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		cause := errors.New("bad")
		err := Wrap(ErrCodeInvalidManifest, &ManifestError{Path: "x", Err: cause}, "invalid TOML")
		if !Is(err, ErrCodeInvalidManifest) {
			t.Error("Is(err, ErrCodeInvalidManifest) = false, want true")
		}
		if !errors.Is(err, cause) {
			t.Error("errors.Is(err, cause) = false, want true")
		}
		var me *ManifestError
		if !errors.As(err, &me) || me.Path != "x" {
			t.Errorf("errors.As() did not find ManifestError, got %v", me)
		}
	})
}
