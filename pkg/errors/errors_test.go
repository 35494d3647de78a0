package errors

import (
	"errors"
	"strings"
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
	cause := errors.New("graph has no nodes")
	err := Wrap(ErrCodeLayout, cause, "layout failed")

	if err.Code != ErrCodeLayout {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeLayout)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	if !strings.HasSuffix(err.Error(), ": graph has no nodes") {
		t.Errorf("Error() = %q, want cause suffix", err.Error())
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
			code:     ErrCodeLayout,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeRender, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeRender,
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
			err:      New(ErrCodeInvalidFunction, "test"),
			expected: ErrCodeInvalidFunction,
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

func TestIsInput(t *testing.T) {
	if !IsInput(New(ErrCodeInvalidFormat, "bad")) {
		t.Error("IsInput(INVALID_FORMAT) = false, want true")
	}
	if IsInput(New(ErrCodeLayout, "engine")) {
		t.Error("IsInput(LAYOUT_FAILED) = true, want false")
	}
	if IsInput(errors.New("plain")) {
		t.Error("IsInput(plain) = true, want false")
	}
}

func TestValidateFunctionName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty selects first", "", false},
		{"mangled name", "_Z3fooi", false},
		{"control char", "foo\x01", true},
		{"too long", strings.Repeat("a", maxFunctionName+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFunctionName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFunctionName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFunction) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidFunction)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	if err := ValidateOutputPath("out/foo.svg"); err != nil {
		t.Errorf("ValidateOutputPath() unexpected error: %v", err)
	}
	if err := ValidateOutputPath("  "); err == nil {
		t.Error("ValidateOutputPath(blank) should fail")
	}
	if err := ValidateOutputPath("a\x00b"); err == nil {
		t.Error("ValidateOutputPath(null byte) should fail")
	}
}
