// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/scirnap/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "lookup_miss_error",
			code:    errors.ErrLookupMiss,
			message: "no rename entry",
			wantStr: "[LOOKUP_MISS] no rename entry",
		},
		{
			name:    "config_invalid_error",
			code:    errors.ErrConfigInvalid,
			message: "invalid mode",
			wantStr: "[CONFIG_INVALID] invalid mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrUnsupportedMode, "%s: paired-end (%s) not implemented", "hisat2", "p")
	if err.Message != "hisat2: paired-end (p) not implemented" {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrInternal, "internal error")

		if err.Code != errors.ErrInternal {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrInternal)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[INTERNAL] internal error: base error"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		err := errors.Wrap(nil, errors.ErrInternal, "internal error")
		if err != nil {
			t.Error("Wrap(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrLookupMiss, "missing").
		WithDetail("key", "/data/a.bam").
		WithDetail("tool", "pool")

	if err.Details["key"] != "/data/a.bam" {
		t.Errorf("WithDetail() key = %v, want %v", err.Details["key"], "/data/a.bam")
	}
	if err.Details["tool"] != "pool" {
		t.Errorf("WithDetail() tool = %v, want %v", err.Details["tool"], "pool")
	}
	if got := errors.GetErrorDetails(err); got["tool"] != "pool" {
		t.Errorf("GetErrorDetails() tool = %v", got["tool"])
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrLogClosed, "error 1")
	err2 := errors.New(errors.ErrLogClosed, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should match on code")
	}
	if err1.Is(err3) {
		t.Error("Is() should return false for different codes")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrQCFlag, "bad flag"), errors.ErrQCFlag, true},
		{"different_code", errors.New(errors.ErrQCFlag, "bad flag"), errors.ErrQCMetric, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrFileAccess, "denied"), errors.ErrFileAccess, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrFileAccess, false},
		{"nil_error", nil, errors.ErrFileAccess, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrUnknownTool, "x")); got != errors.ErrUnknownTool {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(stderrors.New("plain")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(nil); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v", got)
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read report")
	qcErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load qc report")

	if !errors.IsErrorCode(qcErr, errors.ErrConfigLoad) {
		t.Error("Top level should have ErrConfigLoad code")
	}

	var middle *errors.PipelineError
	if stderrors.As(qcErr.Unwrap(), &middle) && middle.Code != errors.ErrFileAccess {
		t.Error("Middle error should have ErrFileAccess code")
	}

	if !stderrors.Is(qcErr, rootCause) {
		t.Error("Should find root cause with errors.Is")
	}
}
