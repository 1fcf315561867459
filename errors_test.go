package fibdapp

import (
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrProviderUnavailable", ErrProviderUnavailable, "fibdapp: provider unavailable"},
		{"ErrBindingUnset", ErrBindingUnset, "fibdapp: contract binding not set"},
		{"ErrNoDeployment", ErrNoDeployment, "fibdapp: contract not deployed on this network"},
		{"ErrAlreadyBootstrapped", ErrAlreadyBootstrapped, "fibdapp: session already bootstrapped"},
		{"ErrSessionClosed", ErrSessionClosed, "fibdapp: session closed"},
		{"ErrNoReturnValue", ErrNoReturnValue, "fibdapp: call returned no value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.msg {
				t.Errorf("Expected error message %q, got %q", tt.msg, tt.err.Error())
			}
		})
	}
}

func TestProviderError(t *testing.T) {
	inner := errors.New("connection refused")
	err := &ProviderError{Err: inner}

	expected := "fibdapp: provider unavailable: connection refused"
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Error("Expected errors.Is to match ErrProviderUnavailable")
	}
	if !errors.Is(err, inner) {
		t.Error("Expected errors.Is to match the wrapped error")
	}
}

func TestCallError(t *testing.T) {
	t.Run("with input", func(t *testing.T) {
		err := &CallError{Method: "fib", Input: "10", Err: ErrBindingUnset}

		expected := "fibdapp: call fib(10): fibdapp: contract binding not set"
		if err.Error() != expected {
			t.Errorf("Expected error message %q, got %q", expected, err.Error())
		}
		if !errors.Is(err, ErrBindingUnset) {
			t.Error("Expected errors.Is to match ErrBindingUnset")
		}
	})

	t.Run("without input", func(t *testing.T) {
		err := &CallError{Method: "fib", Err: ErrNoDeployment}

		expected := "fibdapp: call fib: fibdapp: contract not deployed on this network"
		if err.Error() != expected {
			t.Errorf("Expected error message %q, got %q", expected, err.Error())
		}
	})

	t.Run("errors.As", func(t *testing.T) {
		var wrapped error = &CallError{Method: "fib", Input: "x", Err: &ArgumentError{Method: "fib", Err: errInvalidInteger}}

		var callErr *CallError
		if !errors.As(wrapped, &callErr) {
			t.Fatal("Expected errors.As to find *CallError")
		}
		var argErr *ArgumentError
		if !errors.As(wrapped, &argErr) {
			t.Fatal("Expected errors.As to find *ArgumentError")
		}
		if !errors.Is(wrapped, errInvalidInteger) {
			t.Error("Expected errors.Is to reach the innermost error")
		}
	})
}

func TestArgumentError(t *testing.T) {
	err := &ArgumentError{Method: "fib", Index: 0, Type: "uint256", Err: errNegativeUnsigned}

	expected := `fibdapp: argument 0 for method "fib" (uint256): negative value for unsigned type`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if errors.Unwrap(err) != errNegativeUnsigned {
		t.Error("Expected Unwrap to return the wrapped error")
	}
}

func TestMethodNotFoundError(t *testing.T) {
	err := &MethodNotFoundError{Method: "fibonacci"}

	expected := `fibdapp: method "fibonacci" not found in ABI`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
}

func TestArtifactError(t *testing.T) {
	t.Run("with source", func(t *testing.T) {
		err := &ArtifactError{Source: "Fibonacci.json", Err: errors.New("missing abi")}

		expected := "fibdapp: artifact Fibonacci.json: missing abi"
		if err.Error() != expected {
			t.Errorf("Expected error message %q, got %q", expected, err.Error())
		}
	})

	t.Run("without source", func(t *testing.T) {
		err := &ArtifactError{Err: errors.New("missing abi")}

		expected := "fibdapp: artifact: missing abi"
		if err.Error() != expected {
			t.Errorf("Expected error message %q, got %q", expected, err.Error())
		}
	})
}
