package fibdapp

import (
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

const truffleArtifact = `{
	"contractName": "Fibonacci",
	"abi": [
		{
			"inputs": [{"internalType": "uint256", "name": "n", "type": "uint256"}],
			"name": "fib",
			"outputs": [{"internalType": "uint256", "name": "", "type": "uint256"}],
			"stateMutability": "pure",
			"type": "function"
		}
	],
	"networks": {
		"5777": {
			"address": "0x5FbDB2315678afecb367f032d93F642f64180aa3",
			"transactionHash": "0x9f0b3c3e6a1a1b8c9c1d3e2f4a5b6c7d8e9f0a1b2c3d4e5f60718293a4b5c6d7"
		},
		"5": {
			"address": "0x000000000000000000000000000000000000000C"
		},
		"42": {
			"address": ""
		}
	}
}`

func TestParseArtifact(t *testing.T) {
	a, err := ParseArtifact([]byte(truffleArtifact))
	if err != nil {
		t.Fatalf("ParseArtifact failed: %v", err)
	}

	t.Run("name", func(t *testing.T) {
		if a.Name() != "Fibonacci" {
			t.Errorf("Expected name Fibonacci, got %q", a.Name())
		}
	})

	t.Run("abi has fib", func(t *testing.T) {
		if _, ok := a.ABI().Methods["fib"]; !ok {
			t.Error("Expected ABI to contain fib")
		}
	})

	t.Run("resolves deployment", func(t *testing.T) {
		d, ok := a.Deployment(big.NewInt(5))
		if !ok {
			t.Fatal("Expected deployment for network 5")
		}
		if d.Address != addrC {
			t.Errorf("Expected address %s, got %s", addrC.Hex(), d.Address.Hex())
		}
	})

	t.Run("keeps transaction hash", func(t *testing.T) {
		d, ok := a.Deployment(big.NewInt(5777))
		if !ok {
			t.Fatal("Expected deployment for network 5777")
		}
		if d.TransactionHash == (common.Hash{}) {
			t.Error("Expected transaction hash to be set")
		}
	})

	t.Run("absent network", func(t *testing.T) {
		if _, ok := a.Deployment(big.NewInt(99)); ok {
			t.Error("Expected no deployment for network 99")
		}
	})

	t.Run("empty address is absent", func(t *testing.T) {
		if _, ok := a.Deployment(big.NewInt(42)); ok {
			t.Error("Expected no deployment for network 42")
		}
	})

	t.Run("nil network id", func(t *testing.T) {
		if _, ok := a.Deployment(nil); ok {
			t.Error("Expected no deployment for nil network id")
		}
	})

	t.Run("networks sorted", func(t *testing.T) {
		networks := a.Networks()
		if len(networks) != 2 {
			t.Fatalf("Expected 2 networks, got %d", len(networks))
		}
		if networks[0].NetworkID.Int64() != 5 || networks[1].NetworkID.Int64() != 5777 {
			t.Errorf("Expected networks [5 5777], got [%s %s]", networks[0].NetworkID, networks[1].NetworkID)
		}
	})
}

func TestParseArtifactErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"invalid json", `{`, "unexpected end of JSON input"},
		{"missing abi", `{"networks": {}}`, "missing abi"},
		{"bad abi", `{"abi": {"oops": true}}`, "parse abi"},
		{"bad address", `{"abi": [], "networks": {"1": {"address": "0x123"}}}`, "invalid address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArtifact([]byte(tt.data))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			var ae *ArtifactError
			if !errors.As(err, &ae) {
				t.Fatalf("Expected *ArtifactError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestLoadArtifactFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(dir, "Fibonacci.json")
		if err := os.WriteFile(path, []byte(truffleArtifact), 0o600); err != nil {
			t.Fatal(err)
		}
		a, err := LoadArtifactFile(path)
		if err != nil {
			t.Fatalf("LoadArtifactFile failed: %v", err)
		}
		if _, ok := a.Deployment(big.NewInt(5)); !ok {
			t.Error("Expected deployment for network 5")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(dir, "missing.json")
		_, err := LoadArtifactFile(path)
		var ae *ArtifactError
		if !errors.As(err, &ae) {
			t.Fatalf("Expected *ArtifactError, got %v", err)
		}
		if ae.Source != path {
			t.Errorf("Expected source %q, got %q", path, ae.Source)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Error("Expected errors.Is to match os.ErrNotExist")
		}
	})

	t.Run("parse error carries source", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(path, []byte(`{"networks": {}}`), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := LoadArtifactFile(path)
		var ae *ArtifactError
		if !errors.As(err, &ae) || ae.Source != path {
			t.Errorf("Expected *ArtifactError with source %q, got %v", path, err)
		}
	})
}

func TestLoadArtifact(t *testing.T) {
	a, err := LoadArtifact(strings.NewReader(truffleArtifact))
	if err != nil {
		t.Fatalf("LoadArtifact failed: %v", err)
	}
	if len(a.Networks()) != 2 {
		t.Errorf("Expected 2 networks, got %d", len(a.Networks()))
	}
}

func TestNewArtifactNormalizesNetworkIDs(t *testing.T) {
	a := NewArtifact("Fibonacci", MustParseABI(FibonacciABI), map[string]Deployment{
		"0x5": {Address: addrC},
	})
	if _, ok := a.Deployment(big.NewInt(5)); !ok {
		t.Error("Expected hex network id to resolve as 5")
	}

	t.Run("leading zero is decimal", func(t *testing.T) {
		a := NewArtifact("Fibonacci", MustParseABI(FibonacciABI), map[string]Deployment{
			"010": {Address: addrC},
		})
		if _, ok := a.Deployment(big.NewInt(10)); !ok {
			t.Error("Expected \"010\" to resolve as network 10")
		}
		if _, ok := a.Deployment(big.NewInt(8)); ok {
			t.Error("Expected \"010\" not to resolve as network 8")
		}
	})
}

func TestDefaultArtifact(t *testing.T) {
	a := DefaultArtifact()
	if a.Name() != "Fibonacci" {
		t.Errorf("Expected name Fibonacci, got %q", a.Name())
	}
	if len(a.Networks()) != 0 {
		t.Errorf("Expected no networks, got %d", len(a.Networks()))
	}
	method, ok := a.ABI().Methods[FibMethod]
	if !ok {
		t.Fatal("Expected fib method")
	}
	if len(method.Inputs) != 1 || method.Inputs[0].Type.String() != "uint256" {
		t.Errorf("Expected fib(uint256), got %s", method.Sig)
	}
}

func TestMustParseABI(t *testing.T) {
	t.Run("panics on invalid JSON", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic for invalid ABI")
			}
		}()
		MustParseABI("not json")
	})
}
