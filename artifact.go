package fibdapp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"slices"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// FibonacciABI is the interface of the Fibonacci contract.
const FibonacciABI = `[
	{
		"name": "fib",
		"type": "function",
		"stateMutability": "pure",
		"inputs": [
			{"name": "n", "type": "uint256"}
		],
		"outputs": [
			{"name": "", "type": "uint256"}
		]
	}
]`

// FibMethod is the name of the remote method used by Calculate.
const FibMethod = "fib"

// Deployment is the on-chain location of a contract on one network.
type Deployment struct {
	Address         common.Address
	TransactionHash common.Hash
}

// NetworkDeployment pairs a network id with its deployment.
type NetworkDeployment struct {
	NetworkID *big.Int
	Deployment
}

// Artifact is a compiled contract description: its ABI and the addresses it
// is deployed at, keyed by network id. It is immutable once loaded.
type Artifact struct {
	name     string
	abi      abi.ABI
	networks map[string]Deployment
}

// artifactJSON is the truffle build output layout.
type artifactJSON struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Networks     map[string]struct {
		Address         string `json:"address"`
		TransactionHash string `json:"transactionHash"`
	} `json:"networks"`
}

// NewArtifact builds an artifact from a parsed ABI and a network id to
// deployment mapping.
func NewArtifact(name string, contractABI abi.ABI, networks map[string]Deployment) *Artifact {
	a := &Artifact{
		name:     name,
		abi:      contractABI,
		networks: make(map[string]Deployment, len(networks)),
	}
	for id, d := range networks {
		a.networks[normalizeNetworkID(id)] = d
	}
	return a
}

// DefaultArtifact returns the Fibonacci ABI with no known deployments.
func DefaultArtifact() *Artifact {
	return NewArtifact("Fibonacci", MustParseABI(FibonacciABI), nil)
}

// ParseArtifact parses truffle-style artifact JSON.
func ParseArtifact(data []byte) (*Artifact, error) {
	var raw artifactJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ArtifactError{Err: err}
	}
	if len(raw.ABI) == 0 {
		return nil, &ArtifactError{Err: errors.New("missing abi")}
	}

	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, &ArtifactError{Err: fmt.Errorf("parse abi: %w", err)}
	}

	networks := make(map[string]Deployment, len(raw.Networks))
	for id, n := range raw.Networks {
		if n.Address == "" {
			continue
		}
		if !common.IsHexAddress(n.Address) {
			return nil, &ArtifactError{Err: fmt.Errorf("network %s: invalid address %q", id, n.Address)}
		}
		d := Deployment{Address: common.HexToAddress(n.Address)}
		if n.TransactionHash != "" {
			d.TransactionHash = common.HexToHash(n.TransactionHash)
		}
		networks[id] = d
	}

	return NewArtifact(raw.ContractName, parsed, networks), nil
}

// LoadArtifact reads and parses an artifact from r.
func LoadArtifact(r io.Reader) (*Artifact, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ArtifactError{Err: err}
	}
	return ParseArtifact(data)
}

// LoadArtifactFile reads and parses the artifact at path.
func LoadArtifactFile(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ArtifactError{Source: path, Err: err}
	}
	a, err := ParseArtifact(data)
	if err != nil {
		var ae *ArtifactError
		if errors.As(err, &ae) {
			ae.Source = path
		}
		return nil, err
	}
	return a, nil
}

// Name returns the contract name, if the artifact carried one.
func (a *Artifact) Name() string {
	return a.name
}

// ABI returns the contract ABI.
func (a *Artifact) ABI() abi.ABI {
	return a.abi
}

// Deployment returns the deployment for networkID, if any.
func (a *Artifact) Deployment(networkID *big.Int) (Deployment, bool) {
	if networkID == nil {
		return Deployment{}, false
	}
	d, ok := a.networks[networkID.String()]
	return d, ok
}

// Networks returns every known deployment ordered by network id.
func (a *Artifact) Networks() []NetworkDeployment {
	out := make([]NetworkDeployment, 0, len(a.networks))
	for id, d := range a.networks {
		n, ok := new(big.Int).SetString(id, 10)
		if !ok {
			continue
		}
		out = append(out, NetworkDeployment{NetworkID: n, Deployment: d})
	}
	slices.SortFunc(out, func(x, y NetworkDeployment) int {
		return x.NetworkID.Cmp(y.NetworkID)
	})
	return out
}

// normalizeNetworkID maps "0x"-prefixed keys to their decimal form.
func normalizeNetworkID(id string) string {
	id = strings.TrimSpace(id)
	digits, base := id, 10
	if strings.HasPrefix(id, "0x") || strings.HasPrefix(id, "0X") {
		digits, base = id[2:], 16
	}
	if n, ok := new(big.Int).SetString(digits, base); ok {
		return n.String()
	}
	return id
}

// ParseABI parses a JSON ABI string into an abi.ABI.
func ParseABI(abiJSON string) (abi.ABI, error) {
	return abi.JSON(strings.NewReader(abiJSON))
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) abi.ABI {
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return parsed
}
