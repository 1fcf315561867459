package fibdapp

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// Provider is a connection to a node: it reports the active accounts and
// network and executes read-only contract calls.
type Provider interface {
	bind.ContractCaller

	// Accounts returns the accounts the node exposes. The first entry is the
	// primary account. An empty list is valid.
	Accounts(ctx context.Context) ([]common.Address, error)

	// NetworkID returns the id used to select a deployment from an artifact.
	NetworkID(ctx context.Context) (*big.Int, error)

	Close()
}

// Connector acquires a Provider. It is called once per Bootstrap.
type Connector func(ctx context.Context) (Provider, error)

// RPCProvider implements Provider over a JSON-RPC endpoint.
type RPCProvider struct {
	rpc     *rpc.Client
	eth     *ethclient.Client
	version string
}

var _ Provider = (*RPCProvider)(nil)

// DialProvider connects to the node at rawurl and checks that it answers.
func DialProvider(ctx context.Context, rawurl string) (*RPCProvider, error) {
	rc, err := rpc.DialContext(ctx, rawurl)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rawurl, err)
	}
	p := NewRPCProvider(rc)

	// HTTP dials are lazy, so probe the endpoint before handing it out.
	if err := rc.CallContext(ctx, &p.version, "web3_clientVersion"); err != nil {
		rc.Close()
		return nil, fmt.Errorf("probe %s: %w", rawurl, err)
	}
	return p, nil
}

// Dialer returns a Connector that dials rawurl.
func Dialer(rawurl string) Connector {
	return func(ctx context.Context) (Provider, error) {
		return DialProvider(ctx, rawurl)
	}
}

// NewRPCProvider wraps an existing RPC client.
func NewRPCProvider(rc *rpc.Client) *RPCProvider {
	return &RPCProvider{
		rpc: rc,
		eth: ethclient.NewClient(rc),
	}
}

// ClientVersion returns the node's web3_clientVersion, if it was probed.
func (p *RPCProvider) ClientVersion() string {
	return p.version
}

// Accounts calls eth_accounts.
func (p *RPCProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := p.rpc.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

// NetworkID calls net_version.
func (p *RPCProvider) NetworkID(ctx context.Context) (*big.Int, error) {
	return p.eth.NetworkID(ctx)
}

// CodeAt returns the contract code at the given account.
func (p *RPCProvider) CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error) {
	return p.eth.CodeAt(ctx, contract, blockNumber)
}

// CallContract executes an eth_call.
func (p *RPCProvider) CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return p.eth.CallContract(ctx, call, blockNumber)
}

// Close closes the underlying RPC client.
func (p *RPCProvider) Close() {
	p.eth.Close()
}
