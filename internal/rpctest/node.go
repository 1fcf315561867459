// Package rpctest serves a minimal JSON-RPC node for tests: accounts,
// network id and eth_call against handlers decoded through an ABI.
package rpctest

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// ClientVersion is reported by web3_clientVersion.
const ClientVersion = "rpctest/v0"

// Handler answers one contract method with decoded inputs.
type Handler func(args []any) ([]any, error)

// Node is an in-memory node.
type Node struct {
	abi abi.ABI

	mu        sync.Mutex
	accounts  []common.Address
	networkID int64
	handlers  map[string]Handler
	code      map[common.Address]bool
	calls     int

	server *rpc.Server
}

// NewNode creates a node serving contracts described by abiJSON.
func NewNode(abiJSON string, networkID int64, accounts ...common.Address) (*Node, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, err
	}
	n := &Node{
		abi:       parsed,
		accounts:  accounts,
		networkID: networkID,
		handlers:  make(map[string]Handler),
		code:      make(map[common.Address]bool),
		server:    rpc.NewServer(),
	}
	for name, svc := range map[string]any{
		"eth":  &ethAPI{n},
		"net":  &netAPI{n},
		"web3": &web3API{},
	} {
		if err := n.server.RegisterName(name, svc); err != nil {
			return nil, fmt.Errorf("register %s: %w", name, err)
		}
	}
	return n, nil
}

// Handle serves method at every deployed address.
func (n *Node) Handle(method string, h Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[method] = h
}

// Deploy marks address as holding code.
func (n *Node) Deploy(address common.Address) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.code[address] = true
}

// SetAccounts replaces the account list.
func (n *Node) SetAccounts(accounts ...common.Address) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.accounts = accounts
}

// Calls returns how many eth_call requests were served.
func (n *Node) Calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

// Server returns the RPC server, for in-process clients.
func (n *Node) Server() *rpc.Server {
	return n.server
}

// TB is the part of testing.TB that Start needs.
type TB interface {
	Helper()
	Cleanup(func())
}

// Start serves the node over HTTP until t is cleaned up and returns its URL.
func (n *Node) Start(t TB) string {
	t.Helper()
	srv := httptest.NewServer(n.server)
	t.Cleanup(func() {
		srv.Close()
		n.server.Stop()
	})
	return srv.URL
}

type callArgs struct {
	To    *common.Address `json:"to"`
	Data  hexutil.Bytes   `json:"data"`
	Input hexutil.Bytes   `json:"input"`
}

type ethAPI struct{ n *Node }

func (api *ethAPI) Accounts() []common.Address {
	api.n.mu.Lock()
	defer api.n.mu.Unlock()
	return append([]common.Address{}, api.n.accounts...)
}

func (api *ethAPI) GetCode(address common.Address, _ string) hexutil.Bytes {
	api.n.mu.Lock()
	defer api.n.mu.Unlock()
	if api.n.code[address] {
		return hexutil.Bytes{0x60, 0x80}
	}
	return hexutil.Bytes{}
}

func (api *ethAPI) Call(args callArgs, _ string) (hexutil.Bytes, error) {
	n := api.n
	data := args.Input
	if len(data) == 0 {
		data = args.Data
	}

	n.mu.Lock()
	n.calls++
	deployed := args.To != nil && n.code[*args.To]
	n.mu.Unlock()

	if !deployed {
		return hexutil.Bytes{}, nil
	}
	if len(data) < 4 {
		return nil, errors.New("execution reverted")
	}
	method, err := n.abi.MethodById(data[:4])
	if err != nil {
		return nil, err
	}
	inputs, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, err
	}

	n.mu.Lock()
	h := n.handlers[method.Name]
	n.mu.Unlock()
	if h == nil {
		return nil, errors.New("execution reverted")
	}

	outputs, err := h(inputs)
	if err != nil {
		return nil, err
	}
	return method.Outputs.Pack(outputs...)
}

type netAPI struct{ n *Node }

func (api *netAPI) Version() string {
	api.n.mu.Lock()
	defer api.n.mu.Unlock()
	return strconv.FormatInt(api.n.networkID, 10)
}

type web3API struct{}

func (api *web3API) ClientVersion() string {
	return ClientVersion
}
