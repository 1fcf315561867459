package fibdapp

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	addrA = common.HexToAddress("0x000000000000000000000000000000000000000A")
	addrB = common.HexToAddress("0x000000000000000000000000000000000000000B")
	addrC = common.HexToAddress("0x000000000000000000000000000000000000000C")
)

// fakeProvider serves accounts, a network id and fib calls from memory.
type fakeProvider struct {
	abi abi.ABI

	mu          sync.Mutex
	accounts    []common.Address
	accountsErr error
	networkID   *big.Int
	networkErr  error
	callErr     error
	accountRead chan struct{}
	reads       int
	calls       int
	lastCall    ethereum.CallMsg
	closed      bool
}

func newFakeProvider(networkID int64, accounts ...common.Address) *fakeProvider {
	return &fakeProvider{
		abi:       MustParseABI(FibonacciABI),
		accounts:  accounts,
		networkID: big.NewInt(networkID),
	}
}

func (p *fakeProvider) connector() Connector {
	return func(context.Context) (Provider, error) {
		return p, nil
	}
}

func (p *fakeProvider) setAccounts(accounts ...common.Address) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accounts = accounts
}

func (p *fakeProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	p.mu.Lock()
	p.reads++
	accounts, err, ch := append([]common.Address(nil), p.accounts...), p.accountsErr, p.accountRead
	p.mu.Unlock()

	if ch != nil {
		select {
		case ch <- struct{}{}:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return accounts, err
}

func (p *fakeProvider) NetworkID(context.Context) (*big.Int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.networkErr != nil {
		return nil, p.networkErr
	}
	return new(big.Int).Set(p.networkID), nil
}

func (p *fakeProvider) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60, 0x80}, nil
}

func (p *fakeProvider) CallContract(ctx context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	p.mu.Lock()
	p.calls++
	p.lastCall = call
	callErr := p.callErr
	p.mu.Unlock()

	if callErr != nil {
		return nil, callErr
	}
	if len(call.Data) < 4 {
		return nil, errors.New("execution reverted")
	}
	method, err := p.abi.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	args, err := method.Inputs.Unpack(call.Data[4:])
	if err != nil {
		return nil, err
	}
	return method.Outputs.Pack(fib(args[0].(*big.Int)))
}

func (p *fakeProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

func (p *fakeProvider) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *fakeProvider) readCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reads
}

func fib(n *big.Int) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := int64(0); i < n.Int64(); i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

// recorder collects session events.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) observe(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]EventKind, len(r.events))
	for i, ev := range r.events {
		kinds[i] = ev.Kind
	}
	return kinds
}

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, k := range r.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

func testArtifact() *Artifact {
	return NewArtifact("Fibonacci", MustParseABI(FibonacciABI), map[string]Deployment{
		"5": {Address: addrC},
	})
}
