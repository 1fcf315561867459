package fibdapp

import (
	"context"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Contract is a local binding to a deployed contract. A Contract built
// without an address is valid; its calls fail with ErrNoDeployment.
type Contract struct {
	abi        abi.ABI
	address    common.Address
	hasAddress bool
	bound      *bind.BoundContract
}

// NewContract binds contractABI at address through caller. A nil address
// produces a binding whose calls fail until redeployed.
func NewContract(contractABI abi.ABI, address *common.Address, caller bind.ContractCaller) *Contract {
	c := &Contract{abi: contractABI}
	if address != nil {
		c.address = *address
		c.hasAddress = true
		c.bound = bind.NewBoundContract(c.address, contractABI, caller, nil, nil)
	}
	return c
}

// Address returns the contract address and whether one was resolved.
func (c *Contract) Address() (common.Address, bool) {
	return c.address, c.hasAddress
}

// ABI returns the contract ABI.
func (c *Contract) ABI() abi.ABI {
	return c.abi
}

// HasMethod returns true if the contract has a method with the given name.
func (c *Contract) HasMethod(methodName string) bool {
	_, ok := c.abi.Methods[methodName]
	return ok
}

// MethodNames returns all method names in the contract ABI, sorted.
func (c *Contract) MethodNames() []string {
	names := make([]string, 0, len(c.abi.Methods))
	for name := range c.abi.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call executes a read-only call of methodName with already typed arguments
// and returns the decoded outputs.
func (c *Contract) Call(ctx context.Context, methodName string, args ...any) ([]any, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = formatValue(a)
	}
	return c.call(ctx, methodName, strings.Join(parts, ", "), args)
}

// CallRaw is like Call but takes raw strings, converted to the method's
// input types only as far as ABI encoding requires.
func (c *Contract) CallRaw(ctx context.Context, methodName string, raw ...string) ([]any, error) {
	input := strings.Join(raw, ", ")
	if c == nil {
		return nil, &CallError{Method: methodName, Input: input, Err: ErrBindingUnset}
	}
	method, ok := c.abi.Methods[methodName]
	if !ok {
		return nil, &CallError{Method: methodName, Input: input, Err: &MethodNotFoundError{Method: methodName}}
	}
	args, err := encodeArgs(method, raw)
	if err != nil {
		return nil, &CallError{Method: methodName, Input: input, Err: err}
	}
	return c.call(ctx, methodName, input, args)
}

func (c *Contract) call(ctx context.Context, methodName, input string, args []any) ([]any, error) {
	if c == nil {
		return nil, &CallError{Method: methodName, Input: input, Err: ErrBindingUnset}
	}
	if !c.HasMethod(methodName) {
		return nil, &CallError{Method: methodName, Input: input, Err: &MethodNotFoundError{Method: methodName}}
	}
	if !c.hasAddress {
		return nil, &CallError{Method: methodName, Input: input, Err: ErrNoDeployment}
	}

	var out []any
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, methodName, args...); err != nil {
		return nil, &CallError{Method: methodName, Input: input, Err: err}
	}
	return out, nil
}
