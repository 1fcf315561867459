package fibdapp

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var (
	errInvalidInteger   = errors.New("invalid integer")
	errNegativeUnsigned = errors.New("negative value for unsigned type")
	errOverflow         = errors.New("value overflows type")
	errInvalidAddress   = errors.New("invalid address")
	errUnsupportedType  = errors.New("unsupported argument type")
)

// encodeArgs converts raw strings to the Go values abi.Pack expects for the
// method's inputs. Nothing beyond what encoding requires is checked.
func encodeArgs(method abi.Method, raw []string) ([]any, error) {
	if len(raw) != len(method.Inputs) {
		return nil, &ArgumentError{
			Method: method.Name,
			Index:  len(raw),
			Err:    fmt.Errorf("got %d arguments, want %d", len(raw), len(method.Inputs)),
		}
	}

	args := make([]any, len(raw))
	for i, s := range raw {
		typ := method.Inputs[i].Type
		v, err := toArg(s, typ)
		if err != nil {
			return nil, &ArgumentError{
				Method: method.Name,
				Index:  i,
				Type:   typ.String(),
				Err:    err,
			}
		}
		args[i] = v
	}
	return args, nil
}

func toArg(s string, typ abi.Type) (any, error) {
	switch typ.T {
	case abi.UintTy, abi.IntTy:
		return toInteger(s, typ)
	case abi.BoolTy:
		return strconv.ParseBool(s)
	case abi.StringTy:
		return s, nil
	case abi.AddressTy:
		if !common.IsHexAddress(s) {
			return nil, errInvalidAddress
		}
		return common.HexToAddress(s), nil
	case abi.BytesTy:
		return hexutil.Decode(s)
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedType, typ.String())
	}
}

// toInteger parses decimal or 0x-prefixed hex and narrows to the native Go
// type for 8/16/32/64-bit sizes; every other size stays *big.Int.
func toInteger(s string, typ abi.Type) (any, error) {
	n, ok := parseBig(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errInvalidInteger, s)
	}

	unsigned := typ.T == abi.UintTy
	if unsigned && n.Sign() < 0 {
		return nil, errNegativeUnsigned
	}
	limit := typ.Size
	if !unsigned {
		limit--
	}
	abs := new(big.Int).Abs(n)
	if !unsigned && n.Sign() < 0 {
		// -2^(size-1) is representable.
		abs.Sub(abs, big.NewInt(1))
	}
	if abs.BitLen() > limit {
		return nil, errOverflow
	}

	if unsigned {
		switch typ.Size {
		case 8:
			return uint8(n.Uint64()), nil
		case 16:
			return uint16(n.Uint64()), nil
		case 32:
			return uint32(n.Uint64()), nil
		case 64:
			return n.Uint64(), nil
		}
		return n, nil
	}
	switch typ.Size {
	case 8:
		return int8(n.Int64()), nil
	case 16:
		return int16(n.Int64()), nil
	case 32:
		return int32(n.Int64()), nil
	case 64:
		return n.Int64(), nil
	}
	return n, nil
}

func parseBig(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	base := 10
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		base = 16
		digits = digits[2:]
	}
	// SetString accepts its own sign, which would cancel or repeat ours.
	if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		return nil, false
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, false
	}
	if neg {
		n.Neg(n)
	}
	return n, true
}

// formatValue renders a decoded return value the way it is displayed.
func formatValue(v any) string {
	switch x := v.(type) {
	case *big.Int:
		return x.String()
	case common.Address:
		return x.Hex()
	case []byte:
		return hexutil.Encode(x)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
