package upgrades

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// InitializerName is the method the proxy constructor calls on deployment
const InitializerName = "initialize"

// EncodeInitializer builds the calldata passed to the proxy constructor.
// A contract without an initializer gets empty calldata when no arguments
// are given.
func EncodeInitializer(contractABI abi.ABI, args []string) ([]byte, error) {
	method, ok := contractABI.Methods[InitializerName]
	if !ok {
		if len(args) > 0 {
			return nil, fmt.Errorf("contract has no %s function but %d arguments were given", InitializerName, len(args))
		}
		return []byte{}, nil
	}

	values, err := ConvertArgs(method.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("invalid %s arguments: %w", method.Sig, err)
	}

	data, err := contractABI.Pack(InitializerName, values...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", method.Sig, err)
	}
	return data, nil
}

// ConvertArgs converts command line strings into the Go values the ABI
// packer expects for inputs
func ConvertArgs(inputs abi.Arguments, args []string) ([]any, error) {
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(inputs), len(args))
	}

	values := make([]any, len(args))
	for i, input := range inputs {
		value, err := convertArg(input.Type, args[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		values[i] = value
	}
	return values, nil
}

func convertArg(t abi.Type, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch t.T {
	case abi.StringTy:
		return raw, nil

	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid address %q", raw)
		}
		return common.HexToAddress(raw), nil

	case abi.BoolTy:
		return strconv.ParseBool(raw)

	case abi.UintTy, abi.IntTy:
		n, ok := new(big.Int).SetString(raw, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		if !fitsInt(n, t) {
			return nil, fmt.Errorf("value %q out of range for %s", raw, t.String())
		}
		if t.GetType() == reflect.TypeOf(n) {
			return n, nil
		}
		if t.T == abi.UintTy {
			return reflect.ValueOf(n.Uint64()).Convert(t.GetType()).Interface(), nil
		}
		return reflect.ValueOf(n.Int64()).Convert(t.GetType()).Interface(), nil

	case abi.BytesTy:
		return hexutil.Decode(raw)

	case abi.FixedBytesTy:
		data, err := hexutil.Decode(raw)
		if err != nil {
			return nil, err
		}
		if len(data) > t.Size {
			return nil, fmt.Errorf("value is %d bytes, %s holds %d", len(data), t.String(), t.Size)
		}
		array := reflect.New(t.GetType()).Elem()
		reflect.Copy(array, reflect.ValueOf(data))
		return array.Interface(), nil

	default:
		return nil, fmt.Errorf("unsupported argument type %s", t.String())
	}
}

// fitsInt reports whether n is representable by the integer type t
func fitsInt(n *big.Int, t abi.Type) bool {
	if t.T == abi.UintTy {
		return n.Sign() >= 0 && n.BitLen() <= t.Size
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
	if n.Sign() >= 0 {
		return n.Cmp(limit) < 0
	}
	return new(big.Int).Neg(n).Cmp(limit) <= 0
}
