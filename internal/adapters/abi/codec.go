package abi

import (
	"bytes"
	"context"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
	"github.com/trebuchet-org/marketplace-deploy/internal/usecase"
)

// Codec converts between command line strings, typed Go values and ABI encoded
// constructor arguments for contracts found in the artifact repository
type Codec struct {
	contracts usecase.ContractRepository
}

// NewCodec creates a new constructor argument codec
func NewCodec(contracts usecase.ContractRepository) *Codec {
	return &Codec{contracts: contracts}
}

// ParseContractABI parses the ABI embedded in a contract's artifact
func ParseContractABI(contract *models.Contract) (*abi.ABI, error) {
	if contract.Artifact == nil || len(contract.Artifact.ABI) == 0 {
		return nil, fmt.Errorf("contract %s has no ABI", contract.Name)
	}
	parsed, err := abi.JSON(bytes.NewReader(contract.Artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI for %s: %w", contract.Name, err)
	}
	return &parsed, nil
}

// ParseConstructorArgs converts raw strings into values accepted by the constructor's
// input types, in declaration order
func (c *Codec) ParseConstructorArgs(ctx context.Context, contractName string, raw []string) ([]any, error) {
	inputs, err := c.constructorInputs(ctx, contractName)
	if err != nil {
		return nil, err
	}
	if len(inputs) != len(raw) {
		return nil, fmt.Errorf("constructor takes %d arguments, got %d", len(inputs), len(raw))
	}

	values := make([]any, 0, len(inputs))
	for i, input := range inputs {
		value, err := ParseValue(input.Type, raw[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		values = append(values, value)
	}
	return values, nil
}

// EncodeConstructorArgs ABI encodes typed constructor arguments. The result is hex
// without the 0x prefix, empty when the constructor takes no arguments.
func (c *Codec) EncodeConstructorArgs(ctx context.Context, contractName string, args []any) (string, error) {
	inputs, err := c.constructorInputs(ctx, contractName)
	if err != nil {
		return "", err
	}
	if len(inputs) == 0 {
		return "", nil
	}
	encoded, err := inputs.Pack(args...)
	if err != nil {
		return "", fmt.Errorf("failed to encode constructor arguments: %w", err)
	}
	return common.Bytes2Hex(encoded), nil
}

func (c *Codec) constructorInputs(ctx context.Context, contractName string) (abi.Arguments, error) {
	contract, err := c.contracts.GetContract(ctx, contractName)
	if err != nil {
		return nil, err
	}
	parsed, err := ParseContractABI(contract)
	if err != nil {
		return nil, err
	}
	return parsed.Constructor.Inputs, nil
}

// ParseValue converts a single string into the Go value go-ethereum packs for typ.
// Arrays are written as [a,b,c].
func ParseValue(typ abi.Type, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch typ.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid address %q", raw)
		}
		return common.HexToAddress(raw), nil

	case abi.BoolTy:
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", raw)
		}
		return value, nil

	case abi.StringTy:
		return raw, nil

	case abi.UintTy, abi.IntTy:
		return parseInteger(typ, raw)

	case abi.BytesTy:
		value, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes %q: %w", raw, err)
		}
		return value, nil

	case abi.FixedBytesTy:
		value, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes%d %q: %w", typ.Size, raw, err)
		}
		if len(value) > typ.Size {
			return nil, fmt.Errorf("value %q is longer than bytes%d", raw, typ.Size)
		}
		array := reflect.New(typ.GetType()).Elem()
		reflect.Copy(array, reflect.ValueOf(value))
		return array.Interface(), nil

	case abi.SliceTy, abi.ArrayTy:
		return parseList(typ, raw)

	default:
		return nil, fmt.Errorf("unsupported argument type %s", typ.String())
	}
}

func parseInteger(typ abi.Type, raw string) (any, error) {
	value, ok := new(big.Int).SetString(raw, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", raw)
	}

	if typ.T == abi.UintTy {
		if value.Sign() < 0 || value.BitLen() > typ.Size {
			return nil, fmt.Errorf("%s out of range for uint%d", raw, typ.Size)
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(typ.Size-1))
		minimum := new(big.Int).Neg(limit)
		if value.Cmp(minimum) < 0 || value.Cmp(limit) >= 0 {
			return nil, fmt.Errorf("%s out of range for int%d", raw, typ.Size)
		}
	}

	goType := typ.GetType()
	switch goType.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.ValueOf(value.Uint64()).Convert(goType).Interface(), nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(value.Int64()).Convert(goType).Interface(), nil
	default:
		return value, nil
	}
}

func parseList(typ abi.Type, raw string) (any, error) {
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return nil, fmt.Errorf("expected [a,b,...] for %s, got %q", typ.String(), raw)
	}

	items, err := splitList(strings.TrimSpace(raw[1 : len(raw)-1]))
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", typ.String(), raw, err)
	}
	if typ.T == abi.ArrayTy && len(items) != typ.Size {
		return nil, fmt.Errorf("%s takes %d elements, got %d", typ.String(), typ.Size, len(items))
	}

	var list reflect.Value
	if typ.T == abi.ArrayTy {
		list = reflect.New(typ.GetType()).Elem()
	} else {
		list = reflect.MakeSlice(typ.GetType(), len(items), len(items))
	}
	for i, item := range items {
		if typ.Elem.T == abi.StringTy && len(item) >= 2 && item[0] == '"' {
			unquoted, err := strconv.Unquote(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: invalid string %s", i, item)
			}
			item = unquoted
		}
		value, err := ParseValue(*typ.Elem, item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		list.Index(i).Set(reflect.ValueOf(value))
	}
	return list.Interface(), nil
}

// splitList splits the inside of a list literal at commas that are not nested in
// brackets or double quotes
func splitList(inner string) ([]string, error) {
	if inner == "" {
		return nil, nil
	}

	var (
		items   []string
		depth   int
		quoted  bool
		escaped bool
		start   int
	)
	for i, c := range inner {
		switch {
		case escaped:
			escaped = false
		case quoted && c == '\\':
			escaped = true
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ']' at offset %d", i)
			}
		case c == ',' && depth == 0:
			items = append(items, strings.TrimSpace(inner[start:i]))
			start = i + 1
		}
	}
	if quoted {
		return nil, fmt.Errorf("unterminated string")
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '['")
	}
	return append(items, strings.TrimSpace(inner[start:])), nil
}

var _ usecase.ConstructorArgsCodec = (*Codec)(nil)
