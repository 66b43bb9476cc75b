package abi

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain"
	"github.com/trebuchet-org/marketplace-deploy/internal/domain/models"
)

const marketplaceABI = `[
	{
		"type": "constructor",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "feeRecipient", "type": "address", "internalType": "address"},
			{"name": "feeBps", "type": "uint256", "internalType": "uint256"},
			{"name": "paused", "type": "bool", "internalType": "bool"},
			{"name": "version", "type": "uint8", "internalType": "uint8"},
			{"name": "salt", "type": "bytes32", "internalType": "bytes32"},
			{"name": "admins", "type": "address[]", "internalType": "address[]"}
		]
	},
	{"type": "function", "name": "feeBps", "inputs": [], "outputs": [{"name": "", "type": "uint256"}], "stateMutability": "view"}
]`

const emptyConstructorABI = `[{"type": "function", "name": "owner", "inputs": [], "outputs": [{"name": "", "type": "address"}], "stateMutability": "view"}]`

type fakeRepository map[string]*models.Contract

func (f fakeRepository) GetContract(ctx context.Context, key string) (*models.Contract, error) {
	if c, ok := f[key]; ok {
		return c, nil
	}
	return nil, domain.ErrContractNotFound
}

func newCodec() *Codec {
	return NewCodec(fakeRepository{
		"Marketplace": {
			Name:     "Marketplace",
			Path:     "src/Marketplace.sol",
			Artifact: &models.Artifact{ABI: json.RawMessage(marketplaceABI)},
		},
		"Token": {
			Name:     "Token",
			Path:     "src/Token.sol",
			Artifact: &models.Artifact{ABI: json.RawMessage(emptyConstructorABI)},
		},
		"Broken": {
			Name:     "Broken",
			Path:     "src/Broken.sol",
			Artifact: &models.Artifact{},
		},
	})
}

var marketplaceRawArgs = []string{
	"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
	"250",
	"false",
	"2",
	"0x01",
	"[0x70997970C51812dc3A010C7d01b50e0d17dc79C8, 0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC]",
}

func TestParseConstructorArgs(t *testing.T) {
	ctx := context.Background()
	codec := newCodec()

	t.Run("typed values in declaration order", func(t *testing.T) {
		values, err := codec.ParseConstructorArgs(ctx, "Marketplace", marketplaceRawArgs)
		require.NoError(t, err)
		require.Len(t, values, 6)

		assert.Equal(t, common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"), values[0])
		assert.Equal(t, 0, big.NewInt(250).Cmp(values[1].(*big.Int)))
		assert.Equal(t, false, values[2])
		assert.Equal(t, uint8(2), values[3])

		var salt [32]byte
		salt[0] = 0x01
		assert.Equal(t, salt, values[4])

		assert.Equal(t, []common.Address{
			common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8"),
			common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"),
		}, values[5])
	})

	t.Run("no constructor takes no arguments", func(t *testing.T) {
		values, err := codec.ParseConstructorArgs(ctx, "Token", nil)
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("argument count mismatch", func(t *testing.T) {
		_, err := codec.ParseConstructorArgs(ctx, "Token", []string{"1"})
		assert.EqualError(t, err, "constructor takes 0 arguments, got 1")
	})

	t.Run("bad value names the argument", func(t *testing.T) {
		args := append([]string{}, marketplaceRawArgs...)
		args[0] = "not-an-address"
		_, err := codec.ParseConstructorArgs(ctx, "Marketplace", args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "feeRecipient")
	})

	t.Run("unknown contract", func(t *testing.T) {
		_, err := codec.ParseConstructorArgs(ctx, "Missing", nil)
		assert.ErrorIs(t, err, domain.ErrContractNotFound)
	})

	t.Run("artifact without ABI", func(t *testing.T) {
		_, err := codec.ParseConstructorArgs(ctx, "Broken", nil)
		assert.EqualError(t, err, "contract Broken has no ABI")
	})
}

func TestEncodeConstructorArgs(t *testing.T) {
	ctx := context.Background()
	codec := newCodec()

	values, err := codec.ParseConstructorArgs(ctx, "Marketplace", marketplaceRawArgs)
	require.NoError(t, err)

	encoded, err := codec.EncodeConstructorArgs(ctx, "Marketplace", values)
	require.NoError(t, err)
	assert.NotContains(t, encoded, "0x")

	// head: 6 words, tail: length word plus two addresses
	assert.Len(t, encoded, (6+3)*64)
	assert.Equal(t, "00000000000000000000000070997970c51812dc3a010c7d01b50e0d17dc79c8", encoded[:64])
	assert.Equal(t, "00000000000000000000000000000000000000000000000000000000000000fa", encoded[64:128])

	empty, err := codec.EncodeConstructorArgs(ctx, "Token", nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseValue(t *testing.T) {
	mustType := func(name string) abi.Type {
		typ, err := abi.NewType(name, "", nil)
		require.NoError(t, err)
		return typ
	}

	tests := []struct {
		name    string
		typ     string
		raw     string
		want    any
		wantErr string
	}{
		{name: "hex integer", typ: "uint64", raw: "0x10", want: uint64(16)},
		{name: "negative int", typ: "int32", raw: "-5", want: int32(-5)},
		{name: "uint overflow", typ: "uint8", raw: "256", wantErr: "out of range for uint8"},
		{name: "negative uint", typ: "uint16", raw: "-1", wantErr: "out of range for uint16"},
		{name: "int overflow", typ: "int8", raw: "128", wantErr: "out of range for int8"},
		{name: "string kept verbatim", typ: "string", raw: "Marketplace v1", want: "Marketplace v1"},
		{name: "bool", typ: "bool", raw: "true", want: true},
		{name: "bad bool", typ: "bool", raw: "yes", wantErr: "invalid bool"},
		{name: "dynamic bytes", typ: "bytes", raw: "0xdeadbeef", want: []byte{0xde, 0xad, 0xbe, 0xef}},
		{name: "fixed bytes too long", typ: "bytes2", raw: "0x010203", wantErr: "longer than bytes2"},
		{name: "fixed array", typ: "uint8[2]", raw: "[1,2]", want: [2]uint8{1, 2}},
		{name: "fixed array wrong size", typ: "uint8[2]", raw: "[1]", wantErr: "takes 2 elements"},
		{name: "empty slice", typ: "bool[]", raw: "[]", want: []bool{}},
		{name: "nested slices", typ: "uint8[][]", raw: "[[1,2],[3]]", want: [][]uint8{{1, 2}, {3}}},
		{name: "fixed array of slices", typ: "uint16[][2]", raw: "[[1], [2,3]]", want: [2][]uint16{{1}, {2, 3}}},
		{name: "quoted strings keep commas", typ: "string[]", raw: `["a,b", "c"]`, want: []string{"a,b", "c"}},
		{name: "escaped quote in string", typ: "string[]", raw: `["say \"hi\", then go"]`, want: []string{`say "hi", then go`}},
		{name: "unbalanced nested list", typ: "uint8[][]", raw: "[[1,2]", wantErr: "unbalanced"},
		{name: "unterminated string", typ: "string[]", raw: `["a]`, wantErr: "unterminated string"},
		{name: "slice without brackets", typ: "bool[]", raw: "true", wantErr: "expected [a,b,...]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue(mustType(tt.typ), tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
