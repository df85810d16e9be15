package types

import (
	"encoding/json"
	"fmt"

	collcodec "cosmossdk.io/collections/codec"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var (
	ConfigValue        collcodec.ValueCodec[Config]        = jsonValue[Config]{name: "Config"}
	PendingBatchValue  collcodec.ValueCodec[PendingBatch]  = jsonValue[PendingBatch]{name: "PendingBatch"}
	BatchValue         collcodec.ValueCodec[Batch]         = jsonValue[Batch]{name: "Batch"}
	UnbondRequestValue collcodec.ValueCodec[UnbondRequest] = jsonValue[UnbondRequest]{name: "UnbondRequest"}
	ValidatorsValue    collcodec.ValueCodec[[]string]      = jsonValue[[]string]{name: "Validators"}
	CoinsValue         collcodec.ValueCodec[sdk.Coins]     = jsonValue[sdk.Coins]{name: "Coins"}

	BalanceSnapshotValue collcodec.ValueCodec[BalanceSnapshot] = jsonValue[BalanceSnapshot]{name: "BalanceSnapshot"}
)

// jsonValue stores hub records as canonical JSON.
type jsonValue[T any] struct {
	name string
}

func (c jsonValue[T]) Encode(value T) ([]byte, error) {
	return json.Marshal(value)
}

func (c jsonValue[T]) Decode(b []byte) (T, error) {
	var value T
	if err := json.Unmarshal(b, &value); err != nil {
		return value, fmt.Errorf("decoding %s: %w", c.name, err)
	}

	return value, nil
}

func (c jsonValue[T]) EncodeJSON(value T) ([]byte, error) {
	return c.Encode(value)
}

func (c jsonValue[T]) DecodeJSON(b []byte) (T, error) {
	return c.Decode(b)
}

func (c jsonValue[T]) Stringify(value T) string {
	return fmt.Sprintf("%v", value)
}

func (c jsonValue[T]) ValueType() string {
	return "hub/" + c.name
}
