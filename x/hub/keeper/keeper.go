package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	addresscodec "cosmossdk.io/core/address"
	corestoretypes "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/steak-hub/steak/x/hub/config"
	"github.com/steak-hub/steak/x/hub/types"
)

// Keeper of the hub store
type Keeper struct {
	storeService corestoretypes.KVStoreService

	stakingKeeper types.StakingKeeper
	bankKeeper    types.BankKeeper
	tokenKeeper   types.TokenKeeper

	addressCodec          addresscodec.Codec
	validatorAddressCodec addresscodec.Codec

	hubConfig  config.HubConfig
	hubAddress sdk.AccAddress
	hubAddrStr string

	Schema collections.Schema

	Config            collections.Item[types.Config]
	Validators        collections.Item[[]string]
	PendingBatch      collections.Item[types.PendingBatch]
	UnlockedCoins     collections.Item[sdk.Coins]
	PrevNativeBalance collections.Item[types.BalanceSnapshot]

	Batches             collections.Map[uint64, types.Batch]
	BatchesByReconciled collections.Map[collections.Pair[bool, uint64], bool] // reconciled, id

	UnbondRequests       collections.Map[collections.Pair[uint64, string], types.UnbondRequest] // id, user
	UnbondRequestsByUser collections.Map[collections.Pair[string, uint64], bool]                // user, id

	TotalMiningPower      collections.Item[math.Int]
	ValidatorMiningPowers collections.Map[string, math.Int]

	RetiredValidators collections.KeySet[string]
}

// NewKeeper creates a new hub Keeper instance
func NewKeeper(
	storeService corestoretypes.KVStoreService,
	sk types.StakingKeeper,
	bk types.BankKeeper,
	tk types.TokenKeeper,
	addressCodec addresscodec.Codec,
	validatorAddressCodec addresscodec.Codec,
	hubConfig config.HubConfig,
) *Keeper {
	hubAddress := authtypes.NewModuleAddress(types.ModuleName)
	hubAddrStr, err := addressCodec.BytesToString(hubAddress)
	if err != nil {
		panic(err)
	}

	sb := collections.NewSchemaBuilder(storeService)

	k := &Keeper{
		storeService: storeService,

		stakingKeeper: sk,
		bankKeeper:    bk,
		tokenKeeper:   tk,

		addressCodec:          addressCodec,
		validatorAddressCodec: validatorAddressCodec,

		hubConfig:  hubConfig,
		hubAddress: hubAddress,
		hubAddrStr: hubAddrStr,

		Config:            collections.NewItem(sb, types.ConfigKey, "config", types.ConfigValue),
		Validators:        collections.NewItem(sb, types.ValidatorsKey, "validators", types.ValidatorsValue),
		PendingBatch:      collections.NewItem(sb, types.PendingBatchKey, "pending_batch", types.PendingBatchValue),
		UnlockedCoins:     collections.NewItem(sb, types.UnlockedCoinsKey, "unlocked_coins", types.CoinsValue),
		PrevNativeBalance: collections.NewItem(sb, types.PrevNativeBalanceKey, "prev_native_balance", types.BalanceSnapshotValue),

		Batches:             collections.NewMap(sb, types.BatchesPrefix, "batches", collections.Uint64Key, types.BatchValue),
		BatchesByReconciled: collections.NewMap(sb, types.BatchesByReconciledPrefix, "batches_by_reconciled", collections.PairKeyCodec(collections.BoolKey, collections.Uint64Key), collections.BoolValue),

		UnbondRequests:       collections.NewMap(sb, types.UnbondRequestsPrefix, "unbond_requests", collections.PairKeyCodec(collections.Uint64Key, collections.StringKey), types.UnbondRequestValue),
		UnbondRequestsByUser: collections.NewMap(sb, types.UnbondRequestsByUserPrefix, "unbond_requests_by_user", collections.PairKeyCodec(collections.StringKey, collections.Uint64Key), collections.BoolValue),

		TotalMiningPower:      collections.NewItem(sb, types.TotalMiningPowerKey, "total_mining_power", sdk.IntValue),
		ValidatorMiningPowers: collections.NewMap(sb, types.ValidatorMiningPowersPrefix, "validator_mining_powers", collections.StringKey, sdk.IntValue),

		RetiredValidators: collections.NewKeySet(sb, types.RetiredValidatorsPrefix, "retired_validators", collections.StringKey),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.Logger().With("module", "x/"+types.ModuleName)
}

// HubAddress returns the account that holds the hub's delegations.
func (k Keeper) HubAddress() sdk.AccAddress {
	return k.hubAddress
}

// HubAddressString returns the bech32 form of HubAddress.
func (k Keeper) HubAddressString() string {
	return k.hubAddrStr
}

// AddressCodec returns the account address codec.
func (k Keeper) AddressCodec() addresscodec.Codec {
	return k.addressCodec
}

// ValidatorAddressCodec returns the validator address codec.
func (k Keeper) ValidatorAddressCodec() addresscodec.Codec {
	return k.validatorAddressCodec
}

// HubConfig returns the node-local hub configuration.
func (k Keeper) HubConfig() config.HubConfig {
	return k.hubConfig
}

func blockTime(ctx context.Context) uint64 {
	return uint64(sdk.UnwrapSDKContext(ctx).BlockTime().Unix())
}

func (k Keeper) assertOwner(cfg types.Config, sender string) error {
	if sender != cfg.Owner {
		return errorsmod.Wrap(types.ErrUnauthorized, "sender is not owner")
	}

	return nil
}

func (k Keeper) assertHub(sender string) error {
	if sender != k.hubAddrStr {
		return errorsmod.Wrap(types.ErrUnauthorized, "callbacks can only be invoked by the hub itself")
	}

	return nil
}

// GetUnlockedCoins returns the coins received but not yet reinvested.
func (k Keeper) GetUnlockedCoins(ctx context.Context) (sdk.Coins, error) {
	coins, err := k.UnlockedCoins.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return sdk.Coins{}, nil
	}

	return coins, err
}

// QueryDelegations returns the hub's live delegation to every whitelisted
// validator in registry order, zero amounts included.
func (k Keeper) QueryDelegations(ctx context.Context, validators []string, denom string) ([]types.Delegation, error) {
	delegations := make([]types.Delegation, 0, len(validators))
	for _, validator := range validators {
		amount, err := k.stakingKeeper.GetDelegatedAmount(ctx, k.hubAddress, validator, denom)
		if err != nil {
			return nil, err
		}
		if amount.IsNil() {
			amount = math.ZeroInt()
		}

		delegations = append(delegations, types.NewDelegation(validator, amount, denom))
	}

	return delegations, nil
}

// HubDelegations is the hub's live stake: the whitelist in registry order
// followed by retired validators that still hold stake.
type HubDelegations struct {
	Validators []string
	All        []types.Delegation
}

// Active returns the delegations to whitelisted validators, zero amounts
// included.
func (h HubDelegations) Active() []types.Delegation {
	return h.All[:len(h.Validators)]
}

// Retired returns the delegations left on validators no longer whitelisted.
func (h HubDelegations) Retired() []types.Delegation {
	return h.All[len(h.Validators):]
}

// Live returns every non-zero delegation, largest first.
func (h HubDelegations) Live() []types.Delegation {
	return types.LiveDelegations(h.All)
}

// loadDelegations reads the config and every delegation the hub holds.
func (k Keeper) loadDelegations(ctx context.Context) (types.Config, HubDelegations, error) {
	cfg, err := k.Config.Get(ctx)
	if err != nil {
		return types.Config{}, HubDelegations{}, err
	}

	validators, err := k.Validators.Get(ctx)
	if err != nil {
		return types.Config{}, HubDelegations{}, err
	}

	all, err := k.QueryDelegations(ctx, validators, cfg.Denom)
	if err != nil {
		return types.Config{}, HubDelegations{}, err
	}

	err = k.RetiredValidators.Walk(ctx, nil, func(validator string) (bool, error) {
		amount, err := k.stakingKeeper.GetDelegatedAmount(ctx, k.hubAddress, validator, cfg.Denom)
		if err != nil {
			return true, err
		}

		if !amount.IsNil() && amount.IsPositive() {
			all = append(all, types.NewDelegation(validator, amount, cfg.Denom))
		}

		return false, nil
	})
	if err != nil {
		return types.Config{}, HubDelegations{}, err
	}

	return cfg, HubDelegations{Validators: validators, All: all}, nil
}

// snapshotNativeBalance records the native balance the hub will hold once
// outgoing leaves it. Replies to the instructions emitted afterwards in the
// same block credit only the growth past this snapshot.
func (k Keeper) snapshotNativeBalance(ctx context.Context, denom string, outgoing math.Int) error {
	balance := k.bankKeeper.GetBalance(ctx, k.hubAddress, denom).Amount
	if balance.IsNil() {
		balance = math.ZeroInt()
	}

	snapshot := balance.Sub(outgoing)
	if snapshot.IsNegative() {
		snapshot = math.ZeroInt()
	}

	return k.PrevNativeBalance.Set(ctx, types.BalanceSnapshot{
		Height: sdk.UnwrapSDKContext(ctx).BlockHeight(),
		Amount: snapshot,
	})
}

// GetMiningPower returns the mining power of validator, zero when unset.
func (k Keeper) GetMiningPower(ctx context.Context, validator string) (math.Int, error) {
	power, err := k.ValidatorMiningPowers.Get(ctx, validator)
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}

	return power, err
}

// GetTotalMiningPower returns the sum of all mining powers.
func (k Keeper) GetTotalMiningPower(ctx context.Context) (math.Int, error) {
	total, err := k.TotalMiningPower.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}

	return total, err
}

// miningTarget weights total by each validator's share of the mining power.
func (k Keeper) miningTarget(ctx context.Context, total, totalPower math.Int) types.TargetFunc {
	return func(d types.Delegation) (math.Int, error) {
		power, err := k.GetMiningPower(ctx, d.Validator)
		if err != nil {
			return math.Int{}, err
		}

		return types.ComputeTargetDelegationFromMiningPower(total, power, totalPower)
	}
}

// targetFunc selects mining weighted targets when any mining power is
// recorded and even targets otherwise.
func (k Keeper) targetFunc(ctx context.Context, delegations []types.Delegation) (types.TargetFunc, bool, error) {
	total, err := types.SumDelegations(delegations)
	if err != nil {
		return nil, false, err
	}

	totalPower, err := k.GetTotalMiningPower(ctx)
	if err != nil {
		return nil, false, err
	}

	if totalPower.IsPositive() {
		return k.miningTarget(ctx, total, totalPower), true, nil
	}

	return types.EvenTarget(total, len(delegations)), false, nil
}
