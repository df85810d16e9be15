package types

// hub module event types
const (
	EventTypeBond                  = "bond"
	EventTypeHarvest               = "harvest"
	EventTypeReinvest              = "reinvest"
	EventTypeRegisterReceivedCoins = "register_received_coins"
	EventTypeQueueUnbond           = "queue_unbond"
	EventTypeSubmitBatch           = "submit_batch"
	EventTypeReconcile             = "reconcile"
	EventTypeWithdrawUnbonded      = "withdraw_unbonded"
	EventTypeAddValidator          = "add_validator"
	EventTypeRemoveValidator       = "remove_validator"
	EventTypeRebalance             = "rebalance"
	EventTypeUpdateMiningPower     = "update_mining_power"
	EventTypeTransferOwnership     = "transfer_ownership"
	EventTypeAcceptOwnership       = "accept_ownership"
	EventTypeTransferFeeAccount    = "transfer_fee_account"
	EventTypeUpdateFee             = "update_fee"

	AttributeKeyReceiver       = "receiver"
	AttributeKeyUser           = "user"
	AttributeKeyValidator      = "validator"
	AttributeKeyBondAmount     = "bond_amount"
	AttributeKeyUsteakMinted   = "usteak_minted"
	AttributeKeyUsteakToBurn   = "usteak_to_burn"
	AttributeKeyNativeUnbonded = "native_unbonded"
	AttributeKeyNativeAmount   = "native_amount"
	AttributeKeyFeeAmount      = "fee_amount"
	AttributeKeyBatchID        = "id"
	AttributeKeyBatchIDs       = "ids"
	AttributeKeyShortfall      = "shortfall"
	AttributeKeyReceivedCoins  = "received_coins"
	AttributeKeyMiningPower    = "mining_power"
	AttributeKeyRedelegations  = "redelegations"
	AttributeKeyPreviousOwner  = "previous_owner"
	AttributeKeyNewOwner       = "new_owner"
	AttributeKeyFeeType        = "fee_type"
	AttributeKeyFeeAccount     = "fee_account"
	AttributeKeyFeeRate        = "fee_rate"
	AttributeValueCategory     = ModuleName
)
