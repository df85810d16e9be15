package types

import (
	"fmt"

	"cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	distrtypes "github.com/cosmos/cosmos-sdk/x/distribution/types"
	stakingtypes "github.com/cosmos/cosmos-sdk/x/staking/types"
)

// Instruction is an outbound message to one of the hub's collaborators:
// the host staking and bank modules, the receipt token, the fee splitter,
// or the hub itself. Instructions are emitted, never executed inline.
type Instruction interface {
	InstructionType() string
}

// SDKInstruction is an Instruction the host chain executes as an sdk.Msg
// signed by the hub account.
type SDKInstruction interface {
	Instruction
	ToSDKMsg(sender string) sdk.Msg
}

var (
	_ SDKInstruction = Delegation{}
	_ SDKInstruction = Undelegation{}
	_ SDKInstruction = Redelegation{}
	_ SDKInstruction = RewardWithdrawal{}
	_ SDKInstruction = Send{}

	_ Instruction = Mint{}
	_ Instruction = Burn{}
	_ Instruction = FeeSplitDeposit{}
	_ Instruction = Callback{}
)

// SubMsg wraps an instruction. When ReplyOnSuccess is set the host must
// report the funds it sent back to the hub through RegisterReceivedCoins.
type SubMsg struct {
	Instruction    Instruction
	ReplyOnSuccess bool
}

func NewSubMsg(i Instruction) SubMsg {
	return SubMsg{Instruction: i}
}

func NewSubMsgWithReply(i Instruction) SubMsg {
	return SubMsg{Instruction: i, ReplyOnSuccess: true}
}

// Response is the outcome of one hub operation.
type Response struct {
	Messages []SubMsg
}

// Instructions returns the wrapped instructions in emission order.
func (r Response) Instructions() []Instruction {
	out := make([]Instruction, len(r.Messages))
	for i, m := range r.Messages {
		out[i] = m.Instruction
	}

	return out
}

// Delegation is a live or computed stake of denom on validator.
type Delegation struct {
	Validator string   `json:"validator"`
	Amount    math.Int `json:"amount"`
	Denom     string   `json:"denom"`
}

func NewDelegation(validator string, amount math.Int, denom string) Delegation {
	return Delegation{Validator: validator, Amount: amount, Denom: denom}
}

func (d Delegation) InstructionType() string { return "delegate" }

func (d Delegation) String() string {
	return fmt.Sprintf("delegate %s%s to %s", d.Amount, d.Denom, d.Validator)
}

func (d Delegation) ToSDKMsg(sender string) sdk.Msg {
	return &stakingtypes.MsgDelegate{
		DelegatorAddress: sender,
		ValidatorAddress: d.Validator,
		Amount:           sdk.Coin{Denom: d.Denom, Amount: d.Amount},
	}
}

// Undelegation asks the host to unbond amount from validator.
type Undelegation struct {
	Validator string   `json:"validator"`
	Amount    math.Int `json:"amount"`
	Denom     string   `json:"denom"`
}

func NewUndelegation(validator string, amount math.Int, denom string) Undelegation {
	return Undelegation{Validator: validator, Amount: amount, Denom: denom}
}

func (u Undelegation) InstructionType() string { return "undelegate" }

func (u Undelegation) String() string {
	return fmt.Sprintf("undelegate %s%s from %s", u.Amount, u.Denom, u.Validator)
}

func (u Undelegation) ToSDKMsg(sender string) sdk.Msg {
	return &stakingtypes.MsgUndelegate{
		DelegatorAddress: sender,
		ValidatorAddress: u.Validator,
		Amount:           sdk.Coin{Denom: u.Denom, Amount: u.Amount},
	}
}

// Redelegation moves amount of stake from Src to Dst.
type Redelegation struct {
	Src    string   `json:"src"`
	Dst    string   `json:"dst"`
	Amount math.Int `json:"amount"`
	Denom  string   `json:"denom"`
}

func NewRedelegation(src, dst string, amount math.Int, denom string) Redelegation {
	return Redelegation{Src: src, Dst: dst, Amount: amount, Denom: denom}
}

func (r Redelegation) InstructionType() string { return "redelegate" }

func (r Redelegation) String() string {
	return fmt.Sprintf("redelegate %s%s from %s to %s", r.Amount, r.Denom, r.Src, r.Dst)
}

func (r Redelegation) ToSDKMsg(sender string) sdk.Msg {
	return &stakingtypes.MsgBeginRedelegate{
		DelegatorAddress:    sender,
		ValidatorSrcAddress: r.Src,
		ValidatorDstAddress: r.Dst,
		Amount:              sdk.Coin{Denom: r.Denom, Amount: r.Amount},
	}
}

// RewardWithdrawal claims the staking rewards accrued on validator.
type RewardWithdrawal struct {
	Validator string `json:"validator"`
}

func (w RewardWithdrawal) InstructionType() string { return "withdraw_rewards" }

func (w RewardWithdrawal) ToSDKMsg(sender string) sdk.Msg {
	return &distrtypes.MsgWithdrawDelegatorReward{
		DelegatorAddress: sender,
		ValidatorAddress: w.Validator,
	}
}

// Send transfers coins out of the hub account.
type Send struct {
	ToAddress string    `json:"to_address"`
	Amount    sdk.Coins `json:"amount"`
}

func (s Send) InstructionType() string { return "send" }

func (s Send) ToSDKMsg(sender string) sdk.Msg {
	return &banktypes.MsgSend{
		FromAddress: sender,
		ToAddress:   s.ToAddress,
		Amount:      s.Amount,
	}
}

// Mint asks the receipt token to mint amount to recipient.
type Mint struct {
	Token     string   `json:"token"`
	Recipient string   `json:"recipient"`
	Amount    math.Int `json:"amount"`
}

func (m Mint) InstructionType() string { return "mint" }

// Burn asks the receipt token to burn amount held by the hub.
type Burn struct {
	Token  string   `json:"token"`
	Amount math.Int `json:"amount"`
}

func (b Burn) InstructionType() string { return "burn" }

// FeeSplitDeposit deposits coins into the fee splitting contract.
type FeeSplitDeposit struct {
	Contract string    `json:"contract"`
	Amount   sdk.Coins `json:"amount"`
	Flush    bool      `json:"flush"`
}

func (d FeeSplitDeposit) InstructionType() string { return "fee_split_deposit" }

// CallbackKind names a hub operation scheduled to run after the
// instructions preceding it.
type CallbackKind string

const (
	CallbackSubmitBatch CallbackKind = "submit_batch"
	CallbackReinvest    CallbackKind = "reinvest"
)

// Callback is an instruction addressed to the hub itself.
type Callback struct {
	Kind CallbackKind `json:"kind"`
}

func (c Callback) InstructionType() string { return "callback_" + string(c.Kind) }
