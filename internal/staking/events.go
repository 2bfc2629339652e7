package staking

import (
	"github.com/dmitrijs2005/lockstake/internal/accounts"
)

// Event is the payload of a notification emitted after a successful
// operation.
type Event interface {
	EventName() string
}

// Record wraps an Event with the identity that caused it and the ledger
// time at which it happened.
type Record struct {
	Name    string
	Actor   accounts.Identity
	At      uint32
	Payload Event
}

// EventSink receives records. Records are emitted only after an operation
// has committed to the caller's state.
type EventSink interface {
	Emit(Record)
}

// Recorder is an EventSink that keeps every record in memory.
type Recorder struct {
	Records []Record
}

func (r *Recorder) Emit(rec Record) {
	r.Records = append(r.Records, rec)
}

// Drain returns the collected records and resets the recorder.
func (r *Recorder) Drain() []Record {
	out := r.Records
	r.Records = nil
	return out
}

type discard struct{}

func (discard) Emit(Record) {}

// Discard drops every record.
var Discard EventSink = discard{}

type Initialized struct {
	Administrator         accounts.Identity `json:"administrator"`
	AssetID               string            `json:"asset_id"`
	WithdrawalDelay       uint32            `json:"withdrawal_delay_seconds"`
	YearlyRewardRatio     uint64            `json:"yearly_reward_ratio,string"`
	PerSecondRewardRatio  uint64            `json:"per_second_reward_ratio,string"`
	InitialLastUpdateTime uint32            `json:"last_update_time"`
}

func (Initialized) EventName() string { return "initialized" }

type RewardsAdded struct {
	Amount                    uint64 `json:"amount,string"`
	TotalRewardProvidedBefore uint64 `json:"total_reward_provided_before,string"`
	TotalRewardProvidedAfter  uint64 `json:"total_reward_provided_after,string"`
}

func (RewardsAdded) EventName() string { return "rewards_added" }

type RewardRatioConfigured struct {
	YearlyBefore    uint64 `json:"yearly_before,string"`
	YearlyAfter     uint64 `json:"yearly_after,string"`
	PerSecondBefore uint64 `json:"per_second_before,string"`
	PerSecondAfter  uint64 `json:"per_second_after,string"`
}

func (RewardRatioConfigured) EventName() string { return "reward_ratio_configured" }

type WithdrawalDelayConfigured struct {
	DelayBefore uint32 `json:"delay_before_seconds"`
	DelayAfter  uint32 `json:"delay_after_seconds"`
}

func (WithdrawalDelayConfigured) EventName() string { return "withdrawal_delay_configured" }

type OwnershipTransferInitiated struct {
	Administrator        accounts.Identity `json:"administrator"`
	PendingBefore        accounts.Identity `json:"pending_before,omitempty"`
	PendingAdministrator accounts.Identity `json:"pending_administrator"`
}

func (OwnershipTransferInitiated) EventName() string { return "ownership_transfer_initiated" }

type OwnershipTransferFinalized struct {
	AdministratorBefore accounts.Identity `json:"administrator_before"`
	AdministratorAfter  accounts.Identity `json:"administrator_after"`
}

func (OwnershipTransferFinalized) EventName() string { return "ownership_transfer_finalized" }

type Staked struct {
	User            accounts.Identity `json:"user"`
	Amount          uint64            `json:"amount,string"`
	TotalUserStaked uint64            `json:"total_user_staked,string"`
}

func (Staked) EventName() string { return "staked" }

type WithdrawalRequested struct {
	User              accounts.Identity `json:"user"`
	AddedTokenAmount  uint64            `json:"added_token_amount,string"`
	TotalTokenAmount  uint64            `json:"total_token_amount,string"`
	AddedRewardAmount uint64            `json:"added_reward_amount,string"`
	TotalRewardAmount uint64            `json:"total_reward_amount,string"`
	RequestTime       uint32            `json:"withdrawal_request_time"`
}

func (WithdrawalRequested) EventName() string { return "withdrawal_requested" }

type Withdrawn struct {
	User         accounts.Identity `json:"user"`
	TokenAmount  uint64            `json:"token_amount,string"`
	RewardAmount uint64            `json:"reward_amount,string"`
}

func (Withdrawn) EventName() string { return "withdrawn" }

type WithdrawnAndForfeited struct {
	User                  accounts.Identity `json:"user"`
	TokenAmount           uint64            `json:"token_amount,string"`
	ForfeitedRewardAmount uint64            `json:"forfeited_reward_amount,string"`
}

func (WithdrawnAndForfeited) EventName() string { return "withdrawn_and_forfeited_rewards" }
