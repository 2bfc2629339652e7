package api

type Empty struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type InitializeRequest struct {
	WithdrawalDelayDays uint64 `json:"withdrawal_delay_days,string"`
	YearlyRewardRatio   uint64 `json:"yearly_reward_ratio,string"`
}

// AmountRequest carries the amount of AddRewards and Stake.
type AmountRequest struct {
	Amount uint64 `json:"amount,string"`
}

type RewardRatioRequest struct {
	YearlyRewardRatio uint64 `json:"yearly_reward_ratio,string"`
}

type WithdrawalDelayRequest struct {
	Days uint64 `json:"days,string"`
}

type OwnershipTransferRequest struct {
	NewAdministrator string `json:"new_administrator"`
}

type MintRequest struct {
	To     string `json:"to"`
	Amount uint64 `json:"amount,string"`
}

type MintResponse struct {
	Balance uint64 `json:"balance,string"`
}

// IdentityRequest names the identity a query is about. Empty means the
// caller.
type IdentityRequest struct {
	Identity string `json:"identity,omitempty"`
}

type BalanceResponse struct {
	Identity string `json:"identity"`
	Wallet   uint64 `json:"wallet,string"`
	Escrow   uint64 `json:"escrow,string"`
}

type CurrentRewardsResponse struct {
	Identity string `json:"identity"`
	Reward   uint64 `json:"reward,string"`
}

// UnallocatedRewardsResponse is signed: negative when promised exceeds
// provided.
type UnallocatedRewardsResponse struct {
	Unallocated string `json:"unallocated"`
}

type RewardRunwayResponse struct {
	Seconds  uint64 `json:"seconds,string"`
	Infinite bool   `json:"infinite"`
}

type ProtocolStatusResponse struct {
	Now uint32 `json:"now"`

	Administrator          string `json:"administrator"`
	PendingAdministrator   string `json:"pending_administrator,omitempty"`
	AssetID                string `json:"asset_id"`
	WithdrawalDelaySeconds uint32 `json:"withdrawal_delay_seconds"`
	RewardRate             uint64 `json:"reward_rate,string"`

	RewardPerTokenStored uint64 `json:"reward_per_token_stored,string"`
	LastUpdateTime       uint32 `json:"last_update_time"`
	TotalStaked          uint64 `json:"total_staked,string"`
	TotalRewardPromised  uint64 `json:"total_reward_promised,string"`
	TotalRewardProvided  uint64 `json:"total_reward_provided,string"`

	TreasuryBalance      uint64 `json:"treasury_balance,string"`
	Stakers              int64  `json:"stakers"`
	YearlyRewardRatio    uint64 `json:"yearly_reward_ratio,string"`
	RewardsPerSecond     uint64 `json:"rewards_per_second,string"`
	StoredUnallocated    string `json:"stored_unallocated"`
	ProjectedUnallocated string `json:"projected_unallocated"`
	RunwaySeconds        uint64 `json:"runway_seconds,string"`
	RunwayInfinite       bool   `json:"runway_infinite"`
}

type UserStatusResponse struct {
	Now      uint32 `json:"now"`
	Identity string `json:"identity"`
	Exists   bool   `json:"exists"`

	StakeAmount                   uint64 `json:"stake_amount,string"`
	StakedAt                      uint32 `json:"staked_at"`
	RewardPerTokenPaid            uint64 `json:"reward_per_token_paid,string"`
	CapturedReward                uint64 `json:"captured_reward,string"`
	WithdrawalRequestTime         uint32 `json:"withdrawal_request_time"`
	WithdrawalRequestAmount       uint64 `json:"withdrawal_request_amount,string"`
	WithdrawalRequestRewardAmount uint64 `json:"withdrawal_request_reward_amount,string"`

	CurrentRewards uint64 `json:"current_rewards,string"`
	WalletBalance  uint64 `json:"wallet_balance,string"`
	EscrowBalance  uint64 `json:"escrow_balance,string"`
	UnlockTime     uint64 `json:"unlock_time,string"`
	Unlocked       bool   `json:"unlocked"`
}
