package staking

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/bank"
	"github.com/dmitrijs2005/lockstake/internal/clock"
	"github.com/dmitrijs2005/lockstake/internal/fixedpoint"
)

// Engine executes ledger operations against caller-owned state.
//
// Every operation works on copies of the state it touches, performs its
// transfers as one batch, and writes the copies back only when the batch
// succeeded. A failed operation therefore leaves both the state and the
// balances exactly as they were.
type Engine struct {
	clock  clock.Clock
	bank   bank.Ledger
	events EventSink
}

func NewEngine(c clock.Clock, ledger bank.Ledger, sink EventSink) *Engine {
	if sink == nil {
		sink = Discard
	}
	return &Engine{clock: c, bank: ledger, events: sink}
}

func (e *Engine) emit(actor accounts.Identity, at uint32, ev Event) {
	e.events.Emit(Record{Name: ev.EventName(), Actor: actor, At: at, Payload: ev})
}

func (e *Engine) transfer(ctx context.Context, transfers []bank.Transfer) error {
	if len(transfers) == 0 {
		return nil
	}
	if err := e.bank.Transfer(ctx, transfers...); err != nil {
		if errors.Is(err, fixedpoint.ErrOverflow) {
			return overflow(err)
		}
		return fmt.Errorf("transfer: %w", err)
	}
	return nil
}

// Initialize creates the protocol singletons. The delay is given in days and
// the reward ratio as a yearly numerator scaled by Precision.
func (e *Engine) Initialize(ctx context.Context, st *State, admin accounts.Identity, assetID string, delayDays uint64, yearlyRatio uint64) error {
	if st.Initialized() {
		return ErrAlreadyInitialized
	}
	if admin == "" {
		return ErrInvalidIdentity
	}
	if assetID == "" {
		return fmt.Errorf("%w: empty asset id", ErrInvalidAmount)
	}
	delay, err := delaySeconds(delayDays)
	if err != nil {
		return err
	}

	now := e.clock.Now()
	rate := fixedpoint.YearlyToPerSecond(yearlyRatio)

	st.Settings = Settings{
		Administrator:   admin,
		AssetID:         assetID,
		WithdrawalDelay: delay,
		RewardRate:      rate,
	}
	st.Stats = Stats{LastUpdateTime: now}

	e.emit(admin, now, Initialized{
		Administrator:         admin,
		AssetID:               assetID,
		WithdrawalDelay:       delay,
		YearlyRewardRatio:     yearlyRatio,
		PerSecondRewardRatio:  rate,
		InitialLastUpdateTime: now,
	})
	return nil
}

func delaySeconds(days uint64) (uint32, error) {
	if days > MaxWithdrawalDelayDays {
		return 0, fmt.Errorf("%w: withdrawal delay above %d days", ErrInvalidAmount, MaxWithdrawalDelayDays)
	}
	secs, err := fixedpoint.DaysToSeconds(days)
	if err != nil {
		return 0, overflow(err)
	}
	return uint32(secs), nil
}

// AddRewards moves amount from the administrator's wallet into the treasury
// and records it as provided.
func (e *Engine) AddRewards(ctx context.Context, st *State, caller accounts.Identity, amount uint64) error {
	if !st.Initialized() {
		return ErrNotInitialized
	}
	if err := st.Settings.authorize(caller); err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}

	now := e.clock.Now()
	stats := st.Stats
	provided, err := fixedpoint.Add(stats.TotalRewardProvided, amount)
	if err != nil {
		return overflow(err)
	}
	stats.TotalRewardProvided = provided

	err = e.transfer(ctx, []bank.Transfer{{
		From:      accounts.Wallet(caller),
		To:        accounts.Treasury(),
		Authority: accounts.AsUser(caller),
		Asset:     st.Settings.AssetID,
		Amount:    amount,
	}})
	if err != nil {
		return err
	}

	before := st.Stats.TotalRewardProvided
	st.Stats = stats
	e.emit(caller, now, RewardsAdded{
		Amount:                    amount,
		TotalRewardProvidedBefore: before,
		TotalRewardProvidedAfter:  provided,
	})
	return nil
}

// ConfigureRewardRatio accrues everything owed under the old rate and then
// switches to the new one.
func (e *Engine) ConfigureRewardRatio(ctx context.Context, st *State, caller accounts.Identity, yearlyRatio uint64) error {
	if !st.Initialized() {
		return ErrNotInitialized
	}
	if err := st.Settings.authorize(caller); err != nil {
		return err
	}

	now := e.clock.Now()
	stats := st.Stats
	if err := stats.Update(st.Settings.RewardRate, now); err != nil {
		return err
	}

	before := st.Settings.RewardRate
	yearlyBefore, err := fixedpoint.PerSecondToYearly(before)
	if err != nil {
		return overflow(err)
	}
	rate := fixedpoint.YearlyToPerSecond(yearlyRatio)

	st.Stats = stats
	st.Settings.RewardRate = rate
	e.emit(caller, now, RewardRatioConfigured{
		YearlyBefore:    yearlyBefore,
		YearlyAfter:     yearlyRatio,
		PerSecondBefore: before,
		PerSecondAfter:  rate,
	})
	return nil
}

// ConfigureWithdrawalDelay sets the delay for future withdrawals. Requests
// already pending are measured against the new delay.
func (e *Engine) ConfigureWithdrawalDelay(ctx context.Context, st *State, caller accounts.Identity, delayDays uint64) error {
	if !st.Initialized() {
		return ErrNotInitialized
	}
	if err := st.Settings.authorize(caller); err != nil {
		return err
	}
	delay, err := delaySeconds(delayDays)
	if err != nil {
		return err
	}

	before := st.Settings.WithdrawalDelay
	st.Settings.WithdrawalDelay = delay
	e.emit(caller, e.clock.Now(), WithdrawalDelayConfigured{DelayBefore: before, DelayAfter: delay})
	return nil
}

// InitiateOwnershipTransfer nominates a pending administrator. A later call
// replaces the nomination.
func (e *Engine) InitiateOwnershipTransfer(ctx context.Context, st *State, caller, newAdmin accounts.Identity) error {
	if !st.Initialized() {
		return ErrNotInitialized
	}
	if err := st.Settings.authorize(caller); err != nil {
		return err
	}
	if newAdmin == "" {
		return ErrInvalidIdentity
	}

	before := st.Settings.PendingAdministrator
	st.Settings.PendingAdministrator = newAdmin
	e.emit(caller, e.clock.Now(), OwnershipTransferInitiated{
		Administrator:        caller,
		PendingBefore:        before,
		PendingAdministrator: newAdmin,
	})
	return nil
}

// FinalizeOwnershipTransfer must be called by the pending administrator.
func (e *Engine) FinalizeOwnershipTransfer(ctx context.Context, st *State, caller accounts.Identity) error {
	if !st.Initialized() {
		return ErrNotInitialized
	}
	pending := st.Settings.PendingAdministrator
	if pending == "" || caller != pending {
		return ErrUnauthorizedOwnershipTransfer
	}

	before := st.Settings.Administrator
	st.Settings.Administrator = pending
	st.Settings.PendingAdministrator = ""
	e.emit(caller, e.clock.Now(), OwnershipTransferFinalized{
		AdministratorBefore: before,
		AdministratorAfter:  pending,
	})
	return nil
}

func checkOwner(p *Position, user accounts.Identity) error {
	if user == "" {
		return ErrInvalidIdentity
	}
	if p.Owner != "" && p.Owner != user {
		return fmt.Errorf("%w: position belongs to %s", ErrInvalidIdentity, p.Owner)
	}
	return nil
}

// Stake locks amount from the user's wallet into their escrow.
func (e *Engine) Stake(ctx context.Context, st *State, p *Position, user accounts.Identity, amount uint64) error {
	if !st.Initialized() {
		return ErrNotInitialized
	}
	if err := checkOwner(p, user); err != nil {
		return err
	}
	if amount == 0 {
		return ErrInvalidAmount
	}

	now := e.clock.Now()
	stats := st.Stats
	pos := *p

	if err := stats.Update(st.Settings.RewardRate, now); err != nil {
		return err
	}
	if pos.Owner == "" {
		pos.Owner = user
		pos.RewardPerTokenPaid = stats.RewardPerTokenStored
	} else if err := pos.Settle(&stats); err != nil {
		return err
	}

	if pos.StakeAmount == 0 {
		pos.StakedAt = now
	}
	var err error
	if pos.StakeAmount, err = fixedpoint.Add(pos.StakeAmount, amount); err != nil {
		return overflow(err)
	}
	if stats.TotalStaked, err = fixedpoint.Add(stats.TotalStaked, amount); err != nil {
		return overflow(err)
	}

	err = e.transfer(ctx, []bank.Transfer{{
		From:      accounts.Wallet(user),
		To:        accounts.Escrow(user),
		Authority: accounts.AsUser(user),
		Asset:     st.Settings.AssetID,
		Amount:    amount,
	}})
	if err != nil {
		return err
	}

	st.Stats = stats
	*p = pos
	e.emit(user, now, Staked{User: user, Amount: amount, TotalUserStaked: pos.StakeAmount})
	return nil
}

// RequestWithdrawal moves the whole stake and every captured reward into the
// pending request and restarts the delay. No tokens move.
func (e *Engine) RequestWithdrawal(ctx context.Context, st *State, p *Position, user accounts.Identity) error {
	if !st.Initialized() {
		return ErrNotInitialized
	}
	if err := checkOwner(p, user); err != nil {
		return err
	}
	if p.StakeAmount == 0 {
		return ErrNoStakeFound
	}

	now := e.clock.Now()
	stats := st.Stats
	pos := *p

	if err := stats.Update(st.Settings.RewardRate, now); err != nil {
		return err
	}
	if err := pos.Settle(&stats); err != nil {
		return err
	}

	principal := pos.StakeAmount
	reward := pos.CapturedReward

	var err error
	if stats.TotalStaked, err = fixedpoint.Sub(stats.TotalStaked, principal); err != nil {
		return overflow(err)
	}
	if pos.WithdrawalRequestAmount, err = fixedpoint.Add(pos.WithdrawalRequestAmount, principal); err != nil {
		return overflow(err)
	}
	if pos.WithdrawalRequestRewardAmount, err = fixedpoint.Add(pos.WithdrawalRequestRewardAmount, reward); err != nil {
		return overflow(err)
	}
	pos.WithdrawalRequestTime = now
	pos.StakeAmount = 0
	pos.StakedAt = 0
	pos.CapturedReward = 0

	st.Stats = stats
	*p = pos
	e.emit(user, now, WithdrawalRequested{
		User:              user,
		AddedTokenAmount:  principal,
		TotalTokenAmount:  pos.WithdrawalRequestAmount,
		AddedRewardAmount: reward,
		TotalRewardAmount: pos.WithdrawalRequestRewardAmount,
		RequestTime:       now,
	})
	return nil
}

// Withdraw releases the pending principal from escrow and the pending reward
// from the treasury once the delay has elapsed.
func (e *Engine) Withdraw(ctx context.Context, st *State, p *Position, user accounts.Identity) error {
	if !st.Initialized() {
		return ErrNotInitialized
	}
	if err := checkOwner(p, user); err != nil {
		return err
	}
	if !p.HasWithdrawalRequest() {
		return ErrNoWithdrawalRequest
	}

	now := e.clock.Now()
	if !p.Unlocked(st.Settings.WithdrawalDelay, now) {
		return ErrWithdrawalDelayNotMet
	}

	principal := p.WithdrawalRequestAmount
	reward := p.WithdrawalRequestRewardAmount
	asset := st.Settings.AssetID

	reserve, err := e.bank.Balance(ctx, accounts.Treasury(), asset)
	if err != nil {
		return fmt.Errorf("treasury balance: %w", err)
	}
	if reserve < reward {
		return ErrInsufficientRewards
	}

	var transfers []bank.Transfer
	if principal > 0 {
		transfers = append(transfers, bank.Transfer{
			From:      accounts.Escrow(user),
			To:        accounts.Wallet(user),
			Authority: accounts.AsEscrow(user),
			Asset:     asset,
			Amount:    principal,
		})
	}
	if reward > 0 {
		transfers = append(transfers, bank.Transfer{
			From:      accounts.Treasury(),
			To:        accounts.Wallet(user),
			Authority: accounts.AsTreasury(),
			Asset:     asset,
			Amount:    reward,
		})
	}
	if err := e.transfer(ctx, transfers); err != nil {
		return err
	}

	clearRequest(p)
	e.emit(user, now, Withdrawn{User: user, TokenAmount: principal, RewardAmount: reward})
	return nil
}

// WithdrawAndForfeitRewards releases only the pending principal. The pending
// reward is discarded and stays in the treasury.
func (e *Engine) WithdrawAndForfeitRewards(ctx context.Context, st *State, p *Position, user accounts.Identity) error {
	if !st.Initialized() {
		return ErrNotInitialized
	}
	if err := checkOwner(p, user); err != nil {
		return err
	}
	if !p.HasWithdrawalRequest() {
		return ErrNoWithdrawalRequest
	}

	now := e.clock.Now()
	if !p.Unlocked(st.Settings.WithdrawalDelay, now) {
		return ErrWithdrawalDelayNotMet
	}

	principal := p.WithdrawalRequestAmount
	forfeited := p.WithdrawalRequestRewardAmount

	var transfers []bank.Transfer
	if principal > 0 {
		transfers = append(transfers, bank.Transfer{
			From:      accounts.Escrow(user),
			To:        accounts.Wallet(user),
			Authority: accounts.AsEscrow(user),
			Asset:     st.Settings.AssetID,
			Amount:    principal,
		})
	}
	if err := e.transfer(ctx, transfers); err != nil {
		return err
	}

	clearRequest(p)
	e.emit(user, now, WithdrawnAndForfeited{User: user, TokenAmount: principal, ForfeitedRewardAmount: forfeited})
	return nil
}

func clearRequest(p *Position) {
	p.WithdrawalRequestTime = 0
	p.WithdrawalRequestAmount = 0
	p.WithdrawalRequestRewardAmount = 0
}
