// Package services contains server-side business logic. This file implements
// StakingService, which hosts the staking engine: it serialises operations,
// loads and persists ledger state inside one database transaction per call,
// and journals the events every successful operation emits.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/bank"
	"github.com/dmitrijs2005/lockstake/internal/clock"
	"github.com/dmitrijs2005/lockstake/internal/common"
	"github.com/dmitrijs2005/lockstake/internal/dbx"
	"github.com/dmitrijs2005/lockstake/internal/fixedpoint"
	"github.com/dmitrijs2005/lockstake/internal/logging"
	"github.com/dmitrijs2005/lockstake/internal/server/models"
	"github.com/dmitrijs2005/lockstake/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/lockstake/internal/staking"
)

// Metrics receives the outcome of every operation.
type Metrics interface {
	ObserveOperation(op string, err error)
	SetStats(s staking.Stats)
}

type nopMetrics struct{}

func (nopMetrics) ObserveOperation(string, error) {}
func (nopMetrics) SetStats(staking.Stats)         {}

// StakingService is the storage substrate of the staking engine.
type StakingService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	clock       *clock.Monotonic
	assetID     string
	logger      logging.Logger
	metrics     Metrics

	// mu serialises writers; views share it.
	mu sync.RWMutex
}

// NewStakingService builds the service. assetID is the asset the ledger is
// initialized with; c is wrapped so it never runs behind the stored
// accumulator time.
func NewStakingService(db *sql.DB, m repomanager.RepositoryManager, c clock.Clock, assetID string, l logging.Logger, mt Metrics) *StakingService {
	if mt == nil {
		mt = nopMetrics{}
	}
	return &StakingService{
		db:          db,
		repomanager: m,
		clock:       clock.NewMonotonic(c, 0),
		assetID:     assetID,
		logger:      l.With("module", "staking_service"),
		metrics:     mt,
	}
}

type txScope struct {
	tx     dbx.DBTX
	state  *staking.State
	engine *staking.Engine
	ledger *bank.Bank
	events *staking.Recorder
}

func (s *StakingService) loadState(ctx context.Context, tx dbx.DBTX, forUpdate bool) (*staking.State, error) {
	st := &staking.State{}

	settings, err := s.repomanager.Settings(tx).Get(ctx, forUpdate)
	if errors.Is(err, common.ErrorNotFound) {
		return st, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	stats, err := s.repomanager.Stats(tx).Get(ctx, forUpdate)
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	st.Settings = *settings
	st.Stats = *stats
	s.clock.Raise(stats.LastUpdateTime)
	return st, nil
}

func (s *StakingService) loadPosition(ctx context.Context, tx dbx.DBTX, owner accounts.Identity, forUpdate bool) (*staking.Position, error) {
	p, err := s.repomanager.Positions(tx).Get(ctx, owner, forUpdate)
	if errors.Is(err, common.ErrorNotFound) {
		return &staking.Position{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load position: %w", err)
	}
	return p, nil
}

func (s *StakingService) scope(ctx context.Context, tx dbx.DBTX, forUpdate bool) (*txScope, error) {
	st, err := s.loadState(ctx, tx, forUpdate)
	if err != nil {
		return nil, err
	}
	rec := &staking.Recorder{}
	ledger := bank.New(s.repomanager.Balances(tx))
	return &txScope{
		tx:     tx,
		state:  st,
		engine: staking.NewEngine(s.clock, ledger, rec),
		ledger: ledger,
		events: rec,
	}, nil
}

func (s *StakingService) persist(ctx context.Context, sc *txScope, pos *staking.Position) error {
	if !sc.state.Initialized() {
		return nil
	}
	if err := s.repomanager.Settings(sc.tx).Save(ctx, &sc.state.Settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if err := s.repomanager.Stats(sc.tx).Save(ctx, &sc.state.Stats); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	if pos != nil && pos.Owner != "" {
		if err := s.repomanager.Positions(sc.tx).Save(ctx, pos); err != nil {
			return fmt.Errorf("save position: %w", err)
		}
	}

	journal := s.repomanager.Events(sc.tx)
	for _, rec := range sc.events.Drain() {
		payload, err := json.Marshal(rec.Payload)
		if err != nil {
			return fmt.Errorf("encode event %s: %w", rec.Name, err)
		}
		e := &models.Event{
			ID:         uuid.New(),
			Name:       rec.Name,
			Actor:      string(rec.Actor),
			LedgerTime: rec.At,
			Payload:    payload,
		}
		if err := journal.Append(ctx, e); err != nil {
			return fmt.Errorf("append event %s: %w", rec.Name, err)
		}
	}
	return nil
}

// mutate runs one engine operation in a transaction. When owner is set the
// owner's position is loaded and saved with the singletons.
func (s *StakingService) mutate(ctx context.Context, op string, actor, owner accounts.Identity, fn func(ctx context.Context, sc *txScope, pos *staking.Position) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var committed staking.Stats
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		sc, err := s.scope(ctx, tx, true)
		if err != nil {
			return err
		}

		var pos *staking.Position
		if owner != "" {
			if pos, err = s.loadPosition(ctx, tx, owner, true); err != nil {
				return err
			}
		}

		if err := fn(ctx, sc, pos); err != nil {
			return err
		}
		if err := s.persist(ctx, sc, pos); err != nil {
			return err
		}
		committed = sc.state.Stats
		return nil
	})

	s.metrics.ObserveOperation(op, err)
	if err != nil {
		if isDomainError(err) {
			s.logger.Warn(ctx, "operation rejected", "op", op, "actor", actor, "error", err.Error())
		} else {
			s.logger.Error(ctx, "operation failed", "op", op, "actor", actor, "error", err.Error())
		}
		return err
	}

	s.metrics.SetStats(committed)
	s.logger.Info(ctx, "operation committed", "op", op, "actor", actor,
		"total_staked", committed.TotalStaked, "reward_per_token", committed.RewardPerTokenStored)
	return nil
}

// view runs fn in a transaction without persisting anything.
func (s *StakingService) view(ctx context.Context, fn func(ctx context.Context, sc *txScope) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		sc, err := s.scope(ctx, tx, false)
		if err != nil {
			return err
		}
		if !sc.state.Initialized() {
			return staking.ErrNotInitialized
		}
		return fn(ctx, sc)
	})
}

var domainErrors = []error{
	staking.ErrInvalidAmount,
	staking.ErrNoStakeFound,
	staking.ErrNoWithdrawalRequest,
	staking.ErrWithdrawalDelayNotMet,
	staking.ErrInsufficientRewards,
	staking.ErrMathOverflow,
	staking.ErrUnauthorizedOwnershipTransfer,
	staking.ErrUnauthorized,
	staking.ErrNotInitialized,
	staking.ErrAlreadyInitialized,
	staking.ErrInvalidIdentity,
	bank.ErrInsufficientFunds,
	bank.ErrUnauthorizedTransfer,
	bank.ErrInvalidTransfer,
}

func isDomainError(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Initialize makes caller the administrator of a new ledger over the
// configured asset.
func (s *StakingService) Initialize(ctx context.Context, caller accounts.Identity, delayDays, yearlyRatio uint64) error {
	return s.mutate(ctx, "initialize", caller, "", func(ctx context.Context, sc *txScope, _ *staking.Position) error {
		return sc.engine.Initialize(ctx, sc.state, caller, s.assetID, delayDays, yearlyRatio)
	})
}

func (s *StakingService) AddRewards(ctx context.Context, caller accounts.Identity, amount uint64) error {
	return s.mutate(ctx, "add_rewards", caller, "", func(ctx context.Context, sc *txScope, _ *staking.Position) error {
		return sc.engine.AddRewards(ctx, sc.state, caller, amount)
	})
}

func (s *StakingService) ConfigureRewardRatio(ctx context.Context, caller accounts.Identity, yearlyRatio uint64) error {
	return s.mutate(ctx, "configure_reward_ratio", caller, "", func(ctx context.Context, sc *txScope, _ *staking.Position) error {
		return sc.engine.ConfigureRewardRatio(ctx, sc.state, caller, yearlyRatio)
	})
}

func (s *StakingService) ConfigureWithdrawalDelay(ctx context.Context, caller accounts.Identity, days uint64) error {
	return s.mutate(ctx, "configure_withdrawal_delay", caller, "", func(ctx context.Context, sc *txScope, _ *staking.Position) error {
		return sc.engine.ConfigureWithdrawalDelay(ctx, sc.state, caller, days)
	})
}

func (s *StakingService) InitiateOwnershipTransfer(ctx context.Context, caller, newAdmin accounts.Identity) error {
	return s.mutate(ctx, "initiate_ownership_transfer", caller, "", func(ctx context.Context, sc *txScope, _ *staking.Position) error {
		return sc.engine.InitiateOwnershipTransfer(ctx, sc.state, caller, newAdmin)
	})
}

func (s *StakingService) FinalizeOwnershipTransfer(ctx context.Context, caller accounts.Identity) error {
	return s.mutate(ctx, "finalize_ownership_transfer", caller, "", func(ctx context.Context, sc *txScope, _ *staking.Position) error {
		return sc.engine.FinalizeOwnershipTransfer(ctx, sc.state, caller)
	})
}

func (s *StakingService) Stake(ctx context.Context, user accounts.Identity, amount uint64) error {
	return s.mutate(ctx, "stake", user, user, func(ctx context.Context, sc *txScope, pos *staking.Position) error {
		return sc.engine.Stake(ctx, sc.state, pos, user, amount)
	})
}

func (s *StakingService) RequestWithdrawal(ctx context.Context, user accounts.Identity) error {
	return s.mutate(ctx, "request_withdrawal", user, user, func(ctx context.Context, sc *txScope, pos *staking.Position) error {
		return sc.engine.RequestWithdrawal(ctx, sc.state, pos, user)
	})
}

func (s *StakingService) Withdraw(ctx context.Context, user accounts.Identity) error {
	return s.mutate(ctx, "withdraw", user, user, func(ctx context.Context, sc *txScope, pos *staking.Position) error {
		return sc.engine.Withdraw(ctx, sc.state, pos, user)
	})
}

func (s *StakingService) WithdrawAndForfeitRewards(ctx context.Context, user accounts.Identity) error {
	return s.mutate(ctx, "withdraw_and_forfeit_rewards", user, user, func(ctx context.Context, sc *txScope, pos *staking.Position) error {
		return sc.engine.WithdrawAndForfeitRewards(ctx, sc.state, pos, user)
	})
}

// Mint credits amount to the wallet of to. Only the administrator may mint.
// It returns the new wallet balance.
func (s *StakingService) Mint(ctx context.Context, caller, to accounts.Identity, amount uint64) (uint64, error) {
	var balance uint64
	err := s.mutate(ctx, "mint", caller, "", func(ctx context.Context, sc *txScope, _ *staking.Position) error {
		if !sc.state.Initialized() {
			return staking.ErrNotInitialized
		}
		if caller != sc.state.Settings.Administrator {
			return staking.ErrUnauthorized
		}
		if to == "" {
			return staking.ErrInvalidIdentity
		}
		if amount == 0 {
			return staking.ErrInvalidAmount
		}
		var err error
		balance, err = sc.ledger.Mint(ctx, accounts.Wallet(to), sc.state.Settings.AssetID, amount)
		if errors.Is(err, fixedpoint.ErrOverflow) {
			return fmt.Errorf("%w: %v", staking.ErrMathOverflow, err)
		}
		return err
	})
	return balance, err
}

// Balances of one identity on the host ledger.
type Balances struct {
	Wallet uint64
	Escrow uint64
}

func (s *StakingService) Balance(ctx context.Context, who accounts.Identity) (*Balances, error) {
	var out Balances
	err := s.view(ctx, func(ctx context.Context, sc *txScope) error {
		var err error
		asset := sc.state.Settings.AssetID
		if out.Wallet, err = sc.ledger.Balance(ctx, accounts.Wallet(who), asset); err != nil {
			return err
		}
		out.Escrow, err = sc.ledger.Balance(ctx, accounts.Escrow(who), asset)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *StakingService) CurrentRewards(ctx context.Context, user accounts.Identity) (uint64, error) {
	var out uint64
	err := s.view(ctx, func(ctx context.Context, sc *txScope) error {
		pos, err := s.loadPosition(ctx, sc.tx, user, false)
		if err != nil {
			return err
		}
		out, err = sc.engine.CurrentRewards(sc.state, pos)
		return err
	})
	return out, err
}

func (s *StakingService) UnallocatedRewards(ctx context.Context) (*big.Int, error) {
	var out *big.Int
	err := s.view(ctx, func(ctx context.Context, sc *txScope) error {
		var err error
		out, err = sc.engine.UnallocatedRewards(sc.state)
		return err
	})
	return out, err
}

func (s *StakingService) RewardRunway(ctx context.Context) (uint64, error) {
	var out uint64
	err := s.view(ctx, func(ctx context.Context, sc *txScope) error {
		var err error
		out, err = sc.engine.RewardRunway(sc.state)
		return err
	})
	return out, err
}
