package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/lockstake/internal/api"
)

func adminCommands(a *App) []*cobra.Command {
	initCmd := &cobra.Command{
		Use:   "init <withdrawal-delay-days> <yearly-apr-percent>",
		Short: "Initialize the ledger; the caller becomes administrator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			ratio, err := parseAPR(args[1])
			if err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				_, err := s.Initialize(ctx, &api.InitializeRequest{WithdrawalDelayDays: days, YearlyRewardRatio: ratio})
				return a.done(err, "Ledger initialized")
			})
		},
	}

	addRewards := &cobra.Command{
		Use:   "add-rewards <amount>",
		Short: "Move tokens from the administrator wallet into the treasury",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				_, err := s.AddRewards(ctx, &api.AmountRequest{Amount: amount})
				return a.done(err, "Added %s to the treasury", formatAmount(amount))
			})
		},
	}

	setAPR := &cobra.Command{
		Use:   "set-apr <yearly-apr-percent>",
		Short: "Change the reward rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ratio, err := parseAPR(args[0])
			if err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				_, err := s.ConfigureRewardRatio(ctx, &api.RewardRatioRequest{YearlyRewardRatio: ratio})
				return a.done(err, "Reward rate set to %s", formatAPR(ratio))
			})
		},
	}

	setDelay := &cobra.Command{
		Use:   "set-delay <days>",
		Short: "Change the withdrawal delay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				_, err := s.ConfigureWithdrawalDelay(ctx, &api.WithdrawalDelayRequest{Days: days})
				return a.done(err, "Withdrawal delay set to %d days", days)
			})
		},
	}

	transfer := &cobra.Command{
		Use:   "transfer-ownership <identity>",
		Short: "Nominate a new administrator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				_, err := s.InitiateOwnershipTransfer(ctx, &api.OwnershipTransferRequest{NewAdministrator: args[0]})
				return a.done(err, "Ownership transfer to %s initiated", args[0])
			})
		},
	}

	accept := &cobra.Command{
		Use:   "accept-ownership",
		Short: "Accept a pending ownership transfer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				_, err := s.FinalizeOwnershipTransfer(ctx, &api.Empty{})
				return a.done(err, "Ownership transferred")
			})
		},
	}

	mint := &cobra.Command{
		Use:   "mint <identity> <amount>",
		Short: "Credit an identity's wallet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				resp, err := s.Mint(ctx, &api.MintRequest{To: args[0], Amount: amount})
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.out, "Minted %s to %s, balance %s\n", formatAmount(amount), args[0], formatAmount(resp.Balance))
				return err
			})
		},
	}

	return []*cobra.Command{initCmd, addRewards, setAPR, setDelay, transfer, accept, mint}
}

// done prints the success message unless err is set.
func (a *App) done(err error, format string, args ...any) error {
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, format+"\n", args...)
	return err
}
