package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/lockstake/internal/api"
)

func stakerCommands(a *App) []*cobra.Command {
	stake := &cobra.Command{
		Use:   "stake <amount>",
		Short: "Stake tokens from the caller's wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				_, err := s.Stake(ctx, &api.AmountRequest{Amount: amount})
				return a.done(err, "Staked %s", formatAmount(amount))
			})
		},
	}

	request := &cobra.Command{
		Use:   "request-withdrawal",
		Short: "Freeze the caller's stake and reward and start the delay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				_, err := s.RequestWithdrawal(ctx, &api.Empty{})
				return a.done(err, "Withdrawal requested")
			})
		},
	}

	withdraw := &cobra.Command{
		Use:   "withdraw",
		Short: "Pay out an unlocked withdrawal request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				_, err := s.Withdraw(ctx, &api.Empty{})
				return a.done(err, "Withdrawn")
			})
		},
	}

	forfeit := &cobra.Command{
		Use:   "withdraw-forfeit",
		Short: "Return the requested principal and give up the reward",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				_, err := s.WithdrawAndForfeitRewards(ctx, &api.Empty{})
				return a.done(err, "Withdrawn, rewards forfeited")
			})
		},
	}

	return []*cobra.Command{stake, request, withdraw, forfeit}
}
