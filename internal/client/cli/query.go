package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/lockstake/internal/api"
)

func pingCommand(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				resp, err := s.Ping(ctx, &api.Empty{})
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, resp.Status)
				return err
			})
		},
	}
}

func identityArg(args []string) *api.IdentityRequest {
	if len(args) == 0 {
		return &api.IdentityRequest{}
	}
	return &api.IdentityRequest{Identity: args[0]}
}

func queryCommands(a *App) []*cobra.Command {
	balance := &cobra.Command{
		Use:   "balance [identity]",
		Short: "Show wallet and escrow balances",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				resp, err := s.Balance(ctx, identityArg(args))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.out, "%s\twallet %s\tescrow %s\n", resp.Identity, formatAmount(resp.Wallet), formatAmount(resp.Escrow))
				return err
			})
		},
	}

	rewards := &cobra.Command{
		Use:   "rewards [identity]",
		Short: "Show the reward accrued on the active stake",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				resp, err := s.ViewCurrentRewards(ctx, identityArg(args))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(a.out, "%s\t%s\n", resp.Identity, formatAmount(resp.Reward))
				return err
			})
		},
	}

	unallocated := &cobra.Command{
		Use:   "unallocated",
		Short: "Show treasury funds not yet promised to stakers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				resp, err := s.ViewUnallocatedRewards(ctx, &api.Empty{})
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, formatSigned(resp.Unallocated))
				return err
			})
		},
	}

	runway := &cobra.Command{
		Use:   "runway",
		Short: "Show how long the unallocated rewards last",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				resp, err := s.ViewRewardRunway(ctx, &api.Empty{})
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, formatRunway(resp.Seconds, resp.Infinite))
				return err
			})
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show protocol settings and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				resp, err := s.ProtocolStatus(ctx, &api.Empty{})
				if err != nil {
					return err
				}
				return printProtocolStatus(a, resp)
			})
		},
	}

	user := &cobra.Command{
		Use:   "user [identity]",
		Short: "Show a staker's position",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.call(cmd.Context(), func(ctx context.Context, s Staking) error {
				resp, err := s.UserStatus(ctx, identityArg(args))
				if err != nil {
					return err
				}
				return printUserStatus(a, resp)
			})
		},
	}

	return []*cobra.Command{balance, rewards, unallocated, runway, status, user}
}

func printProtocolStatus(a *App, ps *api.ProtocolStatusResponse) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Administrator\t%s\n", ps.Administrator)
	if ps.PendingAdministrator != "" {
		fmt.Fprintf(tw, "Pending administrator\t%s\n", ps.PendingAdministrator)
	}
	fmt.Fprintf(tw, "Asset\t%s\n", ps.AssetID)
	fmt.Fprintf(tw, "Yearly APR\t%s\n", formatAPR(ps.YearlyRewardRatio))
	fmt.Fprintf(tw, "Withdrawal delay\t%s\n", formatSpan(uint64(ps.WithdrawalDelaySeconds)))
	fmt.Fprintf(tw, "Total staked\t%s\n", formatAmount(ps.TotalStaked))
	fmt.Fprintf(tw, "Stakers\t%d\n", ps.Stakers)
	fmt.Fprintf(tw, "Rewards per second\t%s\n", formatAmount(ps.RewardsPerSecond))
	fmt.Fprintf(tw, "Reward provided\t%s\n", formatAmount(ps.TotalRewardProvided))
	fmt.Fprintf(tw, "Reward promised\t%s\n", formatAmount(ps.TotalRewardPromised))
	fmt.Fprintf(tw, "Treasury balance\t%s\n", formatAmount(ps.TreasuryBalance))
	fmt.Fprintf(tw, "Unallocated\t%s\n", formatSigned(ps.ProjectedUnallocated))
	fmt.Fprintf(tw, "Runway\t%s\n", formatRunway(ps.RunwaySeconds, ps.RunwayInfinite))
	fmt.Fprintf(tw, "Last update\t%s\n", formatTime(ps.LastUpdateTime))
	return tw.Flush()
}

func printUserStatus(a *App, us *api.UserStatusResponse) error {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Identity\t%s\n", us.Identity)
	fmt.Fprintf(tw, "Wallet\t%s\n", formatAmount(us.WalletBalance))
	fmt.Fprintf(tw, "Escrow\t%s\n", formatAmount(us.EscrowBalance))
	if !us.Exists {
		fmt.Fprintf(tw, "Position\tnone\n")
		return tw.Flush()
	}
	fmt.Fprintf(tw, "Staked\t%s\n", formatAmount(us.StakeAmount))
	fmt.Fprintf(tw, "Staked at\t%s\n", formatTime(us.StakedAt))
	fmt.Fprintf(tw, "Current rewards\t%s\n", formatAmount(us.CurrentRewards))
	if us.WithdrawalRequestTime != 0 {
		fmt.Fprintf(tw, "Requested amount\t%s\n", formatAmount(us.WithdrawalRequestAmount))
		fmt.Fprintf(tw, "Requested reward\t%s\n", formatAmount(us.WithdrawalRequestRewardAmount))
		fmt.Fprintf(tw, "Unlocks\t%s\n", formatUnlock(us.UnlockTime, us.Now))
		fmt.Fprintf(tw, "Unlocked\t%t\n", us.Unlocked)
	}
	return tw.Flush()
}
