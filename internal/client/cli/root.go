package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/lockstake/internal/client/config"
)

var flagRoot struct {
	ConfigPath string
	Addr       string
	Token      string
	Timeout    time.Duration
}

// NewRootCommand builds the ledgerctl command tree.
func NewRootCommand() *cobra.Command {
	a := &App{}

	root := &cobra.Command{
		Use:           "ledgerctl",
		Short:         "Operate a lockstake staking ledger",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagRoot.ConfigPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.ServerEndpointAddr = flagRoot.Addr
			}
			if flags.Changed("token") {
				cfg.AccessToken = flagRoot.Token
			}
			if flags.Changed("timeout") {
				cfg.Timeout = flagRoot.Timeout
			}
			a.config = cfg
			a.out = cmd.OutOrStdout()
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&flagRoot.ConfigPath, "config", "c", "", "JSON config file")
	pf.StringVarP(&flagRoot.Addr, "addr", "a", "", "address and port of the gRPC endpoint")
	pf.StringVarP(&flagRoot.Token, "token", "t", "", "access token")
	pf.DurationVar(&flagRoot.Timeout, "timeout", 0, "per-call timeout")

	root.AddCommand(
		versionCommand(),
		tokenCommand(a),
		pingCommand(a),
	)
	root.AddCommand(adminCommands(a)...)
	root.AddCommand(stakerCommands(a)...)
	root.AddCommand(queryCommands(a)...)
	return root
}
