package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
	"github.com/dmitrijs2005/lockstake/internal/server/auth"
)

// getSecret is an indirection used to facilitate testing.
var getSecret = GetSecret

// GetSecret prompts on w and reads the signing secret from the terminal
// without echo.
func GetSecret(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter signing secret: "); err != nil {
		return nil, err
	}
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	return secret, err
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

var flagToken struct {
	TTL        time.Duration
	SecretFile string
}

func tokenCommand(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token <identity>",
		Short: "Sign an access token for an identity with the server secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				secret []byte
				err    error
			)
			if flagToken.SecretFile != "" {
				secret, err = os.ReadFile(flagToken.SecretFile)
				secret = bytes.TrimSpace(secret)
			} else {
				secret, err = getSecret(cmd.ErrOrStderr())
			}
			if err != nil {
				return err
			}
			defer wipe(secret)

			tok, err := auth.GenerateToken(accounts.Identity(args[0]), secret, flagToken.TTL)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, tok)
			return err
		},
	}
	cmd.Flags().DurationVar(&flagToken.TTL, "ttl", 24*time.Hour, "token validity")
	cmd.Flags().StringVar(&flagToken.SecretFile, "secret-file", "", "read the secret from a file instead of the terminal")
	return cmd
}
