// Package client is the operator-side connection to the lockstake server.
//
// GRPCClient embeds api.StakingClient, so every ledger method is available
// directly. A unary interceptor attaches the access token to each call and
// turns status errors back into the staking sentinels, so callers can match
// them with errors.Is:
//
//	c, _ := client.NewGRPCClient("127.0.0.1:3200", token)
//	defer c.Close()
//	_, err := c.Stake(ctx, &api.AmountRequest{Amount: 100})
//	if errors.Is(err, staking.ErrInvalidAmount) { ... }
//
// Transport failures are reported as ErrUnavailable.
package client
