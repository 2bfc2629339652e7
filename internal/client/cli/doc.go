// Package cli implements ledgerctl, the operator command line for a
// lockstake server.
//
// Every ledger method has a subcommand. Administrative commands (init,
// add-rewards, set-apr, set-delay, transfer-ownership, mint) and staker
// commands (stake, request-withdrawal, withdraw, withdraw-forfeit) act as
// the identity named in the access token. Views (balance, rewards, user)
// default to the caller and accept another identity as an argument.
//
// The token subcommand signs an access token locally from the server's
// shared secret; it does not contact the server.
package cli
