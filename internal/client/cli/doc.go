// Package cli provides the passkeeper command-line client.
//
// Commands are built with cobra. Each invocation loads configuration,
// connects to the server, and restores the session token saved by the
// last login. Passwords and master keys are read from the terminal
// without echo and are never written to disk; only the session token is
// kept, in a file readable by the owner alone.
//
//	passkeeper register --email me@example.com
//	passkeeper login --email me@example.com
//	passkeeper add --site example.com --username me
//	passkeeper list
//	passkeeper reveal <id>
//	passkeeper update <id> --site example.org
//	passkeeper delete <id>
//	passkeeper generate -l 24
//	passkeeper export -o vault.json
//	passkeeper logout
//
// The connection is plaintext unless --tls (or --tls-ca, or tls/tls_ca_file
// in the config file) is given. Master keys and account passwords are sent
// to the server with each call, so plaintext is only fit for a server on
// the same host.
package cli
