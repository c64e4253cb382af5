// Package cli is the interactive terminal front end of the exchange client.
//
// It drives the session store and the router from a read-eval-print loop.
// Paths typed with "go" are resolved and authorized exactly like page
// changes in a browser: a protected page may turn into a redirect to the
// login page or to the home page.
//
// Commands:
//
//	help                  show available commands
//	register              create an account
//	login                 authenticate
//	logout                end the session
//	whoami                show the cached profile (fetching it if needed)
//	update                change nickname, email or password
//	avatar <file>         upload a new avatar image
//	go <path>             navigate, e.g. "go /admin/users"
//	users                 list all users (admin)
//	role <id> <role>      change a user's role to user or admin (admin)
//	exit | quit           leave the program
//
// The App also implements supervisor.Notifier: notices about expired
// sessions, missing rights and unreachable servers are printed between
// prompts.
package cli
