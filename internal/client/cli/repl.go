package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	UploadAvatar(ctx context.Context, path string) error
	Go(ctx context.Context, path string) error
	Users(ctx context.Context) error
	ChangeRole(ctx context.Context, id, role string) error
}

// runREPL reads commands line by line and dispatches them to a. The prompt
// shows statusFn(). The loop exits on EOF, on "exit"/"quit" or when ctx is
// done. Commands prompt for their input on the same reader.
//
// Command errors are reported by the handlers themselves; the loop only
// prints usage for malformed commands.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ex %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, update, avatar <file>, go <path>, users, role <id> <user|admin>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, go <path>, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "update":
			_ = a.UpdateProfile(ctx)

		case "avatar":
			if len(args) != 1 {
				printlnFn("Usage: avatar <file>")
				continue
			}
			_ = a.UploadAvatar(ctx, args[0])

		case "go":
			if len(args) != 1 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Go(ctx, args[0])

		case "users":
			_ = a.Users(ctx)

		case "role":
			if len(args) != 2 {
				printlnFn("Usage: role <id> <user|admin>")
				continue
			}
			_ = a.ChangeRole(ctx, args[0], args[1])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
