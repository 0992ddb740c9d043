package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/achievo/internal/client/client"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	takeRoute() client.Route

	Register(ctx context.Context) error
	RegisterOTP(ctx context.Context) error
	Login(ctx context.Context) error
	Forgot(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Public(ctx context.Context) error

	Profile(ctx context.Context, args []string) error
	Passwd(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Analytics(ctx context.Context) error
	Timeline(ctx context.Context, args []string) error
	Achievements(ctx context.Context, args []string) error
	Categories(ctx context.Context, args []string) error
	Skills(ctx context.Context, args []string) error
	Goals(ctx context.Context, args []string) error
	Admin(ctx context.Context, args []string) error
}

const (
	guestHelp = "Available commands: register, register-otp, login, forgot, public, whoami, exit"
	userHelp  = "Available commands: dashboard, analytics, timeline [year], (ach)ievements, (cat)egories, " +
		"skills, goals, public, profile [edit], passwd, whoami, logout, exit\n" +
		"Resource commands take a subcommand: list, show <id>, add, edit <id>, delete <id>"
	adminHelp = "Admin: admin stats | growth [days] | users [search] | user <id> | setuser <id> | deluser <id> | content"
)

// runREPL starts a simple read–eval–print loop for the Achievo CLI.
//
// Before every prompt it acts on the route requested since the last
// command: RouteLogin runs the login flow, RouteRoot prints the start
// hint. It then reads a line, parses the first token as the command and
// dispatches to methods on 'a'. Commands that need a session are refused
// while logged out, admin commands while not an administrator.
//
// Any errors returned by command handlers are ignored here; handlers
// report their own errors. The loop exits on EOF or "exit" / "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		switch a.takeRoute() {
		case client.RouteLogin:
			printlnFn("Your session has ended. Please log in again.")
			_ = a.Login(ctx)
			continue
		case client.RouteRoot:
			printlnFn("Type 'help' to see available commands.")
		}

		printlnFn(fmt.Sprintf("achievo %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if !dispatch(ctx, a, cmd, args) {
			printlnFn("Bye!")
			return
		}
	}
}

// dispatch runs one command and reports whether the loop should go on.
func dispatch(ctx context.Context, a execIface, cmd string, args []string) bool {
	switch cmd {
	case "help":
		switch {
		case a.isAdmin():
			printlnFn(userHelp + "\n" + adminHelp)
		case a.isLoggedIn():
			printlnFn(userHelp)
		default:
			printlnFn(guestHelp)
		}
		return true

	case "register":
		_ = a.Register(ctx)
		return true
	case "register-otp":
		_ = a.RegisterOTP(ctx)
		return true
	case "login":
		_ = a.Login(ctx)
		return true
	case "forgot":
		_ = a.Forgot(ctx)
		return true
	case "logout":
		_ = a.Logout(ctx)
		return true
	case "whoami":
		_ = a.WhoAmI(ctx)
		return true
	case "public":
		_ = a.Public(ctx)
		return true
	case "exit", "quit":
		return false
	}

	if !isSessionCommand(cmd) {
		printlnFn("Unknown command:", cmd)
		return true
	}
	if !a.isLoggedIn() {
		printlnFn("Please log in first (type 'login').")
		return true
	}

	switch cmd {
	case "profile":
		_ = a.Profile(ctx, args)
	case "passwd":
		_ = a.Passwd(ctx)
	case "dashboard":
		_ = a.Dashboard(ctx)
	case "analytics":
		_ = a.Analytics(ctx)
	case "timeline":
		_ = a.Timeline(ctx, args)
	case "ach", "achievements":
		_ = a.Achievements(ctx, args)
	case "cat", "categories":
		_ = a.Categories(ctx, args)
	case "skills":
		_ = a.Skills(ctx, args)
	case "goals":
		_ = a.Goals(ctx, args)
	case "admin":
		if !a.isAdmin() {
			printlnFn("Admin access required.")
			return true
		}
		_ = a.Admin(ctx, args)
	}
	return true
}

func isSessionCommand(cmd string) bool {
	switch cmd {
	case "profile", "passwd", "dashboard", "analytics", "timeline",
		"ach", "achievements", "cat", "categories", "skills", "goals", "admin":
		return true
	}
	return false
}
