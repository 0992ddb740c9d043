package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/achievo/internal/client/client"
)

type fakeExec struct {
	loggedIn bool
	admin    bool
	routes   []client.Route

	calls []string
	args  map[string][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	if f.args == nil {
		f.args = map[string][]string{}
	}
	f.args[name] = args
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) isAdmin() bool    { return f.admin }

func (f *fakeExec) takeRoute() client.Route {
	if len(f.routes) == 0 {
		return ""
	}
	r := f.routes[0]
	f.routes = f.routes[1:]
	return r
}

func (f *fakeExec) Register(context.Context) error    { return f.record("register", nil) }
func (f *fakeExec) RegisterOTP(context.Context) error { return f.record("register-otp", nil) }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Forgot(context.Context) error { return f.record("forgot", nil) }
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(context.Context) error    { return f.record("whoami", nil) }
func (f *fakeExec) Public(context.Context) error    { return f.record("public", nil) }
func (f *fakeExec) Passwd(context.Context) error    { return f.record("passwd", nil) }
func (f *fakeExec) Dashboard(context.Context) error { return f.record("dashboard", nil) }
func (f *fakeExec) Analytics(context.Context) error { return f.record("analytics", nil) }
func (f *fakeExec) Profile(_ context.Context, args []string) error {
	return f.record("profile", args)
}
func (f *fakeExec) Timeline(_ context.Context, args []string) error {
	return f.record("timeline", args)
}
func (f *fakeExec) Achievements(_ context.Context, args []string) error {
	return f.record("ach", args)
}
func (f *fakeExec) Categories(_ context.Context, args []string) error {
	return f.record("cat", args)
}
func (f *fakeExec) Skills(_ context.Context, args []string) error { return f.record("skills", args) }
func (f *fakeExec) Goals(_ context.Context, args []string) error  { return f.record("goals", args) }
func (f *fakeExec) Admin(_ context.Context, args []string) error  { return f.record("admin", args) }

// capturePrints replaces printlnFn for the duration of the test.
func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

// input feeds lines to a prompt as if each was typed and confirmed with
// Enter.
func input(lines ...string) *bufio.Reader {
	if len(lines) == 0 {
		return bufio.NewReader(strings.NewReader(""))
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestRunREPL_GuestCommandsAndGating(t *testing.T) {
	out := capturePrints(t)
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "(guest)" }, input(
		"help",
		"dashboard",
		"register",
		"public",
		"foobar",
		"exit",
	))

	assert.Equal(t, []string{"register", "public"}, exec.calls)
	assert.Contains(t, *out, guestHelp)
	assert.Contains(t, *out, "Please log in first (type 'login').")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "achievo (guest)> ")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_LoggedInCommands(t *testing.T) {
	capturePrints(t)
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "" }, input(
		"login",
		"dashboard",
		"timeline 2025",
		"ach show 3",
		"achievements",
		"cat add",
		"skills list",
		"goals delete 9",
		"profile edit",
		"passwd",
		"analytics",
		"logout",
		"goals",
		"quit",
	))

	assert.Equal(t, []string{
		"login", "dashboard", "timeline", "ach", "ach", "cat", "skills", "goals",
		"profile", "passwd", "analytics", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"delete", "9"}, exec.args["goals"])
	assert.Equal(t, []string{"edit"}, exec.args["profile"])
	assert.Empty(t, exec.args["ach"])
}

func TestRunREPL_AdminGate(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, input("admin stats", "help", "exit"))
	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Admin access required.")
	assert.Contains(t, *out, userHelp)

	admin := &fakeExec{loggedIn: true, admin: true}
	runREPL(context.Background(), admin, func() string { return "" }, input("admin growth 7", "help", "exit"))
	assert.Equal(t, []string{"admin"}, admin.calls)
	assert.Equal(t, []string{"growth", "7"}, admin.args["admin"])
	assert.Contains(t, *out, userHelp+"\n"+adminHelp)
}

func TestRunREPL_PendingLoginRouteRunsLogin(t *testing.T) {
	out := capturePrints(t)
	exec := &fakeExec{loggedIn: true, routes: []client.Route{client.RouteLogin, client.RouteRoot}}

	runREPL(context.Background(), exec, func() string { return "" }, input("exit"))

	assert.Equal(t, []string{"login"}, exec.calls)
	assert.Contains(t, *out, "Your session has ended. Please log in again.")
	assert.Contains(t, *out, "Type 'help' to see available commands.")
}

func TestRunREPL_EOFEndsLoop(t *testing.T) {
	capturePrints(t)
	exec := &fakeExec{}

	// Last line without a newline is still executed.
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("\nwhoami")))
	assert.Equal(t, []string{"whoami"}, exec.calls)

	exec = &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, input())
	assert.Empty(t, exec.calls)
}
