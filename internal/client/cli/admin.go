package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/achievo/internal/client/client"
	"github.com/dmitrijs2005/achievo/internal/client/models"
)

const adminUsage = "admin stats | growth [days] | users [search] | user <id> | setuser <id> | deluser <id> | content"

// Admin dispatches the administrator subcommands.
func (a *App) Admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage(adminUsage)
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "stats":
		return a.adminStats(ctx)
	case "growth":
		days := 0
		if len(rest) > 0 {
			n, err := strconv.Atoi(rest[0])
			if err != nil || n < 1 {
				return a.report(ctx, "growth", &models.FieldError{Field: "days", Reason: "must be a positive number"})
			}
			days = n
		}
		return a.adminGrowth(ctx, days)
	case "users":
		return a.adminUsers(ctx, strings.Join(rest, " "))
	case "user":
		id, ok := parseID(rest)
		if !ok {
			return a.usage("admin user <id>")
		}
		return a.adminUser(ctx, id)
	case "setuser":
		id, ok := parseID(rest)
		if !ok {
			return a.usage("admin setuser <id>")
		}
		return a.adminSetUser(ctx, id)
	case "deluser":
		id, ok := parseID(rest)
		if !ok {
			return a.usage("admin deluser <id>")
		}
		return a.adminDeleteUser(ctx, id)
	case "content":
		return a.adminContent(ctx)
	}
	return a.usage(adminUsage)
}

func (a *App) adminStats(ctx context.Context) error {
	s, err := a.api.AdminStats(ctx)
	if err != nil {
		return a.report(ctx, "load stats", err)
	}
	t := newTable(a.out, "METRIC", "VALUE")
	t.row("Users", strconv.Itoa(s.TotalUsers))
	t.row("Active users", strconv.Itoa(s.ActiveUsers))
	t.row("Verified users", strconv.Itoa(s.VerifiedUsers))
	t.row("Pro users", strconv.Itoa(s.ProUsers))
	t.row("New today", strconv.Itoa(s.UsersCreatedToday))
	t.row("Achievements", strconv.Itoa(s.TotalAchievements))
	t.row("Skills", strconv.Itoa(s.TotalSkills))
	t.row("Goals", strconv.Itoa(s.TotalGoals))
	t.flush()
	return nil
}

func (a *App) adminGrowth(ctx context.Context, days int) error {
	points, err := a.api.AdminGrowth(ctx, days)
	if err != nil {
		return a.report(ctx, "load growth", err)
	}
	top := 0
	for _, p := range points {
		top = max(top, p.TotalUsers)
	}
	for _, p := range points {
		fmt.Fprintf(a.out, "%s %+4d %5d %s\n", p.Date, p.NewUsers, p.TotalUsers, bar(p.TotalUsers, top, barWidth))
	}
	return nil
}

func (a *App) adminUsers(ctx context.Context, search string) error {
	users, err := a.api.AdminUsers(ctx, client.ListOptions{Limit: listLimit, Search: search})
	if err != nil {
		return a.report(ctx, "list users", err)
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users found.")
		return nil
	}
	t := newTable(a.out, "ID", "EMAIL", "NAME", "ACTIVE", "ADMIN", "TIER", "ACHIEVEMENTS")
	for _, u := range users {
		t.row(itoa(u.ID), u.Email, u.FullName, yesNo(u.IsActive), yesNo(u.IsSuperuser), u.SubscriptionTier, strconv.Itoa(u.AchievementCount))
	}
	t.flush()
	return nil
}

func (a *App) adminUser(ctx context.Context, id int64) error {
	u, err := a.api.AdminUser(ctx, id)
	if err != nil {
		return a.report(ctx, "show user", err)
	}
	fmt.Fprintf(a.out, "#%d %s <%s>\n", u.ID, u.FullName, u.Email)
	fmt.Fprintf(a.out, "Active: %s  Admin: %s  Email verified: %s\n", yesNo(u.IsActive), yesNo(u.IsSuperuser), yesNo(u.IsEmailVerified))
	fmt.Fprintf(a.out, "Tier: %s  Joined: %s\n", u.SubscriptionTier, u.CreatedAt.Date())
	fmt.Fprintf(a.out, "Achievements: %d  Skills: %d  Goals: %d\n", u.AchievementCount, u.SkillCount, u.GoalCount)
	return nil
}

func (a *App) adminSetUser(ctx context.Context, id int64) error {
	var in models.UserAdminUpdate
	var err error
	if in.IsActive, err = GetOptionalBool(a.reader, "is_active", "Active", a.out); err != nil {
		return a.report(ctx, "update user", err)
	}
	if in.IsSuperuser, err = GetOptionalBool(a.reader, "is_superuser", "Administrator", a.out); err != nil {
		return a.report(ctx, "update user", err)
	}
	if in.SubscriptionTier, err = GetOptionalText(a.reader, "Subscription tier (blank keeps current)", a.out); err != nil {
		return err
	}
	if in.IsEmailVerified, err = GetOptionalBool(a.reader, "is_email_verified", "Email verified", a.out); err != nil {
		return a.report(ctx, "update user", err)
	}
	if in == (models.UserAdminUpdate{}) {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	if _, err := a.api.AdminUpdateUser(ctx, id, in); err != nil {
		return a.report(ctx, "update user", err)
	}
	fmt.Fprintf(a.out, "User #%d updated.\n", id)
	return nil
}

func (a *App) adminDeleteUser(ctx context.Context, id int64) error {
	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete user #%d and all their content? Type 'yes' to confirm", id), a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Aborted.")
		return nil
	}
	msg, err := a.api.AdminDeleteUser(ctx, id)
	if err != nil {
		return a.report(ctx, "delete user", err)
	}
	fmt.Fprintln(a.out, msg.Message)
	return nil
}

func (a *App) adminContent(ctx context.Context) error {
	items, err := a.api.AdminAchievements(ctx, client.ListOptions{Limit: listLimit})
	if err != nil {
		return a.report(ctx, "list content", err)
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No achievements found.")
		return nil
	}
	t := newTable(a.out, "ID", "USER", "TITLE", "PUBLIC", "CREATED")
	for _, it := range items {
		t.row(itoa(it.ID), it.UserEmail, it.Title, yesNo(it.IsPublic), it.CreatedAt.Date())
	}
	t.flush()
	return nil
}
