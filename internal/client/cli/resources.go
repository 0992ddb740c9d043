package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/achievo/internal/client/client"
	"github.com/dmitrijs2005/achievo/internal/client/models"
)

const listLimit = 100

// subcommand splits args into the subcommand (default "list") and the rest.
func subcommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "list", nil
	}
	return args[0], args[1:]
}

func (a *App) usage(text string) error {
	fmt.Fprintln(a.out, "Usage: "+text)
	return nil
}

// requiredText reads a non-empty value for field.
func (a *App) requiredText(field, prompt string) (*string, error) {
	s, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, &models.FieldError{Field: field, Reason: "must not be empty"}
	}
	return &s, nil
}

func optionalDescription(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// deleteItem removes the item named by args[0] from r.
func deleteItem[T, I any](ctx context.Context, a *App, what string, r *client.Resource[T, I], args []string) error {
	id, ok := parseID(args)
	if !ok {
		return a.usage(strings.ToLower(what) + " delete <id>")
	}
	if err := r.Delete(ctx, id); err != nil {
		return a.report(ctx, "delete "+strings.ToLower(what), err)
	}
	fmt.Fprintf(a.out, "%s #%d deleted.\n", what, id)
	return nil
}

// Achievements handles "ach list [category_id] | show <id> | add | edit <id> | delete <id>".
func (a *App) Achievements(ctx context.Context, args []string) error {
	r := a.api.Achievements()
	sub, rest := subcommand(args)

	switch sub {
	case "list":
		opts := client.ListOptions{Limit: listLimit}
		if id, ok := parseID(rest); ok {
			opts.CategoryID = id
		}
		items, err := r.List(ctx, opts)
		if err != nil {
			return a.report(ctx, "list achievements", err)
		}
		a.printAchievements(items)
		return nil

	case "show":
		id, ok := parseID(rest)
		if !ok {
			return a.usage("ach show <id>")
		}
		it, err := r.Get(ctx, id)
		if err != nil {
			return a.report(ctx, "show achievement", err)
		}
		fmt.Fprintf(a.out, "#%d %s\n", it.ID, it.Title)
		fmt.Fprintf(a.out, "Date:       %s\n", it.EffectiveDate().Date())
		fmt.Fprintf(a.out, "Category:   %s\n", optID(it.CategoryID))
		fmt.Fprintf(a.out, "Importance: %s\n", stars(it.ImportanceLevel))
		fmt.Fprintf(a.out, "Public:     %s\n", yesNo(it.IsPublic))
		if it.Description != "" {
			fmt.Fprintln(a.out, "\n"+it.Description)
		}
		return nil

	case "add":
		in, err := a.readAchievement(true)
		if err != nil {
			return a.report(ctx, "add achievement", err)
		}
		it, err := r.Create(ctx, in)
		if err != nil {
			return a.report(ctx, "add achievement", err)
		}
		fmt.Fprintf(a.out, "Achievement #%d created.\n", it.ID)
		return nil

	case "edit":
		id, ok := parseID(rest)
		if !ok {
			return a.usage("ach edit <id>")
		}
		in, err := a.readAchievement(false)
		if err != nil {
			return a.report(ctx, "edit achievement", err)
		}
		if _, err := r.Update(ctx, id, in); err != nil {
			return a.report(ctx, "edit achievement", err)
		}
		fmt.Fprintf(a.out, "Achievement #%d updated.\n", id)
		return nil

	case "delete":
		return deleteItem(ctx, a, "Achievement", r, rest)
	}
	return a.usage("ach list [category_id] | show <id> | add | edit <id> | delete <id>")
}

func (a *App) printAchievements(items []models.Achievement) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No achievements found.")
		return
	}
	t := newTable(a.out, "ID", "DATE", "TITLE", "IMPORTANCE", "PUBLIC")
	for _, it := range items {
		t.row(itoa(it.ID), it.EffectiveDate().Date(), it.Title, stars(it.ImportanceLevel), yesNo(it.IsPublic))
	}
	t.flush()
}

// readAchievement prompts for the achievement fields. On edit every field
// is optional.
func (a *App) readAchievement(create bool) (in models.AchievementInput, err error) {
	if create {
		in.Title, err = a.requiredText("title", "Title")
	} else {
		in.Title, err = GetOptionalText(a.reader, "Title (blank keeps current)", a.out)
	}
	if err != nil {
		return in, err
	}

	desc, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return in, err
	}
	in.Description = optionalDescription(desc)

	if in.CategoryID, err = GetOptionalID(a.reader, "category_id", "Category id (optional)", a.out); err != nil {
		return in, err
	}
	if in.DateAchieved, err = GetOptionalDate(a.reader, "date_achieved", "Date achieved", a.out); err != nil {
		return in, err
	}
	if in.ImportanceLevel, err = GetOptionalInt(a.reader, "importance_level", "Importance 1-5", a.out); err != nil {
		return in, err
	}
	if in.IsPublic, err = GetOptionalBool(a.reader, "is_public", "Public", a.out); err != nil {
		return in, err
	}
	return in, in.Validate()
}

// Categories handles "cat list | show <id> | add".
func (a *App) Categories(ctx context.Context, args []string) error {
	r := a.api.Categories()
	sub, rest := subcommand(args)

	switch sub {
	case "list":
		items, err := r.List(ctx, client.ListOptions{Limit: listLimit})
		if err != nil {
			return a.report(ctx, "list categories", err)
		}
		if len(items) == 0 {
			fmt.Fprintln(a.out, "No categories found.")
			return nil
		}
		t := newTable(a.out, "ID", "NAME", "ICON", "COLOR")
		for _, c := range items {
			t.row(itoa(c.ID), c.Name, c.Icon, c.Color)
		}
		t.flush()
		return nil

	case "show":
		id, ok := parseID(rest)
		if !ok {
			return a.usage("cat show <id>")
		}
		c, err := r.Get(ctx, id)
		if err != nil {
			return a.report(ctx, "show category", err)
		}
		fmt.Fprintf(a.out, "#%d %s %s\n", c.ID, c.Icon, c.Name)
		if c.Description != "" {
			fmt.Fprintln(a.out, c.Description)
		}
		return nil

	case "add":
		var in models.CategoryInput
		var err error
		if in.Name, err = a.requiredText("name", "Name"); err != nil {
			return a.report(ctx, "add category", err)
		}
		if in.Icon, err = GetOptionalText(a.reader, "Icon (optional)", a.out); err != nil {
			return err
		}
		if in.Color, err = GetOptionalText(a.reader, "Color (optional)", a.out); err != nil {
			return err
		}
		if in.Description, err = GetOptionalText(a.reader, "Description (optional)", a.out); err != nil {
			return err
		}
		c, err := r.Create(ctx, in)
		if err != nil {
			return a.report(ctx, "add category", err)
		}
		fmt.Fprintf(a.out, "Category #%d created.\n", c.ID)
		return nil
	}
	return a.usage("cat list | show <id> | add")
}

// Skills handles "skills list | add | edit <id> | delete <id>".
func (a *App) Skills(ctx context.Context, args []string) error {
	r := a.api.Skills()
	sub, rest := subcommand(args)

	switch sub {
	case "list":
		items, err := r.List(ctx, client.ListOptions{Limit: listLimit})
		if err != nil {
			return a.report(ctx, "list skills", err)
		}
		if len(items) == 0 {
			fmt.Fprintln(a.out, "No skills found.")
			return nil
		}
		t := newTable(a.out, "ID", "NAME", "CATEGORY", "PROFICIENCY")
		for _, s := range items {
			t.row(itoa(s.ID), s.Name, s.Category, stars(s.ProficiencyLevel))
		}
		t.flush()
		return nil

	case "add", "edit":
		var id int64
		if sub == "edit" {
			var ok bool
			if id, ok = parseID(rest); !ok {
				return a.usage("skills edit <id>")
			}
		}
		in, err := a.readSkill(sub == "add")
		if err != nil {
			return a.report(ctx, sub+" skill", err)
		}
		if sub == "add" {
			s, err := r.Create(ctx, in)
			if err != nil {
				return a.report(ctx, "add skill", err)
			}
			fmt.Fprintf(a.out, "Skill #%d created.\n", s.ID)
			return nil
		}
		if _, err := r.Update(ctx, id, in); err != nil {
			return a.report(ctx, "edit skill", err)
		}
		fmt.Fprintf(a.out, "Skill #%d updated.\n", id)
		return nil

	case "delete":
		return deleteItem(ctx, a, "Skill", r, rest)
	}
	return a.usage("skills list | add | edit <id> | delete <id>")
}

func (a *App) readSkill(create bool) (in models.SkillInput, err error) {
	if create {
		in.Name, err = a.requiredText("name", "Name")
	} else {
		in.Name, err = GetOptionalText(a.reader, "Name (blank keeps current)", a.out)
	}
	if err != nil {
		return in, err
	}
	if in.Category, err = GetOptionalText(a.reader, "Category (optional)", a.out); err != nil {
		return in, err
	}
	if in.ProficiencyLevel, err = GetOptionalInt(a.reader, "proficiency_level", "Proficiency 1-5", a.out); err != nil {
		return in, err
	}
	return in, in.Validate()
}

// Goals handles "goals list | add | edit <id> | delete <id>".
func (a *App) Goals(ctx context.Context, args []string) error {
	r := a.api.Goals()
	sub, rest := subcommand(args)

	switch sub {
	case "list":
		items, err := r.List(ctx, client.ListOptions{Limit: listLimit})
		if err != nil {
			return a.report(ctx, "list goals", err)
		}
		if len(items) == 0 {
			fmt.Fprintln(a.out, "No goals found.")
			return nil
		}
		t := newTable(a.out, "ID", "TITLE", "STATUS", "PROGRESS", "TARGET")
		for _, g := range items {
			t.row(itoa(g.ID), g.Title, string(g.Status), strconv.Itoa(g.ProgressPercentage)+"%", optDate(g.TargetDate))
		}
		t.flush()
		return nil

	case "add", "edit":
		var id int64
		if sub == "edit" {
			var ok bool
			if id, ok = parseID(rest); !ok {
				return a.usage("goals edit <id>")
			}
		}
		in, err := a.readGoal(sub == "add")
		if err != nil {
			return a.report(ctx, sub+" goal", err)
		}
		if sub == "add" {
			g, err := r.Create(ctx, in)
			if err != nil {
				return a.report(ctx, "add goal", err)
			}
			fmt.Fprintf(a.out, "Goal #%d created.\n", g.ID)
			return nil
		}
		if _, err := r.Update(ctx, id, in); err != nil {
			return a.report(ctx, "edit goal", err)
		}
		fmt.Fprintf(a.out, "Goal #%d updated.\n", id)
		return nil

	case "delete":
		return deleteItem(ctx, a, "Goal", r, rest)
	}
	return a.usage("goals list | add | edit <id> | delete <id>")
}

func (a *App) readGoal(create bool) (in models.GoalInput, err error) {
	if create {
		in.Title, err = a.requiredText("title", "Title")
	} else {
		in.Title, err = GetOptionalText(a.reader, "Title (blank keeps current)", a.out)
	}
	if err != nil {
		return in, err
	}
	if in.Description, err = GetOptionalText(a.reader, "Description (optional)", a.out); err != nil {
		return in, err
	}
	if in.TargetDate, err = GetOptionalDate(a.reader, "target_date", "Target date", a.out); err != nil {
		return in, err
	}

	status, err := GetOptionalText(a.reader, "Status (not_started, in_progress, completed, cancelled)", a.out)
	if err != nil {
		return in, err
	}
	if status != nil {
		st := models.GoalStatus(*status)
		in.Status = &st
	}
	if in.ProgressPercentage, err = GetOptionalInt(a.reader, "progress_percentage", "Progress 0-100", a.out); err != nil {
		return in, err
	}
	return in, in.Validate()
}

// Public lists achievements every user has shared.
func (a *App) Public(ctx context.Context) error {
	items, err := a.api.PublicAchievements(ctx, client.ListOptions{Limit: listLimit})
	if err != nil {
		return a.report(ctx, "list public achievements", err)
	}
	a.printAchievements(items)
	return nil
}
