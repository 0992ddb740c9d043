package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/achievo/internal/client/models"
)

const barWidth = 30

func (a *App) Dashboard(ctx context.Context) error {
	d, err := a.content.Dashboard(ctx)
	if err != nil {
		return a.report(ctx, "load dashboard", err)
	}

	s := d.Summary
	fmt.Fprintf(a.out, "Achievements: %d (%d this year)\n", s.Total, s.ThisYear)
	fmt.Fprintf(a.out, "Public / private: %d / %d\n", s.Public, s.Private)
	fmt.Fprintf(a.out, "Average importance: %.1f\n", s.AvgImportance)
	fmt.Fprintf(a.out, "Skills: %d, active goals: %d\n", d.SkillCount, d.ActiveGoals)

	if len(d.Recent) == 0 {
		fmt.Fprintln(a.out, "No achievements yet. Add one with 'ach add'.")
		return nil
	}
	fmt.Fprintln(a.out, "\nRecent:")
	t := newTable(a.out, "ID", "DATE", "TITLE", "IMPORTANCE")
	for _, it := range d.Recent {
		t.row(itoa(it.ID), it.EffectiveDate().Date(), it.Title, stars(it.ImportanceLevel))
	}
	t.flush()
	return nil
}

func (a *App) Analytics(ctx context.Context) error {
	s, years, err := a.content.Analytics(ctx)
	if err != nil {
		return a.report(ctx, "load analytics", err)
	}
	if s.Total == 0 {
		fmt.Fprintln(a.out, "No achievements yet.")
		return nil
	}

	fmt.Fprintf(a.out, "Total %d, public %d, private %d, average importance %.1f\n",
		s.Total, s.Public, s.Private, s.AvgImportance)
	fmt.Fprintf(a.out, "Years with achievements: %v\n", years)

	top := 0
	for _, y := range s.ByYear {
		top = max(top, y.Count)
	}
	fmt.Fprintln(a.out, "\nBy year:")
	for _, y := range s.ByYear {
		fmt.Fprintf(a.out, "  %d %4d %s\n", y.Year, y.Count, bar(y.Count, top, barWidth))
	}

	top = 0
	for _, m := range s.ByMonth {
		top = max(top, m.Count)
	}
	fmt.Fprintln(a.out, "\nThis year by month:")
	for _, m := range s.ByMonth {
		fmt.Fprintf(a.out, "  %s %4d %s\n", m.Month.String()[:3], m.Count, bar(m.Count, top, barWidth))
	}
	return nil
}

// Timeline prints achievements grouped by month, optionally for one year.
func (a *App) Timeline(ctx context.Context, args []string) error {
	year := 0
	if len(args) > 0 {
		y, err := strconv.Atoi(args[0])
		if err != nil || y < 1 {
			return a.report(ctx, "timeline", &models.FieldError{Field: "year", Reason: "must be a year like 2025"})
		}
		year = y
	}

	groups, err := a.content.Timeline(ctx, year)
	if err != nil {
		return a.report(ctx, "load timeline", err)
	}
	if len(groups) == 0 {
		fmt.Fprintln(a.out, "Nothing on the timeline yet.")
		return nil
	}
	for _, g := range groups {
		fmt.Fprintf(a.out, "%s\n", g.Key)
		for _, it := range g.Items {
			fmt.Fprintf(a.out, "  %s  %s  %s\n", it.EffectiveDate().Date(), stars(it.ImportanceLevel), it.Title)
		}
	}
	return nil
}
