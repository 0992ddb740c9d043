// Package analytics derives dashboard figures from a user's achievements.
// Everything here is pure; callers fetch the achievements first.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/dmitrijs2005/achievo/internal/client/models"
)

type YearCount struct {
	Year  int
	Count int
}

type MonthCount struct {
	Month time.Month
	Count int
}

type Summary struct {
	Total         int
	Public        int
	Private       int
	ThisYear      int
	AvgImportance float64
	ByYear        []YearCount
	// ByMonth always has twelve entries, January first, for now's year.
	ByMonth []MonthCount
}

// Summarize computes the dashboard summary relative to now.
func Summarize(items []models.Achievement, now time.Time) Summary {
	year := now.Year()
	s := Summary{Total: len(items), ByMonth: make([]MonthCount, 12)}
	for i := range s.ByMonth {
		s.ByMonth[i].Month = time.Month(i + 1)
	}

	perYear := map[int]int{}
	importance := 0
	for _, a := range items {
		if a.IsPublic {
			s.Public++
		}
		importance += a.ImportanceLevel

		d := a.EffectiveDate()
		perYear[d.Year()]++
		if d.Year() == year {
			s.ThisYear++
			s.ByMonth[d.Month()-1].Count++
		}
	}
	s.Private = s.Total - s.Public

	if s.Total > 0 {
		s.AvgImportance = math.Round(float64(importance)/float64(s.Total)*10) / 10
	}

	for y, n := range perYear {
		s.ByYear = append(s.ByYear, YearCount{Year: y, Count: n})
	}
	sort.Slice(s.ByYear, func(i, j int) bool { return s.ByYear[i].Year > s.ByYear[j].Year })
	return s
}

// Group is the achievements of one calendar month, keyed "YYYY-MM".
type Group struct {
	Key   string
	Items []models.Achievement
}

// Timeline groups achievements by month, newest month first and newest
// achievement first within a month. A year of 0 keeps every year.
func Timeline(items []models.Achievement, year int) []Group {
	sorted := make([]models.Achievement, 0, len(items))
	for _, a := range items {
		if year != 0 && a.EffectiveDate().Year() != year {
			continue
		}
		sorted = append(sorted, a)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EffectiveDate().After(sorted[j].EffectiveDate().Time)
	})

	var groups []Group
	index := map[string]int{}
	for _, a := range sorted {
		key := a.EffectiveDate().Format("2006-01")
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Items = append(groups[i].Items, a)
	}
	return groups
}

// Years lists the distinct years that have achievements, newest first.
func Years(items []models.Achievement) []int {
	seen := map[int]bool{}
	var years []int
	for _, a := range items {
		y := a.EffectiveDate().Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
