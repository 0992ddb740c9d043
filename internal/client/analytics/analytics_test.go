package analytics

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/achievo/internal/client/models"
)

func ts(y int, m time.Month, d int) models.Timestamp {
	return models.NewTimestamp(time.Date(y, m, d, 12, 0, 0, 0, time.UTC))
}

func ach(id int64, created models.Timestamp, achieved *models.Timestamp, importance int, public bool) models.Achievement {
	return models.Achievement{ID: id, CreatedAt: created, AchievedDate: achieved, ImportanceLevel: importance, IsPublic: public}
}

func sample() []models.Achievement {
	past := ts(2022, time.June, 1)
	return []models.Achievement{
		ach(1, ts(2024, time.January, 10), nil, 5, true),
		ach(2, ts(2024, time.March, 3), nil, 2, false),
		ach(3, ts(2024, time.March, 20), &past, 4, true),
		ach(4, ts(2023, time.December, 31), nil, 3, false),
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	s := Summarize(sample(), now)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Public)
	assert.Equal(t, 2, s.Private)
	assert.Equal(t, 2, s.ThisYear)
	assert.Equal(t, 3.5, s.AvgImportance)

	want := []YearCount{{2024, 2}, {2023, 1}, {2022, 1}}
	if diff := cmp.Diff(want, s.ByYear); diff != "" {
		t.Fatalf("ByYear mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, s.ByMonth, 12)
	assert.Equal(t, MonthCount{time.January, 1}, s.ByMonth[0])
	assert.Equal(t, MonthCount{time.March, 1}, s.ByMonth[2])
	assert.Equal(t, 0, s.ByMonth[11].Count)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, time.Now())
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.AvgImportance)
	assert.Empty(t, s.ByYear)
	assert.Len(t, s.ByMonth, 12)
}

func TestSummarize_AverageRoundsToOneDecimal(t *testing.T) {
	items := []models.Achievement{
		ach(1, ts(2024, 1, 1), nil, 1, false),
		ach(2, ts(2024, 1, 1), nil, 2, false),
		ach(3, ts(2024, 1, 1), nil, 2, false),
	}
	assert.Equal(t, 1.7, Summarize(items, time.Now()).AvgImportance)
}

func TestTimeline(t *testing.T) {
	groups := Timeline(sample(), 0)

	keys := make([]string, 0, len(groups))
	for _, g := range groups {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"2024-03", "2024-01", "2023-12", "2022-06"}, keys)
	assert.Len(t, groups[0].Items, 1)
	assert.Equal(t, int64(2), groups[0].Items[0].ID)
}

func TestTimeline_YearFilter(t *testing.T) {
	groups := Timeline(sample(), 2024)
	require.Len(t, groups, 2)
	assert.Equal(t, "2024-03", groups[0].Key)
	assert.Equal(t, "2024-01", groups[1].Key)

	assert.Empty(t, Timeline(sample(), 1999))
}

func TestYears(t *testing.T) {
	assert.Equal(t, []int{2024, 2023, 2022}, Years(sample()))
	assert.Empty(t, Years(nil))
}
