package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_UnmarshalKnownLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2024-03-05T10:11:12Z"`, time.Date(2024, 3, 5, 10, 11, 12, 0, time.UTC)},
		{`"2024-03-05T10:11:12.123456"`, time.Date(2024, 3, 5, 10, 11, 12, 123456000, time.UTC)},
		{`"2024-03-05T10:11:12"`, time.Date(2024, 3, 5, 10, 11, 12, 0, time.UTC)},
		{`"2024-03-05"`, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		var ts Timestamp
		require.NoError(t, json.Unmarshal([]byte(tt.in), &ts), tt.in)
		assert.True(t, tt.want.Equal(ts.Time), "%s: got %v", tt.in, ts.Time)
	}
}

func TestTimestamp_NullAndEmpty(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
	require.NoError(t, json.Unmarshal([]byte(`""`), &ts))
	assert.True(t, ts.IsZero())
	assert.Equal(t, "-", ts.Date())
}

func TestTimestamp_Invalid(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12`), &ts))
}

func TestTimestamp_Marshal(t *testing.T) {
	b, err := json.Marshal(NewTimestamp(time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2023-01-02T03:04:05Z"`, string(b))

	b, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(b))
}

func TestAchievement_DecodeAndEffectiveDate(t *testing.T) {
	raw := `{"id":1,"user_id":2,"title":"Marathon","importance_level":4,"is_public":true,
		"date_achieved":"2022-05-01T00:00:00","created_at":"2023-01-01T00:00:00","updated_at":"2023-01-01T00:00:00"}`
	var a Achievement
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	assert.Equal(t, "2022-05-01", a.EffectiveDate().Date())

	achieved := NewTimestamp(time.Date(2021, 7, 7, 0, 0, 0, 0, time.UTC))
	a.AchievedDate = &achieved
	assert.Equal(t, "2021-07-07", a.EffectiveDate().Date())

	a.AchievedDate, a.DateAchieved = nil, nil
	assert.Equal(t, "2023-01-01", a.EffectiveDate().Date())
}

func TestAchievementInput_OmitsNilFields(t *testing.T) {
	title := "New"
	b, err := json.Marshal(AchievementInput{Title: &title})
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"New"}`, string(b))
}

func TestUser_DisplayName(t *testing.T) {
	var nilUser *User
	assert.Equal(t, "", nilUser.DisplayName())
	assert.Equal(t, "a@b.c", (&User{Email: "a@b.c"}).DisplayName())
	assert.Equal(t, "Ann", (&User{Email: "a@b.c", FullName: "Ann"}).DisplayName())
}
