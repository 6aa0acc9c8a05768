package weekday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		token string
		want  time.Weekday
	}{
		{"mo", time.Monday},
		{"Montag", time.Monday},
		{"TUE", time.Tuesday},
		{"dienstag", time.Tuesday},
		{"mi", time.Wednesday},
		{"wednesday", time.Wednesday},
		{"Donnerstag", time.Thursday},
		{"fri", time.Friday},
		{"  samstag  ", time.Saturday},
		{"So", time.Sunday},
		{"sunday", time.Sunday},
	}
	for _, c := range cases {
		got, ok := Parse(c.token)
		require.True(t, ok, "token %q", c.token)
		assert.Equal(t, c.want, got, "token %q", c.token)
	}
}

func TestParse_Unknown(t *testing.T) {
	_, ok := Parse("lundi")
	assert.False(t, ok)
}

func TestScheduledOn_EmptyMeansEveryDay(t *testing.T) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.True(t, ScheduledOn(nil, d))
		assert.True(t, ScheduledOn([]string{}, d))
	}
}

func TestScheduledOn(t *testing.T) {
	days := []string{"Mo", "wednesday", "FR"}
	assert.True(t, ScheduledOn(days, time.Monday))
	assert.True(t, ScheduledOn(days, time.Wednesday))
	assert.True(t, ScheduledOn(days, time.Friday))
	assert.False(t, ScheduledOn(days, time.Tuesday))
	assert.False(t, ScheduledOn(days, time.Sunday))
}

func TestScheduledOn_UnknownTokensIgnored(t *testing.T) {
	assert.False(t, ScheduledOn([]string{"noday", "???"}, time.Monday))
	assert.True(t, ScheduledOn([]string{"noday", "mo"}, time.Monday))
}
