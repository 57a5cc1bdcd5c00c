package queue

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"waitlist/internal/models"
)

// maxMinutes is the longest wait a time.Duration can express.
var maxMinutes = int(time.Duration(math.MaxInt64) / time.Minute)

func TestElapsedMinutes(t *testing.T) {
	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		to   time.Time
		want int
	}{
		{"same instant", base, 0},
		{"just under half", base.Add(29*time.Second + 999*time.Millisecond), 0},
		{"exactly half rounds up", base.Add(30 * time.Second), 1},
		{"fifteen minutes", base.Add(15 * time.Minute), 15},
		{"fifteen and a half", base.Add(15*time.Minute + 30*time.Second), 16},
		{"clock skew is absolute", base.Add(-7 * time.Minute), 7},
		{"year 1 saturates", time.Date(1, 1, 2, 0, 0, 0, 0, time.UTC), maxMinutes},
		{"year 9999 saturates", time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC), maxMinutes},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ElapsedMinutes(base, tc.to))
		})
	}
}

func TestComputeQueueInfo(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	t.Run("empty queue", func(t *testing.T) {
		info := ComputeQueueInfo(models.Queue{UID: "biz1", Open: true}, now)
		assert.Equal(t, models.QueueInfo{Length: 0, LongestWaitTime: -1, Open: true}, info)
	})

	t.Run("uses the head of the line", func(t *testing.T) {
		q := models.Queue{UID: "biz1", Parties: []models.Party{
			{FirstName: "Ann", CheckIn: now.Add(-15 * time.Minute)},
			{FirstName: "Bob", CheckIn: now.Add(-2 * time.Minute)},
		}}
		info := ComputeQueueInfo(q, now)
		assert.Equal(t, 2, info.Length)
		assert.Equal(t, 15, info.LongestWaitTime)
		assert.False(t, info.Open)
	})

	t.Run("future check-in is still non-negative", func(t *testing.T) {
		q := models.Queue{Parties: []models.Party{{CheckIn: now.Add(3 * time.Minute)}}}
		assert.Equal(t, 3, ComputeQueueInfo(q, now).LongestWaitTime)
	})

	t.Run("extreme check-ins stay non-negative", func(t *testing.T) {
		for _, checkIn := range []time.Time{
			time.Date(1, 1, 2, 0, 0, 0, 0, time.UTC),
			time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC),
		} {
			q := models.Queue{Parties: []models.Party{{Quote: 10, CheckIn: checkIn}}}
			assert.Positive(t, ComputeQueueInfo(q, now).LongestWaitTime, checkIn.String())
			assert.True(t, RunningBehind(q, now), checkIn.String())
		}
	})
}

func TestRunningBehind(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	assert.False(t, RunningBehind(models.Queue{}, now))
	assert.False(t, RunningBehind(models.Queue{Parties: []models.Party{{Quote: 20, CheckIn: now.Add(-20 * time.Minute)}}}, now))
	assert.True(t, RunningBehind(models.Queue{Parties: []models.Party{{Quote: 10, CheckIn: now.Add(-25 * time.Minute)}}}, now))
}
