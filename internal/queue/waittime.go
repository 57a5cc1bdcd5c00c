package queue

import (
	"math"
	"time"

	"waitlist/internal/models"
)

// ElapsedMinutes is the distance between from and to in whole minutes,
// rounded half up. The result is never negative even if the clocks that
// produced the two instants disagree on their order.
func ElapsedMinutes(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		d = -d
	}
	// Sub saturates at the Duration bounds; -MinInt64 is still negative.
	if d < 0 {
		d = math.MaxInt64
	}

	m := d / time.Minute
	if d%time.Minute >= 30*time.Second {
		m++
	}
	return int(m)
}

// ComputeQueueInfo summarises q as seen at now. It does no I/O.
func ComputeQueueInfo(q models.Queue, now time.Time) models.QueueInfo {
	info := models.QueueInfo{
		Length:          len(q.Parties),
		LongestWaitTime: models.NoWait,
		Open:            q.Open,
	}
	if head, ok := q.Head(); ok {
		info.LongestWaitTime = ElapsedMinutes(head.CheckIn, now)
	}
	return info
}

// RunningBehind reports whether the head of the line has waited longer than
// it was quoted.
func RunningBehind(q models.Queue, now time.Time) bool {
	head, ok := q.Head()
	if !ok {
		return false
	}
	return ElapsedMinutes(head.CheckIn, now) > head.Quote
}
