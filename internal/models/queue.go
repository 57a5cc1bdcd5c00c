package models

// Queue is the waitlist of one business. Parties[0] is the head of the line.
type Queue struct {
	UID     string  `json:"uid"`  // Business id, assigned at creation
	Open    bool    `json:"open"` // Advisory: closed queues still accept appends
	Parties []Party `json:"parties"`
}

// QueueInfo is the read-only summary of a queue.
type QueueInfo struct {
	Length          int  `json:"length"`
	LongestWaitTime int  `json:"longestWaitTime"` // Minutes since the head checked in, -1 when empty
	Open            bool `json:"open"`
}

// NoWait is reported as LongestWaitTime for an empty queue.
const NoWait = -1

// Clone returns a deep copy so a snapshot can be mutated without touching the original.
func (q Queue) Clone() Queue {
	out := Queue{UID: q.UID, Open: q.Open, Parties: make([]Party, len(q.Parties))}
	for i, p := range q.Parties {
		out.Parties[i] = p.Clone()
	}
	return out
}

// Head returns the longest-waiting party.
func (q Queue) Head() (Party, bool) {
	if len(q.Parties) == 0 {
		return Party{}, false
	}
	return q.Parties[0], true
}
