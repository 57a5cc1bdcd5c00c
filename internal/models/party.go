package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Party is one waiting group in a business's line.
type Party struct {
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Size        int       `json:"size"`
	PhoneNumber string    `json:"phoneNumber"`
	Quote       int       `json:"quote"`   // Estimated wait in minutes given at admission
	CheckIn     time.Time `json:"checkIn"` // Set once on admission
	Messages    []Message `json:"messages"`
	PushToken   string    `json:"pushToken,omitempty"` // Empty means no notifications
}

// Message is one entry of a party's append-only communication log.
// On the wire it is the pair [date, text].
type Message struct {
	Date time.Time
	Text string
}

func (p Party) Clone() Party {
	out := p
	if p.Messages != nil {
		out.Messages = append([]Message(nil), p.Messages...)
	}
	return out
}

func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{m.Date.UTC().Format(time.RFC3339Nano), m.Text})
}

// UnmarshalJSON accepts both the pair form and the {date, message} object
// form older clients store.
func (m *Message) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var date, text string

	if len(data) > 0 && data[0] == '[' {
		var pair []string
		if err := json.Unmarshal(data, &pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("message: expected [date, text], got %d elements", len(pair))
		}
		date, text = pair[0], pair[1]
	} else {
		var obj struct {
			Date    string `json:"date"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		date, text = obj.Date, obj.Message
	}

	t, err := time.Parse(time.RFC3339Nano, date)
	if err != nil {
		return fmt.Errorf("message: invalid date %q: %w", date, err)
	}
	m.Date = t
	m.Text = text
	return nil
}
