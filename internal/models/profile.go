package models

// Customer is the profile of a person using the app.
type Customer struct {
	UID          string   `json:"uid"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Email        string   `json:"email,omitempty"`
	PhoneNumber  string   `json:"phoneNumber"`
	CurrentQueue string   `json:"currentQueue"` // Uid of the queue the customer waits in, empty when none
	Favorites    []string `json:"favorites"`    // Business uids
	Recents      []string `json:"recents"`      // Business uids
	PushToken    string   `json:"pushToken"`
}

// Business is the owner profile of a business. Its uid is also its queue uid.
type Business struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Type      string `json:"type"`
}
