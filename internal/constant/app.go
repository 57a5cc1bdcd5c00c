package constant

const (
	QueuesCollection     = "queues"
	CustomersCollection  = "customer"
	BusinessesCollection = "businesses"

	// NoPushToken is sent by clients that have no push token yet.
	NoPushToken = "NO_ID"

	DefaultCASAttempts = 5

	// ExpoPushChunkSize is the maximum number of messages per Expo push request.
	ExpoPushChunkSize = 100
)
