package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expoFake struct {
	mu     sync.Mutex
	chunks [][]expoMessage
	reject map[string]bool
}

func (f *expoFake) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var msgs []expoMessage
	if err := json.NewDecoder(r.Body).Decode(&msgs); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.chunks = append(f.chunks, msgs)
	f.mu.Unlock()

	var resp expoResponse
	for _, m := range msgs {
		if f.reject[m.To] {
			resp.Data = append(resp.Data, expoTicket{Status: "error", Message: "DeviceNotRegistered"})
			continue
		}
		resp.Data = append(resp.Data, expoTicket{Status: "ok", ID: "ticket-" + m.To})
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func TestIsExpoPushToken(t *testing.T) {
	assert.True(t, IsExpoPushToken("ExponentPushToken[xxxxxxxx]"))
	assert.True(t, IsExpoPushToken("ExpoPushToken[yyyy]"))
	assert.False(t, IsExpoPushToken(""))
	assert.False(t, IsExpoPushToken("fcm:abc"))
	assert.False(t, IsExpoPushToken("ExponentPushToken[]"))
}

func TestSendPush(t *testing.T) {
	fake := &expoFake{reject: map[string]bool{"ExponentPushToken[gone]": true}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	logger, hook := test.NewNullLogger()
	d := NewExpoDispatcher(srv.URL, srv.Client(), logger)

	results := d.SendPush(context.Background(), []string{
		"ExponentPushToken[a]",
		"not-a-token",
		"ExponentPushToken[gone]",
	}, "Your table is ready")

	require.Len(t, results, 3)
	byToken := map[string]Result{}
	for _, r := range results {
		byToken[r.Token] = r
	}
	assert.Equal(t, StatusOK, byToken["ExponentPushToken[a]"].Status)
	assert.Equal(t, StatusInvalid, byToken["not-a-token"].Status)
	assert.Equal(t, StatusError, byToken["ExponentPushToken[gone]"].Status)
	assert.Equal(t, "DeviceNotRegistered", byToken["ExponentPushToken[gone]"].Detail)

	require.Len(t, fake.chunks, 1)
	assert.Len(t, fake.chunks[0], 2)
	assert.Equal(t, "default", fake.chunks[0][0].Sound)
	assert.Equal(t, "Your table is ready", fake.chunks[0][0].Body)
	assert.NotEmpty(t, hook.AllEntries())
}

func TestSendPushChunksLargeBatches(t *testing.T) {
	fake := &expoFake{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	logger, _ := test.NewNullLogger()
	d := NewExpoDispatcher(srv.URL, srv.Client(), logger)

	tokens := make([]string, 250)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("ExponentPushToken[%d]", i)
	}
	results := d.SendPush(context.Background(), tokens, "hi")

	assert.Len(t, results, 250)
	require.Len(t, fake.chunks, 3)
	assert.Len(t, fake.chunks[0], 100)
	assert.Len(t, fake.chunks[1], 100)
	assert.Len(t, fake.chunks[2], 50)
}

func TestSendPushEndpointDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	logger, hook := test.NewNullLogger()
	d := NewExpoDispatcher(srv.URL, srv.Client(), logger)

	results := d.SendPush(context.Background(), []string{"ExponentPushToken[a]"}, "hi")
	require.Len(t, results, 1)
	assert.Equal(t, StatusError, results[0].Status)
	assert.Contains(t, results[0].Detail, "503")
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "push chunk failed", hook.LastEntry().Message)
}
