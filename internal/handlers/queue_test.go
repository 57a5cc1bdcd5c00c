package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waitlist/internal/constant"
	"waitlist/internal/models"
	"waitlist/internal/push"
	"waitlist/internal/queue"
	"waitlist/internal/response"
	"waitlist/internal/storage"
	"waitlist/internal/ws"
)

var testNow = time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)

type publishedEvent struct {
	uid       string
	eventType string
	data      interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(uid, eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{uid: uid, eventType: eventType, data: data})
}

func (p *recordingPublisher) last() publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

func (p *recordingPublisher) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type pushCall struct {
	tokens  []string
	message string
}

type fakeDispatcher struct {
	calls chan pushCall
}

func (d *fakeDispatcher) SendPush(_ context.Context, tokens []string, message string) []push.Result {
	d.calls <- pushCall{tokens: tokens, message: message}
	out := make([]push.Result, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, push.Result{Token: tok, Status: push.StatusOK})
	}
	return out
}

type testEnv struct {
	router     *gin.Engine
	engine     *queue.Engine
	publisher  *recordingPublisher
	dispatcher *fakeDispatcher
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, _ := test.NewNullLogger()
	engine := queue.NewEngine(storage.NewMemoryStore(), logger, queue.WithClock(func() time.Time { return testNow }))
	pub := &recordingPublisher{}
	disp := &fakeDispatcher{calls: make(chan pushCall, 8)}

	qh := NewQueueHandler(engine, pub, disp, logger)
	ph := NewPushHandler(disp)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/push", ph.SendPushHandler)
	api.GET("/queues", qh.GetQueueHandler)
	api.POST("/queues", qh.ReplaceQueueHandler)
	api.POST("/queues/new", qh.CreateQueueHandler)
	api.GET("/queues/info", qh.QueueInfoHandler)
	api.POST("/queues/:uid", qh.AppendPartyHandler)
	api.PUT("/queues/:uid/open", qh.SetOpenHandler)
	api.POST("/queues/:uid/next", qh.ServeNextHandler)
	api.DELETE("/queues/:uid/parties", qh.RemovePartyByPhoneHandler)
	api.DELETE("/queues/:uid/parties/:position", qh.RemovePartyHandler)
	api.POST("/queues/:uid/parties/:position/messages", qh.AppendMessageHandler)

	return &testEnv{router: r, engine: engine, publisher: pub, dispatcher: disp}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	assert.Equal(t, status, w.Code, w.Body.String())
	assert.Equal(t, code, decode[response.ErrorResponse](t, w).Code)
}

func partyBody(name, phone string) gin.H {
	return gin.H{"party": gin.H{"firstName": name, "size": 2, "phoneNumber": phone, "quote": 10}}
}

func (e *testEnv) seed(t *testing.T, uid string, names ...string) {
	t.Helper()
	_, err := e.engine.CreateQueue(context.Background(), uid)
	require.NoError(t, err)
	for i, name := range names {
		_, err := e.engine.AppendParty(context.Background(), uid, models.Party{
			FirstName: name, Size: 2, PhoneNumber: "55" + string(rune('0'+i)), Quote: 10,
		})
		require.NoError(t, err)
	}
}

func names(q models.Queue) []string {
	out := make([]string, 0, len(q.Parties))
	for _, p := range q.Parties {
		out = append(out, p.FirstName)
	}
	return out
}

func TestCreateAndGetQueue(t *testing.T) {
	env := setup(t)

	w := env.do(t, http.MethodPost, "/api/queues/new?uid=biz1", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Queue](t, w)
	assert.Equal(t, "biz1", created.UID)
	assert.False(t, created.Open)
	assert.Empty(t, created.Parties)
	assert.Equal(t, ws.EventQueueUpdated, env.publisher.last().eventType)

	assertError(t, env.do(t, http.MethodPost, "/api/queues/new?uid=biz1", nil), http.StatusConflict, CodeQueueExists)
	assertError(t, env.do(t, http.MethodPost, "/api/queues/new", nil), http.StatusBadRequest, CodeMalformedRequest)

	w = env.do(t, http.MethodGet, "/api/queues?uid=biz1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[models.Queue](t, w))

	assertError(t, env.do(t, http.MethodGet, "/api/queues?uid=nonexistent", nil), http.StatusNotFound, CodeQueueNotFound)
	assertError(t, env.do(t, http.MethodGet, "/api/queues", nil), http.StatusBadRequest, CodeMalformedRequest)
}

func TestAppendPartyHandler(t *testing.T) {
	env := setup(t)
	env.seed(t, "biz1")

	w := env.do(t, http.MethodPost, "/api/queues/biz1", partyBody("Ann", "555"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	q := decode[models.Queue](t, w)
	require.Len(t, q.Parties, 1)
	assert.Equal(t, "Ann", q.Parties[0].FirstName)
	assert.True(t, testNow.Equal(q.Parties[0].CheckIn))

	ev := env.publisher.last()
	assert.Equal(t, "biz1", ev.uid)
	assert.Equal(t, ws.EventQueueUpdated, ev.eventType)

	w = env.do(t, http.MethodPost, "/api/queues/biz1", partyBody("Bob", "556"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"Ann", "Bob"}, names(decode[models.Queue](t, w)))

	before := env.publisher.len()
	assertError(t, env.do(t, http.MethodPost, "/api/queues/biz1", gin.H{}), http.StatusBadRequest, CodeMalformedRequest)
	assertError(t, env.do(t, http.MethodPost, "/api/queues/biz1", "{not json"), http.StatusBadRequest, CodeMalformedRequest)
	assertError(t, env.do(t, http.MethodPost, "/api/queues/biz1",
		gin.H{"party": gin.H{"firstName": "Zed", "size": 0, "phoneNumber": "1"}}), http.StatusBadRequest, CodeMalformedRequest)
	assertError(t, env.do(t, http.MethodPost, "/api/queues/ghost", partyBody("Ann", "555")), http.StatusNotFound, CodeQueueNotFound)
	assert.Equal(t, before, env.publisher.len(), "failed requests publish nothing")
}

func TestQueueInfoHandler(t *testing.T) {
	env := setup(t)
	env.seed(t, "biz1")

	w := env.do(t, http.MethodGet, "/api/queues/info?uid=biz1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.QueueInfo{Length: 0, LongestWaitTime: models.NoWait, Open: false}, decode[models.QueueInfo](t, w))

	_, err := env.engine.AppendParty(context.Background(), "biz1", models.Party{
		FirstName: "Ann", Size: 2, PhoneNumber: "555", Quote: 10, CheckIn: testNow.Add(-15 * time.Minute),
	})
	require.NoError(t, err)

	w = env.do(t, http.MethodGet, "/api/queues/info?uid=biz1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.QueueInfo{Length: 1, LongestWaitTime: 15, Open: false}, decode[models.QueueInfo](t, w))

	assertError(t, env.do(t, http.MethodGet, "/api/queues/info?uid=ghost", nil), http.StatusNotFound, CodeQueueNotFound)
	assertError(t, env.do(t, http.MethodGet, "/api/queues/info", nil), http.StatusBadRequest, CodeMalformedRequest)
}

func TestReplaceQueueHandler(t *testing.T) {
	env := setup(t)

	w := env.do(t, http.MethodPost, "/api/queues", gin.H{"queue": gin.H{
		"uid":  "biz1",
		"open": true,
		"parties": []gin.H{
			{"firstName": "Ann", "size": 2, "phoneNumber": "555", "quote": 5, "checkIn": "2024-05-10T17:50:00Z",
				"messages": [][]string{{"2024-05-10T17:55:00Z", "hello"}}},
		},
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Empty(t, w.Body.String())

	q, err := env.engine.GetQueue(context.Background(), "biz1")
	require.NoError(t, err)
	assert.True(t, q.Open)
	require.Len(t, q.Parties, 1)
	assert.Equal(t, "hello", q.Parties[0].Messages[0].Text)
	assert.True(t, time.Date(2024, 5, 10, 17, 50, 0, 0, time.UTC).Equal(q.Parties[0].CheckIn))

	assertError(t, env.do(t, http.MethodPost, "/api/queues", gin.H{}), http.StatusBadRequest, CodeMalformedRequest)
	assertError(t, env.do(t, http.MethodPost, "/api/queues", gin.H{"queue": gin.H{"uid": "biz1"}}), http.StatusBadRequest, CodeMalformedRequest)
}

func TestSetOpenHandler(t *testing.T) {
	env := setup(t)
	env.seed(t, "biz1", "Ann")

	w := env.do(t, http.MethodPut, "/api/queues/biz1/open", gin.H{"open": true})
	require.Equal(t, http.StatusOK, w.Code)
	q := decode[models.Queue](t, w)
	assert.True(t, q.Open)
	assert.Equal(t, []string{"Ann"}, names(q))

	w = env.do(t, http.MethodPut, "/api/queues/biz1/open", gin.H{"open": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[models.Queue](t, w).Open)

	assertError(t, env.do(t, http.MethodPut, "/api/queues/biz1/open", gin.H{}), http.StatusBadRequest, CodeMalformedRequest)
	assertError(t, env.do(t, http.MethodPut, "/api/queues/ghost/open", gin.H{"open": true}), http.StatusNotFound, CodeQueueNotFound)
}

func TestRemovePartyHandlers(t *testing.T) {
	env := setup(t)
	env.seed(t, "biz1", "P1", "P2", "P3", "P4")

	w := env.do(t, http.MethodPost, "/api/queues/biz1/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"P2", "P3", "P4"}, names(decode[models.Queue](t, w)))

	w = env.do(t, http.MethodDelete, "/api/queues/biz1/parties/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"P2", "P4"}, names(decode[models.Queue](t, w)))

	// P4 was seeded with phone 553
	w = env.do(t, http.MethodDelete, "/api/queues/biz1/parties?phoneNumber=553", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"P2"}, names(decode[models.Queue](t, w)))

	assertError(t, env.do(t, http.MethodDelete, "/api/queues/biz1/parties/x", nil), http.StatusBadRequest, CodeMalformedRequest)
	assertError(t, env.do(t, http.MethodDelete, "/api/queues/biz1/parties/-1", nil), http.StatusBadRequest, CodeMalformedRequest)
	assertError(t, env.do(t, http.MethodDelete, "/api/queues/biz1/parties", nil), http.StatusBadRequest, CodeMalformedRequest)
	assertError(t, env.do(t, http.MethodDelete, "/api/queues/biz1/parties/9", nil), http.StatusNotFound, CodePartyNotFound)
	assertError(t, env.do(t, http.MethodDelete, "/api/queues/biz1/parties?phoneNumber=000", nil), http.StatusNotFound, CodePartyNotFound)
	assertError(t, env.do(t, http.MethodDelete, "/api/queues/ghost/parties/0", nil), http.StatusNotFound, CodeQueueNotFound)

	require.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/queues/biz1/next", nil).Code)
	assertError(t, env.do(t, http.MethodPost, "/api/queues/biz1/next", nil), http.StatusNotFound, CodePartyNotFound)
}

func TestAppendMessageHandlerPushes(t *testing.T) {
	env := setup(t)
	env.seed(t, "biz1", "NoToken")
	_, err := env.engine.AppendParty(context.Background(), "biz1", models.Party{
		FirstName: "Ann", Size: 2, PhoneNumber: "555", Quote: 10, PushToken: "ExponentPushToken[abc]",
	})
	require.NoError(t, err)

	w := env.do(t, http.MethodPost, "/api/queues/biz1/parties/1/messages", gin.H{"message": "Your table is ready"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	q := decode[models.Queue](t, w)
	require.Len(t, q.Parties[1].Messages, 1)
	assert.Equal(t, "Your table is ready", q.Parties[1].Messages[0].Text)
	assert.True(t, testNow.Equal(q.Parties[1].Messages[0].Date))

	select {
	case call := <-env.dispatcher.calls:
		assert.Equal(t, []string{"ExponentPushToken[abc]"}, call.tokens)
		assert.Equal(t, "Your table is ready", call.message)
	case <-time.After(2 * time.Second):
		t.Fatal("push was not sent")
	}

	w = env.do(t, http.MethodPost, "/api/queues/biz1/parties/0/messages", gin.H{"message": "5 more minutes"})
	require.Equal(t, http.StatusCreated, w.Code)
	select {
	case call := <-env.dispatcher.calls:
		t.Fatalf("unexpected push to %v", call.tokens)
	case <-time.After(100 * time.Millisecond):
	}

	assertError(t, env.do(t, http.MethodPost, "/api/queues/biz1/parties/0/messages", gin.H{}), http.StatusBadRequest, CodeMalformedRequest)
	assertError(t, env.do(t, http.MethodPost, "/api/queues/biz1/parties/0/messages", gin.H{"message": "   "}), http.StatusBadRequest, CodeMalformedRequest)
	assertError(t, env.do(t, http.MethodPost, "/api/queues/biz1/parties/7/messages", gin.H{"message": "hi"}), http.StatusNotFound, CodePartyNotFound)
}

func TestSendPushHandler(t *testing.T) {
	env := setup(t)

	w := env.do(t, http.MethodPost, "/api/push", gin.H{
		"tokens":  []string{"ExpoPushToken[a]", "ExpoPushToken[b]"},
		"message": "We are running late",
	})
	require.Equal(t, http.StatusOK, w.Code)
	results := decode[[]push.Result](t, w)
	require.Len(t, results, 2)
	assert.Equal(t, push.StatusOK, results[0].Status)

	call := <-env.dispatcher.calls
	assert.Equal(t, "We are running late", call.message)

	assertError(t, env.do(t, http.MethodPost, "/api/push", gin.H{"tokens": []string{"x"}}), http.StatusBadRequest, CodeMalformedRequest)
	assertError(t, env.do(t, http.MethodPost, "/api/push", gin.H{"message": "hi"}), http.StatusBadRequest, CodeMalformedRequest)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{errors.Wrap(constant.ErrMalformedRequest, "uid is required"), http.StatusBadRequest, CodeMalformedRequest},
		{errors.Wrap(constant.ErrNotFound, "queue biz1"), http.StatusNotFound, CodeQueueNotFound},
		{errors.Wrap(constant.ErrPartyNotFound, "position 3"), http.StatusNotFound, CodePartyNotFound},
		{errors.Wrap(constant.ErrCustomerNotFound, "uid c1"), http.StatusNotFound, CodeCustomerNotFound},
		{errors.Wrap(constant.ErrBusinessNotFound, "uid b1"), http.StatusNotFound, CodeBusinessNotFound},
		{errors.Wrap(constant.ErrAlreadyExists, "queue biz1"), http.StatusConflict, CodeQueueExists},
		{errors.Wrap(constant.ErrVersionConflict, "after 5 attempts"), http.StatusConflict, CodeVersionConflict},
		{constant.NewStoreError("get", errors.New("connection refused")), http.StatusInternalServerError, CodeStoreError},
		{errors.New("boom"), http.StatusInternalServerError, CodeStoreError},
	}
	for _, tc := range cases {
		t.Run(tc.code+"/"+strings.SplitN(tc.err.Error(), ":", 2)[0], func(t *testing.T) {
			status, code, _ := statusFor(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}
