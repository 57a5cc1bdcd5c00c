package queue

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"waitlist/internal/constant"
	"waitlist/internal/models"
	"waitlist/internal/storage"
)

// Engine applies queue commands to snapshots held in a DocumentStore.
// It keeps no state between calls.
type Engine struct {
	store       storage.DocumentStore
	logger      *logrus.Logger
	now         func() time.Time
	casAttempts int
}

type Option func(*Engine)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithCASAttempts bounds how many times a mutation is retried after losing a
// compare-and-set race.
func WithCASAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.casAttempts = n
		}
	}
}

func NewEngine(store storage.DocumentStore, logger *logrus.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		logger:      logger,
		now:         time.Now,
		casAttempts: constant.DefaultCASAttempts,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PartyKey identifies a party in a queue. A non-empty PhoneNumber selects the
// first party with that number; otherwise Position is the zero-based index.
type PartyKey struct {
	Position    int
	PhoneNumber string
}

func (k PartyKey) String() string {
	if k.PhoneNumber != "" {
		return "phone " + k.PhoneNumber
	}
	return "position " + strconv.Itoa(k.Position)
}

func (k PartyKey) find(parties []models.Party) (int, bool) {
	if k.PhoneNumber != "" {
		for i, p := range parties {
			if p.PhoneNumber == k.PhoneNumber {
				return i, true
			}
		}
		return 0, false
	}
	if k.Position < 0 || k.Position >= len(parties) {
		return 0, false
	}
	return k.Position, true
}

// CreateQueue stores a new closed, empty queue for the business.
func (e *Engine) CreateQueue(ctx context.Context, uid string) (models.Queue, error) {
	if err := requireUID(uid); err != nil {
		return models.Queue{}, err
	}

	q := models.Queue{UID: uid, Open: false, Parties: []models.Party{}}
	body, err := encodeQueue(q)
	if err != nil {
		return models.Queue{}, err
	}

	err = e.store.CompareAndSet(ctx, constant.QueuesCollection, uid, 0, body)
	if errors.Is(err, constant.ErrVersionConflict) {
		return models.Queue{}, errors.Wrapf(constant.ErrAlreadyExists, "queue %s", uid)
	}
	if err != nil {
		return models.Queue{}, errors.Wrapf(err, "create queue %s", uid)
	}

	e.logger.WithField("uid", uid).Info("queue created")
	return q, nil
}

func (e *Engine) GetQueue(ctx context.Context, uid string) (models.Queue, error) {
	if err := requireUID(uid); err != nil {
		return models.Queue{}, err
	}
	q, _, err := e.load(ctx, uid)
	return q, err
}

// ReplaceQueue overwrites the whole snapshot with a caller-supplied one and
// returns what was stored.
func (e *Engine) ReplaceQueue(ctx context.Context, q models.Queue) (models.Queue, error) {
	if err := requireUID(q.UID); err != nil {
		return models.Queue{}, err
	}
	if q.Parties == nil {
		return models.Queue{}, errors.Wrap(constant.ErrMalformedRequest, "queue.parties is required")
	}

	q = q.Clone()
	now := e.now()
	for i := range q.Parties {
		if err := e.admit(&q.Parties[i], now); err != nil {
			return models.Queue{}, errors.Wrapf(err, "parties[%d]", i)
		}
	}

	body, err := encodeQueue(q)
	if err != nil {
		return models.Queue{}, err
	}
	if err := e.store.Set(ctx, constant.QueuesCollection, q.UID, body); err != nil {
		return models.Queue{}, errors.Wrapf(err, "replace queue %s", q.UID)
	}
	return q, nil
}

// AppendParty adds party to the tail of the line. Closed queues accept
// appends; the open flag is advisory.
func (e *Engine) AppendParty(ctx context.Context, uid string, party models.Party) (models.Queue, error) {
	if err := requireUID(uid); err != nil {
		return models.Queue{}, err
	}
	party = party.Clone()
	if err := e.admit(&party, e.now()); err != nil {
		return models.Queue{}, err
	}

	return e.update(ctx, uid, "append party", func(q *models.Queue) error {
		q.Parties = append(q.Parties, party)
		return nil
	})
}

// RemoveParty drops the party matching key and keeps the rest in order.
func (e *Engine) RemoveParty(ctx context.Context, uid string, key PartyKey) (models.Queue, error) {
	if err := requireUID(uid); err != nil {
		return models.Queue{}, err
	}

	return e.update(ctx, uid, "remove party", func(q *models.Queue) error {
		i, ok := key.find(q.Parties)
		if !ok {
			return errors.Wrapf(constant.ErrPartyNotFound, "%s in queue %s", key, uid)
		}
		q.Parties = append(q.Parties[:i], q.Parties[i+1:]...)
		return nil
	})
}

// AppendMessage adds text to the message log of the party matching key and
// returns the updated queue together with that party.
func (e *Engine) AppendMessage(ctx context.Context, uid string, key PartyKey, text string) (models.Queue, models.Party, error) {
	if err := requireUID(uid); err != nil {
		return models.Queue{}, models.Party{}, err
	}
	if strings.TrimSpace(text) == "" {
		return models.Queue{}, models.Party{}, errors.Wrap(constant.ErrMalformedRequest, "message is required")
	}

	var target models.Party
	q, err := e.update(ctx, uid, "append message", func(q *models.Queue) error {
		i, ok := key.find(q.Parties)
		if !ok {
			return errors.Wrapf(constant.ErrPartyNotFound, "%s in queue %s", key, uid)
		}
		p := &q.Parties[i]
		p.Messages = append(p.Messages, models.Message{Date: e.now(), Text: text})
		target = p.Clone()
		return nil
	})
	if err != nil {
		return models.Queue{}, models.Party{}, err
	}
	return q, target, nil
}

// SetOpen changes only the open flag.
func (e *Engine) SetOpen(ctx context.Context, uid string, open bool) (models.Queue, error) {
	if err := requireUID(uid); err != nil {
		return models.Queue{}, err
	}
	return e.update(ctx, uid, "set open", func(q *models.Queue) error {
		q.Open = open
		return nil
	})
}

func (e *Engine) QueueInfo(ctx context.Context, uid string) (models.QueueInfo, error) {
	q, err := e.GetQueue(ctx, uid)
	if err != nil {
		return models.QueueInfo{}, err
	}
	return ComputeQueueInfo(q, e.now()), nil
}

// ListQueues returns every stored queue ordered by uid.
func (e *Engine) ListQueues(ctx context.Context) ([]models.Queue, error) {
	docs, err := e.store.List(ctx, constant.QueuesCollection)
	if err != nil {
		return nil, errors.Wrap(err, "list queues")
	}

	out := make([]models.Queue, 0, len(docs))
	for _, doc := range docs {
		q, err := decodeQueue(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// Now is the engine clock.
func (e *Engine) Now() time.Time {
	return e.now()
}

// update runs a read-modify-write cycle guarded by compare-and-set. A lost
// race restarts the cycle from a fresh snapshot until the attempt budget is
// spent. On any failure the stored snapshot is left untouched.
func (e *Engine) update(ctx context.Context, uid, op string, mutate func(*models.Queue) error) (models.Queue, error) {
	for attempt := 1; ; attempt++ {
		current, version, err := e.load(ctx, uid)
		if err != nil {
			return models.Queue{}, err
		}

		next := current.Clone()
		if err := mutate(&next); err != nil {
			return models.Queue{}, err
		}

		body, err := encodeQueue(next)
		if err != nil {
			return models.Queue{}, err
		}

		err = e.store.CompareAndSet(ctx, constant.QueuesCollection, uid, version, body)
		if err == nil {
			return next, nil
		}
		if !errors.Is(err, constant.ErrVersionConflict) {
			return models.Queue{}, errors.Wrapf(err, "%s on queue %s", op, uid)
		}
		if attempt >= e.casAttempts {
			return models.Queue{}, errors.Wrapf(err, "%s on queue %s after %d attempts", op, uid, attempt)
		}

		e.logger.WithFields(logrus.Fields{
			"uid":     uid,
			"op":      op,
			"attempt": attempt,
		}).Debug("queue changed concurrently, retrying")
	}
}

func (e *Engine) load(ctx context.Context, uid string) (models.Queue, int64, error) {
	doc, err := e.store.Get(ctx, constant.QueuesCollection, uid)
	if errors.Is(err, constant.ErrNotFound) {
		return models.Queue{}, 0, errors.Wrapf(constant.ErrNotFound, "queue %s", uid)
	}
	if err != nil {
		return models.Queue{}, 0, errors.Wrapf(err, "load queue %s", uid)
	}

	q, err := decodeQueue(doc)
	if err != nil {
		return models.Queue{}, 0, err
	}
	return q, doc.Version, nil
}

// admit validates a party for admission and fills in defaults.
func (e *Engine) admit(p *models.Party, now time.Time) error {
	switch {
	case strings.TrimSpace(p.FirstName) == "":
		return errors.Wrap(constant.ErrMalformedRequest, "party.firstName is required")
	case p.Size <= 0:
		return errors.Wrap(constant.ErrMalformedRequest, "party.size must be positive")
	case strings.TrimSpace(p.PhoneNumber) == "":
		return errors.Wrap(constant.ErrMalformedRequest, "party.phoneNumber is required")
	case p.Quote < 0:
		return errors.Wrap(constant.ErrMalformedRequest, "party.quote must not be negative")
	}

	if p.CheckIn.IsZero() {
		p.CheckIn = now
	}
	if p.Messages == nil {
		p.Messages = []models.Message{}
	}
	return nil
}

func requireUID(uid string) error {
	if strings.TrimSpace(uid) == "" {
		return errors.Wrap(constant.ErrMalformedRequest, "uid is required")
	}
	return nil
}

func encodeQueue(q models.Queue) ([]byte, error) {
	if q.Parties == nil {
		q.Parties = []models.Party{}
	}
	body, err := json.Marshal(q)
	if err != nil {
		return nil, errors.Wrapf(err, "encode queue %s", q.UID)
	}
	return body, nil
}

func decodeQueue(doc storage.Document) (models.Queue, error) {
	var q models.Queue
	if err := json.Unmarshal(doc.Body, &q); err != nil {
		return models.Queue{}, constant.NewStoreError("decode", errors.Wrapf(err, "queue %s", doc.Key))
	}
	q.UID = doc.Key
	if q.Parties == nil {
		q.Parties = []models.Party{}
	}
	return q, nil
}
