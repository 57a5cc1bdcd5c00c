package tasks

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"waitlist/internal/models"
	"waitlist/internal/queue"
	"waitlist/internal/ws"
)

// QueueLister is the slice of the queue engine the monitor needs.
type QueueLister interface {
	ListQueues(ctx context.Context) ([]models.Queue, error)
	Now() time.Time
}

type Publisher interface {
	Publish(uid, eventType string, data interface{})
}

// DelayMonitor finds queues whose head of line has waited longer than quoted.
type DelayMonitor struct {
	queues    QueueLister
	publisher Publisher
	logger    *logrus.Logger
	timeout   time.Duration
}

func NewDelayMonitor(queues QueueLister, publisher Publisher, logger *logrus.Logger) *DelayMonitor {
	return &DelayMonitor{
		queues:    queues,
		publisher: publisher,
		logger:    logger,
		timeout:   30 * time.Second,
	}
}

// ReportDelayedQueues publishes a queue_behind event for every delayed queue
// and returns their uids. It never writes queues.
func (m *DelayMonitor) ReportDelayedQueues(ctx context.Context) ([]string, error) {
	queues, err := m.queues.ListQueues(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "delay monitor")
	}

	now := m.queues.Now()
	var delayed []string
	for _, q := range queues {
		if !queue.RunningBehind(q, now) {
			continue
		}
		info := queue.ComputeQueueInfo(q, now)
		head, _ := q.Head()
		m.logger.WithFields(logrus.Fields{
			"uid":             q.UID,
			"length":          info.Length,
			"longestWaitTime": info.LongestWaitTime,
			"quote":           head.Quote,
		}).Warn("queue is running behind its quote")
		m.publisher.Publish(q.UID, ws.EventQueueBehind, info)
		delayed = append(delayed, q.UID)
	}
	return delayed, nil
}

func (m *DelayMonitor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	delayed, err := m.ReportDelayedQueues(ctx)
	if err != nil {
		m.logger.WithError(err).Error("delay check failed")
		return
	}
	m.logger.WithField("delayed", len(delayed)).Debug("delay check finished")
}

// InitScheduler starts the cron scheduler. spec uses the seconds field.
func InitScheduler(spec string, monitor *DelayMonitor, logger *logrus.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc(spec, monitor.run); err != nil {
		return nil, errors.Wrapf(err, "tasks: schedule delay check %q", spec)
	}

	c.Start()
	logger.WithField("spec", spec).Info("cron scheduler started")
	return c, nil
}
