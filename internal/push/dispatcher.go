package push

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"waitlist/internal/constant"
)

// Dispatcher sends best-effort push notifications. It never fails as a whole:
// every token gets its own Result.
type Dispatcher interface {
	SendPush(ctx context.Context, tokens []string, message string) []Result
}

type Status string

const (
	StatusOK      Status = "ok"
	StatusInvalid Status = "invalid_token"
	StatusError   Status = "error"
)

type Result struct {
	Token  string `json:"token"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

var expoTokenPattern = regexp.MustCompile(`^Expo(nent)?PushToken\[.+\]$`)

// IsExpoPushToken reports whether token looks like an Expo push token.
func IsExpoPushToken(token string) bool {
	return expoTokenPattern.MatchString(token)
}

// ExpoDispatcher posts messages to the Expo push API in chunks.
type ExpoDispatcher struct {
	endpoint string
	client   *http.Client
	logger   *logrus.Logger
}

func NewExpoDispatcher(endpoint string, client *http.Client, logger *logrus.Logger) *ExpoDispatcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &ExpoDispatcher{endpoint: endpoint, client: client, logger: logger}
}

type expoMessage struct {
	To    string `json:"to"`
	Sound string `json:"sound"`
	Body  string `json:"body"`
}

type expoTicket struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

type expoResponse struct {
	Data []expoTicket `json:"data"`
}

func (d *ExpoDispatcher) SendPush(ctx context.Context, tokens []string, message string) []Result {
	results := make([]Result, 0, len(tokens))
	valid := make([]string, 0, len(tokens))

	for _, token := range tokens {
		if !IsExpoPushToken(token) {
			d.logger.WithField("token", token).Warn("push token is not valid")
			results = append(results, Result{Token: token, Status: StatusInvalid})
			continue
		}
		valid = append(valid, token)
	}

	for start := 0; start < len(valid); start += constant.ExpoPushChunkSize {
		end := start + constant.ExpoPushChunkSize
		if end > len(valid) {
			end = len(valid)
		}
		results = append(results, d.sendChunk(ctx, valid[start:end], message)...)
	}
	return results
}

func (d *ExpoDispatcher) sendChunk(ctx context.Context, tokens []string, message string) []Result {
	msgs := make([]expoMessage, len(tokens))
	for i, token := range tokens {
		msgs[i] = expoMessage{To: token, Sound: "default", Body: message}
	}

	tickets, err := d.post(ctx, msgs)
	if err != nil {
		d.logger.WithError(err).WithField("tokens", len(tokens)).Error("push chunk failed")
		out := make([]Result, len(tokens))
		for i, token := range tokens {
			out[i] = Result{Token: token, Status: StatusError, Detail: err.Error()}
		}
		return out
	}

	out := make([]Result, len(tokens))
	for i, token := range tokens {
		out[i] = Result{Token: token, Status: StatusError, Detail: "no ticket returned"}
		if i >= len(tickets) {
			continue
		}
		if tickets[i].Status == "ok" {
			out[i] = Result{Token: token, Status: StatusOK}
			continue
		}
		out[i].Detail = tickets[i].Message
		d.logger.WithFields(logrus.Fields{
			"token":  token,
			"detail": tickets[i].Message,
		}).Warn("push ticket rejected")
	}
	return out
}

func (d *ExpoDispatcher) post(ctx context.Context, msgs []expoMessage) ([]expoTicket, error) {
	payload, err := json.Marshal(msgs)
	if err != nil {
		return nil, errors.Wrap(err, "push: encode messages")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "push: build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "push: send")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "push: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("push: endpoint answered %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var out expoResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, errors.Wrap(err, "push: decode response")
	}
	return out.Data, nil
}
