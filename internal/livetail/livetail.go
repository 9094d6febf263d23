// Package livetail streams new messages from the server over a websocket
// and merges them into the records store.
package livetail

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/valyala/fastjson"
	"go.uber.org/zap"

	"github.com/muurk/logconsole/internal/apiclient"
	"github.com/muurk/logconsole/internal/collections"
	"github.com/muurk/logconsole/internal/logging"
	"github.com/muurk/logconsole/internal/model"
	"github.com/muurk/logconsole/internal/store"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 1 << 20

	// DefaultRetention caps how many records the tail keeps in the store
	DefaultRetention = 1000

	// DefaultReconnectDelay is the wait before redialing a dropped stream
	DefaultReconnectDelay = 2 * time.Second
)

// PauseState reports whether auto-refresh is paused. Frames that arrive
// while paused are dropped.
type PauseState interface {
	Paused() bool
}

// Tail is a reconnecting live tail subscription.
type Tail struct {
	// URL is the websocket endpoint including the query string
	URL string

	Username string
	Password string

	// Retention caps the records store length
	Retention int

	// ReconnectDelay is the wait between connection attempts
	ReconnectDelay time.Duration

	Dialer *websocket.Dialer

	records *store.Store[model.SearchResult]
	pause   PauseState
	parser  fastjson.Parser

	received atomic.Int64
	dropped  atomic.Int64
}

// New creates a tail for the server at baseURL streaming messages that
// match query into records.
func New(baseURL, query string, records *store.Store[model.SearchResult], pause PauseState) (*Tail, error) {
	u, err := StreamURL(baseURL, query)
	if err != nil {
		return nil, err
	}
	return &Tail{
		URL:            u,
		Retention:      DefaultRetention,
		ReconnectDelay: DefaultReconnectDelay,
		Dialer:         websocket.DefaultDialer,
		records:        records,
		pause:          pause,
	}, nil
}

// StreamURL maps an http(s) server URL to its ws(s) message stream.
func StreamURL(baseURL, query string) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid server URL %q: %w", baseURL, err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("invalid server URL %q: unsupported scheme %q", baseURL, u.Scheme)
	}
	u.Path += "/api/stream/messages"
	if query == "" {
		query = "*"
	}
	u.RawQuery = url.Values{"query": {query}}.Encode()
	return u.String(), nil
}

// SetAuth sets basic auth credentials sent with the handshake.
func (t *Tail) SetAuth(username, password string) {
	t.Username = username
	t.Password = password
}

// Stats returns the number of records received and dropped while paused.
func (t *Tail) Stats() (received, dropped int64) {
	return t.received.Load(), t.dropped.Load()
}

// Run connects and reconnects until ctx is cancelled.
func (t *Tail) Run(ctx context.Context) error {
	for {
		err := t.runOnce(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if apiclient.IsAuthError(err) {
			return err
		}
		logging.Warn("Live tail disconnected",
			zap.String("url", t.URL),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(t.ReconnectDelay):
		}
	}
}

func (t *Tail) header() http.Header {
	h := http.Header{}
	h.Set("X-Requested-By", apiclient.RequestedBy)
	if t.Username != "" {
		creds := base64.StdEncoding.EncodeToString([]byte(t.Username + ":" + t.Password))
		h.Set("Authorization", "Basic "+creds)
	}
	return h
}

func (t *Tail) runOnce(ctx context.Context) error {
	conn, resp, err := t.Dialer.DialContext(ctx, t.URL, t.header())
	if err != nil {
		if resp != nil {
			return apiclient.NewStatusError(resp.StatusCode, "live tail handshake rejected")
		}
		return apiclient.NewNetworkError("live tail dial failed", err)
	}
	defer func() { _ = conn.Close() }()

	logging.Info("Live tail connected", zap.String("url", t.URL))

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go t.keepalive(ctx, conn, done)

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return errors.New("stream closed by server")
			}
			return err
		}
		if kind != websocket.TextMessage {
			continue
		}
		if err := t.HandleFrame(data); err != nil {
			logging.Warn("Dropping malformed live tail frame", zap.Error(err))
		}
	}
}

// keepalive pings the server and closes the connection when ctx ends,
// which unblocks ReadMessage.
func (t *Tail) keepalive(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			_ = conn.Close()
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// HandleFrame merges one text frame into the records store. A frame holds
// a single hit or an array of hits.
func (t *Tail) HandleFrame(data []byte) error {
	v, err := t.parser.ParseBytes(data)
	if err != nil {
		return apiclient.NewParseError("invalid live tail frame", err)
	}

	hits := []*fastjson.Value{v}
	if v.Type() == fastjson.TypeArray {
		hits = v.GetArray()
	}

	var incoming []model.Record
	for _, hit := range hits {
		if rec, ok := apiclient.DecodeRecord(hit); ok {
			incoming = append(incoming, rec)
		}
	}
	if len(incoming) == 0 {
		return nil
	}
	t.received.Add(int64(len(incoming)))

	if t.pause != nil && t.pause.Paused() {
		t.dropped.Add(int64(len(incoming)))
		return nil
	}

	t.records.Update(func(cur model.SearchResult) model.SearchResult {
		return merge(cur, incoming, t.Retention)
	})
	logging.LogStoreUpdate("records", len(incoming))
	return nil
}

// merge prepends incoming (oldest first on the wire) to cur, newest first,
// skipping records already present and trimming to retention.
func merge(cur model.SearchResult, incoming []model.Record, retention int) model.SearchResult {
	known := collections.IndexBy(cur.Records, model.Record.Key)

	fresh := make([]model.Record, 0, len(incoming))
	for i := len(incoming) - 1; i >= 0; i-- {
		rec := incoming[i]
		if _, dup := known[rec.Key()]; dup {
			continue
		}
		known[rec.Key()] = rec
		fresh = append(fresh, rec)
	}

	records := make([]model.Record, 0, len(fresh)+len(cur.Records))
	records = append(records, fresh...)
	records = append(records, cur.Records...)
	if retention > 0 && len(records) > retention {
		records = records[:retention]
	}

	return model.SearchResult{
		Query:        cur.Query,
		Records:      records,
		TotalResults: cur.TotalResults + len(fresh),
	}
}
