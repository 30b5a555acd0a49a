package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"edu_analytics_backend/internal/model"
	"edu_analytics_backend/internal/util"
	"edu_analytics_backend/pkg/tracing"

	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const maxBodyBytes = 4 << 20

type ClientConfig struct {
	BaseURL     string
	Timeout     time.Duration
	MaxFailures uint32
	Interval    time.Duration
	OpenTimeout time.Duration
	HTTPClient  *http.Client
	Logger      *zap.Logger
	// Dropped counts elements rejected by the schema check, labelled by kind.
	Dropped *prometheus.CounterVec
}

// Client reads snapshots over HTTP. Calls go through a circuit breaker so an
// unreachable upstream fails fast; nothing is retried here.
type Client struct {
	baseURL string
	http    *http.Client
	breaker circuitbreaker.CircuitBreaker[[]byte]
	log     *zap.Logger
	dropped *prometheus.CounterVec
}

func NewClient(cfg ClientConfig) *Client {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 3
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		log:     log,
		dropped: cfg.Dropped,
	}
	c.breaker = circuitbreaker.New[[]byte](circuitbreaker.Config{
		MaxRequests: 1,
		Interval:    orDuration(cfg.Interval, 10*time.Second),
		Timeout:     orDuration(cfg.OpenTimeout, 30*time.Second),
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return uint64(counts.ConsecutiveFailures) >= uint64(maxFailures)
		},
		OnStateChange: func(from, to circuitbreaker.State) {
			log.Warn("upstream circuit breaker state change",
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})
	return c
}

func (c *Client) FetchRecords(ctx context.Context, q Query) ([]model.ActivityRecord, error) {
	body, err := c.get(ctx, "activities", q)
	if err != nil {
		return nil, err
	}
	records, dropped, err := decodeList[model.ActivityRecord](body, activitySchema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamStatus, err)
	}
	c.reportDropped("activities", q, dropped)
	return records, nil
}

func (c *Client) FetchProgress(ctx context.Context, q Query) ([]model.TopicProgress, error) {
	body, err := c.get(ctx, "progress", q)
	if err != nil {
		return nil, err
	}
	progress, dropped, err := decodeList[model.TopicProgress](body, progressSchema)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamStatus, err)
	}
	c.reportDropped("progress", q, dropped)
	return progress, nil
}

func (c *Client) get(ctx context.Context, resource string, q Query) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/students/%s/%s", c.baseURL, url.PathEscape(q.StudentID), resource)
	if q.Subject != "" {
		endpoint += "?" + url.Values{"subject": {q.Subject}}.Encode()
	}

	ctx, span := tracing.StartSpan(ctx, "upstream.fetch",
		attribute.String("upstream.resource", resource),
		attribute.String("student.id", q.StudentID))

	body, err := c.breaker.Execute(ctx, func(ctx context.Context) ([]byte, error) {
		return c.do(ctx, endpoint, q.Token)
	})
	tracing.EndSpan(span, err)
	if err != nil {
		if errors.Is(err, util.ErrUpstreamStatus) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", util.ErrUpstreamUnavailable, err)
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, endpoint, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", util.ErrUpstreamStatus, resp.StatusCode)
	}
	return body, nil
}

func (c *Client) reportDropped(kind string, q Query, n int) {
	if n == 0 {
		return
	}
	c.log.Warn("dropped malformed upstream records",
		zap.String("kind", kind),
		zap.String("student_id", q.StudentID),
		zap.Int("count", n))
	if c.dropped != nil {
		c.dropped.WithLabelValues(kind).Add(float64(n))
	}
}

func orDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}
