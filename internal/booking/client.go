// Package booking is the read-only client for the external booking backend.
// It fetches the five schedule datasets for one teacher and time range in a
// single round trip; the backend owns and mutates all of this data, the
// console only ever reads snapshots.
package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lessonwise/schedule-console/internal/model"
	"go.uber.org/zap"
)

// Client talks to the booking backend's schedule endpoint. No caching, no
// retries: one request per Fetch call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// Fetch retrieves the schedule bundle for one teacher over [start, end). On
// any transport or decode failure the bundle is nil; it is never partially
// populated.
func (c *Client) Fetch(ctx context.Context, teacherID int64, start, end time.Time) (*model.ScheduleBundle, error) {
	q := url.Values{}
	q.Set("teacher_id", strconv.FormatInt(teacherID, 10))
	q.Set("start_time", strconv.FormatInt(start.UnixMilli(), 10))
	q.Set("end_time", strconv.FormatInt(end.UnixMilli(), 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/schedules?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create schedule request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch schedules: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch schedules: backend returned %d: %s", resp.StatusCode, body)
	}

	var payload scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode schedule response: %w", err)
	}

	bundle := payload.toBundle()
	c.logger.Debug("Fetched schedule bundle",
		zap.Int64("teacher_id", teacherID),
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("flexible", len(bundle.Flexible)),
		zap.Int("regular", len(bundle.Regular)),
		zap.Int("registered", len(bundle.Registered)),
		zap.Int("booked", len(bundle.Booked)),
		zap.Int("absences", len(bundle.Absences)),
	)
	return bundle, nil
}
