// Package cache keeps the latest analysis results in Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mindloop/therasim/internal/types"
)

// ReportCache handles Redis operations for session analysis reports.
type ReportCache interface {
	GetReport(ctx context.Context, sessionID string) (*types.AnalysisReport, error)
	SetReport(ctx context.Context, report *types.AnalysisReport) error
}

type reportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache creates a new report cache.
func NewReportCache(client *redis.Client) ReportCache {
	return &reportCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *reportCache) reportKey(sessionID string) string {
	return fmt.Sprintf("session:%s:analysis", sessionID)
}

// GetReport returns the cached report, or nil on a cache miss.
func (c *reportCache) GetReport(ctx context.Context, sessionID string) (*types.AnalysisReport, error) {
	data, err := c.client.Get(ctx, c.reportKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis report: %w", err)
	}

	var report types.AnalysisReport
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("failed to decode analysis report: %w", err)
	}
	return &report, nil
}

// SetReport stores the report under its session key.
func (c *reportCache) SetReport(ctx context.Context, report *types.AnalysisReport) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode analysis report: %w", err)
	}
	if err := c.client.Set(ctx, c.reportKey(report.SessionID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache analysis report: %w", err)
	}
	return nil
}
