// Package cache keeps lightweight sync bookkeeping in redis so UI surfaces
// (queue indicators, last-sync banners) can read it without touching the
// local store. It is strictly optional: a nil *StatusCache disables it and
// every failure is non-fatal.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
)

const (
	summaryTTL = 7 * 24 * time.Hour

	remoteVersionHash = "sync:remote:version"
)

func summaryKey(userID string) string {
	return "sync:summary:" + userID
}

// SyncRecord is the stored outcome of the most recent full sync for a user.
type SyncRecord struct {
	Uploaded   int       `json:"uploaded"`
	Downloaded int       `json:"downloaded"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	FinishedAt time.Time `json:"finished_at"`
}

type StatusCache struct {
	client *redis.Client
}

func NewStatusCache(addr string) *StatusCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // No password set
		DB:       0,  // Use default DB
		Protocol: 2,  // Connection protocol
	})

	return &StatusCache{client: client}
}

// NewStatusCacheFromClient wraps an existing client; used by tests.
func NewStatusCacheFromClient(client *redis.Client) *StatusCache {
	return &StatusCache{client: client}
}

// RecordSummary stores the outcome of a sync pass for the user.
func (c *StatusCache) RecordSummary(ctx context.Context, userID string, rec SyncRecord) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey(userID), data, summaryTTL).Err()
}

// LastSummary returns the most recent sync outcome, or nil when none is
// recorded.
func (c *StatusCache) LastSummary(ctx context.Context, userID string) (*SyncRecord, error) {
	if c == nil {
		return nil, nil
	}
	res := c.client.Get(ctx, summaryKey(userID))
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, res.Err()
	}

	buf, err := res.Bytes()
	if err != nil {
		return nil, err
	}

	rec := &SyncRecord{}
	if err := json.Unmarshal(buf, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// SetRemoteVersion records the remote update timestamp observed for a
// document during the latest pull.
func (c *StatusCache) SetRemoteVersion(ctx context.Context, documentID string, updatedAt time.Time) error {
	if c == nil {
		return nil
	}
	return c.client.HSet(ctx, remoteVersionHash, documentID, updatedAt.UTC().Format(time.RFC3339Nano)).Err()
}

// RemoteVersion returns the remote update timestamp last observed for a
// document, or the zero time when none was recorded.
func (c *StatusCache) RemoteVersion(ctx context.Context, documentID string) (time.Time, error) {
	if c == nil {
		return time.Time{}, nil
	}
	res := c.client.HGet(ctx, remoteVersionHash, documentID)
	if res.Err() != nil {
		if errors.Is(res.Err(), redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, res.Err()
	}
	return time.Parse(time.RFC3339Nano, res.Val())
}
