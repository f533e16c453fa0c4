// Package queue provides the Redis-backed job queue that decouples
// registration from squad drafting. Producers push, the background workers
// block-pop; delivery is at-least-once, so consumers must tolerate
// duplicates.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const draftJobsKey = "draft:jobs"

type DraftJob struct {
	UserID   string `json:"user_id"`
	Attempts int    `json:"attempts"`
}

type RedisDraftQueue struct {
	client *redis.Client
}

func NewRedisDraftQueue(client *redis.Client) *RedisDraftQueue {
	return &RedisDraftQueue{client: client}
}

func (q *RedisDraftQueue) EnqueueDraft(ctx context.Context, userID string) error {
	return q.push(ctx, DraftJob{UserID: userID})
}

// Requeue puts a failed job back with its attempt counter bumped.
func (q *RedisDraftQueue) Requeue(ctx context.Context, job DraftJob) error {
	job.Attempts++
	return q.push(ctx, job)
}

func (q *RedisDraftQueue) push(ctx context.Context, job DraftJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshaling draft job: %w", err)
	}
	if err := q.client.LPush(ctx, draftJobsKey, payload).Err(); err != nil {
		return fmt.Errorf("enqueueing draft job: %w", err)
	}
	return nil
}

// Dequeue blocks up to a second for the next job; (nil, nil) on timeout so
// worker loops can check their context between polls.
func (q *RedisDraftQueue) Dequeue(ctx context.Context) (*DraftJob, error) {
	res, err := q.client.BRPop(ctx, time.Second, draftJobsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeueing draft job: %w", err)
	}

	// BRPop returns [key, value].
	var job DraftJob
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
		return nil, fmt.Errorf("unmarshaling draft job: %w", err)
	}
	return &job, nil
}
