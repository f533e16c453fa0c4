package background

import (
	"context"
	"log"
	"time"

	"github.com/pitchside/transfer-market-service/internal/domain"
	"github.com/pitchside/transfer-market-service/internal/infrastructure/queue"
	"github.com/pitchside/transfer-market-service/internal/usecase"
)

// maxDraftAttempts bounds retries of a draft job before it is dropped.
const maxDraftAttempts = 5

type BackgroundTasks struct {
	TeamUsecase usecase.TeamUsecase
	DraftQueue  *queue.RedisDraftQueue
	Workers     int
}

func NewBackgroundTasks(teamUC usecase.TeamUsecase, draftQueue *queue.RedisDraftQueue, workers int) *BackgroundTasks {
	if workers < 1 {
		workers = 1
	}
	return &BackgroundTasks{
		TeamUsecase: teamUC,
		DraftQueue:  draftQueue,
		Workers:     workers,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	for i := 0; i < bt.Workers; i++ {
		go bt.startDraftWorker(ctx, i)
	}
}

// startDraftWorker drains the draft queue. Drafting is idempotent, so a job
// delivered twice after a crash is harmless.
func (bt *BackgroundTasks) startDraftWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := bt.DraftQueue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("draft worker %d: dequeue error: %v", id, err)
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue
		}

		if err := bt.TeamUsecase.DraftSquad(ctx, job.UserID); err != nil {
			bt.handleDraftFailure(ctx, id, job, err)
		}
	}
}

func (bt *BackgroundTasks) handleDraftFailure(ctx context.Context, workerID int, job *queue.DraftJob, err error) {
	// Business failures cannot succeed on retry.
	if domain.IsBusinessError(err) {
		log.Printf("draft worker %d: dropping job for user %s: %v", workerID, job.UserID, err)
		return
	}

	if job.Attempts+1 >= maxDraftAttempts {
		log.Printf("draft worker %d: giving up on user %s after %d attempts: %v", workerID, job.UserID, job.Attempts+1, err)
		return
	}

	if requeueErr := bt.DraftQueue.Requeue(ctx, *job); requeueErr != nil {
		log.Printf("draft worker %d: requeue for user %s failed: %v", workerID, job.UserID, requeueErr)
		return
	}
	log.Printf("draft worker %d: requeued draft for user %s (attempt %d): %v", workerID, job.UserID, job.Attempts, err)
}
