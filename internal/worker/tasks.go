package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"lokapasar/internal/domain/entity"
	"lokapasar/internal/domain/repository"
	"lokapasar/internal/usecase"
	"lokapasar/pkg/logger"
)

const (
	TypeListingCreated = "reward:listing_created"
	TypeListingSold    = "reward:listing_sold"
	TypeListingRemoved = "reward:listing_removed"
)

const rewardQueue = "rewards"

type RewardPayload struct {
	SellerID    string `json:"seller_id"`
	ListingID   string `json:"listing_id"`
	ListingType string `json:"listing_type"`
}

func NewClient(rdb *redis.Client) *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	})
}

// Enqueuer persists reward tasks in Redis. Enqueueing succeeds or fails
// with the triggering request; once persisted, the worker settles the
// grant with retries even across process restarts.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueListingReward(ctx context.Context, sellerID, listingID, listingType string) error {
	return e.enqueue(ctx, TypeListingCreated, sellerID, listingID, listingType)
}

func (e *Enqueuer) EnqueueSaleReward(ctx context.Context, sellerID, listingID, listingType string) error {
	return e.enqueue(ctx, TypeListingSold, sellerID, listingID, listingType)
}

func (e *Enqueuer) EnqueueRemovalReward(ctx context.Context, sellerID, listingID, listingType string) error {
	return e.enqueue(ctx, TypeListingRemoved, sellerID, listingID, listingType)
}

func (e *Enqueuer) enqueue(ctx context.Context, taskType, sellerID, listingID, listingType string) error {
	payload, err := json.Marshal(RewardPayload{
		SellerID:    sellerID,
		ListingID:   listingID,
		ListingType: listingType,
	})
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", taskType, err)
	}

	task := asynq.NewTask(taskType, payload)
	_, err = e.client.EnqueueContext(ctx, task,
		asynq.Queue(rewardQueue),
		asynq.MaxRetry(10),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}

// TaskProcessor holds the dependencies reward handlers need.
type TaskProcessor struct {
	coins    usecase.CoinLedger
	userRepo repository.UserRepository
}

func NewTaskProcessor(coins usecase.CoinLedger, userRepo repository.UserRepository) *TaskProcessor {
	return &TaskProcessor{
		coins:    coins,
		userRepo: userRepo,
	}
}

// SetupServer configures the asynq server and its handler mux. The caller
// runs it on its own goroutine.
func SetupServer(rdb *redis.Client, processor *TaskProcessor) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     rdb.Options().Addr,
			Password: rdb.Options().Password,
			DB:       rdb.Options().DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				rewardQueue: 5,
				"default":   1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error("Task %s failed: %v (payload: %s)", task.Type(), err, string(task.Payload()))
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeListingCreated, processor.HandleListingCreated)
	mux.HandleFunc(TypeListingSold, processor.HandleListingSold)
	mux.HandleFunc(TypeListingRemoved, processor.HandleListingRemoved)

	return srv, mux
}

func (p *TaskProcessor) HandleListingCreated(ctx context.Context, t *asynq.Task) error {
	payload, err := decodePayload(t)
	if err != nil {
		return err
	}

	_, err = p.coins.UpdateCoins(ctx, payload.SellerID, entity.RewardNewListing, entity.ReasonNewListing, rewardMetadata(payload))
	return err
}

func (p *TaskProcessor) HandleListingRemoved(ctx context.Context, t *asynq.Task) error {
	payload, err := decodePayload(t)
	if err != nil {
		return err
	}

	_, err = p.coins.UpdateCoins(ctx, payload.SellerID, entity.RewardListingRemoval, entity.ReasonListingRemoval, rewardMetadata(payload))
	return err
}

// HandleListingSold bumps the seller's sales counter before crediting the
// coins, so the trust recompute inside the credit already sees the new
// sale.
func (p *TaskProcessor) HandleListingSold(ctx context.Context, t *asynq.Task) error {
	payload, err := decodePayload(t)
	if err != nil {
		return err
	}

	if err := p.userRepo.IncrementTotalSales(ctx, payload.SellerID); err != nil {
		return fmt.Errorf("increment sales for %s: %w", payload.SellerID, err)
	}

	_, err = p.coins.UpdateCoins(ctx, payload.SellerID, entity.RewardSaleCompletion, entity.ReasonSaleCompletion, rewardMetadata(payload))
	return err
}

func decodePayload(t *asynq.Task) (*RewardPayload, error) {
	var payload RewardPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	if payload.SellerID == "" {
		return nil, fmt.Errorf("%s payload missing seller id: %w", t.Type(), asynq.SkipRetry)
	}
	return &payload, nil
}

func rewardMetadata(payload *RewardPayload) map[string]interface{} {
	return map[string]interface{}{
		"listing_id":   payload.ListingID,
		"listing_type": payload.ListingType,
	}
}
