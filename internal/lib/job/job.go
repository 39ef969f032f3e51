// Package job runs background tasks on asynq, backed by Redis.
//
// The JobService is both producer (Client) and consumer (server).
package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/expense-tracker/internal/config"
	"github.com/deppfellow/expense-tracker/internal/model/expense"
)

type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger
	mailer ExpenseMailer
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config, mailer ExpenseMailer) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
		mailer: mailer,
	}
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskExpenseRecorded, j.handleExpenseRecordedTask)
	return mux
}

// Start launches the workers in the background.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(j.Mux()); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}

	return nil
}

// NotifyExpenseRecorded enqueues the "expense recorded" email.
func (j *JobService) NotifyExpenseRecorded(ctx context.Context, payload expense.Recorded) error {
	task, err := NewExpenseRecordedTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build expense recorded task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue expense recorded task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("expense_id", payload.ExpenseID).
		Msg("enqueued expense recorded task")

	return nil
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
