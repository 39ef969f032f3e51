package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/expense-tracker/internal/model/expense"
)

const (
	// TaskExpenseRecorded is sent after an expense is stored.
	TaskExpenseRecorded = "expense:recorded"
)

// NewExpenseRecordedTask wraps the notification in an asynq task.
func NewExpenseRecordedTask(payload expense.Recorded) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskExpenseRecorded,
		data,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
