package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/expense-tracker/internal/model/expense"
)

// ExpenseMailer delivers the "expense recorded" email.
type ExpenseMailer interface {
	SendExpenseRecordedEmail(to, userName, value, date, category string) error
}

func (j *JobService) handleExpenseRecordedTask(ctx context.Context, t *asynq.Task) error {
	var p expense.Recorded
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal expense recorded payload: %w", err)
	}

	logger := j.logger.With().
		Str("type", TaskExpenseRecorded).
		Int64("expense_id", p.ExpenseID).
		Str("to", p.UserEmail).
		Logger()

	logger.Info().Msg("processing expense recorded task")

	err := j.mailer.SendExpenseRecordedEmail(p.UserEmail, p.UserName, p.Value.StringFixed(2), p.Date.String(), p.Category)
	if err != nil {
		logger.Error().Err(err).Msg("failed to send expense recorded email")
		return err
	}

	logger.Info().Msg("sent expense recorded email")
	return nil
}
