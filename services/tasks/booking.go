package tasks

import (
	"encoding/json"
	"time"

	"huduma/models"

	"github.com/hibiken/asynq"
)

const (
	TypeBookingReminder = "booking:reminder"
	TypeBookingExpire   = "booking:expire"
)

// Enqueuer is the subset of asynq.Client used by the services.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewBookingReminderTask builds a reminder task scheduled at fireAt.
func NewBookingReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// NewBookingExpiryTask builds an expiry task scheduled at fireAt. The worker
// cancels the booking only if it is still pending and unpaid when it fires.
func NewBookingExpiryTask(payload models.ExpiryPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingExpire, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
