package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"

	// TaskTypeOrderConfirmation sends the order confirmation email.
	TaskTypeOrderConfirmation = "mail:order_confirmation"
	// TaskTypeLowStockScan flags products running out of stock.
	TaskTypeLowStockScan = "catalog:low_stock_scan"
	// TaskTypeIdempotencyCleanup prunes expired checkout keys.
	TaskTypeIdempotencyCleanup = "maintenance:idempotency_cleanup"
)

// OrderConfirmationPayload describes the confirmation email for a
// freshly placed order.
type OrderConfirmationPayload struct {
	OrderID      string  `json:"order_id"`
	Email        string  `json:"email"`
	CustomerName string  `json:"customer_name"`
	TotalAmount  float64 `json:"total_amount"`
}

// NewOrderConfirmationTask constructs an Asynq task.
func NewOrderConfirmationTask(payload OrderConfirmationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeOrderConfirmation, data), nil
}

// NewLowStockScanTask constructs the nightly low stock scan task.
func NewLowStockScanTask() *asynq.Task {
	return asynq.NewTask(TaskTypeLowStockScan, nil)
}

// NewIdempotencyCleanupTask constructs the cleanup task.
func NewIdempotencyCleanupTask() *asynq.Task {
	return asynq.NewTask(TaskTypeIdempotencyCleanup, nil)
}
