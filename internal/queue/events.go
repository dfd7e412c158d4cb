package queue

import (
	"context"
	"encoding/json"
	"errors"
)

const (
	EventsExchange     = "adisyon.events"
	ReportRefreshQueue = "adisyon.report-refresh"
	OrderRoutingKey    = "order.#"
)

// OrderEvent is what the POS systems publish whenever an adisyon row
// changes. The report service only cares which branch was touched; the
// rest of the payload is for other consumers.
type OrderEvent struct {
	BranchID int64  `json:"branchId"`
	OrderID  string `json:"orderId,omitempty"`
	Action   string `json:"action,omitempty"`
}

// BranchNotifier is poked when a branch's order set changed and any live
// report for it should be recomputed.
type BranchNotifier interface {
	NotifyBranch(branchID int64)
}

// EnsureReportRefreshTopology declares the exchange, queue and binding the
// refresh consumer depends on. Declarations are idempotent on the broker.
func EnsureReportRefreshTopology(c *Client) error {
	if err := c.EnsureExchange(EventsExchange); err != nil {
		return err
	}
	if _, err := c.EnsureQueue(ReportRefreshQueue); err != nil {
		return err
	}
	return c.BindQueue(ReportRefreshQueue, EventsExchange, OrderRoutingKey)
}

// ProcessOrderEvent decodes one order-change event and wakes the live
// reports subscribed to its branch. A payload without a branch id is a
// producer bug and is surfaced so the retry path can count it.
func ProcessOrderEvent(_ context.Context, body []byte, notifier BranchNotifier) error {
	var event OrderEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return err
	}
	if event.BranchID == 0 {
		return errors.New("order event missing branchId")
	}
	notifier.NotifyBranch(event.BranchID)
	return nil
}
