// Package report implements the order aggregation engine shared by every
// reporting surface: date normalization, range building, record
// classification and summary aggregation. It is pure computation over
// records already materialized in memory; callers own fetching, auth
// scoping and subscription lifecycle.
package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is one adisyon row as it comes out of the store. Date-ish
// fields are deliberately untyped: depending on which POS client wrote the
// row they arrive as native timestamps, ISO strings, SQL-style strings or
// bare dates. Normalize handles all of them.
type OrderRecord struct {
	ID                 string
	OrderDate          any
	Amount             decimal.Decimal
	ChannelCode        *int
	CancellationStatus *string
	StatusCode         *int
	PaymentType        any
	CourierName        string
	PickupAt           any
	DeliveredAt        any
}

// Mode selects between a single-day report and an inclusive day span.
type Mode string

const (
	ModeDaily Mode = "daily"
	ModeRange Mode = "range"
)

// ReportingRequest carries the caller's filter selections. It is an
// immutable value built per invocation; the engine never reads ambient
// state. Dates are "2006-01-02", times "15:04". StartTime/EndTime are only
// honored when both are set.
type ReportingRequest struct {
	Mode      Mode   `json:"mode"`
	DailyDate string `json:"dailyDate,omitempty"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// Options tune engine behavior per call site.
type Options struct {
	// Location for interpreting wall-clock date strings. Nil means
	// time.Local, matching how the POS clients write their rows.
	Location *time.Location

	// SplitUnknownPayments keys unrecognized payment types by their raw
	// value instead of collapsing them into the single "other" bucket.
	SplitUnknownPayments bool

	// CourierMetrics enables the per-courier delivery timing extension.
	CourierMetrics bool
}

func (o Options) location() *time.Location {
	if o.Location != nil {
		return o.Location
	}
	return time.Local
}

// Bucket is a count/amount pair for one breakdown group.
type Bucket struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// Report is the aggregate output consumed by the dashboard pages. Totals
// exclude canceled records; the canceled bucket is kept separate and is
// never folded back into revenue. Breakdown maps only contain groups that
// actually occurred.
type Report struct {
	TotalCount     int               `json:"totalCount"`
	TotalAmount    decimal.Decimal   `json:"totalAmount"`
	AverageAmount  decimal.Decimal   `json:"averageAmount"`
	CanceledCount  int               `json:"canceledCount"`
	CanceledAmount decimal.Decimal   `json:"canceledAmount"`
	ByChannel      map[string]Bucket `json:"byChannel"`
	ByPayment      map[string]Bucket `json:"byPayment"`
	Couriers       []CourierReport   `json:"couriers,omitempty"`
}

// ClassifyAndAggregate is the engine's single entry point: build the
// request's instant interval, keep records whose normalized order date
// falls inside it, classify the survivors and reduce them into a Report.
// Records whose date cannot be parsed are excluded (fail closed). An empty
// or inverted interval simply yields a zero-valued report.
func ClassifyAndAggregate(records []OrderRecord, req ReportingRequest, opts Options) Report {
	loc := opts.location()
	interval := BuildRange(req, loc)

	selected := make([]OrderRecord, 0, len(records))
	for _, rec := range records {
		nd := Normalize(rec.OrderDate, loc)
		if nd.Instant == nil {
			continue
		}
		if interval.Contains(*nd.Instant) {
			selected = append(selected, rec)
		}
	}

	return Aggregate(selected, opts)
}
