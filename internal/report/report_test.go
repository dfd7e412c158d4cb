package report

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestClassifyAndAggregate(t *testing.T) {
	records := []OrderRecord{
		{
			ID:          "iso",
			OrderDate:   "2025-08-04T12:00:00",
			Amount:      amount(100),
			ChannelCode: intPtr(0),
			PaymentType: 0,
		},
		{
			ID:          "sql style",
			OrderDate:   "2025-08-04 18:30:00",
			Amount:      amount(200),
			ChannelCode: intPtr(2),
			PaymentType: 1,
		},
		{
			ID:        "store timestamp",
			OrderDate: pgtype.Timestamptz{Time: time.Date(2025, 8, 4, 9, 15, 0, 0, time.UTC), Valid: true},
			Amount:    amount(50),
		},
		{
			ID:                 "canceled",
			OrderDate:          "2025-08-04",
			Amount:             amount(75),
			CancellationStatus: strPtr("İPTAL"),
		},
		{
			ID:        "outside range",
			OrderDate: "2025-08-05T00:00:00",
			Amount:    amount(999),
		},
		{
			ID:        "unparseable date",
			OrderDate: "gestern",
			Amount:    amount(999),
		},
	}

	got := ClassifyAndAggregate(records, ReportingRequest{Mode: ModeDaily, DailyDate: "2025-08-04"}, Options{Location: time.UTC})

	if got.TotalCount != 3 || !got.TotalAmount.Equal(amount(350)) {
		t.Fatalf("expected totals 3/350, got %d/%s", got.TotalCount, got.TotalAmount)
	}
	if got.CanceledCount != 1 || !got.CanceledAmount.Equal(amount(75)) {
		t.Fatalf("expected canceled 1/75, got %d/%s", got.CanceledCount, got.CanceledAmount)
	}
	if got.ByChannel[ChannelPhone].Count != 1 || got.ByChannel[ChannelGetir].Count != 1 {
		t.Fatalf("unexpected channel breakdown: %v", got.ByChannel)
	}
	if got.ByChannel[ChannelOther].Count != 1 {
		t.Fatalf("expected record without channel code under %q", ChannelOther)
	}
	if got.ByPayment[PaymentCash].Count != 1 || got.ByPayment[PaymentCard].Count != 1 {
		t.Fatalf("unexpected payment breakdown: %v", got.ByPayment)
	}
}

func TestClassifyAndAggregateEmptyInterval(t *testing.T) {
	records := []OrderRecord{
		{ID: "1", OrderDate: "2025-08-04T12:00:00", Amount: amount(10)},
	}

	got := ClassifyAndAggregate(records, ReportingRequest{
		Mode:      ModeRange,
		StartDate: "2025-08-10",
		EndDate:   "2025-08-01",
	}, Options{Location: time.UTC})

	if got.TotalCount != 0 || got.CanceledCount != 0 {
		t.Fatalf("expected empty report for inverted range, got %+v", got)
	}
}
