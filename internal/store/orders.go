// Package store is the order-collection collaborator: range queries over
// the adisyon rows a branch has accumulated, returned raw for the report
// engine to normalize and classify.
package store

import (
	"context"
	"strconv"

	"adisyon-report-service/internal/report"
	"adisyon-report-service/internal/utils"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Orders struct {
	DB *pgxpool.Pool
}

// ListOrders returns the branch's records whose stored order date falls
// inside the half-open interval. The SQL bound is only a pre-filter; the
// engine re-tests membership per record after normalization. Row values
// are handed over untyped so the engine sees the same shapes the POS
// clients wrote.
func (s *Orders) ListOrders(ctx context.Context, branchID int64, interval report.Interval) ([]report.OrderRecord, error) {
	query := `
		select id, order_date, amount, channel_code, cancellation_status,
		       status_code, payment_type, coalesce(courier_name, ''),
		       pickup_at, delivered_at
		from orders
		where branch_id = $1
		  and order_date >= $2
		  and order_date < $3
		order by order_date
	`

	rows, err := s.DB.Query(ctx, query, branchID, interval.Start, interval.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]report.OrderRecord, 0)
	for rows.Next() {
		var (
			id          int64
			orderDate   pgtype.Timestamptz
			amountValue pgtype.Numeric
			channelCode pgtype.Int4
			status      pgtype.Text
			statusCode  pgtype.Int4
			paymentType pgtype.Text
			courierName string
			pickupAt    pgtype.Timestamptz
			deliveredAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&id, &orderDate, &amountValue, &channelCode, &status,
			&statusCode, &paymentType, &courierName,
			&pickupAt, &deliveredAt,
		); err != nil {
			return nil, err
		}

		rec := report.OrderRecord{
			ID:          strconv.FormatInt(id, 10),
			OrderDate:   orderDate,
			Amount:      utils.NumericToDecimal(amountValue),
			CourierName: courierName,
			PickupAt:    pickupAt,
			DeliveredAt: deliveredAt,
		}
		if channelCode.Valid {
			code := int(channelCode.Int32)
			rec.ChannelCode = &code
		}
		if status.Valid {
			value := status.String
			rec.CancellationStatus = &value
		}
		if statusCode.Valid {
			code := int(statusCode.Int32)
			rec.StatusCode = &code
		}
		if paymentType.Valid {
			rec.PaymentType = paymentType.String
		}

		records = append(records, rec)
	}
	return records, rows.Err()
}
