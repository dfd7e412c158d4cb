package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Aggregate classifies each record and reduces the set into a Report.
// Canceled records are split out first so revenue totals and breakdown
// buckets only ever see valid orders; the canceled bucket is reported on
// its own. Zero records in means a zero-valued report out, never an error.
func Aggregate(records []OrderRecord, opts Options) Report {
	out := Report{
		TotalAmount:    decimal.Zero,
		AverageAmount:  decimal.Zero,
		CanceledAmount: decimal.Zero,
		ByChannel:      make(map[string]Bucket),
		ByPayment:      make(map[string]Bucket),
	}

	for _, rec := range records {
		cls := Classify(rec)

		if cls.Canceled {
			out.CanceledCount++
			out.CanceledAmount = out.CanceledAmount.Add(rec.Amount)
			continue
		}

		out.TotalCount++
		out.TotalAmount = out.TotalAmount.Add(rec.Amount)

		channel := out.ByChannel[cls.Channel]
		channel.Count++
		channel.Amount = channel.Amount.Add(rec.Amount)
		out.ByChannel[cls.Channel] = channel

		paymentKey := cls.Payment
		if cls.Payment == PaymentOther && opts.SplitUnknownPayments && cls.PaymentRaw != "" {
			paymentKey = cls.PaymentRaw
		}
		payment := out.ByPayment[paymentKey]
		payment.Count++
		payment.Amount = payment.Amount.Add(rec.Amount)
		out.ByPayment[paymentKey] = payment
	}

	if out.TotalCount > 0 {
		out.AverageAmount = out.TotalAmount.DivRound(decimal.NewFromInt(int64(out.TotalCount)), 2)
	}

	if opts.CourierMetrics {
		out.Couriers = courierMetrics(records, opts.location())
	}

	return out
}

// CourierDelivery is one delivery in a courier's timeline. Timing fields
// stay nil when the underlying record misses a pickup or delivery stamp;
// the record itself is kept in the group.
type CourierDelivery struct {
	OrderID               string     `json:"orderId"`
	PickupAt              *time.Time `json:"pickupAt"`
	DeliveredAt           *time.Time `json:"deliveredAt"`
	NextPickupWaitMinutes *int       `json:"nextPickupWaitMinutes"`
}

// CourierReport is the efficiency view for one courier: the delivery
// timeline sorted by completion plus the average wait before the next
// pickup across measurable consecutive pairs.
type CourierReport struct {
	Courier            string            `json:"courier"`
	Orders             int               `json:"orders"`
	Deliveries         []CourierDelivery `json:"deliveries"`
	AverageWaitMinutes *int              `json:"averageWaitMinutes"`
}

func courierMetrics(records []OrderRecord, loc *time.Location) []CourierReport {
	type group struct {
		display    string
		deliveries []CourierDelivery
	}
	groups := make(map[string]*group)

	for _, rec := range records {
		if Classify(rec).Channel == ChannelDineIn {
			continue
		}
		name := strings.TrimSpace(rec.CourierName)
		if name == "" {
			// Unassigned orders have no courier timeline to measure.
			continue
		}
		key := strings.ToLower(name)
		g := groups[key]
		if g == nil {
			g = &group{display: name}
			groups[key] = g
		}
		g.deliveries = append(g.deliveries, CourierDelivery{
			OrderID:     rec.ID,
			PickupAt:    Normalize(rec.PickupAt, loc).Instant,
			DeliveredAt: Normalize(rec.DeliveredAt, loc).Instant,
		})
	}

	out := make([]CourierReport, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g.deliveries, func(i, j int) bool {
			a, b := g.deliveries[i].DeliveredAt, g.deliveries[j].DeliveredAt
			if a == nil || b == nil {
				// Undelivered rows sink to the end of the timeline.
				return b == nil && a != nil
			}
			return a.Before(*b)
		})

		waitSum := 0
		waitCount := 0
		for i := 0; i+1 < len(g.deliveries); i++ {
			current := &g.deliveries[i]
			next := g.deliveries[i+1]
			if current.DeliveredAt == nil || next.PickupAt == nil {
				continue
			}
			wait := nextPickupWaitMinutes(*current.DeliveredAt, *next.PickupAt)
			current.NextPickupWaitMinutes = &wait
			waitSum += wait
			waitCount++
		}

		cr := CourierReport{
			Courier:    g.display,
			Orders:     len(g.deliveries),
			Deliveries: g.deliveries,
		}
		if waitCount > 0 {
			avg := int(math.Round(float64(waitSum) / float64(waitCount)))
			cr.AverageWaitMinutes = &avg
		}
		out = append(out, cr)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Courier < out[j].Courier })
	return out
}

// nextPickupWaitMinutes is the whole-minute wait between finishing one
// delivery and picking up the next. Negative spans come from skewed POS
// clocks and are clamped to zero, never surfaced.
func nextPickupWaitMinutes(delivered time.Time, nextPickup time.Time) int {
	minutes := int(math.Round(nextPickup.Sub(delivered).Minutes()))
	if minutes < 0 {
		return 0
	}
	return minutes
}
