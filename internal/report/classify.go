package report

import (
	"strconv"
	"strings"
)

// Channel labels. The code table is closed: the POS only ever writes the
// six codes below, anything else lands in ChannelOther.
const (
	ChannelPhone       = "phone"
	ChannelYemeksepeti = "yemeksepeti"
	ChannelGetir       = "getir"
	ChannelTrendyol    = "trendyol"
	ChannelMigros      = "migros"
	ChannelDineIn      = "dinein"
	ChannelOther       = "other"
)

// Canonical payment labels for codes 0 through 7.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentSodexo   = "sodexo"
	PaymentMultinet = "multinet"
	PaymentAccount  = "account"
	PaymentOnline   = "online"
	PaymentTransfer = "transfer"
	PaymentTicket   = "ticket"
	PaymentOther    = "other"
)

// Dine-in numeric ticket codes. These only distinguish an open ticket from
// a paid one; cancellation is never signaled numerically.
const (
	TicketOpen = 1
	TicketPaid = 2
)

// Classification is the per-record triple the aggregator consumes. It is a
// pure function of the record, so classifying twice always agrees.
type Classification struct {
	Channel    string
	Canceled   bool
	Payment    string
	PaymentRaw string
}

// Classify labels a single record by channel, cancellation and payment
// type. Absent or unrecognized values degrade to the "other" buckets, they
// never fail the record.
func Classify(rec OrderRecord) Classification {
	payment, raw := paymentLabel(rec.PaymentType)
	return Classification{
		Channel:    channelLabel(rec.ChannelCode),
		Canceled:   isCanceled(rec.CancellationStatus),
		Payment:    payment,
		PaymentRaw: raw,
	}
}

func channelLabel(code *int) string {
	if code == nil {
		return ChannelOther
	}
	switch *code {
	case 0:
		return ChannelPhone
	case 1:
		return ChannelYemeksepeti
	case 2:
		return ChannelGetir
	case 5:
		return ChannelTrendyol
	case 8:
		return ChannelMigros
	case 88:
		return ChannelDineIn
	default:
		return ChannelOther
	}
}

// Both Turkish capital-I spellings occur in the data, depending on which
// client wrote the status. Matching is by substring so decorated statuses
// ("İPTAL EDİLDİ", "iptal - müşteri") are caught too.
var cancelMarkers = []string{"İPTAL", "IPTAL"}

func isCanceled(status *string) bool {
	if status == nil {
		return false
	}
	upper := strings.ToUpper(strings.TrimSpace(*status))
	if upper == "" {
		return false
	}
	for _, marker := range cancelMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

var paymentCodes = map[int]string{
	0: PaymentCash,
	1: PaymentCard,
	2: PaymentSodexo,
	3: PaymentMultinet,
	4: PaymentAccount,
	5: PaymentOnline,
	6: PaymentTransfer,
	7: PaymentTicket,
}

var paymentSynonyms = map[string]string{
	"nakit":        PaymentCash,
	"cash":         PaymentCash,
	"kart":         PaymentCard,
	"card":         PaymentCard,
	"kredi":        PaymentCard,
	"kredi karti":  PaymentCard,
	"kredi kartı":  PaymentCard,
	"pos":          PaymentCard,
	"sodexo":       PaymentSodexo,
	"sodexho":      PaymentSodexo,
	"multinet":     PaymentMultinet,
	"multi net":    PaymentMultinet,
	"veresiye":     PaymentAccount,
	"cari":         PaymentAccount,
	"online":       PaymentOnline,
	"online odeme": PaymentOnline,
	"online ödeme": PaymentOnline,
	"havale":       PaymentTransfer,
	"eft":          PaymentTransfer,
	"havale/eft":   PaymentTransfer,
	"transfer":     PaymentTransfer,
	"ticket":       PaymentTicket,
	"setcard":      PaymentTicket,
	"set card":     PaymentTicket,
}

// paymentLabel maps a raw payment type (integer code or free-text label)
// onto its canonical label. Unrecognized values map to PaymentOther but the
// raw text is kept so the dashboard can still display it.
func paymentLabel(raw any) (label string, rawText string) {
	switch v := raw.(type) {
	case nil:
		return PaymentOther, ""
	case int:
		return paymentLabelFromCode(v)
	case int32:
		return paymentLabelFromCode(int(v))
	case int64:
		return paymentLabelFromCode(int(v))
	case float64:
		// JSON numbers decode as float64.
		return paymentLabelFromCode(int(v))
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return PaymentOther, ""
		}
		if code, err := strconv.Atoi(trimmed); err == nil {
			return paymentLabelFromCode(code)
		}
		if label, ok := paymentSynonyms[strings.ToLower(trimmed)]; ok {
			return label, trimmed
		}
		return PaymentOther, trimmed
	default:
		return PaymentOther, ""
	}
}

func paymentLabelFromCode(code int) (string, string) {
	if label, ok := paymentCodes[code]; ok {
		return label, strconv.Itoa(code)
	}
	return PaymentOther, strconv.Itoa(code)
}
