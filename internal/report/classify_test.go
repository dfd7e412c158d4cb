package report

import "testing"

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestChannelClassification(t *testing.T) {
	cases := []struct {
		name     string
		code     *int
		expected string
	}{
		{name: "phone", code: intPtr(0), expected: ChannelPhone},
		{name: "yemeksepeti", code: intPtr(1), expected: ChannelYemeksepeti},
		{name: "getir", code: intPtr(2), expected: ChannelGetir},
		{name: "trendyol", code: intPtr(5), expected: ChannelTrendyol},
		{name: "migros", code: intPtr(8), expected: ChannelMigros},
		{name: "dine in", code: intPtr(88), expected: ChannelDineIn},
		{name: "unknown code", code: intPtr(999), expected: ChannelOther},
		{name: "absent code", code: nil, expected: ChannelOther},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(OrderRecord{ChannelCode: tc.code})
			if got.Channel != tc.expected {
				t.Fatalf("expected channel %s, got %s", tc.expected, got.Channel)
			}
		})
	}
}

func TestCancellationClassification(t *testing.T) {
	cases := []struct {
		name     string
		status   *string
		code     *int
		canceled bool
	}{
		{name: "dotted capital", status: strPtr("İPTAL"), canceled: true},
		{name: "plain capital", status: strPtr("IPTAL"), canceled: true},
		{name: "lowercase", status: strPtr("iptal"), canceled: true},
		{name: "decorated status", status: strPtr("İptal Edildi - müşteri"), canceled: true},
		{name: "active delivery", status: strPtr("YOLDA"), canceled: false},
		{name: "empty status", status: strPtr("  "), canceled: false},
		{name: "absent status", status: nil, canceled: false},
		{name: "open ticket code", status: nil, code: intPtr(TicketOpen), canceled: false},
		{name: "paid ticket code", status: nil, code: intPtr(TicketPaid), canceled: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(OrderRecord{CancellationStatus: tc.status, StatusCode: tc.code})
			if got.Canceled != tc.canceled {
				t.Fatalf("expected canceled=%v, got %v", tc.canceled, got.Canceled)
			}
		})
	}
}

func TestPaymentClassification(t *testing.T) {
	cases := []struct {
		name     string
		raw      any
		expected string
		rawText  string
	}{
		{name: "cash code", raw: 0, expected: PaymentCash, rawText: "0"},
		{name: "card code", raw: 1, expected: PaymentCard, rawText: "1"},
		{name: "ticket code", raw: 7, expected: PaymentTicket, rawText: "7"},
		{name: "code as string", raw: "4", expected: PaymentAccount, rawText: "4"},
		{name: "code as json number", raw: float64(6), expected: PaymentTransfer, rawText: "6"},
		{name: "turkish cash label", raw: "Nakit", expected: PaymentCash, rawText: "Nakit"},
		{name: "turkish card label", raw: "KREDİ KARTI", expected: PaymentCard, rawText: "KREDİ KARTI"},
		{name: "transfer label", raw: "Havale/EFT", expected: PaymentTransfer, rawText: "Havale/EFT"},
		{name: "unknown code keeps raw", raw: 42, expected: PaymentOther, rawText: "42"},
		{name: "unknown label keeps raw", raw: "kupon", expected: PaymentOther, rawText: "kupon"},
		{name: "absent", raw: nil, expected: PaymentOther, rawText: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(OrderRecord{PaymentType: tc.raw})
			if got.Payment != tc.expected {
				t.Fatalf("expected payment %s, got %s", tc.expected, got.Payment)
			}
			if got.PaymentRaw != tc.rawText {
				t.Fatalf("expected raw %q, got %q", tc.rawText, got.PaymentRaw)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	rec := OrderRecord{
		ChannelCode:        intPtr(2),
		CancellationStatus: strPtr("İPTAL"),
		PaymentType:        "Nakit",
	}
	first := Classify(rec)
	second := Classify(rec)
	if first != second {
		t.Fatalf("classification is not stable: %+v vs %+v", first, second)
	}
}
