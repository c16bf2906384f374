package textproc

import (
	"testing"

	"scamtrace/internal/domain/models"
)

func assertValues(t *testing.T, label string, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", label, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s[%d] = %q, want %q", label, i, got[i], want[i])
		}
	}
}

func TestExtractPhones(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"dashed", "call 647-555-1234 today", []string{"6475551234"}},
		{"country code", "call +1 (647) 555-1234 today", []string{"6475551234"}},
		{"bare eleven digits", "reach us at 16475551234", []string{"6475551234"}},
		{"dotted", "dial 1.888.555.0147 now", []string{"8885550147"}},
		{"two numbers", "call 647-555-1234 or 416-555-0199", []string{"6475551234", "4165550199"}},
		{"same number twice", "call 647-555-1234 or +1 647 555 1234", []string{"6475551234"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValues(t, "Phones", ExtractIndicators(tt.text).Phones, tt.want)
		})
	}
}

func TestExtractEmails(t *testing.T) {
	got := ExtractIndicators("email Billing@Secure-Refund-Desk.COM for your refund").Emails
	assertValues(t, "Emails", got, []string{"billing@secure-refund-desk.com"})
}

func TestExtractURLs(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"plain", "visit http://interac-refund-ca.top/claim today", []string{"http://interac-refund-ca.top/claim"}},
		{"trailing period", "visit https://canadapost-track.info/redelivery.", []string{"https://canadapost-track.info/redelivery"}},
		{"trailing paren", "see (https://canadapost-track.info/redelivery)", []string{"https://canadapost-track.info/redelivery"}},
		{"mixed case host", "go to HTTPS://Canadapost-Track.INFO/redelivery", []string{"https://canadapost-track.info/redelivery"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValues(t, "URLs", ExtractIndicators(tt.text).URLs, tt.want)
		})
	}
}

func TestExtractWallets(t *testing.T) {
	text := "send BTC to 1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2 or " +
		"bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq, ETH to " +
		"0x8F3CF7AD23CD3CADBD9735AFF958023239C6A063"
	got := ExtractIndicators(text).Wallets
	want := []string{
		"1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2",
		"bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq",
		"0x8f3cf7ad23cd3cadbd9735aff958023239c6a063",
	}
	assertValues(t, "Wallets", got, want)
}

func TestExtractEmpty(t *testing.T) {
	got := ExtractIndicators("")
	if !got.IsEmpty() {
		t.Errorf("empty text should extract nothing, got %+v", got)
	}
	got = ExtractIndicators("nothing of interest in here")
	if !got.IsEmpty() {
		t.Errorf("plain prose should extract nothing, got %+v", got)
	}
}

func TestExtractedAll(t *testing.T) {
	e := &Extracted{
		Phones:  []string{"6475551234"},
		Emails:  []string{"a@b.com"},
		URLs:    []string{"http://x.com"},
		Wallets: []string{"0xabc"},
	}
	all := e.All()
	if len(all) != 4 {
		t.Fatalf("All() returned %d values, want 4", len(all))
	}
	wantTypes := []models.IndicatorType{
		models.IndicatorTypePhone,
		models.IndicatorTypeEmail,
		models.IndicatorTypeURL,
		models.IndicatorTypeCryptoWallet,
	}
	for i, tv := range all {
		if tv.Type != wantTypes[i] {
			t.Errorf("All()[%d].Type = %v, want %v", i, tv.Type, wantTypes[i])
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct{ in, want string }{
		{"+1 (647) 555-1234", "6475551234"},
		{"16475551234", "6475551234"},
		{"647-555-1234", "6475551234"},
		{"1-888-555-0147", "8885550147"},
		{"44 20 7946 0958", "442079460958"}, // non-NANP keeps all digits
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
