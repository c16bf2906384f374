package textproc

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "URGENT Notice From The CRA", "urgent notice from the cra"},
		{"strips punctuation", "Pay now!!! Or else...", "pay now or else"},
		{"collapses whitespace", "pay   the \t fee\n now", "pay the fee now"},
		{"url becomes token", "Deposit now: http://interac-refund-ca.top/claim today", "deposit now urltoken today"},
		{"https url becomes token", "visit https://canadapost-track.info/redelivery.", "visit urltoken"},
		{"www url becomes token", "go to www.scam-site.com right away", "go to urltoken right away"},
		{"digits survive", "call 1-888-555-0147 now", "call 1 888 555 0147 now"},
		{"empty", "", ""},
		{"punctuation only", "?!., ;:", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"URGENT notice from the CRA. Call 1-888-555-0147 now.",
		"Deposit now: http://interac-refund-ca.top/claim",
		"Your package could NOT be delivered!!!",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("pay the fee now")
	want := []string{"pay", "the", "fee", "now"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize returned %d tokens, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if Tokenize("") != nil {
		t.Error("Tokenize(\"\") should be nil")
	}
}
