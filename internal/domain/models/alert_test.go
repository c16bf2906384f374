package models

import "testing"

func TestAlertMatches(t *testing.T) {
	tests := []struct {
		name  string
		alert Alert
		sub   Subscriber
		want  bool
	}{
		{
			name:  "no filters reaches everyone",
			alert: Alert{},
			sub:   Subscriber{Province: "ON", Carrier: "rogers"},
			want:  true,
		},
		{
			name:  "province hit",
			alert: Alert{Provinces: []string{"ON", "BC"}},
			sub:   Subscriber{Province: "BC"},
			want:  true,
		},
		{
			name:  "province miss",
			alert: Alert{Provinces: []string{"ON", "BC"}},
			sub:   Subscriber{Province: "QC"},
			want:  false,
		},
		{
			name:  "unset subscriber field passes the filter",
			alert: Alert{Provinces: []string{"ON"}},
			sub:   Subscriber{Carrier: "bell"},
			want:  true,
		},
		{
			name:  "filters are conjunctive",
			alert: Alert{Provinces: []string{"ON"}, Carriers: []string{"rogers"}},
			sub:   Subscriber{Province: "ON", Carrier: "bell"},
			want:  false,
		},
		{
			name: "all dimensions hit",
			alert: Alert{
				Provinces: []string{"ON"},
				Carriers:  []string{"rogers"},
				Banks:     []string{"td"},
				AgeRanges: []string{"65+"},
			},
			sub:  Subscriber{Province: "ON", Carrier: "rogers", Bank: "td", AgeRange: "65+"},
			want: true,
		},
		{
			name:  "bank miss blocks despite province hit",
			alert: Alert{Provinces: []string{"ON"}, Banks: []string{"td"}},
			sub:   Subscriber{Province: "ON", Bank: "rbc"},
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.alert.Matches(&tt.sub); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseAlertSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want AlertSeverity
	}{
		{"critical", AlertCritical},
		{"warning", AlertWarning},
		{"info", AlertInfo},
		{"nonsense", AlertInfo},
		{"", AlertInfo},
	}
	for _, tt := range tests {
		if got := ParseAlertSeverity(tt.in); got != tt.want {
			t.Errorf("ParseAlertSeverity(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
