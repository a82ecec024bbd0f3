package model

import "testing"

func fptr(v float64) *float64 { return &v }

func TestFeedRecord_Price(t *testing.T) {
	tests := []struct {
		name   string
		record FeedRecord
		want   *float64
	}{
		{
			name:   "token price preferred",
			record: FeedRecord{TokenPrice: fptr(12.34), MarkPrice: fptr(56.78)},
			want:   fptr(12.34),
		},
		{
			name:   "mark price fallback",
			record: FeedRecord{MarkPrice: fptr(56.78)},
			want:   fptr(56.78),
		},
		{
			name:   "neither present",
			record: FeedRecord{},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.record.Price()
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Price() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("Price() = %v, want %v", *got, *tt.want)
			}
		})
	}
}

func TestFeedRecord_Valuation(t *testing.T) {
	r := FeedRecord{MarkValuation: fptr(2.5e9)}
	if got := r.Valuation(); got == nil || *got != 2.5e9 {
		t.Errorf("Valuation() = %v, want 2.5e9", got)
	}

	r.ImpliedValuation = fptr(3e9)
	if got := r.Valuation(); got == nil || *got != 3e9 {
		t.Errorf("Valuation() = %v, want 3e9 (implied preferred)", got)
	}
}
