package classify

import "testing"

func intPtr(v int) *int {
	return &v
}

func TestSentiment(t *testing.T) {
	tests := []struct {
		name   string
		rating *int
		want   string
	}{
		{name: "five stars", rating: intPtr(5), want: SentimentPositive},
		{name: "four stars", rating: intPtr(4), want: SentimentPositive},
		{name: "three stars", rating: intPtr(3), want: SentimentNeutral},
		{name: "two stars", rating: intPtr(2), want: SentimentNegative},
		{name: "one star", rating: intPtr(1), want: SentimentNegative},
		{name: "no rating", rating: nil, want: SentimentNoRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sentiment(tt.rating); got != tt.want {
				t.Errorf("Sentiment(%v) = %q, want %q", tt.rating, got, tt.want)
			}
		})
	}
}
