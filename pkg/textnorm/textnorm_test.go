package textnorm

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "lowercases",
			text: "Great Sunscreen",
			want: "great sunscreen",
		},
		{
			name: "strips punctuation",
			text: "Great sunscreen, no irritation!",
			want: "great sunscreen no irritation",
		},
		{
			name: "collapses whitespace",
			text: "too   many    spaces",
			want: "too many spaces",
		},
		{
			name: "empty input",
			text: "",
			want: "",
		},
		{
			name: "only punctuation",
			text: "!!! ...",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.text); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "drops stopwords",
			text: "This is the best sunscreen for my skin",
			want: "best sunscreen skin",
		},
		{
			name: "keeps domain words",
			text: "Great sunscreen, no irritation, love the scent",
			want: "great sunscreen irritation love scent",
		},
		{
			name: "all stopwords",
			text: "it is what it is",
			want: "",
		},
		{
			name: "empty input",
			text: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.text); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
