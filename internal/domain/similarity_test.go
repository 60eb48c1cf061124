package domain

import "testing"

func TestSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical raw", a: "Acme", b: "Acme", want: 1},
		{name: "identical after normalization", a: "Google LLC", b: "GOOGLE, Inc", want: 1},
		{name: "one substitution", a: "Acme", b: "Acne", want: 0.75},
		{name: "typo", a: "Stripe", b: "Strype", want: 5.0 / 6.0},
		{name: "nothing in common", a: "abc", b: "xyz", want: 0},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "both normalize to empty", a: "LLC", b: "Inc.", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"Acme", "Acne"},
		{"Google LLC", "googel"},
		{"Stripe", "Block Inc"},
		{"", "Acme"},
		{"Data, Inc.", "Databricks"},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %v but Similarity(%q, %q) = %v", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestSimilarity_Range(t *testing.T) {
	t.Parallel()

	pairs := [][2]string{
		{"a", "completely different name"},
		{"Acme Incorporated", "Acme Corp"},
		{"x", ""},
		{"Johnson & Johnson", "J&J"},
	}
	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v, out of [0,1]", p[0], p[1], got)
		}
	}
}
