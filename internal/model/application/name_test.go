package application

import "testing"

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Netflix":         "netflix",
		"  Net Flix ":     "netflix",
		"Bank-of-America": "bankofamerica",
		"AT&T":            "att",
		"Café 24":         "café24",
		"":                "",
	}

	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, in := range []string{"Netflix", "Bank of America!", "ÉCOLE", "x_y-z 9"} {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
