package locale

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want Locale
	}{
		{"", English},
		{"en", English},
		{"en-US", English},
		{"ar", Arabic},
		{"AR-SA", Arabic},
		{"arabic", Arabic},
		{"fr", French},
		{"FR-ca", French},
		{"de", English},
		{"fr ", French},
		{"  fr", English},
		{" ar", English},
		{"zz-unknown", English},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, in := range []string{"", "AR-SA", "fr_FR", "xx", "en"} {
		once := Normalize(in)
		if twice := Normalize(string(once)); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
		switch once {
		case English, Arabic, French:
		default:
			t.Errorf("Normalize(%q) = %q, outside supported set", in, once)
		}
	}
}

func TestFromAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   Locale
	}{
		{"", English},
		{"fr-FR,fr;q=0.9,en;q=0.8", French},
		{"en;q=0.5, ar-MR;q=0.9", Arabic},
		{"de-DE", English},
		{";;;", English},
	}

	for _, tt := range tests {
		if got := FromAcceptLanguage(tt.header); got != tt.want {
			t.Errorf("FromAcceptLanguage(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestDir(t *testing.T) {
	if Arabic.Dir() != "rtl" {
		t.Fatalf("Arabic.Dir() = %q", Arabic.Dir())
	}
	if French.Dir() != "ltr" || English.Dir() != "ltr" {
		t.Fatal("latin locales must be ltr")
	}
}
