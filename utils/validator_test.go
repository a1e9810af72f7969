package utils

import "testing"

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.ac.id"}
	invalid := []string{"", "plain", "a@b", "a@.co", "a b@c.co"}

	for _, e := range valid {
		if !ValidateEmail(e) {
			t.Errorf("ValidateEmail(%q) = false", e)
		}
	}
	for _, e := range invalid {
		if ValidateEmail(e) {
			t.Errorf("ValidateEmail(%q) = true", e)
		}
	}
}

func TestValidateURL(t *testing.T) {
	valid := []string{"", "https://example.com/x", "http://sub.example.co.id"}
	invalid := []string{"ftp://example.com", "example.com", "https://"}

	for _, u := range valid {
		if !ValidateURL(u) {
			t.Errorf("ValidateURL(%q) = false", u)
		}
	}
	for _, u := range invalid {
		if ValidateURL(u) {
			t.Errorf("ValidateURL(%q) = true", u)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":              "hello-world",
		"  ORBIT Jatim!  2024  ":   "orbit-jatim-2024",
		"already-slugged":          "already-slugged",
		"---":                      "",
		"Inovasi Tepat Guna (TTG)": "inovasi-tepat-guna-ttg",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := SanitizeInput("  hi\x00there  "); got != "hithere" {
		t.Errorf("SanitizeInput = %q", got)
	}
}
