package util

import "testing"

func TestRedactPII(t *testing.T) {
	cases := map[string]string{
		"contact dev@example.com now":        "contact [redacted-email] now",
		"api_key=abcdef123456":               "api_key=[redacted]",
		`const char* token = "abcdef123456"`: `const char* token = [redacted]`,
		"password: hunter22":                 "password: [redacted]",
		`wifi_password="my home net"`:        `wifi_password=[redacted]`,
		"no secrets here":                    "no secrets here",
	}
	for in, want := range cases {
		if got := RedactPII(in); got != want {
			t.Errorf("RedactPII(%q) = %q, want %q", in, got, want)
		}
	}
}
