package util

import "regexp"

var (
	reEmail = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	reToken = regexp.MustCompile(`(?i)\b(api[_-]?key|secret|token|password|passwd)(\s*[=:]\s*)"?([A-Za-z0-9_\-./+]{6,})"?`)
	reWiFi  = regexp.MustCompile(`(?i)\b(wifi_pass(?:word)?|ssid_pass)(\s*[=:]\s*)("[^"]*"|\S+)`)
)

// RedactPII masks e-mail addresses and credential assignments before text
// leaves the machine.
func RedactPII(s string) string {
	s = reEmail.ReplaceAllString(s, "[redacted-email]")
	s = reToken.ReplaceAllString(s, "$1$2[redacted]")
	s = reWiFi.ReplaceAllString(s, "$1$2[redacted]")
	return s
}
