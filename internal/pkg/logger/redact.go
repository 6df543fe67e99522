package logger

import "strings"

// RedactEmail masks an email address for safe logging.
// "john.doe@example.com" → "jo***@example.com"
// Short local parts (≤2 chars) are fully masked: "ab@example.com" → "***@example.com"
// The domain stays readable because filter decisions are made on it.
func RedactEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return "***@***"
	}
	name, host := email[:at], email[at+1:]
	if len(name) > 2 {
		return name[:2] + "***@" + host
	}
	return "***@" + host
}

// RedactRecipients masks every address of a comma-joined recipient value.
func RedactRecipients(value string) string {
	if value == "" {
		return ""
	}
	parts := strings.Split(value, ",")
	for i, p := range parts {
		parts[i] = RedactEmail(strings.TrimSpace(p))
	}
	return strings.Join(parts, ",")
}
