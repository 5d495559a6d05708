package logger

import "strings"

// RedactToken masks a credential for safe logging. An optional "Bearer "
// prefix is dropped and at most the first two characters survive.
// "Bearer ADMIN123" → "AD***"
func RedactToken(token string) string {
	token = strings.TrimSpace(token)
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	if len(token) > 4 {
		return token[:2] + "***"
	}
	return "***"
}

// RedactPhone keeps only the last two digits of a phone number.
// "555-0100" → "***00"
func RedactPhone(phone string) string {
	digits := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		if phone[i] >= '0' && phone[i] <= '9' {
			digits = append(digits, phone[i])
		}
	}
	if len(digits) <= 4 {
		return "***"
	}
	return "***" + string(digits[len(digits)-2:])
}
