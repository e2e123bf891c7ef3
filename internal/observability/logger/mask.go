package logger

import "strings"

// MaskAccessKey shortens an invoice access key for log output. Full NF-e
// access keys are 44 digits and identify the purchase document; logs only
// need the tail to correlate.
func MaskAccessKey(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return maskLast4(value)
}

func maskLast4(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
