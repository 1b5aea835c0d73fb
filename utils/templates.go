package utils

import "strings"

// RenderTemplate substitutes [Placeholder] tokens in an outreach message.
// Unknown tokens are left in place so a typo is visible in the sent text
// rather than silently dropped.
func RenderTemplate(message string, vars map[string]string) string {
	for key, value := range vars {
		message = strings.ReplaceAll(message, "["+key+"]", value)
	}
	return message
}
