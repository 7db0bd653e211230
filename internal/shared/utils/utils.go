// Утилитарные функции общего назначения
package utils

import "strings"

// NormalizeEmail приводит email к виду, в котором он хранится и ищется.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
