package utils

import (
	"log"
	"strings"
)

// LogEvent prints one log line tagged with module, action and request_id.
// Keep message short; never pass passenger contact data or passwords.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
