package utils

import (
	"log"
	"strings"
)

// LogEvent prints one key=value line tagged with module/action/request_id.
// Messages should stay short and free of sensitive payload.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
