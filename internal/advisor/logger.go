package advisor

import (
	"log"
	"time"
)

// LogRequest logs an upstream API request being made.
func LogRequest(provider, operation string) {
	log.Printf("[%s] %s", provider, operation)
}

// LogResponse logs an upstream API response received.
func LogResponse(provider string, statusCode int, duration time.Duration) {
	log.Printf("[%s] response status=%d duration=%dms",
		provider, statusCode, duration.Milliseconds())
}

// LogError logs an error from an upstream API operation.
func LogError(provider, operation string, err error) {
	log.Printf("[%s] %s error: %v", provider, operation, err)
}
