package event

import "time"

// EventSchemaVersion is stamped on every published event
const EventSchemaVersion = "1.0"

// Retry defaults for the resilient publisher
const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 500 * time.Millisecond
)

// DeadLetterFilePermissions is the mode used when creating the dead-letter file
const DeadLetterFilePermissions = 0o644

// Log messages
const (
	LogMsgPublishFailed       = "Event publish failed, retrying in background"
	LogMsgRetrySucceeded      = "Event published after retry"
	LogMsgRetryFailed         = "Event retry failed"
	LogMsgDeadLettered        = "Event written to dead-letter file"
	LogMsgDeadLetterFailed    = "Failed to write event to dead-letter file"
	LogMsgShutdownTimeout     = "Resilient publisher shutdown timed out"
	LogMsgHandlerErrorFormat  = "encountered %d errors while handling event %s: %v"
	LogMsgRetryAbortedOnClose = "Event retry aborted by shutdown"
)

// CalculateRetryDelay doubles the base delay for every attempt after the first
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
