package arena

import "fmt"

// BotInitFailedError means a bot's BotBrain.Init returned an error; the bot
// is simply not admitted. Recoverable.
type BotInitFailedError struct {
	BotID string
	Err   error
}

func (e *BotInitFailedError) Error() string {
	return fmt.Sprintf("bot %s failed to initialize: %v", e.BotID, e.Err)
}

func (e *BotInitFailedError) Unwrap() error { return e.Err }

// BrainDecisionTimeoutError means a BotBrain.Decide call ran past
// Config.BrainDecisionTimeout. Recoverable: the caller reuses the bot's
// prior decision.
type BrainDecisionTimeoutError struct {
	BotID string
}

func (e *BrainDecisionTimeoutError) Error() string {
	return fmt.Sprintf("bot %s brain decision timed out", e.BotID)
}

// InvalidConfigurationError means a Config value is out of range. Fatal at
// startup only — never raised once a Field is running.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// InternalInvariantViolationError signals that a snake ended a tick with
// fewer than two segments, a non-canonical position, or some other broken
// invariant. It indicates a bug. Field drops the offending bot from the live
// set and reports the error through UpdateTracker.BotLogMessage; the tick is
// not aborted and carries on for every other bot.
type InternalInvariantViolationError struct {
	BotID   string
	Message string
}

func (e *InternalInvariantViolationError) Error() string {
	return fmt.Sprintf("internal invariant violated for bot %s: %s", e.BotID, e.Message)
}
