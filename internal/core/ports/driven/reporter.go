package driven

// Reporter receives diagnostic messages that must not interrupt the user.
// Malformed queries and pattern compile failures are sent here instead of
// being returned as errors.
type Reporter interface {
	// CaptureMessage records a message.
	CaptureMessage(msg string)
}
