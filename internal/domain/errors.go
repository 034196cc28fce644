package domain

import "errors"

var (
	// ErrDatasetEmpty is returned when the corpus holds no records
	ErrDatasetEmpty = errors.New("dataset is empty")

	// ErrNoMatch is returned when no brand name clears the fuzzy match cutoff
	ErrNoMatch = errors.New("no similar medicine found")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when a client exceeds its request budget
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrDatasetUnavailable is returned when the dataset source cannot be read
	ErrDatasetUnavailable = errors.New("dataset unavailable")
)

// User-facing messages for no-match outcomes
const (
	MessageDatasetEmpty = "Dataset is empty."
	MessageNoMatch      = "No similar medicine found."
)

// NoMatchMessage maps a no-match error to the message shown to clients.
// The second return value is false for errors that are not no-match outcomes.
func NoMatchMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrDatasetEmpty):
		return MessageDatasetEmpty, true
	case errors.Is(err, ErrNoMatch):
		return MessageNoMatch, true
	default:
		return "", false
	}
}
