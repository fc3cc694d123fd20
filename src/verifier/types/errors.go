package types

import "fmt"

// ConfigurationError covers missing credentials and empty required input.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return "configuration: " + e.Reason
}

// ExtractionError means the claim oracle was unreachable or its response
// could not be parsed into a claim list at all.
type ExtractionError struct {
	Err error
}

func (e ExtractionError) Error() string {
	return fmt.Sprintf("claim extraction: %v", e.Err)
}

func (e ExtractionError) Unwrap() error { return e.Err }

// SearchError means the search oracle was totally unreachable. Empty
// evidence for individual claims is not an error.
type SearchError struct {
	Err error
}

func (e SearchError) Error() string {
	return fmt.Sprintf("evidence search: %v", e.Err)
}

func (e SearchError) Unwrap() error { return e.Err }

// VerificationError means the verification oracle returned a response that
// could not be parsed. Thin or contradictory evidence is a valid outcome.
type VerificationError struct {
	Err error
}

func (e VerificationError) Error() string {
	return fmt.Sprintf("claim verification: %v", e.Err)
}

func (e VerificationError) Unwrap() error { return e.Err }

// AggregationError signals an internal inconsistency, e.g. scoring an empty
// claim set.
type AggregationError struct {
	Reason string
}

func (e AggregationError) Error() string {
	return "score aggregation: " + e.Reason
}
