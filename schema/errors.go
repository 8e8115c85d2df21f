package schema

import "fmt"

// InvalidInputError reports input that is not a recognized genotype-matrix
// container. It is fatal; there is no recovery path.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid genotype input: %s", e.Reason)
}

// InvalidCutoffError reports a completeness cutoff that is non-numeric or
// outside [0,1]. It is fatal; there is no recovery path.
type InvalidCutoffError struct {
	Value  string
	Reason string
}

func (e *InvalidCutoffError) Error() string {
	return fmt.Sprintf("invalid cutoff %q: %s", e.Value, e.Reason)
}
