package domain

type AttributeStatus string

const (
	StatusInSync  AttributeStatus = "IN_SYNC"
	StatusDrifted AttributeStatus = "DRIFTED"
	StatusError   AttributeStatus = "ERROR"
)

// AttributeResult is the outcome of comparing one attribute between orgs.
// Report is zero-valued when Status is StatusError.
type AttributeResult struct {
	Attribute   AttributeRef
	Status      AttributeStatus
	Report      ComparisonReport
	SourceCount int
	TargetCount int
	Warnings    []string
	Error       error
}
