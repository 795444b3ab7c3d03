package domain

type IssueType string

const (
	IssueLabelMismatch   IssueType = "Label Mismatch"
	IssueDefaultMismatch IssueType = "Default Value Mismatch"
)

// ValueRef is the key/label pair reported for matched, missing and extra values.
type ValueRef struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type Mismatch struct {
	Key           string    `json:"key"`
	Issue         IssueType `json:"issue"`
	LabelSource   string    `json:"label_source"`
	LabelTarget   string    `json:"label_target"`
	DefaultSource bool      `json:"default_source"`
	DefaultTarget bool      `json:"default_target"`
	Detail        string    `json:"detail"`
}

// ComparisonReport classifies the values of one attribute across source and
// target. Matches, Mismatches and MissingInTarget follow source order;
// ExtraInTarget follows target order.
type ComparisonReport struct {
	Matches         []ValueRef `json:"matches"`
	Mismatches      []Mismatch `json:"mismatches"`
	MissingInTarget []ValueRef `json:"missing_in_target"`
	ExtraInTarget   []ValueRef `json:"extra_in_target"`
}

func (r ComparisonReport) DiscrepancyCount() int {
	return len(r.Mismatches) + len(r.MissingInTarget) + len(r.ExtraInTarget)
}

func (r ComparisonReport) InSync() bool {
	return r.DiscrepancyCount() == 0
}
