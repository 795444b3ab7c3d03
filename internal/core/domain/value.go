package domain

// ValueRecord is one canonical enumerated value of a picklist attribute.
type ValueRecord struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	IsDefault bool   `json:"is_default"`
}

// RawPayload is the loosely structured field definition returned by a
// metadata fetcher. Its shape depends on how the field was defined.
type RawPayload map[string]any
