package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"

	// Session acquisition and remote metadata reads
	CodeSessionError      Code = "SESSION_ERROR"
	CodePlatformAPIError  Code = "PLATFORM_API_ERROR"
	CodePlatformAuthError Code = "PLATFORM_AUTH_ERROR"
	CodeResourceNotFound  Code = "RESOURCE_NOT_FOUND"
	CodeRateLimited       Code = "RATE_LIMITED"
	CodeResponseParse     Code = "RESPONSE_PARSE_ERROR"

	// Offline snapshots
	CodeSnapshotReadError  Code = "SNAPSHOT_READ_ERROR"
	CodeSnapshotParseError Code = "SNAPSHOT_PARSE_ERROR"

	CodeSelectionError Code = "SELECTION_ERROR"
	CodeDriftDetected  Code = "DRIFT_DETECTED"
)

func (c Code) String() string {
	return string(c)
}

// IsTransport reports whether the code belongs to the fetch/transport family,
// i.e. failures that abort a single attribute rather than the whole run.
func (c Code) IsTransport() bool {
	switch c {
	case CodeSessionError, CodePlatformAPIError, CodePlatformAuthError,
		CodeResourceNotFound, CodeRateLimited, CodeResponseParse,
		CodeSnapshotReadError, CodeSnapshotParseError:
		return true
	}
	return false
}
