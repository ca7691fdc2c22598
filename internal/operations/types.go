package operations

// Step identifiers, in execution order.
const (
	StepIDDiscover  = "discover"
	StepIDClean     = "clean"
	StepIDExport    = "export"
	StepIDSummarize = "summarize"
)

// OperationStatus represents the overall status of an operation run.
type OperationStatus string

const (
	OperationStatusPending   OperationStatus = "pending"
	OperationStatusRunning   OperationStatus = "running"
	OperationStatusCompleted OperationStatus = "completed"
	OperationStatusFailed    OperationStatus = "failed"
	OperationStatusCancelled OperationStatus = "cancelled"
)
