package types

// Operation selects how a pod is materialized.
type Operation int

const (
	// OperationOutput materializes pods for immediate local use, with
	// mounted sources pointing at their local clones.
	OperationOutput Operation = iota

	// OperationExport produces a portable snapshot with remote-only
	// source references.
	OperationExport
)

func (o Operation) String() string {
	switch o {
	case OperationOutput:
		return "output"
	case OperationExport:
		return "export"
	default:
		return "unknown"
	}
}
