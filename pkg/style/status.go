package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// SourceState is how a repo is used by generated pods.
type SourceState string

const (
	SourceMounted   SourceState = "mounted"   // cloned and bind-mounted
	SourceUnmounted SourceState = "unmounted" // cloned but built from the remote
	SourceRemote    SourceState = "remote"    // not cloned
)

// StateOf classifies a repo from its clone and mount flags.
func StateOf(cloned, mounted bool) SourceState {
	switch {
	case mounted:
		return SourceMounted
	case cloned:
		return SourceUnmounted
	default:
		return SourceRemote
	}
}

// StateStyle returns the pterm style for a source state
func StateStyle(state SourceState) *pterm.Style {
	switch state {
	case SourceMounted:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case SourceUnmounted:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// RenderState renders state in its style.
func RenderState(state SourceState) string {
	return StateStyle(state).Sprint(string(state))
}

// Table renders rows under header as an aligned table.
func Table(header []string, rows [][]string) (string, error) {
	data := make(pterm.TableData, 0, len(rows)+1)
	data = append(data, header)
	data = append(data, rows...)
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// RenderError formats err for the error line printed before exiting.
func RenderError(err error) string {
	if err == nil {
		return ""
	}
	return ErrorStyle.Render(fmt.Sprintf("Error: %v", err))
}
