package eeprom

// State represents the driver lifecycle state.
type State uint8

const (
	// StateUninitialized is the state before Init. All data operations
	// fail with ErrNotReady and produce no bus activity.
	StateUninitialized State = 0

	// StateActiveNoProtect is the operational state of a device
	// constructed without a write-protect pin. SetWriteProtect and
	// ClearWriteProtect are silent no-ops.
	StateActiveNoProtect State = 1

	// StateActiveWithProtect is the operational state of a device whose
	// write-protect pin is under driver control.
	StateActiveWithProtect State = 2
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateActiveNoProtect:
		return "ACTIVE_NO_PROTECT"
	case StateActiveWithProtect:
		return "ACTIVE_WITH_PROTECT"
	default:
		return "UNKNOWN"
	}
}
