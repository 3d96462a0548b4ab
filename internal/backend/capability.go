package backend

// Capability reports the state of an optional compute backend. Keeping the
// three states apart distinguishes "runtime support missing" from "runtime
// present but the backend is off", which a plain boolean would conflate.
type Capability int

const (
	// CapabilityAbsent means the runtime or probe tool is not present at all.
	CapabilityAbsent Capability = iota
	// CapabilityDisabled means the runtime is present but reports the
	// backend as unavailable.
	CapabilityDisabled
	// CapabilityEnabled means the backend is present and usable.
	CapabilityEnabled
)

func (c Capability) String() string {
	switch c {
	case CapabilityEnabled:
		return "enabled"
	case CapabilityDisabled:
		return "disabled"
	default:
		return "absent"
	}
}

// Available collapses the capability to the boolean contract: only a backend
// that is present and enabled counts.
func (c Capability) Available() bool {
	return c == CapabilityEnabled
}

// MarshalJSON emits the capability as its string form.
func (c Capability) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON accepts the string form; unknown values read as absent.
func (c *Capability) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"enabled"`:
		*c = CapabilityEnabled
	case `"disabled"`:
		*c = CapabilityDisabled
	default:
		*c = CapabilityAbsent
	}
	return nil
}
