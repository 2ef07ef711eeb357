package types

// ProbeResult is the captured state of the host: which components were
// found and at which version. A component missing from Components was
// not found. Captured once per resolution pass and treated as
// read-only afterwards.
type ProbeResult struct {
	// OS is the probed operating system (darwin, linux, windows).
	// Used as the target platform when the caller does not override it.
	OS         string            `yaml:"os,omitempty"`
	Components map[string]string `yaml:"components"`
}
