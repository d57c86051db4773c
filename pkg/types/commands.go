package types

// InitResult is returned by the init command
type InitResult struct {
	// Path is the config file that was written
	Path string `json:"path" yaml:"path"`

	// Project is the detected .xcodeproj, empty if none or several were found
	Project string `json:"project,omitempty" yaml:"project,omitempty"`

	// Replaced is true when an existing config file was overwritten
	Replaced bool `json:"replaced" yaml:"replaced"`
}
