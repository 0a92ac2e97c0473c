package output

// StepOutput is the machine-readable result of one build step.
type StepOutput struct {
	StepID          string   `json:"step_id" yaml:"step_id"`
	FilesScanned    int      `json:"files_scanned" yaml:"files_scanned"`
	Views           int      `json:"views" yaml:"views"`
	Models          int      `json:"models" yaml:"models"`
	ConfigPath      string   `json:"config_path" yaml:"config_path"`
	ConfigWritten   bool     `json:"config_written" yaml:"config_written"`
	PackagesPath    string   `json:"packages_path" yaml:"packages_path"`
	PackagesWritten bool     `json:"packages_written" yaml:"packages_written"`
	Collisions      []string `json:"collisions,omitempty" yaml:"collisions,omitempty"`
	DurationMS      int64    `json:"duration_ms" yaml:"duration_ms"`
}

// BuildOutput is the machine-readable result of a bundle.
type BuildOutput struct {
	Step     *StepOutput `json:"step,omitempty" yaml:"step,omitempty"`
	Outfile  string      `json:"outfile" yaml:"outfile"`
	Warnings []string    `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Scaffold string      `json:"scaffold,omitempty" yaml:"scaffold,omitempty"`
}

// ListEntry is one registry entry.
type ListEntry struct {
	Role   string `json:"role" yaml:"role"`
	Key    string `json:"key" yaml:"key"`
	Name   string `json:"name" yaml:"name"`
	Alias  string `json:"alias" yaml:"alias"`
	Module string `json:"module" yaml:"module"`
	Path   string `json:"path" yaml:"path"`
}

// ListOutput is the machine-readable registry listing.
type ListOutput struct {
	Entries    []ListEntry `json:"entries" yaml:"entries"`
	Summary    ListSummary `json:"summary" yaml:"summary"`
	Collisions []string    `json:"collisions,omitempty" yaml:"collisions,omitempty"`
}

// ListSummary counts entries by role.
type ListSummary struct {
	Total  int `json:"total" yaml:"total"`
	Views  int `json:"views" yaml:"views"`
	Models int `json:"models" yaml:"models"`
}
