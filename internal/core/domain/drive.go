package domain

// DriveRecord is the flat health document the executable reports per drive.
// It is also the input shape of the recommendation capability.
type DriveRecord struct {
	DriveName       string  `json:"driveName"`
	Temperature     float64 `json:"temperature"`
	ReadErrorCount  int     `json:"readErrorCount"`
	WriteErrorCount int     `json:"writeErrorCount"`
	OverallHealth   float64 `json:"overallHealth"`
	SmartStatus     string  `json:"smartStatus"`
}

// Validate checks the fields the recommendation contract depends on.
func (d *DriveRecord) Validate() error {
	if d.DriveName == "" {
		return &ValidationError{Field: "driveName", Reason: "required"}
	}
	if d.ReadErrorCount < 0 {
		return &ValidationError{Field: "readErrorCount", Reason: "must not be negative"}
	}
	if d.WriteErrorCount < 0 {
		return &ValidationError{Field: "writeErrorCount", Reason: "must not be negative"}
	}
	if d.OverallHealth < 0 || d.OverallHealth > 100 {
		return &ValidationError{Field: "overallHealth", Reason: "must be between 0 and 100"}
	}
	return nil
}

// Recommendation is the response of the recommendation capability.
type Recommendation struct {
	Text string `json:"recommendation"`
}

// Recommendation outcomes of the rule contract.
const (
	RecommendReplace = "Replace Drive Soon"
	RecommendBackup  = "Backup Data Immediately"
	RecommendHealthy = "Drive is healthy"
)

// Thresholds of the rule contract. Health is evaluated before temperature.
const (
	LowHealthThreshold       = 80.0
	HighTemperatureThreshold = 50.0
)

// CloneRequest is the body of a clone operation.
type CloneRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	DryRun      bool   `json:"dry_run"`
}

// PartitionRequest is the body of a partition operation.
type PartitionRequest struct {
	DriveName  string  `json:"drive_name"`
	SizeGB     float64 `json:"size"`
	FileSystem string  `json:"file_system"`
	DryRun     bool    `json:"-"`
}
