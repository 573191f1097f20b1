package models

import "time"

// Report is the standard final report format a fuzzing engine can emit to
// summarize a run.
//
// Example JSON representation:
//
//	{
//	  "timestamp": "2024-01-01T00:00:00Z",
//	  "hosts": [{"hostname": "build-01", "cpus": null, "memory": null, "os": null}]
//	}
type Report struct {
	// Timestamp is the time this report was generated, in UTC (required)
	Timestamp time.Time `json:"timestamp" validate:"required"`

	// Hosts lists the hosts available for running fuzzing campaigns
	Hosts []Host `json:"hosts" validate:"omitempty,dive"`
}

// NewReport creates a report stamped at ts, normalized to UTC.
func NewReport(ts time.Time, hosts ...Host) *Report {
	r := &Report{Timestamp: ts.UTC()}
	if len(hosts) > 0 {
		r.Hosts = hosts
	}
	return r
}

// SchemaDescription implements Described.
func (Report) SchemaDescription() Description {
	return Description{
		Title:   "Standard fuzzer final report format",
		Summary: "This format can be implemented by fuzzing engines to provide a standard summary output format.",
		Fields: map[string]string{
			"timestamp": "The time this report was generated",
			"hosts":     "Hosts available for running fuzzing campaigns",
		},
	}
}
