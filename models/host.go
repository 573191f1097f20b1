package models

// Host represents one machine capable of running fuzzing campaigns.
//
// Only Hostname is mandatory. Every other field models information a
// reporting engine may not have, so a Host with no CPUs, no memory and no
// OS string is legal.
//
// Example JSON representation:
//
//	{
//	  "hostname": "build-01",
//	  "cpus": [
//	    {"architecture": "x86_64", "model": null, "cores": 8, "threads": null, "frequency": null}
//	  ],
//	  "memory": null,
//	  "os": null
//	}
type Host struct {
	// Hostname identifies the host (required)
	Hostname string `json:"hostname" validate:"required"`

	// Cpus lists the CPUs present on this host
	Cpus []Cpu `json:"cpus" validate:"omitempty,dive"`

	// Memory lists the memory segments present on this host
	Memory []Memory `json:"memory" validate:"omitempty,dive"`

	// OS is a free-text OS descriptor, typically `uname -a` output
	OS *string `json:"os"`
}

// SchemaDescription implements Described.
func (Host) SchemaDescription() Description {
	return Description{
		Summary: "A machine capable of running fuzzing campaigns",
		Fields: map[string]string{
			"hostname": "The hostname of this host",
			"cpus":     "Optional list of CPUs on this host",
			"memory":   "Optional list of memory on this host",
			"os":       "Optional OS string (e.g. from `uname -a`)",
		},
	}
}

// Cpu describes one CPU or a homogeneous group of CPUs on a host.
// Numeric values are informational and are not checked against hardware.
type Cpu struct {
	// Architecture is the CPU architecture (e.g. x86_64, aarch64)
	Architecture *string `json:"architecture"`

	// Model is the human-readable model name
	Model *string `json:"model"`

	// Cores is the number of cores of this CPU type
	Cores *uint32 `json:"cores"`

	// Threads is the number of threads; one per core when absent
	Threads *uint32 `json:"threads"`

	// Frequency is the clock speed in MHz
	Frequency *uint32 `json:"frequency"`
}

// SchemaDescription implements Described.
func (Cpu) SchemaDescription() Description {
	return Description{
		Summary: "Optional information about a CPU or group of CPUs on a host",
		Fields: map[string]string{
			"architecture": "The CPU architecture",
			"model":        "The CPU model name (e.g. Intel(R) Core(TM) i7-7700HQ CPU)",
			"cores":        "The number of cores present of this CPU type",
			"threads": "The number of threads present of this CPU type If this is not present, it is " +
				"assumed that each core has one thread",
			"frequency": "The clock speed of this CPU in MHz",
		},
	}
}

// Memory describes one memory segment on a host.
type Memory struct {
	// Total is the amount of memory, expressed in Unit
	Total *uint64 `json:"total"`

	// Unit is the unit label for Total; bytes when absent
	Unit *string `json:"unit"`
}

// SchemaDescription implements Described.
func (Memory) SchemaDescription() Description {
	return Description{
		Summary: "Optional information about memory on a host",
		Fields: map[string]string{
			"total": "The total amount of memory in the specified unit (assume bytes if not specified)",
			"unit":  "The unit of memory (e.g. 'B', 'KB', 'MB', 'GB', 'TB', 'PB')",
		},
	}
}
