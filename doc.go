// Package fuzzreport defines the standard final report format of a fuzzing
// campaign and the inventory of the hosts it ran on.
//
// # Overview
//
// A fuzzing engine finishes a campaign by emitting a single JSON document:
// the report. It carries a timestamp and the hosts the campaign used. Each
// host lists its CPU groups, its memory segments and an OS description.
// Everything except the report timestamp and the host name is optional, and
// absent values are written as null.
//
// The module consists of:
//   - models: the report data model (Report, Host, Cpu, Memory, Fuzzer,
//     Log, Entry) and the field documentation used in schemas
//   - internal/schema: JSON Schema (draft-07) derivation from the models
//     and rendering as JSON, YAML or Markdown
//   - internal/validation: validation of report documents against the
//     derived schema and the models' struct rules
//   - internal/inventory: a collector that describes the local machine
//   - cmd/fuzzreport: the command line front end
//
// # Architecture
//
//	┌─────────────────┐      ┌─────────────────┐
//	│   fuzzreport    │      │    Inventory    │
//	│   (Cobra CLI)   │◄─────┤  (ghw, uname)   │
//	└────────┬────────┘      └─────────────────┘
//	         │
//	┌────────▼────────┐      ┌─────────────────┐
//	│     Schema      │◄─────┤   Validation    │
//	│ (go-openapi)    │      │ (validate, v10) │
//	└────────┬────────┘      └─────────────────┘
//	         │
//	┌────────▼────────┐
//	│     Models      │
//	└─────────────────┘
//
// # Usage
//
// Print the report schema:
//
//	fuzzreport schema
//	fuzzreport schema host --format yaml
//	fuzzreport schema --format markdown -o REPORT.md
//
// Validate a report emitted by a fuzzer:
//
//	fuzzreport validate report.json
//
// Describe the local machine:
//
//	fuzzreport collect --hostname fuzz-07
//
// # Configuration
//
// Configuration can be provided via:
//   - YAML file (./config.yaml, $XDG_CONFIG_HOME/fuzzreport/config.yaml)
//   - Environment variables (FUZZREPORT_ prefix)
//   - .env file
//
// Example configuration:
//
//	logging:
//	  level: info
//	  format: console
//	schema:
//	  format: yaml
//	collect:
//	  hostname: fuzz-07
//
// # Report Document
//
//	{
//	  "timestamp": "2024-01-01T00:00:00Z",
//	  "hosts": [
//	    {
//	      "hostname": "fuzz-07",
//	      "cpus": [
//	        {
//	          "architecture": "x86_64",
//	          "model": "AMD EPYC 7763 64-Core Processor",
//	          "cores": 64,
//	          "threads": 128,
//	          "frequency": null
//	        }
//	      ],
//	      "memory": [{"total": 270582939648, "unit": "B"}],
//	      "os": "Linux fuzz-07 6.1.0 #1 SMP x86_64"
//	    }
//	  ]
//	}
//
// # Development
//
// Run tests:
//
//	go test ./...
//
// Build the binary:
//
//	go build -o fuzzreport ./cmd/fuzzreport
package fuzzreport
