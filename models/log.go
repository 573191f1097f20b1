package models

// Log is reserved for a future fuzzing log format. It has no fields yet.
type Log struct{}

// SchemaDescription implements Described.
func (Log) SchemaDescription() Description {
	return Description{Summary: "Reserved for a future fuzzing log format; currently empty"}
}

// Entry is reserved for a single record of a future Log. It has no fields yet.
type Entry struct{}

// SchemaDescription implements Described.
func (Entry) SchemaDescription() Description {
	return Description{Summary: "Reserved for a single fuzzing log entry; currently empty"}
}

// Reserved marks Log as a placeholder in derived schemas.
func (Log) Reserved() bool { return true }

// Reserved marks Entry as a placeholder in derived schemas.
func (Entry) Reserved() bool { return true }
