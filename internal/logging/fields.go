package logging

// Common structured log field keys. Using constants keeps field names
// consistent across packages so log output stays greppable.
const (
	FieldError    = "error"
	FieldAnalyzer = "analyzer"
	FieldFile     = "file"
	FieldRepo     = "repo"
	FieldModule   = "module"
	FieldCount    = "count"
	FieldID       = "id"
	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
)
