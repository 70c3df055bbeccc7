package diff

import (
	"fmt"
	"strings"
)

// ChangeType classifies a file-level change in a multi-file diff.
type ChangeType string

const (
	ChangeModified ChangeType = "modified"
	ChangeAdded    ChangeType = "added"
	ChangeDeleted  ChangeType = "deleted"
	ChangeRenamed  ChangeType = "renamed"
)

// FileChangeSpec describes one file's change for multi-file diff
// generation.
type FileChangeSpec struct {
	Type ChangeType

	// Path is the file path (the original path for renames).
	Path string

	// NewPath is the rename target; ignored for other change types.
	NewPath string

	// Original and Modified are the line sequences on each side.
	// Original is ignored for additions, Modified for deletions.
	Original []string
	Modified []string
}

// GenerateMultiFileDiff renders a unified diff covering several files.
// Pure additions and deletions use /dev/null markers; renames emit a
// `rename from`/`rename to` pair with an optional trailing content diff.
func GenerateMultiFileDiff(changes []FileChangeSpec) (string, error) {
	var builder strings.Builder

	for _, change := range changes {
		switch change.Type {
		case ChangeModified:
			builder.WriteString(GenerateDiff(change.Path, change.Path, change.Original, change.Modified))

		case ChangeAdded:
			if len(change.Modified) == 0 {
				continue
			}
			fmt.Fprintf(&builder, "--- %s\n", DevNull)
			fmt.Fprintf(&builder, "+++ b/%s\n", strings.TrimPrefix(change.Path, "/"))
			writeHunks(&builder, []Hunk{additionHunk(change.Modified)})

		case ChangeDeleted:
			if len(change.Original) == 0 {
				continue
			}
			fmt.Fprintf(&builder, "--- a/%s\n", strings.TrimPrefix(change.Path, "/"))
			fmt.Fprintf(&builder, "+++ %s\n", DevNull)
			writeHunks(&builder, []Hunk{deletionHunk(change.Original)})

		case ChangeRenamed:
			fmt.Fprintf(&builder, "rename from %s\n", change.Path)
			fmt.Fprintf(&builder, "rename to %s\n", change.NewPath)
			builder.WriteString(GenerateDiff(change.Path, change.NewPath, change.Original, change.Modified))

		default:
			return "", fmt.Errorf("unknown change type %q for %s", change.Type, change.Path)
		}
	}

	return builder.String(), nil
}

// additionHunk builds the single all-additions hunk for a new file.
func additionHunk(lines []string) Hunk {
	hunk := Hunk{
		OriginalStart: 0,
		OriginalCount: 0,
		ModifiedStart: 1,
		ModifiedCount: len(lines),
	}
	for _, line := range lines {
		hunk.Lines = append(hunk.Lines, Line{Kind: LineAdd, Content: line})
	}
	return hunk
}

// deletionHunk builds the single all-deletions hunk for a removed file.
func deletionHunk(lines []string) Hunk {
	hunk := Hunk{
		OriginalStart: 1,
		OriginalCount: len(lines),
		ModifiedStart: 0,
		ModifiedCount: 0,
	}
	for _, line := range lines {
		hunk.Lines = append(hunk.Lines, Line{Kind: LineRemove, Content: line})
	}
	return hunk
}
