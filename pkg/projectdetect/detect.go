// Package projectdetect infers a repository's primary build system and
// source language from a flat list of file paths. Build-descriptor
// filenames are checked first; when none match, detection falls back to
// counting source-file extensions.
package projectdetect

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// BuildSystem identifies a project's build tool.
type BuildSystem string

const (
	BuildGradle  BuildSystem = "gradle"
	BuildMaven   BuildSystem = "maven"
	BuildBazel   BuildSystem = "bazel"
	BuildSwiftPM BuildSystem = "swiftpm"
	BuildCargo   BuildSystem = "cargo"
	BuildNPM     BuildSystem = "npm"
	BuildUnknown BuildSystem = "unknown"
)

// Project is the inference result.
type Project struct {
	BuildSystem BuildSystem
	Language    string
}

// buildDescriptors maps characteristic build files to their system, in
// detection priority order. Gradle outranks npm because KMP projects
// routinely carry a package.json for their JS target.
var buildDescriptors = []struct {
	name   string
	system BuildSystem
}{
	{"build.gradle.kts", BuildGradle},
	{"build.gradle", BuildGradle},
	{"settings.gradle.kts", BuildGradle},
	{"settings.gradle", BuildGradle},
	{"pom.xml", BuildMaven},
	{"BUILD.bazel", BuildBazel},
	{"WORKSPACE", BuildBazel},
	{"Package.swift", BuildSwiftPM},
	{"Cargo.toml", BuildCargo},
	{"package.json", BuildNPM},
}

// languagePriority breaks exact ties in the extension-count fallback.
// Detection takes the first language in this order among the tied
// maxima. Kept as a variable (not inlined) so the tie-break order is
// a single visible decision point.
var languagePriority = []string{
	"Kotlin",
	"Java",
	"Swift",
	"JavaScript",
	"TypeScript",
	"Objective-C",
	"Go",
	"Python",
}

// Detect infers the build system and primary language for the given
// file paths. Either field may come back "unknown" on an empty or
// unrecognizable path list.
func Detect(paths []string) Project {
	return Project{
		BuildSystem: detectBuildSystem(paths),
		Language:    detectLanguage(paths),
	}
}

// detectBuildSystem looks for characteristic build-descriptor
// filenames in priority order.
func detectBuildSystem(paths []string) BuildSystem {
	names := make(map[string]bool, len(paths))
	for _, path := range paths {
		names[filepath.Base(path)] = true
	}

	for _, desc := range buildDescriptors {
		if names[desc.name] {
			return desc.system
		}
	}
	return BuildUnknown
}

// detectLanguage counts extension occurrences and picks the language
// with the most files, tie-broken by languagePriority, then
// alphabetically for languages outside the priority list.
func detectLanguage(paths []string) string {
	counts := make(map[string]int)
	for _, path := range paths {
		ext := filepath.Ext(path)
		if ext == "" {
			continue
		}
		lang := languageForExtension(ext)
		if lang == "" {
			continue
		}
		counts[lang]++
	}

	if len(counts) == 0 {
		return "unknown"
	}

	best := ""
	bestCount := 0
	for _, lang := range orderedCandidates(counts) {
		if counts[lang] > bestCount {
			best = lang
			bestCount = counts[lang]
		}
	}
	return best
}

// languageForExtension maps a file extension to a language name via
// go-enry, with Kotlin script files folded into Kotlin.
func languageForExtension(ext string) string {
	if strings.EqualFold(ext, ".kts") {
		return "Kotlin"
	}
	langs := enry.GetLanguagesByExtension("f"+ext, nil, nil)
	if len(langs) == 0 {
		return ""
	}
	return langs[0]
}

// orderedCandidates returns counted languages with priority languages
// first (in priority order), so the max scan resolves ties by priority.
func orderedCandidates(counts map[string]int) []string {
	seen := make(map[string]bool, len(counts))
	var out []string

	for _, lang := range languagePriority {
		if _, ok := counts[lang]; ok {
			out = append(out, lang)
			seen[lang] = true
		}
	}

	var rest []string
	for lang := range counts {
		if !seen[lang] {
			rest = append(rest, lang)
		}
	}
	// Deterministic order for languages outside the priority list.
	slices.Sort(rest)
	return append(out, rest...)
}
