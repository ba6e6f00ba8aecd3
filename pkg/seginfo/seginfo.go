// Package seginfo provides utilities for naming, discovering, and parsing the
// generation-numbered segment files the log-structured engine appends
// commands to.
//
// Filename format: "<generation>.log"
//
// Where generation is a monotonically increasing 64-bit integer rendered in
// decimal with no leading zeros (spec §6: "<N>.log for each generation N
// (natural number, decimal, no leading zeros)"). Lexicographic sort is not
// meaningful for this format since generations aren't zero-padded; callers
// that need sorted order must sort by the parsed numeric value, not the
// filename string.
//
// Example filenames:
//
//	1.log
//	2.log
//	47.log
package seginfo

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Extension is the fixed suffix every segment file carries.
const Extension = ".log"

// GenerateName returns the filename for segment generation gen.
func GenerateName(gen uint64) string {
	return strconv.FormatUint(gen, 10) + Extension
}

// ParseGeneration extracts the generation number from a segment filename
// (not a full path). It returns false if filename does not match the
// "<N>.log" format.
func ParseGeneration(filename string) (uint64, bool) {
	if !strings.HasSuffix(filename, Extension) {
		return 0, false
	}
	numPart := strings.TrimSuffix(filename, Extension)
	if numPart == "" {
		return 0, false
	}
	// Reject non-canonical forms like "01.log" so that every generation has
	// exactly one valid filename.
	if len(numPart) > 1 && numPart[0] == '0' {
		return 0, false
	}
	gen, err := strconv.ParseUint(numPart, 10, 64)
	if err != nil {
		return 0, false
	}
	return gen, true
}

// ListGenerations scans segmentDirPath for files matching "<N>.log" and
// returns their generation numbers sorted ascending. Files that don't match
// the pattern are silently ignored, per spec §4.1's recovery algorithm:
// "retain files whose name is <u64>.log".
func ListGenerations(segmentDirPath string) ([]uint64, error) {
	entries, err := os.ReadDir(segmentDirPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read segment directory %s: %w", segmentDirPath, err)
	}

	gens := make([]uint64, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		gen, ok := ParseGeneration(entry.Name())
		if !ok {
			continue
		}
		gens = append(gens, gen)
	}

	slices.Sort(gens)
	return gens, nil
}

// SegmentPath joins a data directory, segment subdirectory, and generation
// into the full filesystem path of that generation's segment file.
func SegmentPath(dataDir, segmentDir string, gen uint64) string {
	return filepath.Join(dataDir, segmentDir, GenerateName(gen))
}
