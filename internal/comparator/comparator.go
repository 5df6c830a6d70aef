// Package comparator classifies the differences between a source and a target
// JSON document, path by path, and scores how closely they match.
package comparator

import (
	"fmt"
	"math"
	"strings"

	"github.com/mcncl/jsoncompare/internal/models"
)

// PathSeparator joins member keys into a path
const PathSeparator = "."

// Messages recorded in Difference.Details
const (
	missingInTargetDetails = "Key exists in source but missing in target"
	missingInSourceDetails = "Key exists in target but missing in source"
)

// Comparator compares decoded JSON documents under a fixed set of options.
// It holds no state besides the options and is safe for concurrent use.
type Comparator struct {
	options models.Options
}

// NewComparator creates a Comparator for the given options
func NewComparator(options models.Options) *Comparator {
	return &Comparator{options: options}
}

// Options returns the options the comparator was built with
func (c *Comparator) Options() models.Options {
	return c.options
}

// Compare is shorthand for NewComparator(options).Compare(source, target)
func Compare(source, target models.Value, options models.Options) models.ComparisonResult {
	return NewComparator(options).Compare(source, target)
}

// Compare reports every difference between source and target. Type and value
// checks run only for paths enumerated from the source; paths found only in the
// target are reported as missing when keys are compared.
func (c *Comparator) Compare(source, target models.Value) models.ComparisonResult {
	sourcePaths := EnumeratePaths(source)
	targetPaths := EnumeratePaths(target)

	differences := make([]models.Difference, 0)
	matchedPaths := make([]string, 0, len(sourcePaths))

	for _, path := range sourcePaths {
		sourceLookup := lookupResult(source, path)
		targetLookup := lookupResult(target, path)

		found := c.classify(path, sourceLookup, targetLookup)
		if len(found) == 0 {
			matchedPaths = append(matchedPaths, path)
			continue
		}
		differences = append(differences, found...)
	}

	if c.options.CompareKeys {
		for _, path := range targetPaths {
			if _, ok := Lookup(source, path); ok {
				continue
			}
			differences = append(differences, models.Difference{
				Path:    path,
				Kind:    models.DifferenceMissing,
				Details: missingInSourceDetails,
				Source:  models.Absent(),
				Target:  lookupResult(target, path),
			})
		}
	}

	return models.ComparisonResult{
		Differences:     differences,
		MatchPercentage: MatchPercentage(uniquePathCount(sourcePaths, targetPaths), len(differences)),
		TotalKeysSource: len(sourcePaths),
		TotalKeysTarget: len(targetPaths),
		MatchedPaths:    matchedPaths,
	}
}

// classify runs the enabled checks for one source path. A path missing from
// the target short-circuits the type and value checks only when keys are
// compared; otherwise the absent side is compared as "undefined".
func (c *Comparator) classify(path string, source, target models.Lookup) []models.Difference {
	if !target.Found && c.options.CompareKeys {
		return []models.Difference{{
			Path:    path,
			Kind:    models.DifferenceMissing,
			Details: missingInTargetDetails,
			Source:  source,
			Target:  models.Absent(),
		}}
	}

	var found []models.Difference
	if c.options.CompareTypes && source.TypeTag() != target.TypeTag() {
		found = append(found, models.Difference{
			Path:    path,
			Kind:    models.DifferenceType,
			Details: fmt.Sprintf("Type mismatch: source is %s, target is %s", source.TypeTag(), target.TypeTag()),
			Source:  source,
			Target:  target,
		})
	}
	if c.options.CompareValues {
		sourceText, targetText := source.Canonical(), target.Canonical()
		if sourceText != targetText {
			found = append(found, models.Difference{
				Path:    path,
				Kind:    models.DifferenceValue,
				Details: fmt.Sprintf("Value mismatch: source is %s, target is %s", sourceText, targetText),
				Source:  source,
				Target:  target,
			})
		}
	}
	return found
}

// EnumeratePaths lists the path of every container member reachable from v,
// parents before their children. Array indices are path segments like object
// keys. Scalars and null have no members and yield an empty list.
func EnumeratePaths(v models.Value) []string {
	paths := make([]string, 0)
	var walk func(node models.Value, prefix string)
	walk = func(node models.Value, prefix string) {
		for _, key := range node.Keys() {
			path := JoinPath(prefix, key)
			paths = append(paths, path)
			if child, ok := node.Member(key); ok && child.IsContainer() {
				walk(child, path)
			}
		}
	}
	walk(v, "")
	return paths
}

// JoinPath appends key to a parent path; the root has the empty path
func JoinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + PathSeparator + key
}

// Lookup resolves a dot-separated path from v. The second result is false
// when some segment does not exist; a member holding JSON null is found.
func Lookup(v models.Value, path string) (models.Value, bool) {
	current := v
	for _, key := range strings.Split(path, PathSeparator) {
		next, ok := current.Member(key)
		if !ok {
			return models.Value{}, false
		}
		current = next
	}
	return current, true
}

func lookupResult(v models.Value, path string) models.Lookup {
	if found, ok := Lookup(v, path); ok {
		return models.Found(found)
	}
	return models.Absent()
}

// uniquePathCount is the size of the union of both path lists
func uniquePathCount(sourcePaths, targetPaths []string) int {
	seen := make(map[string]struct{}, len(sourcePaths)+len(targetPaths))
	for _, p := range sourcePaths {
		seen[p] = struct{}{}
	}
	for _, p := range targetPaths {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// MatchPercentage scores a comparison over totalPaths unique paths. An empty
// union is a perfect match. Halves round up and the score is clamped to
// [0, 100], since a path can produce both a type and a value difference.
func MatchPercentage(totalPaths, differences int) int {
	if totalPaths == 0 {
		return 100
	}
	score := math.Floor(100*float64(totalPaths-differences)/float64(totalPaths) + 0.5)
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return int(score)
	}
}
