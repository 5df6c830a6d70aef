package models

import "encoding/json"

// Options selects which categories of difference are detected.
// Each flag is independent of the others.
type Options struct {
	CompareKeys   bool `json:"compareKeys"`
	CompareTypes  bool `json:"compareTypes"`
	CompareValues bool `json:"compareValues"`
}

// AllOptions enables every comparison factor
func AllOptions() Options {
	return Options{CompareKeys: true, CompareTypes: true, CompareValues: true}
}

// DifferenceKind classifies a discrepancy
type DifferenceKind string

const (
	DifferenceMissing DifferenceKind = "missing"
	DifferenceType    DifferenceKind = "type"
	DifferenceValue   DifferenceKind = "value"
)

// DifferenceKinds lists the kinds in report order
var DifferenceKinds = []DifferenceKind{DifferenceMissing, DifferenceType, DifferenceValue}

// Lookup is the outcome of resolving a path: either a found Value (which may
// be JSON null) or absent.
type Lookup struct {
	Value Value
	Found bool
}

// Found wraps a present value
func Found(v Value) Lookup {
	return Lookup{Value: v, Found: true}
}

// Absent is the lookup result for a member that does not exist
func Absent() Lookup {
	return Lookup{}
}

// TypeTag returns the value's type tag, or "undefined" when absent
func (l Lookup) TypeTag() string {
	if !l.Found {
		return "undefined"
	}
	return l.Value.Kind().String()
}

// Canonical returns the canonical encoding, or "undefined" when absent
func (l Lookup) Canonical() string {
	if !l.Found {
		return "undefined"
	}
	return l.Value.Canonical()
}

// ValuePtr returns nil when absent, for optional encoding
func (l Lookup) ValuePtr() *Value {
	if !l.Found {
		return nil
	}
	v := l.Value
	return &v
}

// Difference is one discrepancy detected at a path
type Difference struct {
	Path    string
	Kind    DifferenceKind
	Details string
	Source  Lookup
	Target  Lookup
}

// differenceDoc is the encoded shape of a Difference; absent sides are omitted
type differenceDoc struct {
	Path        string         `json:"path" yaml:"path"`
	Kind        DifferenceKind `json:"kind" yaml:"kind"`
	Details     string         `json:"details" yaml:"details"`
	SourceValue *Value         `json:"sourceValue,omitempty" yaml:"sourceValue,omitempty"`
	TargetValue *Value         `json:"targetValue,omitempty" yaml:"targetValue,omitempty"`
}

func (d Difference) doc() differenceDoc {
	return differenceDoc{
		Path:        d.Path,
		Kind:        d.Kind,
		Details:     d.Details,
		SourceValue: d.Source.ValuePtr(),
		TargetValue: d.Target.ValuePtr(),
	}
}

// MarshalJSON implements json.Marshaler
func (d Difference) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.doc())
}

// MarshalYAML implements yaml.Marshaler
func (d Difference) MarshalYAML() (interface{}, error) {
	return d.doc(), nil
}

// ComparisonResult is the aggregate output of a comparison
type ComparisonResult struct {
	// Differences holds source-pass differences in source path order,
	// followed by paths missing from the source.
	Differences     []Difference `json:"differences" yaml:"differences"`
	MatchPercentage int          `json:"matchPercentage" yaml:"matchPercentage"`
	TotalKeysSource int          `json:"totalKeysSource" yaml:"totalKeysSource"`
	TotalKeysTarget int          `json:"totalKeysTarget" yaml:"totalKeysTarget"`
	MatchedPaths    []string     `json:"matchedPaths" yaml:"matchedPaths"`
}

// HasDifferences reports whether anything was found
func (r ComparisonResult) HasDifferences() bool {
	return len(r.Differences) > 0
}

// ByKind returns the differences of one kind, in result order
func (r ComparisonResult) ByKind(kind DifferenceKind) []Difference {
	var out []Difference
	for _, d := range r.Differences {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// CountByKind counts differences per kind
func (r ComparisonResult) CountByKind() map[DifferenceKind]int {
	counts := make(map[DifferenceKind]int, len(DifferenceKinds))
	for _, d := range r.Differences {
		counts[d.Kind]++
	}
	return counts
}
