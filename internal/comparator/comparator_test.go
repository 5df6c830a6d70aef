package comparator

import (
	"fmt"
	"testing"

	"github.com/mcncl/jsoncompare/internal/models"
	"github.com/mcncl/jsoncompare/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) models.Value {
	t.Helper()
	v, err := parser.ParseString(text)
	require.NoError(t, err)
	return v
}

func TestEnumeratePaths(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"nested object and array", `{"a": {"b": 1}, "c": [1, 2]}`, []string{"a", "a.b", "c", "c.0", "c.1"}},
		{"empty object", `{}`, []string{}},
		{"scalar root", `42`, []string{}},
		{"null root", `null`, []string{}},
		{"array root", `[{"x": null}, []]`, []string{"0", "0.x", "1"}},
		{"null member is a leaf", `{"a": null, "b": {"c": {}}}`, []string{"a", "b", "b.c"}},
		{"document order", `{"z": 1, "a": 2}`, []string{"z", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EnumeratePaths(mustParse(t, tt.input)))
		})
	}
}

func TestLookup(t *testing.T) {
	doc := mustParse(t, `{"details": {"dimensions": {"height": 10}}, "tags": ["a", "b"], "gone": null}`)

	tests := []struct {
		name      string
		path      string
		found     bool
		canonical string
	}{
		{"nested member", "details.dimensions.height", true, "10"},
		{"container", "details.dimensions", true, `{"height":10}`},
		{"array element", "tags.1", true, `"b"`},
		{"explicit null is present", "gone", true, "null"},
		{"missing member", "details.color", false, ""},
		{"through a scalar", "details.dimensions.height.x", false, ""},
		{"through null", "gone.x", false, ""},
		{"array out of range", "tags.2", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := Lookup(doc, tt.path)
			require.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.canonical, v.Canonical())
			}
		})
	}
}

func TestCompare_EqualDocuments(t *testing.T) {
	inputs := []string{
		`{"name": "A", "price": 19.99, "tags": ["x", "y"], "meta": {"a": null, "b": [{"c": true}]}}`,
		`[1, [2, [3]]]`,
		`{}`,
		`"scalar"`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			source := mustParse(t, input)
			target := mustParse(t, input)

			result := Compare(source, target, models.AllOptions())
			assert.Empty(t, result.Differences)
			assert.Equal(t, 100, result.MatchPercentage)
			assert.Equal(t, EnumeratePaths(source), result.MatchedPaths)
		})
	}
}

func TestCompare_TypeAndValueMismatch(t *testing.T) {
	source := mustParse(t, `{"name":"A","price":19.99}`)
	target := mustParse(t, `{"name":"A","price":"19.99"}`)

	result := Compare(source, target, models.AllOptions())

	require.Len(t, result.Differences, 2)
	typeDiff, valueDiff := result.Differences[0], result.Differences[1]

	assert.Equal(t, "price", typeDiff.Path)
	assert.Equal(t, models.DifferenceType, typeDiff.Kind)
	assert.Equal(t, "Type mismatch: source is number, target is string", typeDiff.Details)

	assert.Equal(t, "price", valueDiff.Path)
	assert.Equal(t, models.DifferenceValue, valueDiff.Kind)
	assert.Equal(t, `Value mismatch: source is 19.99, target is "19.99"`, valueDiff.Details)
	assert.True(t, valueDiff.Source.Found)
	assert.Equal(t, "19.99", valueDiff.Target.Value.Str())

	assert.Equal(t, []string{"name"}, result.MatchedPaths)
	assert.Equal(t, 0, result.MatchPercentage)
	assert.Equal(t, 2, result.TotalKeysSource)
	assert.Equal(t, 2, result.TotalKeysTarget)
}

func TestCompare_EmptyObjects(t *testing.T) {
	result := Compare(mustParse(t, `{}`), mustParse(t, `{}`), models.AllOptions())

	assert.Empty(t, result.Differences)
	assert.Empty(t, result.MatchedPaths)
	assert.Equal(t, 100, result.MatchPercentage)
	assert.Zero(t, result.TotalKeysSource)
	assert.Zero(t, result.TotalKeysTarget)
}

func TestCompare_MissingInSource(t *testing.T) {
	source := mustParse(t, `{"a":1}`)
	target := mustParse(t, `{"a":1,"b":2}`)

	result := Compare(source, target, models.Options{CompareKeys: true})

	require.Len(t, result.Differences, 1)
	diff := result.Differences[0]
	assert.Equal(t, "b", diff.Path)
	assert.Equal(t, models.DifferenceMissing, diff.Kind)
	assert.Equal(t, "Key exists in target but missing in source", diff.Details)
	assert.False(t, diff.Source.Found)
	assert.Equal(t, "2", diff.Target.Value.Canonical())

	assert.Equal(t, []string{"a"}, result.MatchedPaths)
	assert.Equal(t, 50, result.MatchPercentage)
}

func TestCompare_MissingSymmetry(t *testing.T) {
	source := mustParse(t, `{"shared": 1, "onlySource": {"deep": true}}`)
	target := mustParse(t, `{"shared": 1, "onlyTarget": [0]}`)

	result := Compare(source, target, models.AllOptions())

	var paths []string
	for _, d := range result.Differences {
		assert.Equal(t, models.DifferenceMissing, d.Kind)
		paths = append(paths, fmt.Sprintf("%s|%s", d.Path, d.Details))
	}
	// Source pass first, then target-only paths
	assert.Equal(t, []string{
		"onlySource|Key exists in source but missing in target",
		"onlySource.deep|Key exists in source but missing in target",
		"onlyTarget|Key exists in target but missing in source",
		"onlyTarget.0|Key exists in target but missing in source",
	}, paths)
	assert.Equal(t, []string{"shared"}, result.MatchedPaths)
	assert.NotContains(t, result.MatchedPaths, "onlyTarget")
	// 5 unique paths, 4 differences
	assert.Equal(t, 20, result.MatchPercentage)
}

func TestCompare_KeysDisabled(t *testing.T) {
	source := mustParse(t, `{"a": 1, "b": "x"}`)
	target := mustParse(t, `{"a": 1, "c": true}`)

	t.Run("no checks at all", func(t *testing.T) {
		result := Compare(source, target, models.Options{})
		assert.Empty(t, result.Differences)
		assert.Equal(t, []string{"a", "b"}, result.MatchedPaths)
		assert.Equal(t, 100, result.MatchPercentage)
	})

	t.Run("absent side compares as undefined", func(t *testing.T) {
		result := Compare(source, target, models.Options{CompareTypes: true, CompareValues: true})

		require.Len(t, result.Differences, 2)
		assert.Equal(t, "Type mismatch: source is string, target is undefined", result.Differences[0].Details)
		assert.Equal(t, `Value mismatch: source is "x", target is undefined`, result.Differences[1].Details)
		assert.False(t, result.Differences[0].Target.Found)
		for _, d := range result.Differences {
			assert.NotEqual(t, models.DifferenceMissing, d.Kind)
			assert.Equal(t, "b", d.Path, "target-only paths are never type or value checked")
		}
		assert.Equal(t, []string{"a"}, result.MatchedPaths)
	})
}

func TestCompare_NullIsNotMissing(t *testing.T) {
	source := mustParse(t, `{"a": null, "b": 1}`)
	target := mustParse(t, `{"a": null, "b": null}`)

	result := Compare(source, target, models.AllOptions())

	require.Len(t, result.Differences, 2)
	assert.Equal(t, "Type mismatch: source is number, target is null", result.Differences[0].Details)
	assert.Equal(t, "Value mismatch: source is 1, target is null", result.Differences[1].Details)
	assert.Equal(t, []string{"a"}, result.MatchedPaths)
}

func TestCompare_ContainerPaths(t *testing.T) {
	source := mustParse(t, `{"features": ["wireless", "bluetooth"]}`)
	target := mustParse(t, `{"features": ["wireless", "bluetooth", "waterproof"]}`)

	result := Compare(source, target, models.AllOptions())

	// The parent differs by value and the extra element is missing in source
	require.Len(t, result.Differences, 2)
	assert.Equal(t, "features", result.Differences[0].Path)
	assert.Equal(t, models.DifferenceValue, result.Differences[0].Kind)
	assert.Equal(t, "features.2", result.Differences[1].Path)
	assert.Equal(t, models.DifferenceMissing, result.Differences[1].Kind)
	assert.Equal(t, []string{"features.0", "features.1"}, result.MatchedPaths)
}

func TestCompare_ArrayVersusObject(t *testing.T) {
	source := mustParse(t, `{"x": [1]}`)
	target := mustParse(t, `{"x": {"0": 1}}`)

	result := Compare(source, target, models.Options{CompareTypes: true})

	require.Len(t, result.Differences, 1)
	assert.Equal(t, "Type mismatch: source is array, target is object", result.Differences[0].Details)
	// x.0 resolves on both sides and holds the same number
	assert.Equal(t, []string{"x.0"}, result.MatchedPaths)
}

func TestCompare_KeyOrderDoesNotMatter(t *testing.T) {
	source := mustParse(t, `{"o": {"a": 1, "b": 2}}`)
	target := mustParse(t, `{"o": {"b": 2, "a": 1.0}}`)

	result := Compare(source, target, models.AllOptions())
	assert.Empty(t, result.Differences)
	assert.Equal(t, 100, result.MatchPercentage)
}

func TestCompare_ScalarRoots(t *testing.T) {
	result := Compare(mustParse(t, `1`), mustParse(t, `"one"`), models.AllOptions())

	assert.Empty(t, result.Differences)
	assert.Equal(t, 100, result.MatchPercentage)
}

func TestCompare_Idempotent(t *testing.T) {
	source := mustParse(t, `{"a": {"b": [1, {"c": "d"}]}, "e": 1}`)
	target := mustParse(t, `{"a": {"b": [2]}, "f": 1}`)
	c := NewComparator(models.AllOptions())

	first := c.Compare(source, target)
	second := c.Compare(source, target)
	assert.Equal(t, first, second)
	assert.Equal(t, models.AllOptions(), c.Options())
}

func TestCompare_DoesNotMutateInputs(t *testing.T) {
	source := mustParse(t, `{"a": [1, 2], "b": {"c": null}}`)
	target := mustParse(t, `{"a": [1], "b": {}}`)
	before := source.Canonical() + target.Canonical()

	Compare(source, target, models.AllOptions())
	assert.Equal(t, before, source.Canonical()+target.Canonical())
}

func TestMatchPercentage(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		differences int
		expected    int
	}{
		{"empty union", 0, 0, 100},
		{"no differences", 4, 0, 100},
		{"half", 2, 1, 50},
		{"rounds half up", 8, 1, 88},
		{"rounds down", 3, 1, 67},
		{"rounds to nearest", 3, 2, 33},
		{"all different", 2, 2, 0},
		{"more differences than paths clamps to zero", 1, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchPercentage(tt.total, tt.differences))
		})
	}
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "a", JoinPath("", "a"))
	assert.Equal(t, "a.b", JoinPath("a", "b"))
	assert.Equal(t, "a.0", JoinPath("a", "0"))
}

func BenchmarkCompare(b *testing.B) {
	members := make([]models.Member, 0, 200)
	for i := 0; i < 200; i++ {
		members = append(members, models.Member{
			Key: fmt.Sprintf("field_%d", i),
			Value: models.ObjectValue(
				models.Member{Key: "id", Value: models.NumberValue("1")},
				models.Member{Key: "tags", Value: models.ArrayValue(models.StringValue("a"), models.StringValue("b"))},
			),
		})
	}
	doc := models.ObjectValue(members...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Compare(doc, doc, models.AllOptions())
	}
}
