package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsoncompare/internal/config"
	"github.com/mcncl/jsoncompare/internal/errors"
	"github.com/mcncl/jsoncompare/internal/models"
	"gopkg.in/yaml.v3"
)

// Escape codes for colorizing text reports
const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	gray   = "\033[37m"
)

// sectionTitles names the text report section for each difference kind
var sectionTitles = map[models.DifferenceKind]string{
	models.DifferenceMissing: "Missing Keys",
	models.DifferenceType:    "Type Mismatches",
	models.DifferenceValue:   "Value Mismatches",
}

var kindColors = map[models.DifferenceKind]string{
	models.DifferenceMissing: red,
	models.DifferenceType:    yellow,
	models.DifferenceValue:   gray,
}

// Generator renders comparison results as reports
type Generator struct {
	showMatched bool
	color       bool
}

// NewGenerator creates a new Generator instance with plain text defaults
func NewGenerator() *Generator {
	return &Generator{}
}

// NewGeneratorWithConfig creates a Generator honouring the output settings
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	return &Generator{
		showMatched: cfg.Output.ShowMatched,
		color:       cfg.Output.Color,
	}
}

// Generate renders result in the given format: text, json or yaml
func (g *Generator) Generate(result models.ComparisonResult, format string) (string, error) {
	switch strings.ToLower(format) {
	case config.FormatText, "":
		return g.generateText(result), nil
	case config.FormatJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", errors.NewOutputError("failed to encode result as JSON", err)
		}
		return string(data) + "\n", nil
	case config.FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return "", errors.NewOutputError("failed to encode result as YAML", err)
		}
		if err := enc.Close(); err != nil {
			return "", errors.NewOutputError("failed to encode result as YAML", err)
		}
		return buf.String(), nil
	default:
		return "", errors.NewOutputError(fmt.Sprintf("format '%s' is not supported", format), errors.ErrUnknownFormat)
	}
}

func (g *Generator) generateText(result models.ComparisonResult) string {
	var buf bytes.Buffer

	// Summary
	buf.WriteString(fmt.Sprintf("Match: %s (source paths: %d, target paths: %d)\n",
		g.paint(percentColor(result.MatchPercentage), fmt.Sprintf("%d%%", result.MatchPercentage)),
		result.TotalKeysSource, result.TotalKeysTarget))

	counts := result.CountByKind()
	labels := make([]string, 0, len(models.DifferenceKinds))
	for _, kind := range models.DifferenceKinds {
		labels = append(labels, fmt.Sprintf("%s: %d", strcase.ToCamel(string(kind)), counts[kind]))
	}
	buf.WriteString(strings.Join(labels, "  "))
	buf.WriteString("\n")

	if !result.HasDifferences() {
		buf.WriteString("\nNo differences found.\n")
	}

	for _, kind := range models.DifferenceKinds {
		diffs := result.ByKind(kind)
		if len(diffs) == 0 {
			continue
		}

		buf.WriteString(fmt.Sprintf("\n%s (%d)\n", sectionTitles[kind], len(diffs)))

		// Align details on the longest path of the section
		maxPathWidth := 0
		for _, d := range diffs {
			if len(d.Path) > maxPathWidth {
				maxPathWidth = len(d.Path)
			}
		}
		for _, d := range diffs {
			path := fmt.Sprintf("%-*s", maxPathWidth, d.Path)
			buf.WriteString(fmt.Sprintf("  %s  %s\n", g.paint(kindColors[kind], path), d.Details))
		}
	}

	if g.showMatched && len(result.MatchedPaths) > 0 {
		buf.WriteString(fmt.Sprintf("\nMatched Paths (%d)\n", len(result.MatchedPaths)))
		for _, path := range result.MatchedPaths {
			buf.WriteString(fmt.Sprintf("  %s\n", g.paint(green, path)))
		}
	}

	return buf.String()
}

func (g *Generator) paint(color, text string) string {
	if !g.color {
		return text
	}
	return color + text + reset
}

func percentColor(percentage int) string {
	switch {
	case percentage == 100:
		return green
	case percentage >= 50:
		return yellow
	default:
		return red
	}
}
