// Package session runs the decode-then-compare cycle for a pair of JSON
// documents. It keeps decode failures attributed to the side that caused them
// and never produces a comparison result while either side fails to decode.
package session

import (
	stderrors "errors"
	"io"
	"strings"

	"github.com/mcncl/jsoncompare/internal/comparator"
	"github.com/mcncl/jsoncompare/internal/errors"
	"github.com/mcncl/jsoncompare/internal/models"
	"github.com/mcncl/jsoncompare/internal/parser"
	"github.com/sirupsen/logrus"
)

// StdinPath names standard input in place of a file path
const StdinPath = "-"

// Outcome is the result of one evaluation cycle. At most one of Pending,
// a non-nil Result, or decode errors is set.
type Outcome struct {
	// Pending is true when either document has no content yet
	Pending   bool
	SourceErr error
	TargetErr error
	Result    *models.ComparisonResult
}

// Failed reports whether either side failed to load or decode
func (o Outcome) Failed() bool {
	return o.SourceErr != nil || o.TargetErr != nil
}

// Errors returns the side errors, source first
func (o Outcome) Errors() []error {
	var errs []error
	if o.SourceErr != nil {
		errs = append(errs, o.SourceErr)
	}
	if o.TargetErr != nil {
		errs = append(errs, o.TargetErr)
	}
	return errs
}

// Err joins the side errors, nil when both sides decoded
func (o Outcome) Err() error {
	return stderrors.Join(o.Errors()...)
}

// Session evaluates document pairs with fixed options
type Session struct {
	comparator *comparator.Comparator
	logger     logrus.FieldLogger
}

// New creates a Session comparing with opts
func New(opts models.Options, logger logrus.FieldLogger) *Session {
	return &Session{
		comparator: comparator.NewComparator(opts),
		logger:     logger,
	}
}

// Options returns the comparison options in use
func (s *Session) Options() models.Options {
	return s.comparator.Options()
}

// WithOptions returns a Session sharing the logger but comparing with opts
func (s *Session) WithOptions(opts models.Options) *Session {
	return New(opts, s.logger)
}

// Evaluate decodes both texts and compares them when both are valid.
// Blank text on either side leaves the outcome pending.
func (s *Session) Evaluate(sourceText, targetText string) Outcome {
	if strings.TrimSpace(sourceText) == "" || strings.TrimSpace(targetText) == "" {
		s.logger.Debug("waiting for both documents")
		return Outcome{Pending: true}
	}

	source, sourceErr := decode(sourceText, errors.SideSource)
	target, targetErr := decode(targetText, errors.SideTarget)
	return s.compare(source, target, sourceErr, targetErr)
}

// EvaluateFiles reads both documents from disk, "-" meaning stdin, and
// evaluates them. Unlike Evaluate, empty files are errors.
func (s *Session) EvaluateFiles(sourcePath, targetPath string, stdin io.Reader) Outcome {
	var sourceErr, targetErr error
	var source, target models.Value

	sourceText, err := ReadDocument(sourcePath, stdin)
	if err != nil {
		sourceErr = attribute(err, errors.SideSource)
	} else {
		source, sourceErr = decode(sourceText, errors.SideSource)
	}

	if sourcePath == StdinPath && targetPath == StdinPath {
		targetErr = errors.NewInputError("cannot read both documents from stdin", errors.ErrStdinTwice).WithSide(errors.SideTarget)
	} else if targetText, err := ReadDocument(targetPath, stdin); err != nil {
		targetErr = attribute(err, errors.SideTarget)
	} else {
		target, targetErr = decode(targetText, errors.SideTarget)
	}

	return s.compare(source, target, sourceErr, targetErr)
}

func (s *Session) compare(source, target models.Value, sourceErr, targetErr error) Outcome {
	if sourceErr != nil || targetErr != nil {
		s.logger.WithFields(logrus.Fields{
			"source_error": sourceErr,
			"target_error": targetErr,
		}).Debug("skipping comparison, a document failed to decode")
		return Outcome{SourceErr: sourceErr, TargetErr: targetErr}
	}

	result := s.comparator.Compare(source, target)
	s.logger.WithFields(logrus.Fields{
		"differences":      len(result.Differences),
		"match_percentage": result.MatchPercentage,
		"source_paths":     result.TotalKeysSource,
		"target_paths":     result.TotalKeysTarget,
	}).Debug("compared documents")
	return Outcome{Result: &result}
}

func decode(text string, side errors.Side) (models.Value, error) {
	v, err := parser.ParseString(text)
	if err != nil {
		return models.Value{}, attribute(err, side)
	}
	return v, nil
}

// attribute tags an error with the document it came from
func attribute(err error, side errors.Side) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.WithSide(side)
	}
	return errors.NewInputError(err.Error(), err).WithSide(side)
}

// ReadDocument reads a file, or stdin when path is StdinPath. Empty content
// is an error either way.
func ReadDocument(path string, stdin io.Reader) (string, error) {
	if path != StdinPath {
		return parser.ReadFile(path)
	}
	if stdin == nil {
		return "", errors.NewInputError("stdin is not available", errors.ErrNoInput)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}
