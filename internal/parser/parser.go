package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/mcncl/jsoncompare/internal/errors" // Custom errors package
	"github.com/mcncl/jsoncompare/internal/models"
)

// Parse decodes a single JSON document from an io.Reader into a Value.
// Object members keep their document order.
func Parse(reader io.Reader) (models.Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // Ensure numbers are read as json.Number

	first, err := decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.Value{}, decodeError(err)
	}

	root, err := decodeToken(decoder, first)
	if err != nil {
		return models.Value{}, decodeError(err)
	}

	// Anything but EOF after the first value is trailing data
	if _, err := decoder.Token(); err == nil {
		return models.Value{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Value{}, errors.NewParsingError("invalid trailing data after first JSON value", err)
	}

	return root, nil
}

// decodeToken builds the value that starts with tok, reading the rest of it
// from the decoder
func decodeToken(decoder *json.Decoder, tok json.Token) (models.Value, error) {
	switch t := tok.(type) {
	case nil:
		return models.NullValue(), nil
	case bool:
		return models.BoolValue(t), nil
	case json.Number:
		return models.NumberValue(t), nil
	case string:
		return models.StringValue(t), nil
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(decoder)
		case '[':
			return decodeArray(decoder)
		}
		return models.Value{}, fmt.Errorf("unexpected delimiter %q", rune(t))
	default:
		return models.Value{}, fmt.Errorf("unexpected token %T", tok)
	}
}

func decodeObject(decoder *json.Decoder) (models.Value, error) {
	var members []models.Member
	for decoder.More() {
		keyTok, err := nextToken(decoder)
		if err != nil {
			return models.Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return models.Value{}, fmt.Errorf("object key is %T, not a string", keyTok)
		}
		valueTok, err := nextToken(decoder)
		if err != nil {
			return models.Value{}, err
		}
		value, err := decodeToken(decoder, valueTok)
		if err != nil {
			return models.Value{}, err
		}
		members = append(members, models.Member{Key: key, Value: value})
	}
	// Closing brace
	if _, err := nextToken(decoder); err != nil {
		return models.Value{}, err
	}
	return models.ObjectValue(members...), nil
}

func decodeArray(decoder *json.Decoder) (models.Value, error) {
	items := make([]models.Value, 0)
	for decoder.More() {
		tok, err := nextToken(decoder)
		if err != nil {
			return models.Value{}, err
		}
		item, err := decodeToken(decoder, tok)
		if err != nil {
			return models.Value{}, err
		}
		items = append(items, item)
	}
	// Closing bracket
	if _, err := nextToken(decoder); err != nil {
		return models.Value{}, err
	}
	return models.ArrayValue(items...), nil
}

// nextToken reads a token inside a value; running out of input there is
// always premature
func nextToken(decoder *json.Decoder) (json.Token, error) {
	tok, err := decoder.Token()
	if stderrors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}

// decodeError maps decoder failures onto parsing errors
func decodeError(err error) *errors.AppError {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d: %s", syntaxError.Offset, syntaxError.Error()),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Value, error) {
	data, err := ReadFile(filePath)
	if err != nil {
		return models.Value{}, err
	}
	return Parse(strings.NewReader(data))
}

// ReadFile reads a JSON document's text, rejecting empty paths, missing files
// and empty files
func ReadFile(filePath string) (string, error) {
	if strings.TrimSpace(filePath) == "" {
		return "", errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return "", errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return "", errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return string(data), nil
}

// Validate reports whether text holds exactly one well-formed JSON document
func Validate(text string) bool {
	_, err := ParseString(text)
	return err == nil
}
