// Package encoder implements the dictionary encoding pass of the conversion
// pipeline. A DictionaryEncoder streams a delimited text file exactly once,
// builds one dictionary per column, and writes an intermediate file where
// every field is replaced by its dictionary id.
package encoder

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gagatek/gagatek/pkg/dictionary"
	"github.com/gagatek/gagatek/pkg/errors"
	"github.com/gagatek/gagatek/pkg/logger"
)

// maxLineSize bounds a single input line. Lines are whole rows, so this is
// generous for tabular data.
const maxLineSize = 16 * 1024 * 1024

// DictionaryEncoder transforms a delimited text source into an id stream
// plus per-column dictionaries.
type DictionaryEncoder struct {
	sourcePath string
	separator  string
	logger     *zap.Logger
}

// NewDictionaryEncoder creates an encoder for the given source file and
// column separator.
func NewDictionaryEncoder(sourcePath, separator string) *DictionaryEncoder {
	return &DictionaryEncoder{
		sourcePath: sourcePath,
		separator:  separator,
		logger:     logger.With(zap.String("component", "encoder"), zap.String("source", sourcePath)),
	}
}

// Encode reads the source once, builds the column dictionaries, and writes
// the id stream to destPath (one line of separator-joined ids per data row).
// The first source line is a header used only to fix the column count; its
// values are discarded. The returned arena is finalized and immutable.
//
// A data row whose field count differs from the header aborts encoding with
// a validation error.
func (e *DictionaryEncoder) Encode(destPath string) (*dictionary.Arena, error) {
	source, err := os.Open(e.sourcePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open source file")
	}
	defer source.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to create encoded file")
	}
	defer dest.Close()

	scanner := bufio.NewScanner(source)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	writer := bufio.NewWriter(dest)

	// Header fixes the column count; its values are not encoded.
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read source file")
		}
		e.logger.Debug("source file is empty")
		return dictionary.NewArena(nil), writer.Flush()
	}

	columnCount := len(strings.Split(scanner.Text(), e.separator))
	columns := make([]*dictionary.Dictionary, columnCount)
	for i := range columns {
		columns[i] = dictionary.New()
	}

	var sb strings.Builder
	rows := 0
	lineNo := 1

	for scanner.Scan() {
		lineNo++
		fields := strings.Split(scanner.Text(), e.separator)
		if len(fields) != columnCount {
			return nil, errors.New(errors.ErrorTypeValidation, "row field count does not match header").
				WithDetail("line", lineNo).
				WithDetail("expected", columnCount).
				WithDetail("actual", len(fields))
		}

		sb.Reset()
		for i, value := range fields {
			if i > 0 {
				sb.WriteString(e.separator)
			}
			sb.WriteString(strconv.Itoa(columns[i].GetOrInsert(value)))
		}
		sb.WriteByte('\n')

		if _, err := writer.WriteString(sb.String()); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to write encoded row")
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read source file")
	}

	if err := writer.Flush(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to flush encoded file")
	}

	e.logger.Info("dictionary encoding complete",
		zap.Int("columns", columnCount),
		zap.Int("rows", rows))

	return dictionary.NewArena(columns), nil
}
