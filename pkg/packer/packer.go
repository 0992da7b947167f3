// Package packer implements the bit-packing pass of the conversion pipeline.
// Given a finalized dictionary arena and the id stream produced by the
// encoder, a BitPacker computes the minimum bit width per column and packs
// the ids back-to-back into 64-bit words.
package packer

import (
	"bufio"
	"encoding/binary"
	"math/bits"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gagatek/gagatek/pkg/dictionary"
	"github.com/gagatek/gagatek/pkg/errors"
	"github.com/gagatek/gagatek/pkg/logger"
)

// wordBits is the capacity of one accumulator word.
const wordBits = 64

// BitWidth returns the minimum number of bits needed to represent every id
// of a dictionary with n distinct values. A column that never varies still
// needs one bit per row, so n of 0 or 1 yields 1.
func BitWidth(n int) int {
	if n <= 1 {
		return 1
	}
	return bits.Len(uint(n - 1))
}

// BitPacker packs an id stream into a dense binary file. It can only be
// constructed from a finalized arena, so a column's width is always derived
// from its complete dictionary.
type BitPacker struct {
	widths    []int
	separator string
	logger    *zap.Logger
}

// NewBitPacker creates a packer whose per-column widths are derived from the
// arena's dictionary sizes.
func NewBitPacker(arena *dictionary.Arena, separator string) *BitPacker {
	widths := make([]int, arena.Columns())
	for i := range widths {
		widths[i] = BitWidth(arena.Size(i))
	}
	return &BitPacker{
		widths:    widths,
		separator: separator,
		logger:    logger.With(zap.String("component", "packer")),
	}
}

// Widths returns the per-column bit widths. The returned slice must not be
// modified.
func (p *BitPacker) Widths() []int {
	return p.widths
}

// Pack reads the id stream at sourcePath and writes the packed words to
// destPath. Values are placed least-significant-bit first into a 64-bit
// accumulator; a value that does not fit in the remaining bits of the
// current word never straddles words — the word is flushed and the value
// starts at bit 0 of the next one. The final word is flushed even when
// partially used, with its unused high bits zero.
//
// An id that does not fit in its column's width is a data error; a
// non-integer token is a parse error.
func (p *BitPacker) Pack(sourcePath, destPath string) error {
	source, err := os.Open(sourcePath)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to open encoded file")
	}
	defer source.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create packed file")
	}
	defer dest.Close()

	scanner := bufio.NewScanner(source)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	writer := bufio.NewWriter(dest)

	var (
		word     [8]byte
		buffer   uint64
		bitsUsed int
		words    int
		lineNo   int
	)

	flush := func() error {
		binary.BigEndian.PutUint64(word[:], buffer)
		if _, err := writer.Write(word[:]); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to write packed word")
		}
		buffer = 0
		bitsUsed = 0
		words++
		return nil
	}

	for scanner.Scan() {
		lineNo++
		ids := strings.Split(scanner.Text(), p.separator)
		if len(ids) != len(p.widths) {
			return errors.New(errors.ErrorTypeValidation, "encoded row field count does not match dictionary count").
				WithDetail("line", lineNo).
				WithDetail("expected", len(p.widths)).
				WithDetail("actual", len(ids))
		}

		for i, token := range ids {
			value, err := strconv.ParseUint(token, 10, 64)
			if err != nil {
				return errors.Wrap(err, errors.ErrorTypeParse, "invalid id token").
					WithDetail("line", lineNo).
					WithDetail("column", i).
					WithDetail("token", token)
			}

			width := p.widths[i]
			if width < wordBits && value>>uint(width) != 0 {
				return errors.New(errors.ErrorTypeData, "id exceeds column bit width").
					WithDetail("line", lineNo).
					WithDetail("column", i).
					WithDetail("id", value).
					WithDetail("width", width)
			}

			if bitsUsed+width > wordBits {
				if err := flush(); err != nil {
					return err
				}
			}
			buffer |= value << uint(bitsUsed)
			bitsUsed += width
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to read encoded file")
	}

	if bitsUsed > 0 {
		if err := flush(); err != nil {
			return err
		}
	}

	if err := writer.Flush(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush packed file")
	}

	p.logger.Info("bit packing complete",
		zap.Int("rows", lineNo),
		zap.Int("words", words),
		zap.Ints("widths", p.widths))

	return nil
}
