// Package pipeline orchestrates the two-pass conversion of a delimited text
// file into its columnar binary representation: dictionary encoding, then
// dictionary persistence, then bit packing. Packing always runs against the
// finalized arena produced by the completed encoding pass.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gagatek/gagatek/pkg/config"
	"github.com/gagatek/gagatek/pkg/dictionary"
	"github.com/gagatek/gagatek/pkg/encoder"
	"github.com/gagatek/gagatek/pkg/errors"
	"github.com/gagatek/gagatek/pkg/logger"
	"github.com/gagatek/gagatek/pkg/packer"
)

// File suffixes appended to the source path. Downstream readers depend on
// these exact values.
const (
	EncodedSuffix     = ".gag"  // intermediate id stream, text
	PackedSuffix      = ".gaga" // packed binary words
	ReverseDictSuffix = ".gagc" // id-to-value dictionaries
	ForwardDictSuffix = ".gagd" // value-to-id dictionaries
)

// Result summarizes a completed conversion.
type Result struct {
	Columns     int
	Widths      []int
	EncodedPath string
	PackedPath  string
	ReversePath string
	ForwardPath string
	Duration    time.Duration
}

// Converter runs a full conversion for one source file.
type Converter struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewConverter creates a converter after validating the configuration.
func NewConverter(cfg *config.Config) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Converter{
		cfg:    cfg,
		logger: logger.With(zap.String("component", "converter"), zap.String("source", cfg.SourcePath)),
	}, nil
}

// Convert executes the conversion: encode the source into an id stream while
// building dictionaries, persist the dictionaries, then pack the id stream.
// Any failure aborts the run; partial output files may remain and should be
// treated as unusable.
func (c *Converter) Convert(ctx context.Context) (*Result, error) {
	start := time.Now()
	base := c.cfg.SourcePath

	result := &Result{
		EncodedPath: base + EncodedSuffix,
		PackedPath:  base + PackedSuffix,
		ReversePath: base + ReverseDictSuffix,
		ForwardPath: base + ForwardDictSuffix,
	}

	arena, err := c.encode(result.EncodedPath)
	if err != nil {
		return nil, err
	}
	c.logger.Info("step 1/3: source encoded and dictionaries built")

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "conversion canceled")
	}

	if err := arena.SaveReverse(result.ReversePath); err != nil {
		return nil, err
	}
	if err := arena.SaveForward(result.ForwardPath); err != nil {
		return nil, err
	}
	c.logger.Info("step 2/3: dictionaries saved to disk")

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "conversion canceled")
	}

	p := packer.NewBitPacker(arena, c.cfg.Separator)
	if err := p.Pack(result.EncodedPath, result.PackedPath); err != nil {
		return nil, err
	}
	c.logger.Info("step 3/3: binary file packed")

	result.Columns = arena.Columns()
	result.Widths = p.Widths()
	result.Duration = time.Since(start)
	return result, nil
}

func (c *Converter) encode(destPath string) (*dictionary.Arena, error) {
	enc := encoder.NewDictionaryEncoder(c.cfg.SourcePath, c.cfg.Separator)
	return enc.Encode(destPath)
}
