package pipeline

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gagatek/gagatek/pkg/config"
	"github.com/gagatek/gagatek/pkg/errors"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConvertEndToEnd(t *testing.T) {
	source := writeSource(t, "a;b\nx;1\ny;1\nx;2\n")

	converter, err := NewConverter(config.NewConfig(source))
	require.NoError(t, err)

	result, err := converter.Convert(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Columns)
	assert.Equal(t, []int{1, 1}, result.Widths)
	assert.Equal(t, source+".gag", result.EncodedPath)
	assert.Equal(t, source+".gaga", result.PackedPath)
	assert.Equal(t, source+".gagc", result.ReversePath)
	assert.Equal(t, source+".gagd", result.ForwardPath)

	encoded, err := os.ReadFile(result.EncodedPath)
	require.NoError(t, err)
	assert.Equal(t, "0;0\n1;0\n0;1\n", string(encoded))

	packed, err := os.ReadFile(result.PackedPath)
	require.NoError(t, err)
	require.Len(t, packed, 8)
	assert.Equal(t, uint64(36), binary.BigEndian.Uint64(packed))

	reverseData, err := os.ReadFile(result.ReversePath)
	require.NoError(t, err)
	var reverse [][]string
	require.NoError(t, json.Unmarshal(reverseData, &reverse))
	assert.Equal(t, [][]string{{"x", "y"}, {"1", "2"}}, reverse)

	forwardData, err := os.ReadFile(result.ForwardPath)
	require.NoError(t, err)
	var forward []map[string]int
	require.NoError(t, json.Unmarshal(forwardData, &forward))
	assert.Equal(t, []map[string]int{{"x": 0, "y": 1}, {"1": 0, "2": 1}}, forward)
}

func TestConvertHeaderOnly(t *testing.T) {
	source := writeSource(t, "a;b\n")

	converter, err := NewConverter(config.NewConfig(source))
	require.NoError(t, err)

	result, err := converter.Convert(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Columns)

	encoded, err := os.ReadFile(result.EncodedPath)
	require.NoError(t, err)
	assert.Empty(t, encoded)

	packed, err := os.ReadFile(result.PackedPath)
	require.NoError(t, err)
	assert.Empty(t, packed)

	reverseData, err := os.ReadFile(result.ReversePath)
	require.NoError(t, err)
	var reverse [][]string
	require.NoError(t, json.Unmarshal(reverseData, &reverse))
	assert.Equal(t, [][]string{{}, {}}, reverse)
}

func TestConvertEmptySource(t *testing.T) {
	source := writeSource(t, "")

	converter, err := NewConverter(config.NewConfig(source))
	require.NoError(t, err)

	result, err := converter.Convert(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Columns)

	packed, err := os.ReadFile(result.PackedPath)
	require.NoError(t, err)
	assert.Empty(t, packed)
}

func TestConvertCustomSeparator(t *testing.T) {
	source := writeSource(t, "a,b\nx,1\nx,2\n")

	cfg := config.NewConfig(source)
	cfg.Separator = ","
	converter, err := NewConverter(cfg)
	require.NoError(t, err)

	result, err := converter.Convert(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, result.Widths)

	encoded, err := os.ReadFile(result.EncodedPath)
	require.NoError(t, err)
	assert.Equal(t, "0,0\n0,1\n", string(encoded))
}

func TestConvertMissingSource(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.csv")

	converter, err := NewConverter(config.NewConfig(missing))
	require.NoError(t, err)

	_, err = converter.Convert(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

func TestNewConverterInvalidConfig(t *testing.T) {
	_, err := NewConverter(&config.Config{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestConvertCanceledContext(t *testing.T) {
	source := writeSource(t, "a;b\nx;1\n")

	converter, err := NewConverter(config.NewConfig(source))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = converter.Convert(ctx)
	require.Error(t, err)
}
