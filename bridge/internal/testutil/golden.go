// Package testutil provides shared test infrastructure for the bridge's
// test packages: golden batch fixtures and assertion helpers used across
// bridge/ and bridge/kds/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldenbatches.json.
type GoldenDataset struct {
	Cases []GoldenKDSCase `json:"cases"`
}

// GoldenKDSCase is one fixture batch: a small set of typed source columns
// (optionally with validity words) that an encode round trip must
// reproduce, and the decoded result-buffer shape for the same batch.
type GoldenKDSCase struct {
	Name    string          `json:"name"`
	NRows   int32           `json:"nrows"`
	Columns []GoldenColumn  `json:"columns"`
	Result  GoldenResultCase `json:"result"`
}

// GoldenColumn is one fixture source column.
type GoldenColumn struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"` // "int16"|"int32"|"int64"|"float32"|"float64"|"geometry_point_z"
	AttrIndex     int     `json:"attr_index"`
	SRID          int32   `json:"srid"`
	ValidityWords []uint64 `json:"validity_words,omitempty"` // nil means "all valid"

	// Fixed-width source data, interpreted per Type.
	Int16Values   []int16   `json:"int16_values,omitempty"`
	Int32Values   []int32   `json:"int32_values,omitempty"`
	Int64Values   []int64   `json:"int64_values,omitempty"`
	Float32Values []float32 `json:"float32_values,omitempty"`
	Float64Values []float64 `json:"float64_values,omitempty"`

	// Geometry source rows, one well-known-binary record per row
	// (hex-decoded by the loader's caller, not here).
	WKBRowsHex []string `json:"wkb_rows_hex,omitempty"`
}

// GoldenResultCase is the expected decoded result-buffer shape for a
// dispatcher-level fixture: the aggregate values and null flags a
// fallback-free, successful dispatch should produce.
type GoldenResultCase struct {
	NAggs  int       `json:"n_aggs"`
	Values []float64 `json:"values"`
	Nulls  []bool    `json:"nulls"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: bridge/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from bridge/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldenbatches.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
