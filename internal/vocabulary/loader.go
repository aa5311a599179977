package vocabulary

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wonny/vulture/pkg/config"
)

// File is the YAML vocabulary format
//
//	symbols: [GME, AMC]
//	symbols_file: nasdaq-listed.csv
//	ambiguous: [DD, OR]
type File struct {
	Symbols     []string `yaml:"symbols"`
	SymbolsFile string   `yaml:"symbols_file"`
	Ambiguous   []string `yaml:"ambiguous"`
}

// Load assembles the vocabulary from every configured source.
// Sources are additive: YAML file, CSV listing, inline list.
func Load(cfg config.VocabularyConfig) (*Vocabulary, error) {
	var symbols []string
	ambiguous := cfg.Ambiguous

	if cfg.File != "" {
		f, err := LoadFile(cfg.File)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, f.Symbols...)
		if f.SymbolsFile != "" {
			listed, err := LoadCSV(resolveRelative(cfg.File, f.SymbolsFile))
			if err != nil {
				return nil, err
			}
			symbols = append(symbols, listed...)
		}
		// 파일에 정의된 ambiguous 목록이 환경변수보다 우선
		if len(f.Ambiguous) > 0 {
			ambiguous = f.Ambiguous
		}
	}

	if cfg.SymbolsFile != "" {
		listed, err := LoadCSV(cfg.SymbolsFile)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, listed...)
	}

	symbols = append(symbols, cfg.Symbols...)

	v, err := New(symbols, ambiguous)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	return v, nil
}

// LoadFile reads a YAML vocabulary file; unknown fields are rejected
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // 오타 필드 즉시 실패
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode vocabulary file %s: %w", path, err)
	}

	return &f, nil
}

// LoadCSV reads the first column of an exchange listing (e.g. nasdaq-listed.csv).
// A header row whose first cell is "Symbol" is skipped.
func LoadCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbol listing: %w", err)
	}
	defer f.Close()

	return ParseCSV(f)
}

// ParseCSV reads the first column of CSV data
func ParseCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var symbols []string
	for line := 0; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse symbol listing: %w", err)
		}
		if len(record) == 0 {
			continue
		}

		cell := strings.TrimSpace(record[0])
		if line == 0 && strings.EqualFold(cell, "symbol") {
			continue
		}
		if cell != "" {
			symbols = append(symbols, cell)
		}
	}

	return symbols, nil
}

func resolveRelative(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(base), path)
}
