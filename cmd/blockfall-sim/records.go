package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// writeRecords stores one JSON line per result at path. A ".zst" suffix
// compresses the stream.
func writeRecords(path string, results []Result) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	var w io.Writer = f
	var zw *zstd.Encoder
	if strings.HasSuffix(path, ".zst") {
		zw, err = zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		w = zw
	}

	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode game %d: %w", r.Game, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if zw != nil {
		if err := zw.Close(); err != nil {
			return fmt.Errorf("finish %s: %w", path, err)
		}
	}
	return nil
}

// readRecords loads results written by writeRecords.
func readRecords(path string) ([]Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	var results []Result
	dec := json.NewDecoder(r)
	for dec.More() {
		var res Result
		if err := dec.Decode(&res); err != nil {
			return results, fmt.Errorf("decode %s: %w", path, err)
		}
		results = append(results, res)
	}
	return results, nil
}
