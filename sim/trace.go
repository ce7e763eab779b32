// sim/trace.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// WriteTrace writes the traces to w, msgpack-encoded and zstd-compressed.
func WriteTrace(w io.Writer, traces []*Trace) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	defer zw.Close()

	if err := msgpack.NewEncoder(zw).Encode(traces); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %w", err)
	}
	return nil
}

// ReadTrace reads traces written by WriteTrace.
func ReadTrace(r io.Reader) ([]*Trace, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	var traces []*Trace
	if err := msgpack.NewDecoder(zr).Decode(&traces); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	return traces, nil
}
