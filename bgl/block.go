// Copyright 2026 The glossdict Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bgl

import (
	"errors"
	"fmt"
	"io"
)

// blockEndOfStream is the block type value that marks the end of the block
// stream (spec §4.1.2). No bytes are read once it is seen.
const blockEndOfStream = 4

// Block is a raw, not-yet-semantically-interpreted BGL record: a type and a
// payload of Type-specific bytes (spec §3). The payload is only valid until
// the next call to BlockReader.Next.
type Block struct {
	Type    byte
	Payload []byte
}

// BlockReader parses the variable-length block framing described in spec
// §4.1.2 from a forward-only byte stream (the decompressed BGL deflate
// stream).
type BlockReader struct {
	r   io.Reader
	end bool
}

// NewBlockReader returns a BlockReader reading blocks from r.
func NewBlockReader(r io.Reader) *BlockReader {
	return &BlockReader{r: r}
}

// Next reads and returns the next block. It returns io.EOF once the
// end-of-stream sentinel (block type 4) has been seen, and every call
// after that also returns io.EOF without reading further.
//
// A short read mid-payload returns ErrTruncatedStream: the caller should
// treat this the same as io.EOF (iteration ends, everything read so far is
// valid) rather than as a fatal error.
func (r *BlockReader) Next() (Block, error) {
	if r.end {
		return Block{}, io.EOF
	}

	var head [1]byte
	if _, err := io.ReadFull(r.r, head[:]); err != nil {
		if errors.Is(err, io.EOF) {
			r.end = true
			return Block{}, io.EOF
		}
		return Block{}, truncated(err)
	}

	typ := head[0] & 0x0f
	if typ == blockEndOfStream {
		r.end = true
		return Block{}, io.EOF
	}

	n := head[0] >> 4
	length, err := r.readLength(n)
	if err != nil {
		r.end = true
		return Block{}, err
	}

	var payload []byte
	if length > 0 {
		payload = make([]byte, length)
		if _, err := io.ReadFull(r.r, payload); err != nil {
			r.end = true
			return Block{}, truncated(err)
		}
	}

	return Block{Type: typ, Payload: payload}, nil
}

// readLength decodes the payload length given the high nibble n of the
// block's leading byte, per spec §4.1.2: n < 4 means the length is an
// (n+1)-byte big-endian integer that follows; otherwise the length is n-4.
func (r *BlockReader) readLength(n byte) (int, error) {
	if n >= 4 {
		return int(n) - 4, nil
	}

	buf := make([]byte, int(n)+1)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return 0, truncated(err)
	}

	var length int
	for _, b := range buf {
		length = length<<8 | int(b)
	}
	return length, nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", ErrTruncatedStream, err)
	}
	return fmt.Errorf("%w: %w", ErrDecompressFailure, err)
}
