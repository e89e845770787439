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

package sdx

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// loadIndex reads and parses the .idx (or decompressed .idx.gz) data at
// path, per spec §4.2.2. The decompressed size must equal idxFileSize.
func loadIndex(path string, compressed bool, idxFileSize, wordCount int) ([]IndexRecord, error) {
	data, err := readIndexBytes(path, compressed)
	if err != nil {
		return nil, err
	}
	if len(data) != idxFileSize {
		return nil, fmt.Errorf("%w: index size %d does not match idxfilesize %d", ErrOpenFailure, len(data), idxFileSize)
	}
	return parseIndexRecords(data, wordCount)
}

func readIndexBytes(path string, compressed bool) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailure, err)
	}
	defer f.Close()

	if !compressed {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("%w: reading index: %w", ErrOpenFailure, err)
		}
		return data, nil
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: opening compressed index: %w", ErrOpenFailure, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: decompressing index: %w", ErrOpenFailure, err)
	}
	return data, nil
}

// parseIndexRecords walks wordCount null-terminated-headword/position/size
// records out of data (spec §4.2.2).
func parseIndexRecords(data []byte, wordCount int) ([]IndexRecord, error) {
	records := make([]IndexRecord, 0, wordCount)
	pos := 0

	for i := 0; i < wordCount; i++ {
		nul := bytes.IndexByte(data[pos:], 0)
		if nul < 0 {
			return nil, fmt.Errorf("%w: missing NUL terminator in index record %d", ErrTruncatedStream, i)
		}
		headword := string(data[pos : pos+nul])
		pos += nul + 1

		if pos+8 > len(data) {
			return nil, fmt.Errorf("%w: short index record %d", ErrTruncatedStream, i)
		}
		position := binary.BigEndian.Uint32(data[pos : pos+4])
		size := binary.BigEndian.Uint32(data[pos+4 : pos+8])
		pos += 8

		records = append(records, IndexRecord{Headword: headword, Position: position, Size: size})
	}

	return records, nil
}
