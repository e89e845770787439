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
	"fmt"
	"os"
	"strings"

	"github.com/glossdict/glossdict/dictzip"
)

// Reader is an opened SDX dictionary: its index held in memory, its
// definition blob read on demand (spec §4.2, §5).
type Reader struct {
	Info    IfoFields
	records []IndexRecord

	dictPath string
	dictzip  bool
}

// Open opens the SDX dictionary named by ifoPath (the .ifo file; the
// sibling .idx/.idx.gz and .dict/.dict.dz files are located by replacing
// its extension).
func Open(ifoPath string) (*Reader, error) {
	base, ok := strings.CutSuffix(ifoPath, ".ifo")
	if !ok {
		return nil, fmt.Errorf("%w: path %q does not end in .ifo", ErrOpenFailure, ifoPath)
	}

	info, err := readInfo(ifoPath)
	if err != nil {
		return nil, err
	}

	idxPath := base + ".idx"
	compressedIdx := false
	if _, err := os.Stat(idxPath); err != nil {
		idxPath = base + ".idx.gz"
		compressedIdx = true
		if _, err := os.Stat(idxPath); err != nil {
			return nil, fmt.Errorf("%w: no .idx or .idx.gz file for %q", ErrOpenFailure, base)
		}
	}

	records, err := loadIndex(idxPath, compressedIdx, info.IdxFileSize, info.WordCount)
	if err != nil {
		return nil, err
	}

	dictPath := base + ".dict"
	compressedDict := false
	if _, err := os.Stat(dictPath); err != nil {
		dictPath = base + ".dict.dz"
		compressedDict = true
		if _, err := os.Stat(dictPath); err != nil {
			return nil, fmt.Errorf("%w: no .dict or .dict.dz file for %q", ErrOpenFailure, base)
		}
	}

	r := &Reader{Info: info, records: records, dictPath: dictPath, dictzip: compressedDict}
	if compressedDict {
		if err := r.validateDictzipHeader(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Reader) validateDictzipHeader() error {
	f, err := os.Open(r.dictPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOpenFailure, err)
	}
	defer f.Close()

	zr, err := dictzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("%w: invalid dictzip header: %w", ErrOpenFailure, err)
	}
	return zr.Close()
}

// Search returns the definition for word, per spec §4.2.3's last-match
// semantics: a linear scan of the index, ties resolved by last occurrence.
// It reopens the definition file for this call, matching the original
// program's behavior (spec §5) rather than keeping a persistent handle.
func (r *Reader) Search(word string) (string, bool) {
	var found *IndexRecord
	for i := range r.records {
		if r.records[i].Headword == word {
			found = &r.records[i]
		}
	}
	if found == nil {
		return "", false
	}

	def, err := r.readDefinition(found.Position, found.Size)
	if err != nil {
		return "", false
	}
	return def, true
}

// Dump returns every headword in on-disk index order.
func (r *Reader) Dump() []string {
	words := make([]string, len(r.records))
	for i, rec := range r.records {
		words[i] = rec.Headword
	}
	return words
}

func (r *Reader) readDefinition(position, size uint32) (string, error) {
	f, err := os.Open(r.dictPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOpenFailure, err)
	}
	defer f.Close()

	buf := make([]byte, size)

	if !r.dictzip {
		if _, err := f.ReadAt(buf, int64(position)); err != nil {
			return "", fmt.Errorf("%w: reading definition: %w", ErrTruncatedStream, err)
		}
		return string(buf), nil
	}

	zr, err := dictzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrOpenFailure, err)
	}
	defer zr.Close()

	if _, err := zr.ReadAt(buf, int64(position)); err != nil {
		return "", fmt.Errorf("%w: reading definition: %w", ErrTruncatedStream, err)
	}
	return string(buf), nil
}
