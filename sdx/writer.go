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
	"encoding/binary"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Writer accumulates (headword, definition) pairs and produces a matching
// .idx/.ifo/.dict triple on Finish (spec §4.3).
type Writer struct {
	definitions map[string]string
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{definitions: make(map[string]string)}
}

// AddHeadword records headword/definition, overwriting any prior definition
// for the same headword. alternates is accepted for interface symmetry with
// the original format but discarded: this core does not produce a .syn
// synonym file (spec §9's open question, resolved as "discard").
func (w *Writer) AddHeadword(headword, definition string, alternates []string) {
	w.definitions[headword] = definition
}

// WriterInfo carries the descriptive .ifo fields supplied by the caller on
// Finish; Writer itself only knows headwords and definitions.
type WriterInfo struct {
	Bookname    string
	Author      string
	Email       string
	Website     string
	Description string
}

// Finish writes basePath+".idx", basePath+".ifo", and basePath+".dict".
// Entries are emitted in headword-sorted order: the definition blob, the
// index positions, and idxfilesize are all derived from that single sorted
// pass, so position[0] == 0 and position[i]+size[i] == position[i+1] for
// every i (spec §8 "Monotonic index offsets").
func (w *Writer) Finish(basePath string, info WriterInfo) error {
	headwords := make([]string, 0, len(w.definitions))
	for h := range w.definitions {
		headwords = append(headwords, h)
	}
	sort.Strings(headwords)

	records := make([]IndexRecord, 0, len(headwords))
	var blob []byte
	for _, h := range headwords {
		def := w.definitions[h]
		records = append(records, IndexRecord{
			Headword: h,
			Position: uint32(len(blob)),
			Size:     uint32(len(def)),
		})
		blob = append(blob, def...)
	}

	idxFileSize, err := writeIndex(basePath+".idx", records)
	if err != nil {
		return err
	}
	if err := writeDict(basePath+".dict", blob); err != nil {
		return err
	}
	if err := writeInfo(basePath+".ifo", info, len(headwords), idxFileSize); err != nil {
		return err
	}

	return nil
}

func writeIndex(path string, records []IndexRecord) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	defer f.Close()

	var n int
	for _, rec := range records {
		var tail [8]byte
		binary.BigEndian.PutUint32(tail[0:4], rec.Position)
		binary.BigEndian.PutUint32(tail[4:8], rec.Size)

		record := append([]byte(rec.Headword), 0)
		record = append(record, tail[:]...)

		written, err := f.Write(record)
		if err != nil {
			return 0, fmt.Errorf("%w: writing index record: %w", ErrWriteFailure, err)
		}
		n += written
	}
	return n, nil
}

func writeDict(path string, blob []byte) error {
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	return nil
}

func writeInfo(path string, info WriterInfo, wordCount, idxFileSize int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	defer f.Close()

	var b strings.Builder
	fmt.Fprintf(&b, "StarDict's dict ifo file\n")
	fmt.Fprintf(&b, "version=2.4.2\n")
	fmt.Fprintf(&b, "bookname=%s\n", info.Bookname)
	fmt.Fprintf(&b, "wordcount=%d\n", wordCount)
	fmt.Fprintf(&b, "idxfilesize=%d\n", idxFileSize)
	fmt.Fprintf(&b, "sametypesequence=m\n")
	if info.Author != "" {
		fmt.Fprintf(&b, "author=%s\n", info.Author)
	}
	if info.Email != "" {
		fmt.Fprintf(&b, "email=%s\n", info.Email)
	}
	if info.Website != "" {
		fmt.Fprintf(&b, "website=%s\n", info.Website)
	}
	if info.Description != "" {
		fmt.Fprintf(&b, "description=%s\n", info.Description)
	}

	if _, err := f.WriteString(b.String()); err != nil {
		return fmt.Errorf("%w: writing info file: %w", ErrWriteFailure, err)
	}
	return nil
}
