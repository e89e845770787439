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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// IfoFields is the parsed content of a .ifo file (spec §4.2.1). date is not
// named by spec.md's distillation but is present in the original format and
// carried through here for round-trip fidelity.
type IfoFields struct {
	Version          string
	Bookname         string
	SameTypeSequence string
	IdxFileSize      int
	WordCount        int
	Author           string
	Email            string
	Website          string
	Description      string
	Date             string
}

// readInfo opens and parses path as a .ifo file.
func readInfo(path string) (IfoFields, error) {
	f, err := os.Open(path)
	if err != nil {
		return IfoFields{}, fmt.Errorf("%w: %w", ErrOpenFailure, err)
	}
	defer f.Close()
	return parseInfo(f)
}

// parseInfo parses key=value lines from r per spec §4.2.1: unknown keys are
// silently ignored, and idxfilesize/wordcount must both be present and
// parse as non-negative integers. sametypesequence must equal "m".
func parseInfo(r io.Reader) (IfoFields, error) {
	var f IfoFields
	var haveIdxFileSize, haveWordCount bool

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), "=")
		if !ok {
			continue
		}

		switch key {
		case "version":
			f.Version = value
		case "bookname":
			f.Bookname = value
		case "sametypesequence":
			f.SameTypeSequence = value
		case "idxfilesize":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return IfoFields{}, fmt.Errorf("%w: invalid idxfilesize %q", ErrOpenFailure, value)
			}
			f.IdxFileSize = n
			haveIdxFileSize = true
		case "wordcount":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return IfoFields{}, fmt.Errorf("%w: invalid wordcount %q", ErrOpenFailure, value)
			}
			f.WordCount = n
			haveWordCount = true
		case "author":
			f.Author = value
		case "email":
			f.Email = value
		case "website":
			f.Website = value
		case "description":
			f.Description = value
		case "date":
			f.Date = value
		}
	}
	if err := sc.Err(); err != nil {
		return IfoFields{}, fmt.Errorf("%w: reading info file: %w", ErrOpenFailure, err)
	}

	if !haveIdxFileSize || !haveWordCount {
		return IfoFields{}, fmt.Errorf("%w: missing idxfilesize or wordcount", ErrOpenFailure)
	}
	if f.SameTypeSequence != "m" {
		return IfoFields{}, fmt.Errorf("%w: unsupported sametypesequence %q", ErrOpenFailure, f.SameTypeSequence)
	}

	return f, nil
}
