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

// Package sdx reads and writes the StarDict-style SDX dictionary format: an
// info file (.ifo), a sorted index (.idx or .idx.gz), and a definition blob
// (.dict or .dict.dz). Only the "sametypesequence=m" uniform-textual variant
// is supported.
package sdx

import (
	"errors"
	"fmt"
)

// errSDX is the base error for all sdx package errors.
var errSDX = errors.New("sdx")

// ErrOpenFailure indicates a file could not be opened, the info file is
// missing a required key, or sametypesequence is not "m".
var ErrOpenFailure = fmt.Errorf("%w: open failure", errSDX)

// ErrTruncatedStream indicates the index or definition data is shorter than
// its declared size.
var ErrTruncatedStream = fmt.Errorf("%w: truncated stream", errSDX)

// ErrWriteFailure indicates an I/O error while writing the .idx/.ifo/.dict
// triple. Partial files are left on disk; the caller must remove them.
var ErrWriteFailure = fmt.Errorf("%w: write failure", errSDX)

// IndexRecord is one entry of a .idx file: a headword and the
// (position, size) of its definition within the .dict blob (spec §3).
type IndexRecord struct {
	Headword string
	Position uint32
	Size     uint32
}
