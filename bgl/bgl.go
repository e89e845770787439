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

// Package bgl reads the proprietary BGL dictionary container: a signature
// and deflate-start offset, a deflate stream, and a variable-length block
// framing on top of that stream carrying metadata, entries, and embedded
// resources.
//
// This package is read-only. The BGL format is not written by this library
// (spec Non-goals).
package bgl

import (
	"errors"
	"fmt"
)

// errBGL is the base error for all bgl package errors.
var errBGL = errors.New("bgl")

// ErrOpenFailure indicates the file could not be opened, or its signature is
// invalid.
var ErrOpenFailure = fmt.Errorf("%w: open failure", errBGL)

// ErrTruncatedStream indicates a short read mid-record. Iteration ends;
// whatever was yielded before remains valid.
var ErrTruncatedStream = fmt.Errorf("%w: truncated stream", errBGL)

// ErrDecompressFailure indicates an inflate or read error other than a short
// read. Unlike ErrTruncatedStream, it is fatal: Open fails with it, and
// Dictionary.Next returns it as a non-nil error.
var ErrDecompressFailure = fmt.Errorf("%w: decompress failure", errBGL)

// PartOfSpeech is the fixed part-of-speech label table indexed by the
// part-of-speech escape in BGL entry definitions (spec §4.1.4).
var PartOfSpeech = [11]string{
	"n.", "adj.", "v.", "adv.", "interj.", "pron.", "prep.", "conj.", "suff.", "pref.", "art.",
}

// Entry is a single headword/definition pair read from a BGL entry block
// (spec §3), with zero or more alternate surface forms.
type Entry struct {
	Headword   string
	Definition string
	Alternates []string
}

// Metadata is the descriptive record accumulated from BGL block types 0 and
// 3 during Dictionary's first pass (spec §3).
type Metadata struct {
	Title       string
	Author      string
	Email       string
	Description string
	Copyright   string
	SourceLang  string
	TargetLang  string
	NumEntries  int

	DefaultCharset string
	SourceCharset  string
	TargetCharset  string
}
