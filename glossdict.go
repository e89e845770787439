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

// Package glossdict reads offline bilingual dictionary files in either of
// two on-disk formats: the proprietary BGL container, and the open,
// StarDict-style SDX format (info/index/definition-blob triple).
//
// # Basic usage
//
// Iterating a BGL dictionary:
//
//	dict, err := glossdict.OpenBGL("dictionary.bgl")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dict.Close()
//
//	for {
//	    entry, ok, err := dict.Next()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if !ok {
//	        break
//	    }
//	    fmt.Println(entry.Headword, entry.Definition)
//	}
//
// Looking up a word in an SDX dictionary:
//
//	r, err := glossdict.OpenSDX("dictionary.ifo")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	def, ok := r.Search("hello")
//
// # Package structure
//
// This package is a thin convenience wrapper around the bgl and sdx
// packages, which can be used directly for access to format-specific
// functionality (BGL resource extraction options, SDX's Dump and the SDX
// writer).
package glossdict

import (
	"github.com/glossdict/glossdict/bgl"
	"github.com/glossdict/glossdict/sdx"
)

// Entry is a single headword/definition pair, with zero or more alternate
// surface forms, as yielded by the Dictionary that OpenBGL returns. SDX
// lookups through *sdx.Reader return definition strings, not Entry values.
type Entry struct {
	Headword   string
	Definition string
	Alternates []string
}

// Dictionary is the sequential-read contract returned by OpenBGL: repeated
// calls to Next yield entries until ok is false. SDX dictionaries are not
// exposed through it; OpenSDX returns *sdx.Reader, which has no Next method.
type Dictionary interface {
	Next() (Entry, bool, error)
	Close() error
}

// bglDictionary adapts *bgl.Dictionary to the Dictionary interface.
type bglDictionary struct {
	d *bgl.Dictionary
}

func (b *bglDictionary) Next() (Entry, bool, error) {
	e, ok, err := b.d.Next()
	if err != nil || !ok {
		return Entry{}, ok, err
	}
	return Entry{Headword: e.Headword, Definition: e.Definition, Alternates: e.Alternates}, true, nil
}

func (b *bglDictionary) Close() error {
	return b.d.Close()
}

// OpenBGL opens path as a BGL dictionary, per spec §4.1.
func OpenBGL(path string, opts ...bgl.Option) (Dictionary, error) {
	d, err := bgl.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	return &bglDictionary{d: d}, nil
}

// OpenSDX opens ifoPath as an SDX dictionary, per spec §4.2. The returned
// *sdx.Reader is the concrete type rather than the Dictionary interface:
// SDX is a random-access lookup (Search, Dump), not sequential iteration,
// and the two access patterns aren't usefully unified behind one contract.
func OpenSDX(ifoPath string) (*sdx.Reader, error) {
	return sdx.Open(ifoPath)
}
