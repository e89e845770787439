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

// Package charset converts the legacy single-byte encodings used by
// bilingual dictionary formats (BGL, StarDict) into UTF-8.
//
// Every recognized legacy name maps to a golang.org/x/text/encoding/charmap
// table ("UTF-8" is passed through unchanged), which never fails to decode: undefined code points become U+FFFD. That
// gives the "never aborts, advance one byte and continue on an unmappable
// sequence" behavior dictionary readers need for free, without any manual
// byte-skipping loop.
package charset

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// errCharset is the base error for all charset package errors.
var errCharset = fmt.Errorf("charset")

// ErrUnknownCharset indicates a charset name with no known mapping.
var ErrUnknownCharset = fmt.Errorf("%w: unknown charset", errCharset)

// utf8Name is the pass-through charset: input bytes are assumed to already
// be valid UTF-8 and are returned unchanged.
const utf8Name = "UTF-8"

// table maps the legacy charset names named in this library's on-disk
// contract to their golang.org/x/text encoding.
var table = map[string]encoding.Encoding{
	"ISO-8859-1":  charmap.ISO8859_1,
	"ISO-8859-2":  charmap.ISO8859_2,
	"ISO-8859-5":  charmap.ISO8859_5,
	"ISO-8859-9":  charmap.ISO8859_9,
	"ISO-8859-14": charmap.ISO8859_14,
	"ISO-8859-15": charmap.ISO8859_15,
	"CP1253":      charmap.Windows1253,
	"CP1256":      charmap.Windows1256,
	"CP1257":      charmap.Windows1257,
	"CP874":       charmap.Windows874,
}

// ToUTF8 converts b, encoded in the named legacy charset, to a UTF-8 string.
//
// An empty name passes b through unchanged, per the "default charset absent"
// rule dictionary metadata relies on. An unrecognized name returns
// ErrUnknownCharset along with b converted as-is (the caller may still use
// the bytes; the dictionary as a whole remains usable, consistent with the
// CharsetFailure semantics of this library: unconvertible input never aborts
// iteration).
func ToUTF8(b []byte, name string) (string, error) {
	if len(b) == 0 || name == "" || name == utf8Name {
		return string(b), nil
	}

	enc, ok := table[name]
	if !ok {
		return string(b), fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}

	// charmap decoders never return an error: unmapped bytes decode to
	// utf8.RuneError, which is exactly the "skip and continue" behavior
	// this library requires.
	out, err := enc.NewDecoder().String(string(b))
	if err != nil {
		return string(b), fmt.Errorf("%w: decoding %q: %w", errCharset, name, err)
	}
	return out, nil
}

// ResolveIndex applies the BGL charset-index fixup: raw index bytes above 64
// encode the same charset as index-65, a quirk of the on-disk format that
// must be reproduced exactly (spec §6, §8 "Language/charset table
// stability").
func ResolveIndex(b byte) int {
	v := int(b)
	if v > 64 {
		v -= 65
	}
	return v
}

// BGLTable is the 14-entry charset-index table used by BGL metadata blocks
// (spec §6). Index i is the charset name for a charset-index byte that
// resolves (via ResolveIndex) to i.
var BGLTable = [14]string{
	0:  "ISO-8859-1",
	1:  "ISO-8859-1",
	2:  "ISO-8859-2",
	3:  "ISO-8859-5",
	4:  "ISO-8859-14",
	5:  "ISO-8859-14",
	6:  "ISO-8859-15",
	7:  "CP1257",
	8:  "CP1253",
	9:  "ISO-8859-15",
	10: "ISO-8859-9",
	11: "ISO-8859-9",
	12: "CP1256",
	13: "CP874",
}

// FromBGLIndex resolves a raw BGL charset-index byte to its charset name,
// applying ResolveIndex and bounds-checking against BGLTable. An out-of-range
// index returns the empty string (treated the same as "charset not
// declared").
func FromBGLIndex(b byte) string {
	i := ResolveIndex(b)
	if i < 0 || i >= len(BGLTable) {
		return ""
	}
	return BGLTable[i]
}

// LanguageTable is the 60-entry language table used by BGL metadata blocks
// for source/target language fields (spec §6). Reproduced verbatim from the
// on-disk contract; must not be loaded at runtime or otherwise made mutable.
var LanguageTable = [60]string{
	0:  "English",
	1:  "French",
	2:  "Italian",
	3:  "Spanish",
	4:  "Dutch",
	5:  "Portuguese",
	6:  "German",
	7:  "Russian",
	8:  "Japanese",
	9:  "Traditional Chinese",
	10: "Simplified Chinese",
	11: "Greek",
	12: "Korean",
	13: "Turkish",
	14: "Hebrew",
	15: "Arabic",
	16: "Thai",
	17: "Other",
	18: "Other Simplified Chinese dialects",
	19: "Other Traditional Chinese dialects",
	20: "Other Eastern-European languages",
	21: "Other Western-European languages",
	22: "Other Russian languages",
	23: "Other Japanese languages",
	24: "Other Baltic languages",
	25: "Other Greek languages",
	26: "Other Korean dialects",
	27: "Other Turkish dialects",
	28: "Other Thai dialects",
	29: "Polish",
	30: "Hungarian",
	31: "Czech",
	32: "Lithuanian",
	33: "Latvian",
	34: "Catalan",
	35: "Croatian",
	36: "Serbian",
	37: "Slovak",
	38: "Albanian",
	39: "Urdu",
	40: "Slovenian",
	41: "Estonian",
	42: "Bulgarian",
	43: "Danish",
	44: "Finnish",
	45: "Icelandic",
	46: "Norwegian",
	47: "Romanian",
	48: "Swedish",
	49: "Ukrainian",
	50: "Belarusian",
	51: "Farsi",
	52: "Basque",
	53: "Macedonian",
	54: "Afrikaans",
	55: "Faeroese",
	56: "Latin",
	57: "Esperanto",
	58: "Tamazight",
	59: "Armenian",
}

// FromLanguageIndex resolves a raw BGL language-index byte to its language
// name. An out-of-range index returns the empty string.
func FromLanguageIndex(b byte) string {
	i := int(b)
	if i < 0 || i >= len(LanguageTable) {
		return ""
	}
	return LanguageTable[i]
}
