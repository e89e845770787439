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
	"strings"

	"github.com/glossdict/glossdict/charset"
)

// applyMetadataBlock interprets one block of the metadata pass (spec
// §4.1.3): block type 0 sub-op 0x08 selects the default charset, block type
// 3's second payload byte selects a metadata field. Blocks of any other
// type are ignored by the metadata pass (entry counting is handled
// separately by the caller, since it does not need charset decoding).
func applyMetadataBlock(m *Metadata, b Block) {
	switch b.Type {
	case 0:
		if len(b.Payload) >= 3 && b.Payload[0] == 0x08 {
			m.DefaultCharset = charset.FromBGLIndex(b.Payload[2])
		}
	case 3:
		applyMetadataSubOp(m, b.Payload)
	}
}

// applyMetadataSubOp dispatches a type-3 metadata block by its sub-op byte
// (payload[1]), per the table in spec §4.1.3.
func applyMetadataSubOp(m *Metadata, payload []byte) {
	if len(payload) < 2 {
		return
	}
	subOp := payload[1]
	rest := payload[2:]

	switch subOp {
	case 1:
		m.Title = string(rest)
	case 2:
		m.Author = string(rest)
	case 3:
		m.Email = string(rest)
	case 4:
		m.Copyright = string(rest)
	case 7:
		if len(payload) > 5 {
			m.SourceLang = charset.FromLanguageIndex(payload[5])
		}
	case 8:
		if len(payload) > 5 {
			m.TargetLang = charset.FromLanguageIndex(payload[5])
		}
	case 9:
		m.Description = decodeDescription(rest)
	case 26:
		if len(payload) >= 3 && m.SourceCharset == "" {
			m.SourceCharset = charset.FromBGLIndex(payload[2])
		}
	case 27:
		if len(payload) >= 3 && m.TargetCharset == "" {
			m.TargetCharset = charset.FromBGLIndex(payload[2])
		}
	}
}

// decodeDescription applies the CR-drop/LF-to-<br> rule for the description
// metadata field (spec §4.1.3 sub-op 9).
func decodeDescription(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		switch c {
		case '\r':
		case '\n':
			b.WriteString("<br>")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// resolveCharsets applies the fallback rule of spec §4.1.3 ("Charset
// precedence when a field's primary charset is empty: prefer default, else
// the other declared charset, else leave bytes as-is") and converts the
// raw-byte metadata fields collected during the metadata pass to UTF-8.
func resolveCharsets(m *Metadata) {
	source := m.SourceCharset
	if source == "" {
		source = m.DefaultCharset
	}
	if source == "" {
		source = m.TargetCharset
	}

	target := m.TargetCharset
	if target == "" {
		target = m.DefaultCharset
	}
	if target == "" {
		target = m.SourceCharset
	}

	def := m.DefaultCharset
	if def == "" {
		def = source
	}
	if def == "" {
		def = target
	}

	m.Title, _ = charset.ToUTF8([]byte(m.Title), source)
	m.Author, _ = charset.ToUTF8([]byte(m.Author), def)
	m.Email, _ = charset.ToUTF8([]byte(m.Email), def)
	m.Copyright, _ = charset.ToUTF8([]byte(m.Copyright), def)
	m.Description, _ = charset.ToUTF8([]byte(m.Description), target)

	m.SourceCharset = source
	m.TargetCharset = target
	m.DefaultCharset = def
}
