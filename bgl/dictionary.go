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
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/glossdict/glossdict/charset"
	"github.com/klauspost/compress/flate"
)

const (
	blockTypeEntry    = 1
	blockTypeResource = 2
	blockTypeEntry2   = 10
)

// readCloseResetter mirrors flate.NewReader's concrete return type: an
// io.ReadCloser that can also be reset onto a new underlying reader without
// reallocating, used to rewind between the metadata and entry passes.
type readCloseResetter interface {
	io.ReadCloser
	flate.Resetter
}

// Option configures a Dictionary.
type Option func(*options)

type options struct {
	resourceDir string
}

// WithResourceDir enables extraction of embedded BGL resources (block type
// 2, spec §4.1.5) to dir/res/. Resource extraction is disabled unless this
// option is given.
func WithResourceDir(dir string) Option {
	return func(o *options) { o.resourceDir = dir }
}

// Dictionary is a two-pass BGL reader (spec §4.1.3/§4.1.4): the first pass
// (run during Open) harvests Metadata and counts entries; the second pass,
// driven by repeated calls to Next, yields decoded Entry values.
type Dictionary struct {
	f    *os.File
	z    readCloseResetter
	br   *BlockReader
	meta Metadata
	opts options
	done bool
}

// signature bytes common to every BGL file: 0x12 0x34 0x00, followed by a
// version byte in {0x01, 0x02} (spec §3, §6).
var bglSignaturePrefix = [3]byte{0x12, 0x34, 0x00}

// Open opens path as a BGL file, validates its signature, and runs the
// metadata pass. The returned Dictionary is positioned to begin the entry
// pass; call Next to read entries.
func Open(path string, opts ...Option) (*Dictionary, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailure, err)
	}

	header := make([]byte, 6)
	if _, err := io.ReadFull(f, header); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: reading signature: %w", ErrOpenFailure, err)
	}
	if header[0] != bglSignaturePrefix[0] || header[1] != bglSignaturePrefix[1] || header[2] != bglSignaturePrefix[2] ||
		header[3] == 0 || header[3] > 2 {
		f.Close()
		return nil, fmt.Errorf("%w: bad signature", ErrOpenFailure)
	}

	start := int64(binary.BigEndian.Uint16(header[4:6]))
	if start < 6 {
		f.Close()
		return nil, fmt.Errorf("%w: deflate offset before end of header", ErrOpenFailure)
	}

	if _, err := f.Seek(start, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: seeking to deflate stream: %w", ErrOpenFailure, err)
	}

	fr := flate.NewReader(f)
	z, ok := fr.(readCloseResetter)
	if !ok {
		f.Close()
		return nil, fmt.Errorf("%w: flate reader does not support reset", ErrOpenFailure)
	}

	d := &Dictionary{f: f, z: z, opts: o}
	if err := d.metadataPass(); err != nil {
		f.Close()
		return nil, err
	}
	if err := d.rewind(start); err != nil {
		f.Close()
		return nil, err
	}

	return d, nil
}

// Metadata returns the dictionary's descriptive metadata, as harvested by
// the metadata pass during Open.
func (d *Dictionary) Metadata() Metadata {
	return d.meta
}

// Close releases the underlying file descriptor and decompressor.
func (d *Dictionary) Close() error {
	_ = d.z.Close()
	return d.f.Close()
}

// metadataPass runs the first pass described in spec §4.1.3: it walks every
// block, updating Metadata from types 0 and 3 and counting entry-yielding
// blocks (types 1 and 10).
func (d *Dictionary) metadataPass() error {
	br := NewBlockReader(d.z)
	var numEntries int

	for {
		b, err := br.Next()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrTruncatedStream) {
				break
			}
			return err
		}

		switch b.Type {
		case blockTypeEntry, blockTypeEntry2:
			numEntries++
		default:
			applyMetadataBlock(&d.meta, b)
		}
	}

	d.meta.NumEntries = numEntries
	resolveCharsets(&d.meta)
	return nil
}

// rewind seeks the underlying file back to the start of the deflate stream
// and resets the decompressor, preparing for the entry pass.
func (d *Dictionary) rewind(deflateStart int64) error {
	if _, err := d.f.Seek(deflateStart, io.SeekStart); err != nil {
		return fmt.Errorf("%w: rewinding: %w", ErrOpenFailure, err)
	}
	if err := d.z.Reset(d.f, nil); err != nil {
		return fmt.Errorf("%w: resetting decompressor: %w", ErrOpenFailure, err)
	}
	d.br = NewBlockReader(d.z)
	return nil
}

// Next returns the next entry in on-stream order (spec §5 "BGL blocks are
// emitted strictly in on-stream order"). It returns ok == false with a nil
// err once the block stream is exhausted or ends mid-block. err is non-nil
// for a decompress failure, for an entry block whose headword, definition or
// alternate lengths overrun its payload, and for a failed resource
// extraction; it is never non-nil for ordinary end-of-stream.
//
// Embedded resources (block type 2) encountered along the way are extracted
// as a side effect if resource extraction was enabled via WithResourceDir.
func (d *Dictionary) Next() (Entry, bool, error) {
	if d.done {
		return Entry{}, false, nil
	}

	for {
		b, err := d.br.Next()
		if err != nil {
			d.done = true
			if errors.Is(err, io.EOF) || errors.Is(err, ErrTruncatedStream) {
				return Entry{}, false, nil
			}
			return Entry{}, false, err
		}

		switch b.Type {
		case blockTypeResource:
			if d.opts.resourceDir != "" {
				if err := extractResource(d.opts.resourceDir, b.Payload); err != nil {
					return Entry{}, false, err
				}
			}
		case blockTypeEntry, blockTypeEntry2:
			entry, err := decodeEntry(b.Payload, d.meta.SourceCharset, d.meta.TargetCharset)
			if err != nil {
				return Entry{}, false, err
			}
			return entry, true, nil
		}
	}
}

// decodeEntry decodes a type-1/type-10 block payload into an Entry per spec
// §4.1.4.
func decodeEntry(payload []byte, sourceCharset, targetCharset string) (Entry, error) {
	if len(payload) < 1 {
		return Entry{}, fmt.Errorf("%w: empty entry block", ErrTruncatedStream)
	}

	pos := 0
	lh := int(payload[pos])
	pos++
	if pos+lh > len(payload) {
		return Entry{}, fmt.Errorf("%w: headword overruns block", ErrTruncatedStream)
	}
	headword, _ := charset.ToUTF8(payload[pos:pos+lh], sourceCharset)
	pos += lh

	if pos+2 > len(payload) {
		return Entry{}, fmt.Errorf("%w: missing definition length", ErrTruncatedStream)
	}
	ld := int(payload[pos])<<8 | int(payload[pos+1])
	pos += 2
	if pos+ld > len(payload) {
		return Entry{}, fmt.Errorf("%w: definition overruns block", ErrTruncatedStream)
	}
	defEnd := pos + ld

	def, pos := decodeDefinition(payload, pos, defEnd)
	definition, _ := charset.ToUTF8(def, targetCharset)

	var alternates []string
	for pos < len(payload) {
		la := int(payload[pos])
		pos++
		if pos+la > len(payload) {
			return Entry{}, fmt.Errorf("%w: alternate overruns block", ErrTruncatedStream)
		}
		alt, _ := charset.ToUTF8(payload[pos:pos+la], sourceCharset)
		alternates = append(alternates, alt)
		pos += la
	}

	return Entry{Headword: headword, Definition: definition, Alternates: alternates}, nil
}

// decodeDefinition scans the [pos, defEnd) window of a definition applying
// the escape rules of spec §4.1.4, returning the raw (pre-charset-
// conversion) definition bytes and the cursor position after the window
// (always defEnd: the part-of-speech escape skips the remainder of the
// window rather than continuing to scan it, per spec §9's normative
// "newer" behavior).
func decodeDefinition(payload []byte, pos, defEnd int) ([]byte, int) {
	var out []byte
	for pos < defEnd {
		c := payload[pos]
		switch {
		case c == 0x0A:
			out = append(out, "<br>"...)
			pos++
		case c == 0x14 && pos+2 < defEnd && payload[pos+1] == 0x02:
			idx := int(payload[pos+2]) - 0x30
			if idx >= 0 && idx <= 10 {
				prefix := fmt.Sprintf(`<font color="blue">%s</font> `, PartOfSpeech[idx])
				out = append([]byte(prefix), out...)
			}
			pos = defEnd
		case c == 0x14:
			pos++
		default:
			out = append(out, c)
			pos++
		}
	}
	return out, pos
}
