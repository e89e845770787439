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

package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUTF8_EmptyCharsetPassesThrough(t *testing.T) {
	t.Parallel()

	got, err := ToUTF8([]byte{0xe9}, "")
	require.NoError(t, err)
	assert.Equal(t, string([]byte{0xe9}), got)
}

func TestToUTF8_UTF8PassesThrough(t *testing.T) {
	t.Parallel()

	got, err := ToUTF8([]byte("café"), "UTF-8")
	require.NoError(t, err)
	assert.Equal(t, "café", got)
}

func TestToUTF8_ISO88591(t *testing.T) {
	t.Parallel()

	// 0xe9 in ISO-8859-1/Latin-1 is U+00E9, "é".
	got, err := ToUTF8([]byte{0xe9}, "ISO-8859-1")
	require.NoError(t, err)
	assert.Equal(t, "é", got)
}

func TestToUTF8_UnknownCharsetReturnsBytesAndError(t *testing.T) {
	t.Parallel()

	got, err := ToUTF8([]byte("abc"), "KOI7")
	assert.ErrorIs(t, err, ErrUnknownCharset)
	assert.Equal(t, "abc", got)
}

func TestResolveIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, ResolveIndex(0))
	assert.Equal(t, 13, ResolveIndex(13))
	assert.Equal(t, 0, ResolveIndex(65))
	assert.Equal(t, 1, ResolveIndex(66))
}

func TestFromBGLIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ISO-8859-1", FromBGLIndex(0))
	assert.Equal(t, "CP1253", FromBGLIndex(8))
	assert.Equal(t, "CP874", FromBGLIndex(13))
	// index 78 resolves to 78-65=13 -> CP874, the "over 64" fixup.
	assert.Equal(t, "CP874", FromBGLIndex(78))
	assert.Equal(t, "", FromBGLIndex(200))
}

func TestFromLanguageIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "English", FromLanguageIndex(0))
	assert.Equal(t, "Japanese", FromLanguageIndex(8))
	assert.Equal(t, "Armenian", FromLanguageIndex(59))
	assert.Equal(t, "", FromLanguageIndex(60))
}
