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
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// discardedResources are the two hard-coded BGL resource names the original
// reader silently drops instead of writing to disk (spec §4.1.5).
var discardedResources = map[string]bool{
	"8EAF66FD.bmp":  true,
	"C2EEF3F6.html": true,
}

// parseResourceBlock splits a block-type-2 payload into its filename and
// file content, per spec §4.1.5: a 1-byte filename length, the filename,
// then the remaining bytes are the file content.
func parseResourceBlock(payload []byte) (name string, content []byte, ok bool) {
	if len(payload) < 1 {
		return "", nil, false
	}
	n := int(payload[0])
	if len(payload) < 1+n {
		return "", nil, false
	}
	return string(payload[1 : 1+n]), payload[1+n:], true
}

// extractResource writes a BGL embedded resource to dir/res/<filename>,
// unless the filename is one of the two hard-coded discards or is unsafe.
//
// Filenames from block-type-2 payloads are untrusted input (spec §9): this
// function refuses any name containing a path separator, a ".." component,
// or an absolute path, rather than reproducing the original reader's
// unsanitized behavior.
func extractResource(dir string, payload []byte) error {
	name, content, ok := parseResourceBlock(payload)
	if !ok {
		return fmt.Errorf("%w: malformed resource block", errBGL)
	}
	if discardedResources[name] {
		return nil
	}
	if !safeResourceName(name) {
		return fmt.Errorf("%w: unsafe resource filename %q", errBGL, name)
	}

	resDir := filepath.Join(dir, "res")
	if err := os.MkdirAll(resDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating resource dir: %w", errBGL, err)
	}

	path := filepath.Join(resDir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("%w: writing resource %q: %w", errBGL, name, err)
	}
	return nil
}

// safeResourceName reports whether name is safe to join under a resource
// directory: no path separators, no "..", and not absolute.
func safeResourceName(name string) bool {
	if name == "" || filepath.IsAbs(name) {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	if name == ".." || name == "." {
		return false
	}
	return true
}
