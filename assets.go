package pdfview

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
)

// viewerScript is the bundled script the generated viewer page loads. It is
// compiled into the binary and copied into the cache directory on demand.
//
//go:embed asset/viewer.js
var viewerScript []byte

// viewerScriptChecksum is the SHA-256 hex digest of the bundled script,
// compared against the cached copy to detect staleness.
var viewerScriptChecksum = func() string {
	sum := sha256.Sum256(viewerScript)
	return hex.EncodeToString(sum[:])
}()
