package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// DiagramKind namespaces rendered diagrams.
const DiagramKind = "diagram"

// Key names a cache entry as kind:digest, where digest is the SHA-256 of
// the JSON encoding of parts. Struct parts contribute every exported field,
// so adding a render option changes the key.
func Key(kind string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, part := range parts {
		_ = enc.Encode(part)
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// DiagramKey names the rendering of the tree with canonical text canonical
// in format f under render options opts. The CLI and the server share it,
// so both address the same entry for the same diagram.
func DiagramKey(canonical, f string, opts any) string {
	return Key(DiagramKind, canonical, f, opts)
}
