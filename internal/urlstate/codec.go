// Package urlstate encodes configuration text into a URL-safe form so an
// editor state can be shared or bookmarked as a link.
package urlstate

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// prefix versions the wire form so the format can evolve without breaking
// previously shared links.
const prefix = "v1:"

// maxDecodedSize caps decompressed output to keep a hostile link from
// expanding into an arbitrarily large string.
const maxDecodedSize = 1 << 20

// Encode compresses and base64url-encodes configuration text.
func Encode(text string) string {
	var buf bytes.Buffer
	w, _ := flate.NewWriter(&buf, flate.BestCompression)
	_, _ = io.WriteString(w, text)
	_ = w.Close()
	return prefix + base64.RawURLEncoding.EncodeToString(buf.Bytes())
}

// Decode reverses Encode. Any failure degrades to the empty string; a
// malformed link never surfaces as an error to the user.
func Decode(encoded string) string {
	text, err := decode(encoded)
	if err != nil {
		return ""
	}
	return text
}

func decode(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	raw, ok := strings.CutPrefix(encoded, prefix)
	if !ok {
		return "", fmt.Errorf("unknown encoding version")
	}
	compressed, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}
	r := flate.NewReader(bytes.NewReader(compressed))
	defer func() { _ = r.Close() }()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(r, maxDecodedSize+1)); err != nil {
		return "", fmt.Errorf("inflate: %w", err)
	}
	if buf.Len() > maxDecodedSize {
		return "", fmt.Errorf("decoded state exceeds %d bytes", maxDecodedSize)
	}
	return buf.String(), nil
}
