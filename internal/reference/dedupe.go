package reference

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Canonicalize re-encodes a JSON value with object keys sorted and no
// insignificant whitespace. Numbers keep their literal form.
func Canonicalize(item json.RawMessage) (json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(item))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &DecodeError{Message: "invalid JSON value", Cause: err}
	}
	return encode(v, "")
}

// ContentHash is the hex sha256 of the canonical form of item.
func ContentHash(item json.RawMessage) (string, error) {
	canonical, err := Canonicalize(item)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Dedupe drops items whose content hash was already seen, keeping the first
// occurrence. Returned items are in canonical form, so Dedupe is idempotent.
func Dedupe(items []json.RawMessage) ([]json.RawMessage, error) {
	seen := make(map[[sha256.Size]byte]struct{}, len(items))
	out := make([]json.RawMessage, 0, len(items))

	for _, item := range items {
		canonical, err := Canonicalize(item)
		if err != nil {
			return nil, err
		}
		sum := sha256.Sum256(canonical)
		if _, dup := seen[sum]; dup {
			continue
		}
		seen[sum] = struct{}{}
		out = append(out, canonical)
	}
	return out, nil
}

// Encode renders items as the pretty-printed array stored in cache files.
func Encode(items []json.RawMessage) ([]byte, error) {
	if items == nil {
		items = []json.RawMessage{}
	}
	return encode(items, "  ")
}

func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, &DecodeError{Message: "failed to encode JSON", Cause: err}
	}
	if indent == "" {
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	}
	return buf.Bytes(), nil
}
