// Package idhash computes deterministic content keys.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"revops-engine/internal/domain"
)

// InputsKey computes a deterministic key for a set of inputs.
// Formula: SHA256(canonical JSON of inputs)
// Struct fields marshal in declaration order, so equal inputs always hash
// equally. Returns hex-encoded hash (64 characters).
func InputsKey(in domain.Inputs) (string, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("marshal inputs: %w", err)
	}
	return hashHex(data), nil
}

func hashHex(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
