package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a "<stage>:<digest>" key from the stage name and the
// JSON encoding of its distinguishing inputs. JSON keeps the digest stable
// across processes: struct field order is fixed, so equal opts always
// produce equal keys.
func hashKey(stage string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return stage + ":" + Hash(data)
}

// Hash returns the full hex SHA-256 digest of data. Content hashes feed
// cache keys, so the full 256 bits are kept rather than truncated.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
