package export

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/sourcegraph/conc/iter"
	"golang.org/x/crypto/argon2"
)

// HashType represents the different hashing algorithms available.
type HashType string

const (
	// HashTypeArgon2id uses the Argon2id algorithm for hashing.
	HashTypeArgon2id HashType = "argon2id"
	// HashTypeSHA256 uses the SHA256 algorithm for hashing.
	HashTypeSHA256 HashType = "sha256"
)

// HashID converts a user ID to a salted hash so exports do not reveal account identifiers.
func HashID(id, salt string, hashType HashType, iterations, memory uint32) string {
	idBytes := []byte(id)

	var hash []byte

	switch hashType {
	case HashTypeArgon2id:
		hash = argon2.IDKey(idBytes, []byte(salt), iterations, memory*1024, 1, 32)
	case HashTypeSHA256:
		hash = []byte(salt)

		h := sha256.New()
		for range iterations {
			h.Reset()
			h.Write(idBytes)
			h.Write(hash)
			hash = h.Sum(nil)
		}
	}

	return hex.EncodeToString(hash)
}

// hashIDs hashes distinct IDs concurrently and returns the mapping from ID to hash.
func hashIDs(ids []string, salt string, hashType HashType, concurrency int, iterations, memory uint32) map[string]string {
	mapper := iter.Mapper[string, string]{MaxGoroutines: max(concurrency, 1)}
	hashes := mapper.Map(ids, func(id *string) string {
		return HashID(*id, salt, hashType, iterations, memory)
	})

	result := make(map[string]string, len(ids))
	for i, id := range ids {
		result[id] = hashes[i]
	}
	return result
}
