package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/piwi3910/FilmCut/internal/model"
)

// hashKey builds "prefix:sha256(parts...)".
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes the hex SHA-256 of data.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// PackKey identifies a packing request. Instance order is part of the key
// because it decides placement order.
func PackKey(instances []model.RectangleInstance, opts model.PackingOptions) string {
	return hashKey("pack", instances, opts.WithDefaults())
}
