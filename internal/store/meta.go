package store

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	json "github.com/goccy/go-json"
)

// ItemsMeta describes one persisted collection.
type ItemsMeta struct {
	Count     int    `json:"count"`
	Hash      string `json:"hash"`
	UpdatedAt string `json:"updated_at"`
}

// ComputeMeta hashes the items and stamps the collection. When the hash
// matches the previous run's, the previous updated_at is carried forward
// so unchanged data does not look freshly updated.
func ComputeMeta[T any](items []T, previous ItemsMeta, now time.Time) ItemsMeta {
	data, err := json.Marshal(items)
	if err != nil {
		data = nil
	}
	sum := sha256.Sum256(data)

	meta := ItemsMeta{
		Count:     len(items),
		Hash:      hex.EncodeToString(sum[:]),
		UpdatedAt: now.UTC().Format(time.RFC3339),
	}
	if previous.Hash == meta.Hash && previous.UpdatedAt != "" {
		meta.UpdatedAt = previous.UpdatedAt
	}
	return meta
}
