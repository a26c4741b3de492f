package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Metadata describes one ingested jobs document
type Metadata struct {
	Source    string `json:"source,omitempty"` // file name or path, when known
	Timestamp string `json:"timestamp"`        // RFC3339 format
	Hash      string `json:"hash"`             // SHA256 hex digest of the raw bytes
	Size      int    `json:"size"`             // raw size in bytes
	Count     int    `json:"count"`            // number of records parsed
}

// NewMetadata creates a new Metadata instance stamped with now
func NewMetadata(content []byte, source string, count int, now time.Time) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: now.UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Size:      len(content),
		Count:     count,
	}
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
