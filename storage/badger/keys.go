package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/aiosion/core"
)

// Key prefixes for different data types
const (
	generationRecordPrefix     = "genrec"
	generationRecordDatePrefix = "genrecd"
	generationRecordIDSeq      = "genrecseq"
	analysisPrefix             = "anacache"
)

// makeGenerationRecordKey generates a key for a generation record by ID.
func makeGenerationRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", generationRecordPrefix, id))
}

// makeGenerationDateKey generates a composite key for the recency index.
// Format: prefix:timestamp:id
func makeGenerationDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := []byte(generationRecordDatePrefix + ":")
	buf := make([]byte, len(prefix)+16) // 8 bytes for timestamp + 8 bytes for ID
	offset := copy(buf, prefix)
	// BigEndian keeps lexicographic order equal to chronological order
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeGenerationDatePrefix is the prefix shared by every recency index key.
func makeGenerationDatePrefix() []byte {
	return []byte(generationRecordDatePrefix + ":")
}

// makeAnalysisKey generates a key for a cached analysis by content ID.
func makeAnalysisKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", analysisPrefix, id))
}
