package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Token is a single token of an analyzed document.
type Token struct {
	Text   string
	POS    string // Coarse part-of-speech tag (NOUN, VERB, ...)
	IsStop bool
}

// Entity is a named-entity span reported by the NLP pipeline.
type Entity struct {
	Text  string
	Label string
}

// AnalyzedDocument is the structured output of one NLP pipeline invocation.
// It is produced by a pipeline and only read by the derived-metrics engine.
type AnalyzedDocument struct {
	Tokens    []Token
	Entities  []Entity
	Sentences []string
	// Polarity is the document-level sentiment score as reported by the pipeline.
	Polarity float64
}

// WordTag pairs a token with its coarse part-of-speech tag.
type WordTag struct {
	Word string `json:"word"`
	Tag  string `json:"tag"`
}

// EntityLabel pairs an entity's surface text with its type label.
type EntityLabel struct {
	Entity string `json:"entity"`
	Label  string `json:"label"`
}

// SentimentRecord is the aggregate sentiment of a document.
type SentimentRecord struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Attempt records one provider invocation made while serving a generation request.
type Attempt struct {
	Provider string `json:"provider"`
	Error    string `json:"error,omitempty"` // Empty when the attempt succeeded
}

// GenerationRecord is a journal entry describing one completed generation request.
type GenerationRecord struct {
	Id        ID        `json:"id"`
	Prompt    string    `json:"prompt"`
	Requested string    `json:"requested,omitempty"` // Provider named by the caller, empty when the primary was used
	Provider  string    `json:"provider,omitempty"`  // Provider that produced the response, empty when degraded
	Model     string    `json:"model,omitempty"`
	Response  string    `json:"response"`
	Attempts  []Attempt `json:"attempts,omitempty"`
	Degraded  bool      `json:"degraded"` // True when every candidate failed and the apology was returned
	CreatedAt time.Time `json:"created_at"`
}
