package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Word is one catalog entry available for a user's curriculum. Unlike the
// teacher's Mandarin-only vocabulary row, a word is scoped to a language so
// the same catalog table can serve more than one target language.
type Word struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Language        string    `json:"language" db:"language"`
	Headword        string    `json:"headword" db:"headword"`
	Translation     string    `json:"translation" db:"translation"`
	ExampleSentence *string   `json:"example_sentence,omitempty" db:"example_sentence"`
	ImageURL        *string   `json:"image_url,omitempty" db:"image_url"`
	AudioURL        *string   `json:"audio_url,omitempty" db:"audio_url"`
	Level           int       `json:"level" db:"level"`
	Category        *string   `json:"category,omitempty" db:"category"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// CatalogRepository is a read-only view over the word catalog. Ingesting
// and curating words is out of scope here; this package only reads what
// already exists.
type CatalogRepository interface {
	GetWord(ctx context.Context, id uuid.UUID) (*Word, error)
	GetWords(ctx context.Context, ids []uuid.UUID) ([]Word, error)
	RandomDistractors(ctx context.Context, language string, excludeID uuid.UUID, level int, n int) ([]Word, error)
	NextUnlearnedWords(ctx context.Context, userID uuid.UUID, language string, limit int) ([]Word, error)
}
