package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"vocabpool/internal/coreerr"
	"vocabpool/internal/models"
)

// CatalogRepository is a read-only view over the word catalog. Ingesting
// and curating words happens out of band (seed scripts, an editorial
// tool); this package only ever selects.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func scanWord(row interface {
	Scan(dest ...interface{}) error
}) (models.Word, error) {
	var w models.Word
	err := row.Scan(&w.ID, &w.Language, &w.Headword, &w.Translation,
		&w.ExampleSentence, &w.ImageURL, &w.AudioURL, &w.Level, &w.Category, &w.CreatedAt)
	return w, err
}

const wordColumns = `id, language, headword, translation, example_sentence, image_url, audio_url, level, category, created_at`

// GetWord fetches a single catalog entry.
func (r *CatalogRepository) GetWord(ctx context.Context, id uuid.UUID) (*models.Word, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+wordColumns+` FROM words WHERE id = $1`, id)
	w, err := scanWord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, coreerr.UnknownWord(id.String())
	}
	if err != nil {
		return nil, coreerr.Storage("get word", err)
	}
	return &w, nil
}

// GetWords fetches every word in ids, in no particular order.
func (r *CatalogRepository) GetWords(ctx context.Context, ids []uuid.UUID) ([]models.Word, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT %s FROM words WHERE id IN (%s)`, wordColumns, joinPlaceholders(placeholders))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, coreerr.Storage("get words", err)
	}
	defer rows.Close()

	var out []models.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, coreerr.Storage("scan word", err)
		}
		out = append(out, w)
	}
	return out, nil
}

// RandomDistractors returns up to n words of the same language and level
// that are not excludeID, for building multiple-choice options.
func (r *CatalogRepository) RandomDistractors(ctx context.Context, language string, excludeID uuid.UUID, level int, n int) ([]models.Word, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+wordColumns+`
		FROM words
		WHERE language = $1 AND level = $2 AND id != $3
		ORDER BY RANDOM()
		LIMIT $4
	`, language, level, excludeID, n)
	if err != nil {
		return nil, coreerr.Storage("random distractors", err)
	}
	defer rows.Close()

	var out []models.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, coreerr.Storage("scan distractor", err)
		}
		out = append(out, w)
	}
	return out, nil
}

// NextUnlearnedWords returns up to limit words in language the user has no
// word_progress row for yet, ordered by level then a stable tiebreak, for
// Learn session assembly.
func (r *CatalogRepository) NextUnlearnedWords(ctx context.Context, userID uuid.UUID, language string, limit int) ([]models.Word, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+wordColumns+`
		FROM words w
		WHERE w.language = $1
		AND NOT EXISTS (
			SELECT 1 FROM word_progress p WHERE p.word_id = w.id AND p.user_id = $2
		)
		ORDER BY w.level ASC, w.headword ASC
		LIMIT $3
	`, language, userID, limit)
	if err != nil {
		return nil, coreerr.Storage("next unlearned words", err)
	}
	defer rows.Close()

	var out []models.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, coreerr.Storage("scan unlearned word", err)
		}
		out = append(out, w)
	}
	return out, nil
}
