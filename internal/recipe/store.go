package recipe

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"recipehub/internal/platform/postgres"
)

// Filter narrows a recipe listing. Empty fields match everything.
type Filter struct {
	Origin string
	Tag    string
}

// Store defines the interface for recipe data operations.
type Store interface {
	GetRecipeBySlug(ctx context.Context, slug string) (*Recipe, error)
	ListRecipes(ctx context.Context, filter Filter) ([]*Recipe, error)
	SaveRecipe(ctx context.Context, recipe *Recipe) error
	UpdateImageURL(ctx context.Context, slug, imageURL string) (bool, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS recipes (
	id TEXT PRIMARY KEY,
	slug TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL,
	origin TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	ingredients JSONB NOT NULL,
	steps JSONB NOT NULL,
	prep_time TEXT NOT NULL DEFAULT '',
	servings INTEGER NOT NULL DEFAULT 0,
	calories INTEGER NOT NULL DEFAULT 0,
	tags TEXT[] NOT NULL DEFAULT '{}',
	image_url TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

var recipeColumns = []string{
	"id", "slug", "title", "origin", "description", "ingredients", "steps",
	"prep_time", "servings", "calories", "tags", "image_url", "created_at",
}

// recipeRow mirrors a recipes row; list columns are stored as JSONB and tags
// as a text array.
type recipeRow struct {
	ID          string         `db:"id"`
	Slug        string         `db:"slug"`
	Title       string         `db:"title"`
	Origin      string         `db:"origin"`
	Description string         `db:"description"`
	Ingredients []byte         `db:"ingredients"`
	Steps       []byte         `db:"steps"`
	PrepTime    string         `db:"prep_time"`
	Servings    int            `db:"servings"`
	Calories    int            `db:"calories"`
	Tags        pq.StringArray `db:"tags"`
	ImageURL    string         `db:"image_url"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (row *recipeRow) toRecipe() (*Recipe, error) {
	r := &Recipe{
		ID:          row.ID,
		Slug:        row.Slug,
		Title:       row.Title,
		Origin:      row.Origin,
		Description: row.Description,
		PrepTime:    row.PrepTime,
		Servings:    row.Servings,
		Calories:    row.Calories,
		Tags:        []string(row.Tags),
		ImageURL:    row.ImageURL,
		CreatedAt:   row.CreatedAt,
	}
	if err := json.Unmarshal(row.Ingredients, &r.Ingredients); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ingredients: %w", err)
	}
	if err := json.Unmarshal(row.Steps, &r.Steps); err != nil {
		return nil, fmt.Errorf("failed to unmarshal steps: %w", err)
	}
	return r, nil
}

// PostgresStore implements the Store interface for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates the recipes table if needed and returns a store.
func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	if err := postgres.EnsureSchema(db, schema); err != nil {
		return nil, fmt.Errorf("failed to create recipes table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// GetRecipeBySlug retrieves a recipe by its slug. It returns nil, nil when no
// recipe matches.
func (s *PostgresStore) GetRecipeBySlug(ctx context.Context, slug string) (*Recipe, error) {
	query, args, err := postgres.Builder.
		Select(recipeColumns...).
		From("recipes").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recipe query: %w", err)
	}

	var row recipeRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe by slug: %w", err)
	}
	return row.toRecipe()
}

// ListRecipes retrieves recipes matching the filter, newest first.
func (s *PostgresStore) ListRecipes(ctx context.Context, filter Filter) ([]*Recipe, error) {
	q := postgres.Builder.
		Select(recipeColumns...).
		From("recipes").
		OrderBy("created_at DESC")
	if filter.Origin != "" {
		q = q.Where("LOWER(origin) = LOWER(?)", filter.Origin)
	}
	if filter.Tag != "" {
		q = q.Where("? = ANY(tags)", strings.ToLower(filter.Tag))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build recipes query: %w", err)
	}

	var rows []recipeRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}

	recipes := make([]*Recipe, 0, len(rows))
	for i := range rows {
		r, err := rows[i].toRecipe()
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// SaveRecipe inserts a recipe or replaces the one with the same slug. Missing
// ID, slug and creation time are filled in on the passed recipe. When the slug
// already exists the stored row keeps its ID and creation time, and those are
// copied back into recipe.
func (s *PostgresStore) SaveRecipe(ctx context.Context, recipe *Recipe) error {
	query, args, err := saveRecipeQuery(recipe)
	if err != nil {
		return err
	}

	if err := s.db.QueryRowxContext(ctx, query, args...).Scan(&recipe.ID, &recipe.CreatedAt); err != nil {
		return fmt.Errorf("failed to save recipe: %w", err)
	}
	return nil
}

func saveRecipeQuery(recipe *Recipe) (string, []interface{}, error) {
	if err := recipe.Validate(); err != nil {
		return "", nil, err
	}
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	if recipe.Slug == "" {
		recipe.Slug = Slugify(recipe.Title)
	}
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = time.Now().UTC()
	}

	ingredientsJSON, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	stepsJSON, err := json.Marshal(nonNil(recipe.Steps))
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal steps: %w", err)
	}

	query, args, err := postgres.Builder.
		Insert("recipes").
		Columns(recipeColumns...).
		Values(
			recipe.ID,
			recipe.Slug,
			recipe.Title,
			recipe.Origin,
			recipe.Description,
			string(ingredientsJSON),
			string(stepsJSON),
			recipe.PrepTime,
			recipe.Servings,
			recipe.Calories,
			pq.Array(nonNil(recipe.Tags)),
			recipe.ImageURL,
			recipe.CreatedAt,
		).
		Suffix(`ON CONFLICT (slug) DO UPDATE SET
			title = EXCLUDED.title,
			origin = EXCLUDED.origin,
			description = EXCLUDED.description,
			ingredients = EXCLUDED.ingredients,
			steps = EXCLUDED.steps,
			prep_time = EXCLUDED.prep_time,
			servings = EXCLUDED.servings,
			calories = EXCLUDED.calories,
			tags = EXCLUDED.tags,
			image_url = EXCLUDED.image_url
		RETURNING id, created_at`).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build recipe insert: %w", err)
	}
	return query, args, nil
}

// UpdateImageURL points a recipe at a new image. It reports false when no
// recipe has the slug.
func (s *PostgresStore) UpdateImageURL(ctx context.Context, slug, imageURL string) (bool, error) {
	query, args, err := postgres.Builder.
		Update("recipes").
		Set("image_url", imageURL).
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build image update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update image url: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return n > 0, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
