// Package schema declares the products index and creates it on demand.
package schema

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/kailas-cloud/seekr/internal/db"
	"github.com/kailas-cloud/seekr/internal/logger"
	"github.com/kailas-cloud/seekr/internal/repository/engineerr"
)

// Field names in the index.
const (
	FieldTitle           = "title"
	FieldContent         = "content"
	FieldCategory        = "category"
	FieldBrand           = "brand"
	FieldColor           = "color"
	FieldSize            = "size"
	FieldCondition       = "condition"
	FieldTags            = "tags"
	FieldPrice           = "price"
	FieldRating          = "rating"
	FieldPopularity      = "popularity_score"
	FieldBoosted         = "is_boosted"
	FieldViews           = "views"
	FieldClicks          = "clicks"
	FieldLikes           = "likes"
	FieldSaves           = "saves"
	FieldCreatedAt       = "created_at"
	FieldUpdatedAt       = "updated_at"
	FieldLastInteraction = "last_interaction"

	FieldTitleKeyword   = FieldTitle + "." + subKeyword
	FieldTitleSuggest   = FieldTitle + "." + subSuggest
	FieldContentKeyword = FieldContent + "." + subKeyword
	FieldBrandKeyword   = FieldBrand + "." + subKeyword
)

// TextAnalyzer is the custom analyzer applied to full-text fields.
const TextAnalyzer = "text_analyzer"

const (
	subKeyword      = "keyword"
	subSuggest      = "suggest"
	keywordMaxChars = 256
)

// Options sizes the index.
type Options struct {
	Shards   int
	Replicas int
}

// Definition returns the products index definition.
func Definition(index string, opts Options) (*db.IndexDefinition, error) {
	return db.NewIndex(index).
		Shards(opts.Shards).
		Replicas(opts.Replicas).
		Analyzer(TextAnalyzer, "standard", "lowercase", "stop", "snowball").
		Text(FieldTitle, TextAnalyzer,
			db.KeywordSub(subKeyword, keywordMaxChars),
			db.CompletionSub(subSuggest),
		).
		Text(FieldContent, TextAnalyzer, db.KeywordSub(subKeyword, keywordMaxChars)).
		Keyword(FieldCategory).
		Text(FieldBrand, "standard", db.KeywordSub(subKeyword, 0)).
		Keyword(FieldColor).
		Keyword(FieldSize).
		Keyword(FieldCondition).
		Keyword(FieldTags).
		Float(FieldPrice).
		Float(FieldRating).
		Float(FieldPopularity).
		Boolean(FieldBoosted).
		Integer(FieldViews).
		Integer(FieldClicks).
		Integer(FieldLikes).
		Integer(FieldSaves).
		Date(FieldCreatedAt).
		Date(FieldUpdatedAt).
		Date(FieldLastInteraction).
		Build()
}

type indexManager interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Manager creates the products index when it is missing.
type Manager struct {
	engine indexManager
	def    *db.IndexDefinition
}

// New creates a schema manager for def.
func New(e indexManager, def *db.IndexDefinition) *Manager {
	return &Manager{engine: e, def: def}
}

// Definition returns the managed index definition.
func (m *Manager) Definition() *db.IndexDefinition { return m.def }

// EnsureIndex creates the index if absent. It is idempotent, and losing a
// creation race to a concurrent caller counts as success.
func (m *Manager) EnsureIndex(ctx context.Context) error {
	log := logger.ForOp(ctx, "ensure_index", "").With(zap.String("index", m.def.Name))

	exists, err := m.engine.IndexExists(ctx, m.def.Name)
	if err != nil {
		log.Error("index existence check failed", zap.Error(err))
		return engineerr.Wrap("check index "+m.def.Name, err)
	}
	if exists {
		log.Debug("index already present")
		return nil
	}

	err = m.engine.CreateIndex(ctx, m.def)
	switch {
	case err == nil:
		log.Info("index created")
		return nil
	case errors.Is(err, db.ErrIndexExists):
		log.Debug("index created concurrently")
		return nil
	default:
		log.Error("index creation failed", zap.Error(err))
		return engineerr.Wrap("create index "+m.def.Name, err)
	}
}
