package graphql

import (
	"fmt"
	"time"

	"github.com/graphql-go/graphql"

	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	"github.com/kailas-cloud/seekr/internal/domain/search/result"
	"github.com/kailas-cloud/seekr/internal/domain/search/tiebreak"
)

func docField(typ graphql.Output, fn func(d *domdoc.Document) any) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			d, ok := p.Source.(domdoc.Document)
			if !ok {
				return nil, fmt.Errorf("unexpected document source %T", p.Source)
			}
			return fn(&d), nil
		},
	}
}

func floatOrNil(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func timeOrNil(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}

var nonNullString = graphql.NewNonNull(graphql.String)

var stringList = graphql.NewNonNull(graphql.NewList(nonNullString))

var documentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Document",
	Fields: graphql.Fields{
		"id":        docField(graphql.NewNonNull(graphql.ID), func(d *domdoc.Document) any { return d.ID() }),
		"title":     docField(nonNullString, func(d *domdoc.Document) any { return d.Title() }),
		"content":   docField(nonNullString, func(d *domdoc.Document) any { return d.Content() }),
		"category":  docField(graphql.String, func(d *domdoc.Document) any { return d.Category() }),
		"brand":     docField(graphql.String, func(d *domdoc.Document) any { return d.Brand() }),
		"color":     docField(graphql.String, func(d *domdoc.Document) any { return d.Color() }),
		"size":      docField(graphql.String, func(d *domdoc.Document) any { return d.Size() }),
		"condition": docField(graphql.String, func(d *domdoc.Document) any { return d.Condition() }),
		"tags": docField(stringList, func(d *domdoc.Document) any {
			if d.Tags() == nil {
				return []string{}
			}
			return d.Tags()
		}),
		"price":           docField(graphql.Float, func(d *domdoc.Document) any { return floatOrNil(d.Price()) }),
		"rating":          docField(graphql.Float, func(d *domdoc.Document) any { return floatOrNil(d.Rating()) }),
		"popularityScore": docField(graphql.NewNonNull(graphql.Float), func(d *domdoc.Document) any { return d.Popularity() }),
		"isBoosted":       docField(graphql.NewNonNull(graphql.Boolean), func(d *domdoc.Document) any { return d.Boosted() }),
		"views":           docField(graphql.NewNonNull(graphql.Int), func(d *domdoc.Document) any { return int(d.Counters().Views) }),
		"clicks":          docField(graphql.NewNonNull(graphql.Int), func(d *domdoc.Document) any { return int(d.Counters().Clicks) }),
		"likes":           docField(graphql.NewNonNull(graphql.Int), func(d *domdoc.Document) any { return int(d.Counters().Likes) }),
		"saves":           docField(graphql.NewNonNull(graphql.Int), func(d *domdoc.Document) any { return int(d.Counters().Saves) }),
		"createdAt":       docField(graphql.NewNonNull(graphql.DateTime), func(d *domdoc.Document) any { return d.CreatedAt() }),
		"updatedAt":       docField(graphql.NewNonNull(graphql.DateTime), func(d *domdoc.Document) any { return d.UpdatedAt() }),
		"lastInteraction": docField(graphql.DateTime, func(d *domdoc.Document) any { return timeOrNil(d.LastInteraction()) }),
		"formattedPrice":  docField(nonNullString, func(d *domdoc.Document) any { return d.FormattedPrice() }),
		"formattedRating": docField(nonNullString, func(d *domdoc.Document) any { return d.FormattedRating() }),
		"excerpt":         docField(nonNullString, func(d *domdoc.Document) any { return d.Excerpt() }),
	},
})

var documentList = graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(documentType)))

func resultField(typ graphql.Output, fn func(r *result.Result) any) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			r, ok := p.Source.(result.Result)
			if !ok {
				return nil, fmt.Errorf("unexpected result source %T", p.Source)
			}
			return fn(&r), nil
		},
	}
}

var searchResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SearchResult",
	Fields: graphql.Fields{
		"documents": resultField(documentList, func(r *result.Result) any { return r.Documents() }),
		"total":     resultField(graphql.NewNonNull(graphql.Int), func(r *result.Result) any { return r.Total() }),
		"took":      resultField(graphql.NewNonNull(graphql.Int), func(r *result.Result) any { return int(r.Took()) }),
		"page":      resultField(graphql.NewNonNull(graphql.Int), func(r *result.Result) any { return r.Page() }),
		"size":      resultField(graphql.NewNonNull(graphql.Int), func(r *result.Result) any { return r.Size() }),
		"hasMore":   resultField(graphql.NewNonNull(graphql.Boolean), func(r *result.Result) any { return r.HasMore() }),
	},
})

var documentResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DocumentResponse",
	Fields: graphql.Fields{
		"success":  &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"message":  &graphql.Field{Type: graphql.String},
		"document": &graphql.Field{Type: documentType},
	},
})

var deleteResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DeleteResponse",
	Fields: graphql.Fields{
		"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"message": &graphql.Field{Type: graphql.String},
	},
})

var bulkItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BulkItemResult",
	Fields: graphql.Fields{
		"index":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"id":      &graphql.Field{Type: graphql.ID},
		"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"message": &graphql.Field{Type: graphql.String},
	},
})

var bulkResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BulkCreateResponse",
	Fields: graphql.Fields{
		"succeeded": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"failed":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"items":     &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(bulkItemType)))},
	},
})

var healthCheckType = graphql.NewObject(graphql.ObjectConfig{
	Name: "HealthCheck",
	Fields: graphql.Fields{
		"name":   &graphql.Field{Type: nonNullString},
		"status": &graphql.Field{Type: nonNullString},
	},
})

var healthStatusType = graphql.NewObject(graphql.ObjectConfig{
	Name: "HealthStatus",
	Fields: graphql.Fields{
		"status":  &graphql.Field{Type: nonNullString},
		"message": &graphql.Field{Type: nonNullString},
		"checks":  &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(healthCheckType)))},
	},
})

var interactionKindEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "InteractionKind",
	Values: graphql.EnumValueConfigMap{
		"VIEW":  &graphql.EnumValueConfig{Value: string(interaction.View)},
		"CLICK": &graphql.EnumValueConfig{Value: string(interaction.Click)},
		"LIKE":  &graphql.EnumValueConfig{Value: string(interaction.Like)},
		"SAVE":  &graphql.EnumValueConfig{Value: string(interaction.Save)},
	},
})

var sortOrderEnum = graphql.NewEnum(graphql.EnumConfig{
	Name:        "SortOrder",
	Description: "Tiebreak for hits with equal relevance.",
	Values: graphql.EnumValueConfigMap{
		"POPULARITY": &graphql.EnumValueConfig{Value: string(tiebreak.Popularity)},
		"RECENCY":    &graphql.EnumValueConfig{Value: string(tiebreak.Recency)},
	},
})

func inputFields(required map[string]graphql.Input, optional map[string]graphql.Input) graphql.InputObjectConfigFieldMap {
	out := graphql.InputObjectConfigFieldMap{}
	for name, t := range required {
		out[name] = &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(t)}
	}
	for name, t := range optional {
		out[name] = &graphql.InputObjectFieldConfig{Type: t}
	}
	return out
}

var tagsInput = graphql.NewList(nonNullString)

var documentAttributeInputs = map[string]graphql.Input{
	"content":         graphql.String,
	"category":        graphql.String,
	"brand":           graphql.String,
	"color":           graphql.String,
	"size":            graphql.String,
	"condition":       graphql.String,
	"tags":            tagsInput,
	"price":           graphql.Float,
	"rating":          graphql.Float,
	"popularityScore": graphql.Float,
	"isBoosted":       graphql.Boolean,
}

var createDocumentInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateDocumentInput",
	Fields: inputFields(
		map[string]graphql.Input{"title": graphql.String},
		withExtra(documentAttributeInputs, map[string]graphql.Input{"id": graphql.ID}),
	),
})

var updateDocumentInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name:   "UpdateDocumentInput",
	Fields: inputFields(nil, withExtra(documentAttributeInputs, map[string]graphql.Input{"title": graphql.String})),
})

var searchInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "SearchInput",
	Fields: inputFields(nil, map[string]graphql.Input{
		"query":       graphql.String,
		"brand":       graphql.String,
		"color":       graphql.String,
		"productSize": graphql.String,
		"category":    graphql.String,
		"condition":   graphql.String,
		"tags":        tagsInput,
		"minPrice":    graphql.Float,
		"maxPrice":    graphql.Float,
		"minRating":   graphql.Float,
		"page":        graphql.Int,
		"size":        graphql.Int,
		"sort":        sortOrderEnum,
	}),
})

func withExtra(base, extra map[string]graphql.Input) map[string]graphql.Input {
	out := make(map[string]graphql.Input, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
