// Package graphql exposes the product catalog as a GraphQL API.
package graphql

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

func idArg() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}
}

func userIDArg() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: nonNullString}
}

func optionalInt() *graphql.ArgumentConfig {
	return &graphql.ArgumentConfig{Type: graphql.Int}
}

// NewSchema builds the executable schema over svc.
func NewSchema(svc Services) (graphql.Schema, error) {
	r := &resolver{svc: svc}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getDocument": &graphql.Field{
				Type:    documentType,
				Args:    graphql.FieldConfigArgument{"id": idArg()},
				Resolve: r.getDocument,
			},
			"search": &graphql.Field{
				Type:    graphql.NewNonNull(searchResultType),
				Args:    graphql.FieldConfigArgument{"input": &graphql.ArgumentConfig{Type: searchInput}},
				Resolve: r.search,
			},
			"searchByCategory": &graphql.Field{
				Type: graphql.NewNonNull(searchResultType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: nonNullString},
					"page":     optionalInt(),
					"size":     optionalInt(),
				},
				Resolve: r.searchByCategory,
			},
			"searchByTags": &graphql.Field{
				Type: graphql.NewNonNull(searchResultType),
				Args: graphql.FieldConfigArgument{
					"tags": &graphql.ArgumentConfig{Type: stringList},
					"page": optionalInt(),
					"size": optionalInt(),
				},
				Resolve: r.searchByTags,
			},
			"suggest": &graphql.Field{
				Type:    stringList,
				Args:    graphql.FieldConfigArgument{"prefix": &graphql.ArgumentConfig{Type: nonNullString}},
				Resolve: r.suggest,
			},
			"recommendations": &graphql.Field{
				Type:    documentList,
				Args:    graphql.FieldConfigArgument{"id": idArg(), "limit": optionalInt()},
				Resolve: r.recommendations,
			},
			"recommendationsForUser": &graphql.Field{
				Type:    documentList,
				Args:    graphql.FieldConfigArgument{"userId": userIDArg(), "limit": optionalInt()},
				Resolve: r.recommendationsForUser,
			},
			"getCategories": &graphql.Field{Type: stringList, Resolve: r.categories},
			"getTags":       &graphql.Field{Type: stringList, Resolve: r.tags},
			"healthCheck":   &graphql.Field{Type: graphql.NewNonNull(healthStatusType), Resolve: r.healthCheck},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createDocument": &graphql.Field{
				Type: graphql.NewNonNull(documentResponseType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createDocumentInput)},
				},
				Resolve: r.createDocument,
			},
			"updateDocument": &graphql.Field{
				Type: graphql.NewNonNull(documentResponseType),
				Args: graphql.FieldConfigArgument{
					"id":    idArg(),
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateDocumentInput)},
				},
				Resolve: r.updateDocument,
			},
			"deleteDocument": &graphql.Field{
				Type:    graphql.NewNonNull(deleteResponseType),
				Args:    graphql.FieldConfigArgument{"id": idArg()},
				Resolve: r.deleteDocument,
			},
			"bulkCreateDocuments": &graphql.Field{
				Type: graphql.NewNonNull(bulkResponseType),
				Args: graphql.FieldConfigArgument{
					"inputs": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(createDocumentInput))),
					},
				},
				Resolve: r.bulkCreateDocuments,
			},
			"recordInteraction": &graphql.Field{
				Type: graphql.NewNonNull(documentResponseType),
				Args: graphql.FieldConfigArgument{
					"userId":     userIDArg(),
					"documentId": idArg(),
					"kind":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(interactionKindEnum)},
				},
				Resolve: r.recordInteraction,
			},
			"resetProfile": &graphql.Field{
				Type:    graphql.NewNonNull(deleteResponseType),
				Args:    graphql.FieldConfigArgument{"userId": userIDArg()},
				Resolve: r.resetProfile,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

// NewHandler serves schema over HTTP (GET and POST, JSON or form bodies).
func NewHandler(schema graphql.Schema, graphiql bool) http.Handler {
	return handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   false,
		GraphiQL: graphiql,
	})
}
