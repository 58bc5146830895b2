package graphql

import (
	"errors"

	"github.com/graphql-go/graphql"

	"github.com/kailas-cloud/seekr/internal/domain"
	dombatch "github.com/kailas-cloud/seekr/internal/domain/batch"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	"github.com/kailas-cloud/seekr/internal/domain/interaction"
	documentuc "github.com/kailas-cloud/seekr/internal/usecase/document"
	healthuc "github.com/kailas-cloud/seekr/internal/usecase/health"
)

type resolver struct {
	svc Services
}

// mutationResult turns client errors into an unsuccessful envelope.
// Engine failures surface as GraphQL errors.
func mutationResult(err error, fields map[string]any) (any, error) {
	if err != nil {
		if domain.IsClientError(err) || errors.Is(err, domain.ErrProfilesDisabled) {
			fields["success"] = false
			fields["message"] = err.Error()
			return fields, nil
		}
		return nil, err
	}
	fields["success"] = true
	return fields, nil
}

func documentResponse(doc domdoc.Document, err error, message string) (any, error) {
	fields := map[string]any{"message": message}
	if err == nil {
		fields["document"] = doc
	}
	return mutationResult(err, fields)
}

func (r *resolver) createDocument(p graphql.ResolveParams) (any, error) {
	doc, err := r.svc.Documents.Create(p.Context, createInput(inputMap(p.Args, "input")))
	return documentResponse(doc, err, "document created")
}

func (r *resolver) updateDocument(p graphql.ResolveParams) (any, error) {
	id, _ := stringArg(p.Args, "id")
	doc, err := r.svc.Documents.Update(p.Context, id, patchFields(inputMap(p.Args, "input")))
	return documentResponse(doc, err, "document updated")
}

func (r *resolver) deleteDocument(p graphql.ResolveParams) (any, error) {
	id, _ := stringArg(p.Args, "id")
	err := r.svc.Documents.Delete(p.Context, id)
	return mutationResult(err, map[string]any{"message": "document deleted"})
}

func (r *resolver) bulkCreateDocuments(p graphql.ResolveParams) (any, error) {
	raw, _ := p.Args["inputs"].([]any)
	inputs := make([]documentuc.CreateInput, 0, len(raw))
	for _, v := range raw {
		m, _ := v.(map[string]any)
		inputs = append(inputs, createInput(m))
	}

	results := r.svc.Documents.BulkCreate(p.Context, inputs)
	items := make([]map[string]any, 0, len(results))
	for _, res := range results {
		item := map[string]any{
			"index":   res.Index(),
			"success": res.Status() == dombatch.StatusOK,
		}
		if res.ID() != "" {
			item["id"] = res.ID()
		}
		if res.Err() != nil {
			item["message"] = res.Err().Error()
		}
		items = append(items, item)
	}
	sum := dombatch.Summarize(results)
	return map[string]any{"succeeded": sum.Succeeded, "failed": sum.Failed, "items": items}, nil
}

func (r *resolver) recordInteraction(p graphql.ResolveParams) (any, error) {
	userID, _ := stringArg(p.Args, "userId")
	docID, _ := stringArg(p.Args, "documentId")
	raw, _ := stringArg(p.Args, "kind")
	kind, err := interaction.Parse(raw)
	if err != nil {
		return documentResponse(domdoc.Document{}, err, "")
	}
	doc, err := r.svc.Interactions.Record(p.Context, userID, docID, kind)
	return documentResponse(doc, err, "interaction recorded")
}

func (r *resolver) resetProfile(p graphql.ResolveParams) (any, error) {
	userID, _ := stringArg(p.Args, "userId")
	err := r.svc.Interactions.Reset(p.Context, userID)
	return mutationResult(err, map[string]any{"message": "profile reset"})
}

// getDocument resolves to null for unknown or malformed ids.
func (r *resolver) getDocument(p graphql.ResolveParams) (any, error) {
	id, _ := stringArg(p.Args, "id")
	doc, err := r.svc.Documents.Get(p.Context, id)
	if err != nil {
		if domain.IsClientError(err) {
			return nil, nil
		}
		return nil, err
	}
	return doc, nil
}

func (r *resolver) search(p graphql.ResolveParams) (any, error) {
	return r.svc.Search.Search(p.Context, searchOptions(inputMap(p.Args, "input"))...)
}

func (r *resolver) searchByCategory(p graphql.ResolveParams) (any, error) {
	category, _ := stringArg(p.Args, "category")
	return r.svc.Search.ByCategory(p.Context, category, intArg(p.Args, "page"), intArg(p.Args, "size"))
}

func (r *resolver) searchByTags(p graphql.ResolveParams) (any, error) {
	tags, _ := stringsArg(p.Args, "tags")
	return r.svc.Search.ByTags(p.Context, tags, intArg(p.Args, "page"), intArg(p.Args, "size"))
}

func (r *resolver) suggest(p graphql.ResolveParams) (any, error) {
	prefix, _ := stringArg(p.Args, "prefix")
	return r.svc.Search.Suggest(p.Context, prefix)
}

func (r *resolver) recommendations(p graphql.ResolveParams) (any, error) {
	id, _ := stringArg(p.Args, "id")
	return r.svc.Search.Recommend(p.Context, id, intArg(p.Args, "limit"))
}

func (r *resolver) recommendationsForUser(p graphql.ResolveParams) (any, error) {
	userID, _ := stringArg(p.Args, "userId")
	return r.svc.Search.RecommendForUser(p.Context, userID, intArg(p.Args, "limit"))
}

func (r *resolver) categories(p graphql.ResolveParams) (any, error) {
	return r.svc.Search.Categories(p.Context), nil
}

func (r *resolver) tags(p graphql.ResolveParams) (any, error) {
	return r.svc.Search.Tags(p.Context), nil
}

func (r *resolver) healthCheck(p graphql.ResolveParams) (any, error) {
	rep := r.svc.Health.Check(p.Context)
	checks := make([]map[string]any, 0, len(rep.Checks))
	for _, name := range []string{healthuc.CheckEngine, healthuc.CheckRedis} {
		if res, ok := rep.Checks[name]; ok {
			checks = append(checks, map[string]any{"name": name, "status": string(res)})
		}
	}
	return map[string]any{
		"status":  string(rep.Status),
		"message": rep.Message,
		"checks":  checks,
	}, nil
}
