package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/seekr/internal/domain/search/request"
	"github.com/kailas-cloud/seekr/internal/domain/search/tiebreak"
	chiTransport "github.com/kailas-cloud/seekr/internal/transport/chi"
)

type deleted struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// SearchAction runs a filtered full-text search.
func SearchAction(ctx context.Context, cmd *cli.Command) error {
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := s.app.Search.Search(ctx, searchOptions(cmd)...)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	return s.print(chiTransport.SearchResultToAPI(&res))
}

func searchOptions(cmd *cli.Command) []request.Option {
	opts := []request.Option{request.WithQuery(cmd.Args().First())}

	strs := []struct {
		flag string
		opt  func(string) request.Option
	}{
		{"brand", request.WithBrand},
		{"color", request.WithColor},
		{"product-size", request.WithProductSize},
		{"category", request.WithCategory},
		{"condition", request.WithCondition},
	}
	for _, f := range strs {
		if v := cmd.String(f.flag); v != "" {
			opts = append(opts, f.opt(v))
		}
	}
	if tags := cmd.StringSlice("tag"); len(tags) > 0 {
		opts = append(opts, request.WithTags(tags...))
	}

	floats := []struct {
		flag string
		opt  func(float64) request.Option
	}{
		{"min-price", request.WithMinPrice},
		{"max-price", request.WithMaxPrice},
		{"min-rating", request.WithMinRating},
	}
	for _, f := range floats {
		if cmd.IsSet(f.flag) {
			opts = append(opts, f.opt(cmd.Float(f.flag)))
		}
	}

	if cmd.IsSet("page") {
		opts = append(opts, request.WithPage(cmd.Int("page")))
	}
	if cmd.IsSet("size") {
		opts = append(opts, request.WithPageSize(cmd.Int("size")))
	}
	if v := cmd.String("sort"); v != "" {
		opts = append(opts, request.WithTiebreak(tiebreak.Tiebreak(v)))
	}
	return opts
}

// SuggestAction prints title completions for a prefix.
func SuggestAction(ctx context.Context, cmd *cli.Command) error {
	prefix, err := requireArg(cmd, "prefix")
	if err != nil {
		return err
	}
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	out, err := s.app.Search.Suggest(ctx, prefix)
	if err != nil {
		return fmt.Errorf("suggest: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return s.print(chiTransport.SuggestResponse{Suggestions: out})
}

// GetAction prints one document.
func GetAction(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.app.Documents.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get %s: %w", id, err)
	}
	return s.print(chiTransport.DocumentToAPI(&doc))
}

// DeleteAction removes one document.
func DeleteAction(ctx context.Context, cmd *cli.Command) error {
	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.app.Documents.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return s.print(deleted{ID: id, Deleted: true})
}

// RecommendAction prints similar documents, or personalized ones with --user.
func RecommendAction(ctx context.Context, cmd *cli.Command) error {
	user := cmd.String("user")
	id := cmd.Args().First()
	if user == "" && id == "" {
		return fmt.Errorf("either <id> or --user is required")
	}
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	limit := cmd.Int("limit")
	if user != "" {
		docs, err := s.app.Search.RecommendForUser(ctx, user, limit)
		if err != nil {
			return fmt.Errorf("recommend for %s: %w", user, err)
		}
		return s.print(chiTransport.DocumentListResponse{Items: chiTransport.DocumentsToAPI(docs)})
	}
	docs, err := s.app.Search.Recommend(ctx, id, limit)
	if err != nil {
		return fmt.Errorf("recommend %s: %w", id, err)
	}
	return s.print(chiTransport.DocumentListResponse{Items: chiTransport.DocumentsToAPI(docs)})
}
