package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	dombatch "github.com/kailas-cloud/seekr/internal/domain/batch"
	domdoc "github.com/kailas-cloud/seekr/internal/domain/document"
	documentuc "github.com/kailas-cloud/seekr/internal/usecase/document"
)

type indexStatus struct {
	Index  string `json:"index"`
	Status string `json:"status"`
}

type seedItem struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type seedResult struct {
	Succeeded int        `json:"succeeded"`
	Failed    int        `json:"failed"`
	Items     []seedItem `json:"items"`
}

// EnsureIndexAction creates the products index when missing.
func EnsureIndexAction(ctx context.Context, cmd *cli.Command) error {
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.app.Schema.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}
	return s.print(indexStatus{Index: s.cfg.Engine.Index, Status: "ready"})
}

// SeedAction ensures the index and writes the sample catalog.
func SeedAction(ctx context.Context, cmd *cli.Command) error {
	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.app.Schema.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}

	results := s.app.Documents.BulkCreate(ctx, sampleProducts())
	sum := dombatch.Summarize(results)
	out := seedResult{Succeeded: sum.Succeeded, Failed: sum.Failed, Items: make([]seedItem, 0, len(results))}
	for _, r := range results {
		item := seedItem{Index: r.Index(), ID: r.ID(), OK: r.Status() == dombatch.StatusOK}
		if r.Err() != nil {
			item.Error = r.Err().Error()
		}
		out.Items = append(out.Items, item)
	}
	if err := s.print(out); err != nil {
		return err
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d sample products failed", sum.Failed, len(results))
	}
	return nil
}

func sampleProducts() []documentuc.CreateInput {
	nikePrice, nikeRating := 150.0, 4.5
	adidasPrice, adidasRating := 180.0, 4.7
	return []documentuc.CreateInput{
		{
			ID: "nike-air-max-270",
			Attributes: domdoc.Attributes{
				Title:      "Nike Air Max 270",
				Content:    "Classic Nike Air Max 270 in black color",
				Category:   "shoes",
				Brand:      "Nike",
				Color:      "black",
				Size:       "42",
				Condition:  "new",
				Tags:       []string{"running", "sneakers"},
				Price:      &nikePrice,
				Rating:     &nikeRating,
				Popularity: 0.8,
				Boosted:    true,
			},
		},
		{
			ID: "adidas-ultraboost-22",
			Attributes: domdoc.Attributes{
				Title:      "Adidas Ultraboost 22",
				Content:    "Adidas Ultraboost 22 in white color",
				Category:   "shoes",
				Brand:      "Adidas",
				Color:      "white",
				Size:       "43",
				Condition:  "new",
				Tags:       []string{"running"},
				Price:      &adidasPrice,
				Rating:     &adidasRating,
				Popularity: 0.7,
			},
		},
	}
}
