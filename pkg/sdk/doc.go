// Package seekr embeds the seekr product search engine in a Go program.
//
// The client talks to OpenSearch, Elasticsearch or an embedded bleve index
// directly; no seekr server is involved.
//
//	client, _ := seekr.New(ctx,
//	    seekr.WithOpenSearch("https://localhost:9200"),
//	    seekr.WithBasicAuth("admin", "admin"),
//	)
//	defer client.Close()
//
//	p, _ := client.Products().Create(ctx, seekr.NewProduct{Title: "Nike Air Max 270", Brand: "Nike"})
//	page, _ := client.Search().Query(ctx, seekr.Query{Text: "air max", Brand: "Nike"})
//	recs, _ := client.Search().Similar(ctx, p.ID, 5)
//
// Personalized recommendations need a Redis profile store:
//
//	client, _ := seekr.New(ctx, seekr.WithBleve(""), seekr.WithRedis("localhost:6379", ""))
//	_, _ = client.Interactions().Record(ctx, "user-1", p.ID, seekr.Like)
//	recs, _ = client.Search().ForUser(ctx, "user-1", 5)
package seekr
