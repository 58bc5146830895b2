package bleve

import (
	"fmt"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/kailas-cloud/seekr/internal/db/query"
)

type booster interface {
	SetBoost(b float64)
}

func boost(q booster, b float64) {
	if b != 0 && b != 1 {
		q.SetBoost(b)
	}
}

// translate converts a clause tree into a bleve query.
func translate(c query.Clause) (blevequery.Query, error) {
	switch c := c.(type) {
	case nil, query.MatchAll:
		return bleve.NewMatchAllQuery(), nil
	case query.MultiMatch:
		return translateMultiMatch(c)
	case query.Term:
		return translateTerm(c)
	case query.Terms:
		dq := bleve.NewDisjunctionQuery()
		for _, v := range c.Values {
			tq := bleve.NewTermQuery(v)
			tq.SetField(c.Field)
			dq.AddQuery(tq)
		}
		boost(dq, c.Boost)
		return dq, nil
	case query.Range:
		if c.GTE == nil && c.LTE == nil {
			return nil, fmt.Errorf("range on %s has no bounds", c.Field)
		}
		inclusive := true
		rq := bleve.NewNumericRangeInclusiveQuery(c.GTE, c.LTE, &inclusive, &inclusive)
		rq.SetField(c.Field)
		return rq, nil
	case query.IDs:
		return bleve.NewDocIDQuery(c.Values), nil
	case *query.Bool:
		return translateBool(c)
	default:
		return nil, fmt.Errorf("unsupported clause %T", c)
	}
}

func translateMultiMatch(c query.MultiMatch) (blevequery.Query, error) {
	fuzziness, err := parseFuzziness(c.Fuzziness)
	if err != nil {
		return nil, err
	}
	dq := bleve.NewDisjunctionQuery()
	for _, f := range c.Fields {
		mq := bleve.NewMatchQuery(c.Query)
		mq.SetField(f.Name)
		mq.SetFuzziness(fuzziness)
		boost(mq, f.Boost)
		dq.AddQuery(mq)
	}
	return dq, nil
}

// parseFuzziness maps the engine fuzziness setting to an edit distance. AUTO uses 1.
func parseFuzziness(s string) (int, error) {
	switch s {
	case "", "0":
		return 0, nil
	case "AUTO":
		return 1, nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 2 {
			return 0, fmt.Errorf("invalid fuzziness %q", s)
		}
		return n, nil
	}
}

func translateTerm(c query.Term) (blevequery.Query, error) {
	switch v := c.Value.(type) {
	case string:
		tq := bleve.NewTermQuery(v)
		tq.SetField(c.Field)
		boost(tq, c.Boost)
		return tq, nil
	case bool:
		bq := bleve.NewBoolFieldQuery(v)
		bq.SetField(c.Field)
		boost(bq, c.Boost)
		return bq, nil
	case float64:
		return numericTerm(c.Field, v, c.Boost), nil
	case int:
		return numericTerm(c.Field, float64(v), c.Boost), nil
	default:
		return nil, fmt.Errorf("unsupported term value %T on %s", c.Value, c.Field)
	}
}

func numericTerm(field string, v, b float64) blevequery.Query {
	inclusive := true
	rq := bleve.NewNumericRangeInclusiveQuery(&v, &v, &inclusive, &inclusive)
	rq.SetField(field)
	boost(rq, b)
	return rq
}

// translateBool maps must and filter to bleve must clauses. A bool without
// must or filter and with minimum_should_match 0 matches every document, as
// should clauses then only contribute to the score.
func translateBool(c *query.Bool) (blevequery.Query, error) {
	bq := bleve.NewBooleanQuery()

	required := append(append([]query.Clause{}, c.Must...), c.Filter...)
	for _, clause := range required {
		q, err := translate(clause)
		if err != nil {
			return nil, err
		}
		bq.AddMust(q)
	}
	for _, clause := range c.Should {
		q, err := translate(clause)
		if err != nil {
			return nil, err
		}
		bq.AddShould(q)
	}
	for _, clause := range c.MustNot {
		q, err := translate(clause)
		if err != nil {
			return nil, err
		}
		bq.AddMustNot(q)
	}

	msm := 0
	if c.MinimumShouldMatch != nil {
		msm = *c.MinimumShouldMatch
	} else if len(required) == 0 && len(c.Should) > 0 {
		msm = 1
	}
	if len(c.Should) > 0 {
		bq.SetMinShould(float64(msm))
	}
	if len(required) == 0 && (msm == 0 || len(c.Should) == 0) {
		bq.AddMust(bleve.NewMatchAllQuery())
	}
	return bq, nil
}
