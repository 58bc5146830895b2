package bleve

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/single"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/whitespace"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/kailas-cloud/seekr/internal/db"
)

const (
	// sourceField keeps the original JSON document; it is stored, never indexed.
	sourceField = "__source"
	// suggestAnalyzer lowercases the whole value as one token for prefix matching.
	suggestAnalyzer = "seekr_suggest"
	// whitespaceAnalyzer splits on whitespace only, without lowercasing.
	whitespaceAnalyzer = "seekr_whitespace"
)

var builtinAnalyzers = map[string]string{
	"standard": standard.Name,
	"simple":   simple.Name,
	"keyword":  keyword.Name,
	"english":  en.AnalyzerName,
}

var tokenizers = map[string]string{
	"standard":   unicode.Name,
	"whitespace": whitespace.Name,
	"keyword":    single.Name,
}

var tokenFilters = map[string]string{
	"lowercase": lowercase.Name,
	"stop":      en.StopName,
	"snowball":  en.SnowballStemmerName,
	"stemmer":   en.SnowballStemmerName,
}

// buildMapping translates an index definition into a bleve mapping.
// Sub-fields become extra field mappings on the same property, named parent.sub.
func buildMapping(def *db.IndexDefinition) (*mapping.IndexMappingImpl, error) {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	if err := im.AddCustomAnalyzer(suggestAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     single.Name,
		"token_filters": []interface{}{lowercase.Name},
	}); err != nil {
		return nil, fmt.Errorf("register suggest analyzer: %w", err)
	}
	if err := im.AddCustomAnalyzer(whitespaceAnalyzer, map[string]interface{}{
		"type":      custom.Name,
		"tokenizer": whitespace.Name,
	}); err != nil {
		return nil, fmt.Errorf("register whitespace analyzer: %w", err)
	}

	for _, a := range def.Analyzers {
		tok, ok := tokenizers[a.Tokenizer]
		if !ok {
			return nil, fmt.Errorf("analyzer %s: unsupported tokenizer %q", a.Name, a.Tokenizer)
		}
		filters := make([]interface{}, 0, len(a.Filters))
		for _, f := range a.Filters {
			name, ok := tokenFilters[f]
			if !ok {
				return nil, fmt.Errorf("analyzer %s: unsupported token filter %q", a.Name, f)
			}
			filters = append(filters, name)
		}
		if err := im.AddCustomAnalyzer(a.Name, map[string]interface{}{
			"type":          custom.Name,
			"tokenizer":     tok,
			"token_filters": filters,
		}); err != nil {
			return nil, fmt.Errorf("register analyzer %s: %w", a.Name, err)
		}
	}

	doc := bleve.NewDocumentMapping()
	doc.Dynamic = false

	for i := range def.Fields {
		f := &def.Fields[i]
		fms := []*mapping.FieldMapping{fieldMapping(f, f.Name)}
		for j := range f.SubFields {
			fms = append(fms, fieldMapping(&f.SubFields[j], f.Path(f.SubFields[j].Name)))
		}
		doc.AddFieldMappingsAt(f.Name, fms...)
	}

	src := bleve.NewTextFieldMapping()
	src.Index = false
	src.Store = true
	src.IncludeInAll = false
	src.DocValues = false
	doc.AddFieldMappingsAt(sourceField, src)

	im.DefaultMapping = doc
	if err := im.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mapping: %w", err)
	}
	return im, nil
}

func fieldMapping(f *db.IndexField, name string) *mapping.FieldMapping {
	var fm *mapping.FieldMapping
	switch f.Type {
	case db.FieldText:
		fm = bleve.NewTextFieldMapping()
		fm.Analyzer = analyzerName(f.Analyzer)
	case db.FieldKeyword:
		fm = bleve.NewTextFieldMapping()
		fm.Analyzer = keyword.Name
	case db.FieldCompletion:
		fm = bleve.NewTextFieldMapping()
		fm.Analyzer = suggestAnalyzer
	case db.FieldFloat, db.FieldInteger:
		fm = bleve.NewNumericFieldMapping()
	case db.FieldDate:
		fm = bleve.NewDateTimeFieldMapping()
	case db.FieldBoolean:
		fm = bleve.NewBooleanFieldMapping()
	default:
		fm = bleve.NewTextFieldMapping()
	}
	fm.Name = name
	fm.Store = false
	fm.IncludeInAll = false
	return fm
}

func analyzerName(name string) string {
	switch {
	case name == "":
		return standard.Name
	case name == "whitespace":
		return whitespaceAnalyzer
	default:
		if builtin, ok := builtinAnalyzers[name]; ok {
			return builtin
		}
		return name
	}
}

// suggestSources finds completion fields and the property whose value they index.
func suggestSources(im *mapping.IndexMappingImpl) map[string]string {
	out := make(map[string]string)
	if im.DefaultMapping == nil {
		return out
	}
	for prop, dm := range im.DefaultMapping.Properties {
		for _, fm := range dm.Fields {
			if fm.Analyzer == suggestAnalyzer {
				out[fm.Name] = prop
			}
		}
	}
	return out
}
