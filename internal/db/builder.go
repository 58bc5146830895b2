package db

import "encoding/json"

// IndexBuilder is a fluent builder for index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{
		def: IndexDefinition{Name: name},
	}
}

// Shards sets the primary shard count.
func (b *IndexBuilder) Shards(n int) *IndexBuilder {
	b.def.Shards = n
	return b
}

// Replicas sets the replica count.
func (b *IndexBuilder) Replicas(n int) *IndexBuilder {
	b.def.Replicas = n
	return b
}

// Analyzer declares a custom analyzer in the index settings.
func (b *IndexBuilder) Analyzer(name, tokenizer string, filters ...string) *IndexBuilder {
	b.def.Analyzers = append(b.def.Analyzers, Analyzer{
		Name:      name,
		Tokenizer: tokenizer,
		Filters:   filters,
	})
	return b
}

// Text adds an analyzed text field with optional multi-fields.
func (b *IndexBuilder) Text(name, analyzer string, subs ...IndexField) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{
		Name:      name,
		Type:      FieldText,
		Analyzer:  analyzer,
		SubFields: subs,
	})
	return b
}

// Keyword adds an exact-match field.
func (b *IndexBuilder) Keyword(name string) *IndexBuilder {
	return b.field(name, FieldKeyword)
}

// Float adds a float field.
func (b *IndexBuilder) Float(name string) *IndexBuilder {
	return b.field(name, FieldFloat)
}

// Integer adds an integer field.
func (b *IndexBuilder) Integer(name string) *IndexBuilder {
	return b.field(name, FieldInteger)
}

// Date adds a date field.
func (b *IndexBuilder) Date(name string) *IndexBuilder {
	return b.field(name, FieldDate)
}

// Boolean adds a boolean field.
func (b *IndexBuilder) Boolean(name string) *IndexBuilder {
	return b.field(name, FieldBoolean)
}

func (b *IndexBuilder) field(name string, t FieldType) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, IndexField{Name: name, Type: t})
	return b
}

// KeywordSub returns a keyword multi-field; ignoreAbove 0 keeps the engine default.
func KeywordSub(name string, ignoreAbove int) IndexField {
	return IndexField{Name: name, Type: FieldKeyword, IgnoreAbove: ignoreAbove}
}

// CompletionSub returns a completion multi-field for prefix suggestions.
func CompletionSub(name string) IndexField {
	return IndexField{Name: name, Type: FieldCompletion}
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	def := b.def
	return &def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// String returns a debug representation resembling the create-index call.
func (idx *IndexDefinition) String() string {
	body, err := json.Marshal(idx)
	if err != nil {
		return "PUT /" + idx.Name + " <invalid: " + err.Error() + ">"
	}
	return "PUT /" + idx.Name + " " + string(body)
}
