package db

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// FieldType enumerates supported mapping field types.
type FieldType string

const (
	// FieldText is an analyzed full-text field.
	FieldText FieldType = "text"
	// FieldKeyword is an exact-match field.
	FieldKeyword FieldType = "keyword"
	// FieldFloat is a floating point numeric field.
	FieldFloat FieldType = "float"
	// FieldInteger is an integer numeric field.
	FieldInteger FieldType = "integer"
	// FieldDate is a date field (RFC 3339 strings).
	FieldDate FieldType = "date"
	// FieldBoolean is a boolean field.
	FieldBoolean FieldType = "boolean"
	// FieldCompletion is a prefix-suggestion field.
	FieldCompletion FieldType = "completion"
)

// builtinAnalyzers can be referenced without being declared in settings.
var builtinAnalyzers = map[string]bool{
	"standard": true, "simple": true, "whitespace": true, "keyword": true, "english": true,
}

// IndexField describes a single mapped field.
type IndexField struct {
	Name        string
	Type        FieldType
	Analyzer    string
	IgnoreAbove int // keyword only; 0 = engine default
	// SubFields are multi-fields indexed from the same source value, addressed as name.sub.
	SubFields []IndexField
}

// Path returns the dotted name of a sub-field.
func (f *IndexField) Path(sub string) string { return f.Name + "." + sub }

// Analyzer is a custom analyzer declared in index settings.
type Analyzer struct {
	Name      string
	Tokenizer string
	Filters   []string
}

// IndexDefinition is a complete index definition: settings plus field mapping.
type IndexDefinition struct {
	Name      string
	Shards    int
	Replicas  int
	Analyzers []Analyzer
	Fields    []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIndexName(idx.Name) {
		return errors.New("index name must be lowercase [a-z0-9_-] and not start with - or _")
	}
	if idx.Shards < 0 || idx.Replicas < 0 {
		return errors.New("shards and replicas must not be negative")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	declared := make(map[string]bool, len(idx.Analyzers))
	for _, a := range idx.Analyzers {
		if a.Name == "" || a.Tokenizer == "" {
			return errors.New("custom analyzer requires name and tokenizer")
		}
		declared[a.Name] = true
	}

	seen := make(map[string]bool)
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if err := validateField(f, i, declared); err != nil {
			return err
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + f.Name)
		}
		seen[f.Name] = true

		subSeen := make(map[string]bool)
		for j := range f.SubFields {
			sub := &f.SubFields[j]
			if err := validateField(sub, j, declared); err != nil {
				return errors.New(f.Name + ": " + err.Error())
			}
			if len(sub.SubFields) > 0 {
				return errors.New("sub-field " + f.Path(sub.Name) + " cannot have sub-fields")
			}
			if subSeen[sub.Name] {
				return errors.New("duplicate sub-field name: " + f.Path(sub.Name))
			}
			subSeen[sub.Name] = true
		}
	}

	return nil
}

func validateField(f *IndexField, i int, declared map[string]bool) error {
	if f.Name == "" {
		return errors.New("field name is required at index " + strconv.Itoa(i))
	}
	if strings.Contains(f.Name, ".") {
		return errors.New("field name must not contain dots: " + f.Name)
	}
	switch f.Type {
	case FieldText, FieldKeyword, FieldFloat, FieldInteger, FieldDate, FieldBoolean, FieldCompletion:
	default:
		return errors.New("unsupported field type " + strconv.Quote(string(f.Type)) + " for " + f.Name)
	}
	if f.Analyzer != "" {
		if f.Type != FieldText && f.Type != FieldCompletion {
			return errors.New("analyzer is only allowed on text and completion fields: " + f.Name)
		}
		if !builtinAnalyzers[f.Analyzer] && !declared[f.Analyzer] {
			return errors.New("unknown analyzer " + strconv.Quote(f.Analyzer) + " on " + f.Name)
		}
	}
	if f.IgnoreAbove != 0 && f.Type != FieldKeyword {
		return errors.New("ignore_above is only allowed on keyword fields: " + f.Name)
	}
	return nil
}

// Field returns the top-level field by name.
func (idx *IndexDefinition) Field(name string) (IndexField, bool) {
	for _, f := range idx.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return IndexField{}, false
}

// IsValidIndexName returns true if s is a lowercase engine index name.
func IsValidIndexName(s string) bool {
	if s == "" || len(s) > 255 {
		return false
	}
	if s[0] == '-' || s[0] == '_' {
		return false
	}
	for _, r := range s {
		isLower := r >= 'a' && r <= 'z'
		isDigit := r >= '0' && r <= '9'
		if !isLower && !isDigit && r != '_' && r != '-' {
			return false
		}
	}
	return true
}

type fieldBody struct {
	Type        FieldType            `json:"type"`
	Analyzer    string               `json:"analyzer,omitempty"`
	IgnoreAbove int                  `json:"ignore_above,omitempty"`
	Fields      map[string]fieldBody `json:"fields,omitempty"`
}

type analyzerBody struct {
	Type      string   `json:"type"`
	Tokenizer string   `json:"tokenizer"`
	Filter    []string `json:"filter,omitempty"`
}

type indexSettings struct {
	NumberOfShards   int                                `json:"number_of_shards,omitempty"`
	NumberOfReplicas *int                               `json:"number_of_replicas,omitempty"`
	Analysis         map[string]map[string]analyzerBody `json:"analysis,omitempty"`
}

type indexBody struct {
	Settings indexSettings `json:"settings"`
	Mappings struct {
		Properties map[string]fieldBody `json:"properties"`
	} `json:"mappings"`
}

func toFieldBody(f *IndexField) fieldBody {
	b := fieldBody{Type: f.Type, Analyzer: f.Analyzer, IgnoreAbove: f.IgnoreAbove}
	if len(f.SubFields) > 0 {
		b.Fields = make(map[string]fieldBody, len(f.SubFields))
		for i := range f.SubFields {
			b.Fields[f.SubFields[i].Name] = toFieldBody(&f.SubFields[i])
		}
	}
	return b
}

// MarshalJSON renders the create-index request body: {"settings":...,"mappings":...}.
func (idx *IndexDefinition) MarshalJSON() ([]byte, error) {
	var body indexBody
	body.Settings.NumberOfShards = idx.Shards
	if idx.Shards > 0 {
		replicas := idx.Replicas
		body.Settings.NumberOfReplicas = &replicas
	}
	if len(idx.Analyzers) > 0 {
		analyzers := make(map[string]analyzerBody, len(idx.Analyzers))
		for _, a := range idx.Analyzers {
			analyzers[a.Name] = analyzerBody{Type: "custom", Tokenizer: a.Tokenizer, Filter: a.Filters}
		}
		body.Settings.Analysis = map[string]map[string]analyzerBody{"analyzer": analyzers}
	}
	body.Mappings.Properties = make(map[string]fieldBody, len(idx.Fields))
	for i := range idx.Fields {
		body.Mappings.Properties[idx.Fields[i].Name] = toFieldBody(&idx.Fields[i])
	}
	return json.Marshal(body)
}
