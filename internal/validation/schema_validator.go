package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

// DatasetSchemaURL identifies the embedded dataset schema.
const DatasetSchemaURL = "https://spellcasters.local/schemas/dataset.schema.json"

//go:embed schemas/dataset.schema.json
var datasetSchema []byte

// SchemaValidator validates upstream payloads against the dataset schema.
// Validation is pure: it never touches process state.
type SchemaValidator interface {
	// ValidateBytes validates raw JSON and decodes it into a Dataset.
	ValidateBytes(data []byte) (*domain.Dataset, error)
	// ValidateValue validates an already-parsed payload.
	ValidateValue(v any) (*domain.Dataset, error)
}

type validator struct {
	schema  *jsonschema.Schema
	printer *message.Printer
}

// NewSchemaValidator compiles the embedded dataset schema.
func NewSchemaValidator() (SchemaValidator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(datasetSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(DatasetSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(DatasetSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &validator{
		schema:  schema,
		printer: message.NewPrinter(language.English),
	}, nil
}

// MustNewSchemaValidator is NewSchemaValidator for wiring code where the
// embedded schema is known to compile.
func MustNewSchemaValidator() SchemaValidator {
	v, err := NewSchemaValidator()
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateBytes validates JSON data bytes against the dataset schema
func (v *validator) ValidateBytes(data []byte) (*domain.Dataset, error) {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.ValidationError{Issues: []domain.ValidationIssue{{
			Path:    rootLocation,
			Message: fmt.Sprintf("payload is not valid JSON: %v", err),
		}}}
	}

	if err := v.schema.Validate(instance); err != nil {
		return nil, v.toValidationError(err)
	}

	var ds domain.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		// The schema accepted the shape, so this only trips on values the
		// typed model cannot hold (e.g. numbers overflowing float64).
		return nil, &domain.ValidationError{Issues: []domain.ValidationIssue{{
			Path:    rootLocation,
			Message: fmt.Sprintf("payload does not decode into the dataset model: %v", err),
		}}}
	}

	return &ds, nil
}

// ValidateValue validates a parsed payload by round-tripping it through JSON
func (v *validator) ValidateValue(value any) (*domain.Dataset, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, &domain.ValidationError{Issues: []domain.ValidationIssue{{
			Path:    rootLocation,
			Message: fmt.Sprintf("payload cannot be encoded as JSON: %v", err),
		}}}
	}
	return v.ValidateBytes(data)
}

const rootLocation = "(root)"

// toValidationError flattens the jsonschema error tree into path-level issues
func (v *validator) toValidationError(err error) error {
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &domain.ValidationError{Issues: []domain.ValidationIssue{{
			Path:    rootLocation,
			Message: err.Error(),
		}}}
	}

	var issues []domain.ValidationIssue
	v.collectIssues(validationErr, &issues)
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })

	return &domain.ValidationError{Issues: dedupe(issues)}
}

// collectIssues recursively collects the leaf causes of a validation error
func (v *validator) collectIssues(err *jsonschema.ValidationError, issues *[]domain.ValidationIssue) {
	if len(err.Causes) == 0 {
		*issues = append(*issues, domain.ValidationIssue{
			Path:    formatLocation(err.InstanceLocation),
			Message: v.formatKind(err),
		})
		return
	}
	for _, cause := range err.Causes {
		v.collectIssues(cause, issues)
	}
}

// formatKind renders the failed keyword in plain English
func (v *validator) formatKind(err *jsonschema.ValidationError) string {
	if err.ErrorKind == nil {
		return "validation failed"
	}
	msg := err.ErrorKind.LocalizedString(v.printer)
	if msg == "" {
		keywords := strings.Join(err.ErrorKind.KeywordPath(), ".")
		return fmt.Sprintf("%s validation failed", keywords)
	}
	return msg
}

// formatLocation renders an instance location as a JSON pointer
func formatLocation(location []string) string {
	if len(location) == 0 {
		return rootLocation
	}
	return "/" + strings.Join(location, "/")
}

func dedupe(issues []domain.ValidationIssue) []domain.ValidationIssue {
	seen := make(map[domain.ValidationIssue]struct{}, len(issues))
	out := issues[:0]
	for _, issue := range issues {
		if _, ok := seen[issue]; ok {
			continue
		}
		seen[issue] = struct{}{}
		out = append(out, issue)
	}
	return out
}
