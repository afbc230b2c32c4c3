package schema

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// Names of the embedded request body schemas
const (
	Signup       = "signup"
	PlayerCreate = "player_create"
	PlayerUpdate = "player_update"
)

// Validator checks raw JSON request bodies against embedded JSON Schemas
type Validator struct {
	schemas map[string]*jschema.Schema
}

// NewValidator compiles the embedded schemas
func NewValidator() (*Validator, error) {
	c := jschema.NewCompiler()
	c.AssertFormat()

	names := []string{Signup, PlayerCreate, PlayerUpdate}
	schemas := make(map[string]*jschema.Schema, len(names))
	for _, name := range names {
		data, err := schemaFS.ReadFile(fmt.Sprintf("schemas/%s.schema.json", name))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", name, err)
		}

		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", name, err)
		}

		url := fmt.Sprintf("%s.schema.json", name)
		if err := c.AddResource(url, doc); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}

		sch, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		schemas[name] = sch
	}

	return &Validator{schemas: schemas}, nil
}

// Validate checks a raw JSON body against the named schema
func (v *Validator) Validate(name string, body []byte) error {
	sch, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return err
	}

	return sch.Validate(doc)
}

// Detail renders a one-line description of a validation failure,
// suitable for an error response message
func Detail(err error) string {
	var ve *jschema.ValidationError
	if !errors.As(err, &ve) {
		return "Request body is not valid JSON"
	}

	// The innermost cause names the offending field; the outer errors
	// just restate the tree
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}

	msg := leaf.ErrorKind.LocalizedString(message.NewPrinter(language.English))
	if len(leaf.InstanceLocation) == 0 {
		return msg
	}
	return fmt.Sprintf("at '/%s': %s", strings.Join(leaf.InstanceLocation, "/"), msg)
}
