// Package httpapi is the external collaborator the engine needs but does
// not implement itself: the HTTP surface, request validation, and JSON
// response shaping described in spec.md §6.
package httpapi

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/isaacphysics/equality-checker/engine"
	"github.com/isaacphysics/equality-checker/symbols"
)

// checkRequestSchema is the JSON Schema every /check* POST body must
// satisfy before it is even decoded into a checkRequest. Compiled once at
// package init, the same "compile a fixed literal schema" shape
// core/types/validation.go uses for its own request parameters, minus the
// caching and remote-ref machinery this fixed, trusted schema never needs.
const checkRequestSchemaJSON = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["test", "target"],
	"properties": {
		"test": {"type": "string", "minLength": 1},
		"target": {"type": "string", "minLength": 1},
		"symbols": {"type": "string"},
		"check_symbols": {"type": "boolean"},
		"description": {"type": "string"},
		"hints": {
			"type": "array",
			"items": {
				"type": "string",
				"enum": ["constant_pi", "constant_e", "imaginary_i", "imaginary_j", "natural_logarithm"]
			}
		}
	}
}`

var checkRequestSchema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema://check-request.json", strings.NewReader(checkRequestSchemaJSON)); err != nil {
		panic("httpapi: invalid embedded schema: " + err.Error())
	}
	schema, err := compiler.Compile("schema://check-request.json")
	if err != nil {
		panic("httpapi: schema compilation failed: " + err.Error())
	}
	return schema
}()

// checkRequest is the decoded body of a /check, /check/maths or
// /check/logic POST.
type checkRequest struct {
	Test         string   `json:"test"`
	Target       string   `json:"target"`
	Symbols      string   `json:"symbols"`
	CheckSymbols *bool    `json:"check_symbols"`
	Description  string   `json:"description"`
	Hints        []string `json:"hints"`
}

// decodeCheckRequest validates body against checkRequestSchema, then
// decodes it. Schema violations and malformed JSON are both reported as
// IllFormedRequest — the caller never needs to distinguish them.
func decodeCheckRequest(body []byte) (*checkRequest, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, newIllFormed("body is not valid JSON: " + err.Error())
	}
	if err := checkRequestSchema.Validate(raw); err != nil {
		return nil, newIllFormed(err.Error())
	}
	var req checkRequest
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&req); err != nil {
		return nil, newIllFormed("body is not valid JSON: " + err.Error())
	}
	return &req, nil
}

// userSymbols splits the comma-separated "symbols" field into the list of
// multi-character identifiers implicit multiplication must not split.
func (r *checkRequest) userSymbols() []string {
	if r.Symbols == "" {
		return nil
	}
	parts := strings.Split(r.Symbols, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// hints maps the request's string hint names onto symbols.Hint values.
// Every name is converted as given; restricting the names to known hints
// is left to the request schema's enum.
func (r *checkRequest) hints() []symbols.Hint {
	out := make([]symbols.Hint, 0, len(r.Hints))
	for _, h := range r.Hints {
		out = append(out, symbols.Hint(h))
	}
	return out
}

// engineOptions builds engine.Options for the given mode from this
// request's fields. check_symbols defaults to true per spec.md §6; only
// an explicit false in the body disables the pre-check.
func (r *checkRequest) engineOptions(mode symbols.Mode) engine.Options {
	skip := false
	if r.CheckSymbols != nil && !*r.CheckSymbols {
		skip = true
	}
	return engine.Options{
		Mode:            mode,
		UserSymbols:     r.userSymbols(),
		Hints:           r.hints(),
		SkipSymbolCheck: skip,
	}
}
