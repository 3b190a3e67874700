package httpapi

import "github.com/isaacphysics/equality-checker/engine"

// checkResponse mirrors the JSON shape spec.md §6 documents: a superset of
// fields, most only present in some outcomes. Zero-value (empty string /
// false) fields are omitted on the wire via `omitempty`.
type checkResponse struct {
	Target           string            `json:"target,omitempty"`
	Test             string            `json:"test,omitempty"`
	ParsedTarget     string            `json:"parsed_target,omitempty"`
	ParsedTest       string            `json:"parsed_test,omitempty"`
	Equal            string            `json:"equal,omitempty"`
	EqualityType     string            `json:"equality_type,omitempty"`
	IncorrectSymbols *incorrectSymbols `json:"incorrect_symbols,omitempty"`
	Error            string            `json:"error,omitempty"`
	SyntaxError      string            `json:"syntax_error,omitempty"`
	Code             int               `json:"code,omitempty"`
	Case             string            `json:"case,omitempty"`
}

type incorrectSymbols struct {
	Missing string `json:"missing,omitempty"`
	Extra   string `json:"extra,omitempty"`
}

func resultToResponse(res *engine.Result) checkResponse {
	resp := checkResponse{
		Target:       res.Target,
		Test:         res.Test,
		ParsedTarget: res.ParsedTarget,
		ParsedTest:   res.ParsedTest,
		EqualityType: string(res.Tier),
	}
	if res.Equal {
		resp.Equal = "true"
	} else {
		resp.Equal = "false"
	}
	if res.Mismatch != nil {
		resp.IncorrectSymbols = &incorrectSymbols{
			Missing: joinCSV(res.Mismatch.Missing),
			Extra:   joinCSV(res.Mismatch.Extra),
		}
	}
	return resp
}

func joinCSV(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ","
		}
		out += s
	}
	return out
}
