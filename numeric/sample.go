package numeric

import (
	"math/rand/v2"

	"github.com/isaacphysics/equality-checker/ast"
)

// sampleCount is N in spec terms: how many points are drawn per free
// variable before evaluating both sides.
const sampleCount = 25

// FreeSymbols returns the sorted, de-duplicated set of free symbol names
// in n.
func FreeSymbols(n ast.Node) []string {
	seen := make(map[string]bool)
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if s, ok := n.(ast.Symbol); ok {
			seen[s.Name] = true
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(n)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sortStrings(names)
	return names
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

// samples draws sampleCount independent values uniformly from [0,1) for
// every name in names.
func samples(names []string) []map[string]float64 {
	rows := make([]map[string]float64, sampleCount)
	for i := range rows {
		row := make(map[string]float64, len(names))
		for _, name := range names {
			row[name] = rand.Float64()
		}
		rows[i] = row
	}
	return rows
}

func toComplexRows(rows []map[string]float64) []map[string]complex128 {
	out := make([]map[string]complex128, len(rows))
	for i, row := range rows {
		cr := make(map[string]complex128, len(row))
		for k, v := range row {
			cr[k] = complex(v, 0)
		}
		out[i] = cr
	}
	return out
}
