package ast

import (
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
)

// canonForm is the CBOR-serializable shadow of Node used only for hashing
// and byte-for-byte comparison. It mirrors the discriminated-union shape a
// Node interface can't be handed to cbor directly, the same trick used to
// hash a plan tree before it has stable IDs: flatten the interface into one
// struct with a Type tag and let unused fields sit at their zero value.
type canonForm struct {
	Type string

	Int  string // big.Int.String(), leaves unset for non-integers
	Num  string
	Den  string
	Flt  float64
	Name string
	Bool bool
	Rel  uint8

	Kids []canonForm // Add/Mul/And/Or/Xor/Call args, already sorted for the commutative kinds
	A    *canonForm  // Pow.Base, Implies.Antecedent, Relation.Lhs, Not.X
	B    *canonForm  // Pow.Exp, Implies.Consequent, Relation.Rhs
}

func toCanonForm(n Node) canonForm {
	switch v := n.(type) {
	case Integer:
		return canonForm{Type: "int", Int: v.Value.String()}
	case Rational:
		return canonForm{Type: "rat", Num: v.Num.String(), Den: v.Den.String()}
	case Float:
		return canonForm{Type: "flt", Flt: v.Value}
	case Symbol:
		return canonForm{Type: "sym", Name: v.Name}
	case BoolConst:
		return canonForm{Type: "bool", Bool: v.Value}
	case Add:
		return canonForm{Type: "add", Kids: sortedKids(v.Terms)}
	case Mul:
		return canonForm{Type: "mul", Kids: sortedKids(v.Factors)}
	case And:
		return canonForm{Type: "and", Kids: sortedKids(v.Args)}
	case Or:
		return canonForm{Type: "or", Kids: sortedKids(v.Args)}
	case Xor:
		return canonForm{Type: "xor", Kids: sortedKids(v.Args)}
	case Pow:
		a, b := toCanonForm(v.Base), toCanonForm(v.Exp)
		return canonForm{Type: "pow", A: &a, B: &b}
	case Implies:
		a, b := toCanonForm(v.Antecedent), toCanonForm(v.Consequent)
		return canonForm{Type: "implies", A: &a, B: &b}
	case Relation:
		lhs, rhs := toCanonForm(v.Lhs), toCanonForm(v.Rhs)
		if v.Kind == RelEq && formHash(rhs) < formHash(lhs) {
			lhs, rhs = rhs, lhs
		}
		return canonForm{Type: "rel", Rel: uint8(v.Kind), A: &lhs, B: &rhs}
	case Not:
		a := toCanonForm(v.X)
		return canonForm{Type: "not", A: &a}
	case Call:
		return canonForm{Type: "call", Name: v.Name, Kids: plainKids(v.Args)}
	default:
		panic(fmt.Sprintf("ast: unhandled node type %T", n))
	}
}

func plainKids(nodes []Node) []canonForm {
	out := make([]canonForm, len(nodes))
	for i, c := range nodes {
		out[i] = toCanonForm(c)
	}
	return out
}

// sortedKids canonicalizes each child and orders them by their own hash, so
// an Add/Mul/And/Or/Xor node compares equal regardless of the order its
// terms were written in.
func sortedKids(nodes []Node) []canonForm {
	out := plainKids(nodes)
	sort.Slice(out, func(i, j int) bool {
		return formHash(out[i]) < formHash(out[j])
	})
	return out
}

var encMode = func() cbor.EncMode {
	m, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return m
}()

func formBytes(f canonForm) []byte {
	data, err := encMode.Marshal(f)
	if err != nil {
		panic(fmt.Sprintf("ast: canonical CBOR encoding failed: %v", err))
	}
	return data
}

func formHash(f canonForm) string {
	sum := blake2b.Sum256(formBytes(f))
	return string(sum[:])
}

// Canonicalize flattens nested associative Add/Mul/And/Or/Xor nodes and
// orders every commutative node's children by a stable hash, so that two
// trees built from differently-ordered source text compare equal. It folds
// no constants and performs no algebraic rewriting — that is the
// simplifier's job, not the tree's.
func Canonicalize(n Node) Node {
	switch v := n.(type) {
	case Add:
		return Add{Terms: sortNodes(flatten(v.Terms, func(n Node) ([]Node, bool) {
			a, ok := n.(Add)
			return a.Terms, ok
		}))}
	case Mul:
		return Mul{Factors: sortNodes(flatten(v.Factors, func(n Node) ([]Node, bool) {
			m, ok := n.(Mul)
			return m.Factors, ok
		}))}
	case And:
		return And{Args: sortNodes(flatten(v.Args, func(n Node) ([]Node, bool) {
			a, ok := n.(And)
			return a.Args, ok
		}))}
	case Or:
		return Or{Args: sortNodes(flatten(v.Args, func(n Node) ([]Node, bool) {
			o, ok := n.(Or)
			return o.Args, ok
		}))}
	case Xor:
		return Xor{Args: sortNodes(flatten(v.Args, func(n Node) ([]Node, bool) {
			x, ok := n.(Xor)
			return x.Args, ok
		}))}
	case Pow:
		return Pow{Base: Canonicalize(v.Base), Exp: Canonicalize(v.Exp)}
	case Implies:
		return Implies{Antecedent: Canonicalize(v.Antecedent), Consequent: Canonicalize(v.Consequent)}
	case Relation:
		lhs, rhs := Canonicalize(v.Lhs), Canonicalize(v.Rhs)
		if v.Kind == RelEq && formHash(toCanonForm(rhs)) < formHash(toCanonForm(lhs)) {
			lhs, rhs = rhs, lhs
		}
		return Relation{Kind: v.Kind, Lhs: lhs, Rhs: rhs}
	case Not:
		return Not{X: Canonicalize(v.X)}
	case Call:
		return canonicalizeCall(v)
	default:
		return n
	}
}

// canonicalizeCall canonicalizes a function call's arguments and, for
// Derivative, flattens a derivative-of-a-derivative into one node with the
// differentiation variables concatenated: Derivative(Derivative(y, x), x)
// becomes Derivative(y, x, x).
func canonicalizeCall(v Call) Node {
	args := make([]Node, len(v.Args))
	for i, a := range v.Args {
		args[i] = Canonicalize(a)
	}
	name := v.Name
	if name == "diff" {
		name = "Derivative"
	}
	if name != "Derivative" || len(args) == 0 {
		return Call{Name: name, Args: args}
	}
	if inner, ok := args[0].(Call); ok && inner.Name == "Derivative" && len(inner.Args) > 0 {
		flat := append([]Node{}, inner.Args...)
		flat = append(flat, args[1:]...)
		return Call{Name: "Derivative", Args: flat}
	}
	return Call{Name: name, Args: args}
}

func flatten(nodes []Node, same func(Node) ([]Node, bool)) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		c := Canonicalize(n)
		if kids, ok := same(c); ok {
			out = append(out, kids...)
			continue
		}
		out = append(out, c)
	}
	return out
}

func sortNodes(nodes []Node) []Node {
	sort.Slice(nodes, func(i, j int) bool {
		return formHash(toCanonForm(nodes[i])) < formHash(toCanonForm(nodes[j]))
	})
	return nodes
}

// Bytes returns the deterministic CBOR encoding of n's canonical form. Two
// nodes with equal Bytes are structurally identical up to the commutativity
// Canonicalize already applied; Bytes is also the cache key for the engine's
// known-equal memo.
func Bytes(n Node) []byte {
	return formBytes(toCanonForm(Canonicalize(n)))
}

// Equal reports whether a and b are structurally identical once both are
// canonicalized: the same shape up to commutativity of Add, Mul, And, Or,
// Xor and a RelEq Relation, and nothing else.
func Equal(a, b Node) bool {
	return string(Bytes(a)) == string(Bytes(b))
}

// Hash returns a stable 32-byte digest of n's canonical form, usable as a
// map key for the known-equal memo.
func Hash(n Node) [32]byte {
	return blake2b.Sum256(Bytes(n))
}
