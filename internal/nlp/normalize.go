// Package nlp normalizes free-text business requests before intent matching:
// lowercasing, diacritic stripping, punctuation collapsing and expansion of
// domain synonyms (product names, units, action verbs) to canonical form.
package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer folds raw user text into the canonical space the intent
// patterns are written against. Stateless after construction; the same input
// always yields the same output.
type Normalizer struct {
	phrases *strings.Replacer
	tokens  map[string]string
}

// Synonym tables keyed by canonical form. Variants are folded (lowercase,
// diacritics stripped) before lookup, so "añadir" and "anadir" both land on
// "agregar".
var (
	productSynonyms = map[string][]string{
		"chocolate":      {"choco", "chocolat", "choclo"},
		"vainilla":       {"vanilla", "vani", "vanila"},
		"fresa":          {"frutilla", "strawberry", "fresas"},
		"dulce de leche": {"ddl", "dulce leche", "dulcedeleche"},
		"menta":          {"mint"},
		"limon":          {"lemon"},
		"banana":         {"platano", "banano"},
	}

	unitSynonyms = map[string][]string{
		"kg":       {"kilos", "kilogramos", "kilo"},
		"unidades": {"unidad", "piezas"},
		"litros":   {"lts", "litro"},
		"gramos":   {"gramo"},
	}

	actionSynonyms = map[string][]string{
		"agregar": {"añadir", "meter", "cargar"},
		"quitar":  {"sacar", "restar"},
		"cambiar": {"modificar", "ajustar"},
	}
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ProductSynonyms returns a copy of the product synonym table, variants
// folded, for callers that match against snapshot names.
func ProductSynonyms() map[string][]string {
	out := make(map[string][]string, len(productSynonyms))
	for canonical, variants := range productSynonyms {
		folded := make([]string, len(variants))
		for i, v := range variants {
			folded[i] = Fold(v)
		}
		out[canonical] = folded
	}
	return out
}

// NewNormalizer builds the canonicalization tables.
func NewNormalizer() *Normalizer {
	tokens := make(map[string]string)
	var phrasePairs []string
	for _, table := range []map[string][]string{productSynonyms, unitSynonyms, actionSynonyms} {
		for canonical, variants := range table {
			for _, v := range variants {
				folded := Fold(v)
				if strings.ContainsRune(folded, ' ') {
					phrasePairs = append(phrasePairs, folded, canonical)
					continue
				}
				tokens[folded] = canonical
			}
		}
	}
	return &Normalizer{
		phrases: strings.NewReplacer(phrasePairs...),
		tokens:  tokens,
	}
}

// Fold lowercases and strips diacritics. Shared with the product resolver so
// snapshot names and user text meet in the same space.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// Normalize produces the canonical form of a raw message: folded, with
// punctuation collapsed to single spaces and synonyms expanded. Currency and
// percent signs survive because the pattern table keys on them.
func (n *Normalizer) Normalize(raw string) string {
	s := Fold(raw)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', ';', ':', '!', '?', '¡', '¿', '"', '\'', '(', ')':
			return ' '
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")
	s = n.phrases.Replace(s)

	words := strings.Split(s, " ")
	for i, w := range words {
		if canonical, ok := n.tokens[w]; ok {
			words[i] = canonical
		}
	}
	return strings.Join(words, " ")
}
