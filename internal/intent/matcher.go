package intent

import (
	"fmt"
	"strconv"
	"strings"

	"veneziabot/internal/business"
)

// maxConfidence caps the diagnostic confidence score.
const maxConfidence = 0.9

// Matcher evaluates the compiled pattern table against normalized text.
// Safe for concurrent use; the table is immutable after init.
type Matcher struct{}

// NewMatcher returns a matcher over the static pattern table.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// IsCommand reports whether any pattern structurally matches the text,
// without extracting parameters. The orchestrator uses this to decide
// whether the rule-based tier applies at all.
func (m *Matcher) IsCommand(normalized string) bool {
	for _, e := range table {
		if e.re.MatchString(normalized) {
			return true
		}
	}
	return false
}

// Match returns the intent for the first matching pattern. A miss or a
// malformed parameter yields an error wrapping business.ErrAmbiguousIntent;
// callers treat that as "help/unknown intent" and never crash.
func (m *Matcher) Match(normalized string) (Intent, error) {
	for _, e := range table {
		loc := e.re.FindStringSubmatchIndex(normalized)
		if loc == nil {
			continue
		}
		groups := captureGroups(e.re.SubexpNames(), e.re.FindStringSubmatch(normalized))
		params, err := extractParams(e.command, groups, normalized)
		if err != nil {
			return Intent{}, fmt.Errorf("%w: %s: %v", business.ErrAmbiguousIntent, e.command, err)
		}
		return Intent{
			Category:   e.category,
			Command:    e.command,
			Params:     params,
			Confidence: confidence(loc, normalized),
		}, nil
	}
	return Intent{}, fmt.Errorf("%w: no pattern matched", business.ErrAmbiguousIntent)
}

// confidence is the ratio of matched substring length to message length,
// scaled and capped. Diagnostic only, never used for tie-breaking.
func confidence(loc []int, msg string) float64 {
	if len(msg) == 0 {
		return 0
	}
	matched := float64(loc[1] - loc[0])
	c := matched / float64(len(msg)) * 1.2
	if c > maxConfidence {
		return maxConfidence
	}
	return c
}

func captureGroups(names, values []string) map[string]string {
	groups := make(map[string]string, len(names))
	for i, name := range names {
		if name == "" || i >= len(values) {
			continue
		}
		groups[name] = strings.TrimSpace(values[i])
	}
	return groups
}

// extractParams applies the per-command typed parsers. Pure and total: it
// reports malformed input as an error instead of panicking.
func extractParams(cmd Command, groups map[string]string, full string) (Params, error) {
	p := Params{Unit: detectUnit(full)}
	var err error

	parseInt := func(field, raw string) int {
		if err != nil || raw == "" {
			return 0
		}
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			err = fmt.Errorf("%s %q is not a number", field, raw)
			return 0
		}
		return n
	}

	switch cmd {
	case CmdAddStock:
		p.Quantity = parseInt("quantity", groups["qty"])
		p.Product = groups["product"]
	case CmdCheckStock, CmdRecipeCost:
		p.Product = groups["product"]
	case CmdCreateProduct:
		p.Name = groups["name"]
		p.Price = parseInt("price", groups["price"])
	case CmdUpdatePrice:
		p.Product = groups["product"]
		p.Price = parseInt("price", groups["price"])
	case CmdRegisterSale, CmdMakeBatch:
		p.Quantity = parseInt("quantity", groups["qty"])
		p.Product = groups["product"]
	case CmdStockAndPrice:
		p.Quantity = parseInt("quantity", groups["qty"])
		p.Product = groups["product"]
		p.Price = parseInt("price", groups["price"])
	case CmdCreateAndStock:
		p.Name = groups["name"]
		p.Price = parseInt("price", groups["price"])
		p.Quantity = parseInt("quantity", groups["qty"])
	case CmdBulkOperations:
		p.Percent = parseInt("percent", groups["pct"])
	case CmdMultipleOps:
		p.Rest = groups["rest"]
	}
	if err != nil {
		return Params{}, err
	}

	if needsProduct(cmd) && p.Product == "" {
		return Params{}, fmt.Errorf("empty product name")
	}
	return p, nil
}

func needsProduct(cmd Command) bool {
	switch cmd {
	case CmdAddStock, CmdCheckStock, CmdUpdatePrice, CmdRegisterSale, CmdMakeBatch, CmdRecipeCost, CmdStockAndPrice:
		return true
	}
	return false
}

// detectUnit scans the whole message for a unit mention. The normalizer has
// already collapsed unit synonyms, so canonical forms are enough.
func detectUnit(text string) Unit {
	switch {
	case strings.Contains(text, "kg"):
		return UnitKg
	case strings.Contains(text, "litros"):
		return UnitLiters
	case strings.Contains(text, "gramos"):
		return UnitGrams
	default:
		return UnitUnits
	}
}
