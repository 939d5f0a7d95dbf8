package ingredient

import (
	"sort"
	"strings"
	"unicode"
)

// Conversion turns an amount of a US customary unit into a metric one.
type Conversion struct {
	Factor float64
	Target string
}

type unitDef struct {
	aliases []string
	conv    Conversion
}

var unitDefs = []unitDef{
	{aliases: []string{"cup", "cups"}, conv: Conversion{Factor: 237, Target: "ml"}},
	{aliases: []string{"tbsp", "tablespoon", "tablespoons"}, conv: Conversion{Factor: 15, Target: "ml"}},
	{aliases: []string{"tsp", "teaspoon", "teaspoons"}, conv: Conversion{Factor: 5, Target: "ml"}},
	{aliases: []string{"oz", "ounce", "ounces"}, conv: Conversion{Factor: 28, Target: "g"}},
	{aliases: []string{"lb", "lbs", "pound", "pounds"}, conv: Conversion{Factor: 453, Target: "g"}},
}

// unitTable is keyed by lowercased alias. It is filled once and never written
// again.
var unitTable = func() map[string]Conversion {
	m := make(map[string]Conversion)
	for _, def := range unitDefs {
		for _, alias := range def.aliases {
			m[alias] = def.conv
		}
	}
	return m
}()

// LookupUnit returns the metric conversion for a unit name, case-insensitively.
func LookupUnit(name string) (Conversion, bool) {
	conv, ok := unitTable[strings.ToLower(name)]
	return conv, ok
}

// UnitAlias pairs a recognised unit spelling with its conversion.
type UnitAlias struct {
	Name string
	Conversion
}

// Units lists every recognised unit spelling in alphabetical order.
func Units() []UnitAlias {
	out := make([]UnitAlias, 0, len(unitTable))
	for name, conv := range unitTable {
		out = append(out, UnitAlias{Name: name, Conversion: conv})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// splitUnit separates the leading run of ASCII letters from rest. The
// remainder has its leading whitespace removed.
func splitUnit(rest string) (unit, item string) {
	i := 0
	for i < len(rest) && isASCIILetter(rest[i]) {
		i++
	}
	return rest[:i], strings.TrimLeftFunc(rest[i:], unicode.IsSpace)
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
