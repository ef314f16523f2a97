// Package units holds the static measurement-unit catalog: convertibility
// families (volume, weight) with multiplicative factors to a canonical
// base unit. Count-style units (each, can, piece, ...) carry no family
// and never convert, not even to one another when the literal strings
// differ.
package units

import "strings"

// Family is a convertibility equivalence class.
type Family int

const (
	FamilyNone Family = iota
	FamilyVolume
	FamilyWeight
)

type unitDef struct {
	family Family
	// factor converts one of this unit into the family base unit
	// (milliliter for volume, gram for weight).
	factor float64
}

var catalog = map[string]unitDef{
	// Volume, base milliliter (US customary where applicable)
	"milliliter":  {FamilyVolume, 1},
	"liter":       {FamilyVolume, 1000},
	"teaspoon":    {FamilyVolume, 4.92892159375},
	"tablespoon":  {FamilyVolume, 14.78676478125},
	"fluid ounce": {FamilyVolume, 29.5735295625},
	"cup":         {FamilyVolume, 236.5882365},
	"pint":        {FamilyVolume, 473.176473},
	"quart":       {FamilyVolume, 946.352946},
	"gallon":      {FamilyVolume, 3785.411784},

	// Weight, base gram
	"milligram": {FamilyWeight, 0.001},
	"gram":      {FamilyWeight, 1},
	"kilogram":  {FamilyWeight, 1000},
	"ounce":     {FamilyWeight, 28.349523125},
	"pound":     {FamilyWeight, 453.59237},
}

var aliases = map[string]string{
	"ml":           "milliliter",
	"milliliters":  "milliliter",
	"l":            "liter",
	"liters":       "liter",
	"litre":        "liter",
	"litres":       "liter",
	"tsp":          "teaspoon",
	"teaspoons":    "teaspoon",
	"tbsp":         "tablespoon",
	"tablespoons":  "tablespoon",
	"fl oz":        "fluid ounce",
	"floz":         "fluid ounce",
	"fluid ounces": "fluid ounce",
	"cups":         "cup",
	"pints":        "pint",
	"pt":           "pint",
	"quarts":       "quart",
	"qt":           "quart",
	"gallons":      "gallon",
	"gal":          "gallon",
	"mg":           "milligram",
	"milligrams":   "milligram",
	"g":            "gram",
	"grams":        "gram",
	"kg":           "kilogram",
	"kilograms":    "kilogram",
	"oz":           "ounce",
	"ounces":       "ounce",
	"lb":           "pound",
	"lbs":          "pound",
	"pounds":       "pound",
}

// Normalize lowercases, trims and alias-resolves a unit string. Unknown
// strings pass through lowercased/trimmed; distinct unknown strings stay
// distinct.
func Normalize(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	if canonical, ok := aliases[u]; ok {
		return canonical
	}
	return u
}

// FamilyOf reports the convertibility family of a unit, FamilyNone for
// count-style and unrecognized units.
func FamilyOf(unit string) Family {
	if def, ok := catalog[Normalize(unit)]; ok {
		return def.family
	}
	return FamilyNone
}

// Convertible reports whether two units belong to the same declared
// family. Units without a family are never convertible with anything.
func Convertible(a, b string) bool {
	fa := FamilyOf(a)
	return fa != FamilyNone && fa == FamilyOf(b)
}

// ToBase converts a quantity into its family's base unit. The bool is
// false for units without a family.
func ToBase(quantity float64, unit string) (float64, bool) {
	def, ok := catalog[Normalize(unit)]
	if !ok {
		return 0, false
	}
	return quantity * def.factor, true
}

// FromBase converts a base-unit quantity into the given unit.
func FromBase(quantity float64, unit string) (float64, bool) {
	def, ok := catalog[Normalize(unit)]
	if !ok {
		return 0, false
	}
	return quantity / def.factor, true
}

// Amount pairs a quantity with a unit string.
type Amount struct {
	Quantity float64
	Unit     string
}

// Suggest picks the unit a mixed-unit total should be expressed in and
// returns the total converted into it. All amounts must share one family
// or ok is false.
//
// Policy: the winning unit is the one whose subtotal covers the largest
// share of the combined base quantity, so the total reads in the unit the
// shopper already used most; ties break to the unit that appeared first.
// This keeps output deterministic and avoids suggestions like
// "0.01 gallon" for a teaspoon-dominated total.
func Suggest(breakdown []Amount) (float64, string, bool) {
	if len(breakdown) == 0 {
		return 0, "", false
	}

	family := FamilyOf(breakdown[0].Unit)
	if family == FamilyNone {
		return 0, "", false
	}

	var total float64
	bestIdx := 0
	var bestBase float64
	for i, amt := range breakdown {
		if FamilyOf(amt.Unit) != family {
			return 0, "", false
		}
		base, _ := ToBase(amt.Quantity, amt.Unit)
		total += base
		if base > bestBase {
			bestBase = base
			bestIdx = i
		}
	}

	suggested, _ := FromBase(total, breakdown[bestIdx].Unit)
	return suggested, Normalize(breakdown[bestIdx].Unit), true
}
