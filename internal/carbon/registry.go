// Package carbon implements the emissions accounting engine: the category
// registry, the amount-to-CO2e calculator, the per-user ledger of running
// totals, goal tracking and recommendation selection.
//
// Everything in this package is synchronous and free of I/O.
package carbon

// Category identifiers.
const (
	Transportation = "transportation"
	Electricity    = "electricity"
	Food           = "food"
	Shopping       = "shopping"
	Waste          = "waste"
)

// UnknownColor is returned by ColorOf for identifiers outside the registry.
const UnknownColor = "#A9A9A9"

// Category is an immutable registry entry.
type Category struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Color    string  `json:"color"`
	Unit     string  `json:"unit"`
	Factor   float64 `json:"factor"` // kg CO2e per unit
	Question string  `json:"question"`
	Example  string  `json:"example"`
	EcoTip   string  `json:"eco_tip"`
}

var registry = []Category{
	{
		ID:       Transportation,
		Name:     "Transportation",
		Color:    "#6AAFDC",
		Unit:     "km",
		Factor:   0.12,
		Question: "How many kilometres did you travel?",
		Example:  "E.g. 20 km by car or 500 km by plane",
		EcoTip:   "Opt for public transport, cycling, or walking for shorter trips. If you must drive, consider carpooling or switching to an electric vehicle.",
	},
	{
		ID:       Electricity,
		Name:     "Electricity",
		Color:    "#FFB347",
		Unit:     "kWh",
		Factor:   0.5,
		Question: "How much electricity did you use?",
		Example:  "E.g. 150 kWh in a month",
		EcoTip:   "Switch to LED bulbs, unplug electronics when not in use, and consider installing solar panels if possible.",
	},
	{
		ID:       Food,
		Name:     "Food",
		Color:    "#8ABA6F",
		Unit:     "kg",
		Factor:   2.5,
		Question: "How much food did you consume?",
		Example:  "E.g. 1 kg of meat or 2 kg of fruit and vegetables",
		EcoTip:   "Reduce meat consumption, especially beef, and opt for locally sourced, seasonal produce to reduce food miles.",
	},
	{
		ID:       Shopping,
		Name:     "Shopping",
		Color:    "#B19CD9",
		Unit:     "R$",
		Factor:   0.5,
		Question: "How much did you spend on purchases?",
		Example:  "E.g. R$ 100 on clothes or R$ 200 on electronics",
		EcoTip:   "Choose products with minimal packaging, buy second-hand when possible, and invest in quality items that last longer.",
	},
	{
		ID:       Waste,
		Name:     "Waste",
		Color:    "#FF6B6B",
		Unit:     "kg",
		Factor:   0.5,
		Question: "How many kilograms of waste did you produce?",
		Example:  "E.g. 5 kg of household waste or 2 kg of recyclables",
		EcoTip:   "Practice the 3 Rs: Reduce, Reuse, Recycle. Compost food scraps and avoid single-use plastics.",
	},
}

var byID = func() map[string]Category {
	m := make(map[string]Category, len(registry))
	for _, c := range registry {
		m[c.ID] = c
	}
	return m
}()

// Categories returns the registry in display order.
func Categories() []Category {
	out := make([]Category, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the category definition for id.
func Lookup(id string) (Category, bool) {
	c, ok := byID[id]
	return c, ok
}

// IsKnown reports whether id is a registered category.
func IsKnown(id string) bool {
	_, ok := byID[id]
	return ok
}

// FactorOf returns the emission factor for id, or 0 if id is unknown.
func FactorOf(id string) float64 {
	return byID[id].Factor
}

// NameOf returns the display name for id, or id itself if unknown.
func NameOf(id string) string {
	if c, ok := byID[id]; ok {
		return c.Name
	}
	return id
}

// ColorOf returns the display color for id, or UnknownColor.
func ColorOf(id string) string {
	if c, ok := byID[id]; ok {
		return c.Color
	}
	return UnknownColor
}

// UnitOf returns the unit label for id, or "" if unknown.
func UnitOf(id string) string {
	return byID[id].Unit
}
