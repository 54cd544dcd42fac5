package carbon

// Advice is a single recommendation. Category is empty for general advice.
type Advice struct {
	Category string `json:"category,omitempty"`
	Text     string `json:"text"`
}

var categoryTips = map[string][2]string{
	Transportation: {
		"Consider public transport, carpooling or cycling for your daily commute.",
		"If possible, switch to a hybrid or electric vehicle next time you buy a car.",
	},
	Electricity: {
		"Switch to LED bulbs throughout your home.",
		"Consider a programmable thermostat to cut heating and cooling when they are not needed.",
	},
	Food: {
		"Try to include more plant-based meals in your diet.",
		"Buy local, seasonal produce to reduce transport emissions.",
	},
	Shopping: {
		"Before buying something new, consider repairing, borrowing or buying second-hand.",
		"Look for products with minimal packaging or packaging made from recycled materials.",
	},
	Waste: {
		"Start composting food scraps to reduce methane emissions from landfills.",
		"Recycle properly and cut down on disposable items in your daily routine.",
	},
}

var generalTips = [2]string{
	"Carry out a home energy audit to find areas for improvement.",
	"Consider offsetting your footprint through verified carbon offset programmes.",
}

// GeneralAdvice returns the advice appended to every recommendation list.
func GeneralAdvice() []Advice {
	return []Advice{{Text: generalTips[0]}, {Text: generalTips[1]}}
}

// Highest returns the record with the greatest emissions. Ties go to the
// earliest record.
func Highest(records []Record) (Record, bool) {
	if len(records) == 0 {
		return Record{}, false
	}
	best := records[0]
	for _, r := range records[1:] {
		if r.Emissions > best.Emissions {
			best = r
		}
	}
	return best, true
}

// Recommend returns the two tips for the highest-emitting category followed
// by the general advice.
func Recommend(records []Record) []Advice {
	out := make([]Advice, 0, 4)
	if top, ok := Highest(records); ok {
		if tips, known := categoryTips[top.Category]; known {
			for _, t := range tips {
				out = append(out, Advice{Category: top.Category, Text: t})
			}
		}
	}
	return append(out, GeneralAdvice()...)
}
