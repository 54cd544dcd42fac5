package carbon

// Record is the running total for one category.
type Record struct {
	Category  string  `json:"id"`
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	Unit      string  `json:"unit"`
	Factor    float64 `json:"factor"`
	Emissions float64 `json:"emissions"`
}

// ChartPoint is one slice of the emissions chart.
type ChartPoint struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// Ledger holds one user's records keyed by category, in insertion order.
// A Ledger is not safe for concurrent use.
type Ledger struct {
	records           []Record
	index             map[string]int
	useRegistryFactor bool
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithRegistryFactor makes Upsert store the registry factor on records it
// creates. Without it new records carry a factor of 0, which is what rows
// written by earlier versions contain.
func WithRegistryFactor(enabled bool) LedgerOption {
	return func(l *Ledger) {
		l.useRegistryFactor = enabled
	}
}

// NewLedger builds a ledger from existing records. When a category appears
// more than once only the first occurrence is kept.
func NewLedger(records []Record, opts ...LedgerOption) *Ledger {
	l := &Ledger{
		records: make([]Record, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for _, opt := range opts {
		opt(l)
	}
	for _, r := range records {
		if _, dup := l.index[r.Category]; dup {
			continue
		}
		l.index[r.Category] = len(l.records)
		l.records = append(l.records, r)
	}
	return l
}

// DefaultRecords returns every registered category at zero emissions.
func DefaultRecords() []Record {
	out := make([]Record, 0, len(registry))
	for _, c := range registry {
		out = append(out, Record{
			Category: c.ID,
			Name:     c.Name,
			Color:    c.Color,
			Unit:     c.Unit,
			Factor:   c.Factor,
		})
	}
	return out
}

// NewDefaultLedger returns a ledger seeded with DefaultRecords.
func NewDefaultLedger(opts ...LedgerOption) *Ledger {
	return NewLedger(DefaultRecords(), opts...)
}

// Upsert adds the emissions for amount to category's record, creating the
// record if needed. It returns the updated record and the emissions added.
func (l *Ledger) Upsert(category string, amount float64) (Record, float64) {
	added := Calculate(category, amount)

	if i, ok := l.index[category]; ok {
		l.records[i].Emissions += added
		return l.records[i], added
	}

	r := Record{
		Category:  category,
		Name:      NameOf(category),
		Color:     ColorOf(category),
		Unit:      UnitOf(category),
		Emissions: added,
	}
	if l.useRegistryFactor {
		r.Factor = FactorOf(category)
	}
	l.index[category] = len(l.records)
	l.records = append(l.records, r)
	return r, added
}

// Reset zeroes every record's emissions and keeps everything else.
func (l *Ledger) Reset() {
	for i := range l.records {
		l.records[i].Emissions = 0
	}
}

// Total returns the sum of emissions across all records.
func (l *Ledger) Total() float64 {
	var total float64
	for _, r := range l.records {
		total += r.Emissions
	}
	return total
}

// ChartProjection returns one chart point per record in ledger order.
func (l *Ledger) ChartProjection() []ChartPoint {
	points := make([]ChartPoint, len(l.records))
	for i, r := range l.records {
		points[i] = ChartPoint{Name: r.Name, Value: r.Emissions, Color: r.Color}
	}
	return points
}

// Records returns a copy of the records in ledger order.
func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Get returns the record for category.
func (l *Ledger) Get(category string) (Record, bool) {
	i, ok := l.index[category]
	if !ok {
		return Record{}, false
	}
	return l.records[i], true
}

// Position returns the index of category in the ledger, or -1.
func (l *Ledger) Position(category string) int {
	if i, ok := l.index[category]; ok {
		return i
	}
	return -1
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Clone returns an independent copy of the ledger.
func (l *Ledger) Clone() *Ledger {
	return NewLedger(l.records, WithRegistryFactor(l.useRegistryFactor))
}
