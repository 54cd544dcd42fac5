package models

import "carbontrack/internal/carbon"

// EmissionRecord is the persisted running total for one category of one user.
// (user_id, category) is unique.
type EmissionRecord struct {
	Base
	UserID    string  `gorm:"type:uuid;not null;uniqueIndex:idx_emission_records_user_category" json:"user_id"`
	Category  string  `gorm:"size:32;not null;uniqueIndex:idx_emission_records_user_category" json:"category"`
	Position  int     `gorm:"not null;default:0" json:"position"`
	Name      string  `gorm:"not null" json:"name"`
	Color     string  `gorm:"size:7;not null" json:"color"`
	Unit      string  `gorm:"size:16" json:"unit"`
	Factor    float64 `gorm:"not null;default:0" json:"factor"`
	Emissions float64 `gorm:"not null;default:0" json:"emissions"`
}

// ToCarbon converts the row into a ledger record.
func (r EmissionRecord) ToCarbon() carbon.Record {
	return carbon.Record{
		Category:  r.Category,
		Name:      r.Name,
		Color:     r.Color,
		Unit:      r.Unit,
		Factor:    r.Factor,
		Emissions: r.Emissions,
	}
}

// NewEmissionRecord builds a row for userID from a ledger record at position.
func NewEmissionRecord(userID string, position int, r carbon.Record) EmissionRecord {
	return EmissionRecord{
		UserID:    userID,
		Category:  r.Category,
		Position:  position,
		Name:      r.Name,
		Color:     r.Color,
		Unit:      r.Unit,
		Factor:    r.Factor,
		Emissions: r.Emissions,
	}
}

// ToCarbonRecords converts rows, preserving order.
func ToCarbonRecords(rows []EmissionRecord) []carbon.Record {
	out := make([]carbon.Record, len(rows))
	for i, r := range rows {
		out[i] = r.ToCarbon()
	}
	return out
}
