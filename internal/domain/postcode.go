package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	fullPostcodeRe    = regexp.MustCompile(`^([A-Z]{1,2})([0-9][A-Z0-9]?) ?([0-9])([A-Z]{2})$`)
	outwardPostcodeRe = regexp.MustCompile(`^([A-Z]{1,2})([0-9][A-Z0-9]?)$`)
	areaPostcodeRe    = regexp.MustCompile(`^[A-Z]{1,2}$`)
)

// Postcode британский postcode или его часть, разобранные для иерархического сравнения.
//
//	"LE1 3RA" -> Area "LE", District "LE1", Sector "LE1 3", Value "LE1 3RA"
//	"LE1"     -> Area "LE", District "LE1"
//	"LE"      -> Area "LE"
type Postcode struct {
	Value    string
	Area     string
	District string
	Sector   string
}

// ParsePostcode нормализует регистр и пробелы и выделяет Area/District/Sector
func ParsePostcode(raw string) (Postcode, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if normalized == "" {
		return Postcode{}, fmt.Errorf("%w: empty", ErrInvalidPostcode)
	}

	if m := fullPostcodeRe.FindStringSubmatch(normalized); m != nil {
		district := m[1] + m[2]
		return Postcode{
			Value:    district + " " + m[3] + m[4],
			Area:     m[1],
			District: district,
			Sector:   district + " " + m[3],
		}, nil
	}

	if m := outwardPostcodeRe.FindStringSubmatch(normalized); m != nil {
		return Postcode{Value: normalized, Area: m[1], District: normalized}, nil
	}

	if areaPostcodeRe.MatchString(normalized) {
		return Postcode{Value: normalized, Area: normalized}, nil
	}

	return Postcode{}, fmt.Errorf("%w: %q", ErrInvalidPostcode, raw)
}

// IsFull у postcode есть inward-часть
func (p Postcode) IsFull() bool {
	return p.Sector != ""
}

func (p Postcode) IsZero() bool {
	return p.Value == ""
}

// Compatible нестрогое иерархическое совпадение для покрытия и цен:
// равны полные значения, Area или District.
func (p Postcode) Compatible(other Postcode) bool {
	if p.IsZero() || other.IsZero() {
		return false
	}
	if p.Value == other.Value {
		return true
	}
	if p.Area != "" && p.Area == other.Area {
		return true
	}
	return p.District != "" && p.District == other.District
}

func (p Postcode) String() string {
	return p.Value
}
