package models

import (
	"fmt"
	"strings"
)

// Gender is the gender of an actual player. It never holds the "all" wildcard.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// GenderFilter is a card-side gender requirement. GenderAll matches any player.
type GenderFilter string

const (
	GenderFilterMale   GenderFilter = "male"
	GenderFilterFemale GenderFilter = "female"
	GenderFilterAll    GenderFilter = "all"
)

// Card documents exported from the mobile app use French labels.
var genderAliases = map[string]string{
	"male":   "male",
	"homme":  "male",
	"female": "female",
	"femme":  "female",
	"all":    "all",
	"tous":   "all",
}

func normalizeGender(s string) (string, bool) {
	v, ok := genderAliases[strings.ToLower(strings.TrimSpace(s))]
	return v, ok
}

// ParseGender parses a player gender. "all" is rejected.
func ParseGender(s string) (Gender, error) {
	v, ok := normalizeGender(s)
	if !ok || v == "all" {
		return "", fmt.Errorf("invalid player gender %q", s)
	}
	return Gender(v), nil
}

// ParseGenderFilter parses a card gender requirement.
func ParseGenderFilter(s string) (GenderFilter, error) {
	v, ok := normalizeGender(s)
	if !ok {
		return "", fmt.Errorf("invalid gender filter %q", s)
	}
	return GenderFilter(v), nil
}

func (g *Gender) UnmarshalText(text []byte) error {
	parsed, err := ParseGender(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// Matches reports whether a player of gender g satisfies the filter.
func (f GenderFilter) Matches(g Gender) bool {
	return f == GenderFilterAll || f == "" || string(f) == string(g)
}

func (f *GenderFilter) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*f = ""
		return nil
	}
	parsed, err := ParseGenderFilter(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
