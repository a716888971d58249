// Package catalog holds the table of known voice profiles. Profiles are
// loaded and validated once at startup and are immutable afterwards; all
// lookups go through typed, checked enumerations rather than free strings.
package catalog

import (
	"fmt"
	"strings"
)

// Gender classifies a voice or character as male, female or neutral.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderNeutral Gender = "neutral"
)

// ParseGender converts a string into a Gender, rejecting unknown values.
func ParseGender(s string) (Gender, error) {
	switch Gender(strings.ToLower(s)) {
	case GenderMale:
		return GenderMale, nil
	case GenderFemale:
		return GenderFemale, nil
	case GenderNeutral:
		return GenderNeutral, nil
	}
	return "", fmt.Errorf("unknown gender %q", s)
}

// AgeBracket places a voice on a three-point age scale.
type AgeBracket string

const (
	AgeYoung  AgeBracket = "young"
	AgeMiddle AgeBracket = "middle"
	AgeOld    AgeBracket = "old"
)

// ParseAgeBracket converts a string into an AgeBracket, rejecting unknown values.
func ParseAgeBracket(s string) (AgeBracket, error) {
	switch AgeBracket(strings.ToLower(s)) {
	case AgeYoung:
		return AgeYoung, nil
	case AgeMiddle:
		return AgeMiddle, nil
	case AgeOld:
		return AgeOld, nil
	}
	return "", fmt.Errorf("unknown age bracket %q", s)
}

// Ordinal returns the bracket's position on the young/middle/old scale.
func (a AgeBracket) Ordinal() int {
	switch a {
	case AgeYoung:
		return 0
	case AgeMiddle:
		return 1
	case AgeOld:
		return 2
	}
	return -1
}

// Tone describes the overall warmth of a voice.
type Tone string

const (
	ToneWarm    Tone = "warm"
	ToneCool    Tone = "cool"
	ToneNeutral Tone = "neutral"
)

func ParseTone(s string) (Tone, error) {
	switch Tone(strings.ToLower(s)) {
	case ToneWarm, ToneCool, ToneNeutral:
		return Tone(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown tone %q", s)
}

// Energy describes how animated a voice sounds.
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

func ParseEnergy(s string) (Energy, error) {
	switch Energy(strings.ToLower(s)) {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return Energy(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown energy %q", s)
}

// Formality describes the register of a voice.
type Formality string

const (
	FormalityFormal  Formality = "formal"
	FormalityCasual  Formality = "casual"
	FormalityNeutral Formality = "neutral"
)

func ParseFormality(s string) (Formality, error) {
	switch Formality(strings.ToLower(s)) {
	case FormalityFormal, FormalityCasual, FormalityNeutral:
		return Formality(strings.ToLower(s)), nil
	}
	return "", fmt.Errorf("unknown formality %q", s)
}

// Profile is one pre-characterized synthetic voice. Profiles do not change
// after the catalog is built.
type Profile struct {
	Name           string
	Gender         Gender
	Age            AgeBracket
	Tone           Tone
	Energy         Energy
	Formality      Formality
	Keywords       []string
	ReferenceAudio string
	Description    string
}

// Validate checks that every attribute carries a known enumeration value.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile has empty name")
	}
	if _, err := ParseGender(string(p.Gender)); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	if _, err := ParseAgeBracket(string(p.Age)); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	if _, err := ParseTone(string(p.Tone)); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	if _, err := ParseEnergy(string(p.Energy)); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	if _, err := ParseFormality(string(p.Formality)); err != nil {
		return fmt.Errorf("profile %s: %w", p.Name, err)
	}
	return nil
}

// Catalog is an immutable, ordered collection of voice profiles. Iteration
// order is load order, which downstream ranking relies on for stable
// tie-breaking.
type Catalog struct {
	profiles []Profile
	byName   map[string]*Profile
}

// New builds a catalog from the given profiles, validating each one and
// rejecting duplicate names.
func New(profiles []Profile) (*Catalog, error) {
	c := &Catalog{
		profiles: make([]Profile, len(profiles)),
		byName:   make(map[string]*Profile, len(profiles)),
	}
	copy(c.profiles, profiles)
	for i := range c.profiles {
		p := &c.profiles[i]
		if err := p.Validate(); err != nil {
			return nil, err
		}
		key := strings.ToLower(p.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("duplicate profile name %q", p.Name)
		}
		c.byName[key] = p
	}
	return c, nil
}

// Default returns the built-in voice catalog.
func Default() *Catalog {
	c, err := New(defaultProfiles)
	if err != nil {
		// The built-in table is validated by tests; a failure here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return c
}

// Get returns the profile with the given name (case-insensitive).
func (c *Catalog) Get(name string) (*Profile, bool) {
	p, ok := c.byName[strings.ToLower(name)]
	return p, ok
}

// Profiles returns all profiles in load order.
func (c *Catalog) Profiles() []Profile {
	return c.profiles
}

// Len returns the number of profiles.
func (c *Catalog) Len() int {
	return len(c.profiles)
}

// ByGender returns all profiles with the given gender, in load order.
func (c *Catalog) ByGender(g Gender) []Profile {
	var out []Profile
	for _, p := range c.profiles {
		if p.Gender == g {
			out = append(out, p)
		}
	}
	return out
}

// ByAge returns all profiles in the given age bracket, in load order.
func (c *Catalog) ByAge(a AgeBracket) []Profile {
	var out []Profile
	for _, p := range c.profiles {
		if p.Age == a {
			out = append(out, p)
		}
	}
	return out
}
