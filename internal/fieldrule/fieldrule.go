// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package fieldrule declares how each editor field is cleaned and checked.

Rules are data, not scattered handlers: a [Set] is selected by locale and maps
a field identifier to a [Rule] whose [Kind] decides normalization (Unicode NFC,
script filtering, digit folding) and validation.

Usage:

	rules := fieldrule.ForLocale("sa")
	text := rules.Normalize(fieldrule.FieldVerseText, input)
	rules.Check(validator, fieldrule.FieldVerseNumber, number)
*/
package fieldrule

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/shloka-console/internal/platform/validate"
)

// # Field Kinds

// Kind selects the normalization and validation applied to a field.
type Kind string

const (
	// Devanagari keeps Devanagari letters, Vedic marks, digits, whitespace and punctuation.
	Devanagari Kind = "devanagari"

	// Transliteration keeps Latin letters (including IAST diacritics).
	Transliteration Kind = "transliteration"

	// FreeText accepts any script; control characters other than line breaks are removed.
	FreeText Kind = "free_text"

	// Integer is a positive whole number. Devanagari digits are folded to ASCII.
	Integer Kind = "integer"

	// Number is a floating point value. Devanagari digits are folded to ASCII.
	Number Kind = "number"
)

// # Field Identifiers

const (
	FieldVerseNumber     = "verse_number"
	FieldVerseText       = "text"
	FieldTransliteration = "transliteration"
	FieldTranslation     = "translation"
	FieldCommentaryText  = "commentary_text"
	FieldTikaTitle       = "tika_title"
	FieldTikaText        = "tika_text"
	FieldVariableLabel   = "variable_label"
	FieldNumericVariable = "numeric_variable"
	FieldTextVariable    = "text_variable"
	FieldHierarchyValue  = "hierarchy_value"
)

// # Locales

const (
	LocaleSanskrit = "sa"
	LocaleHindi    = "hi"
	LocaleEnglish  = "en"
)

// Locales lists the locales the editor offers, default first.
var Locales = []string{LocaleSanskrit, LocaleHindi, LocaleEnglish}

// IsSupportedLocale reports whether locale is one of [Locales].
func IsSupportedLocale(locale string) bool {
	for _, known := range Locales {
		if known == locale {
			return true
		}
	}
	return false
}

// # Rules

// Rule binds a field to its kind and constraints.
type Rule struct {
	Field    string
	Kind     Kind
	Required bool
	MaxLen   int
}

// Set is the rule table for one locale.
type Set struct {
	Locale string
	rules  map[string]Rule
}

/*
ForLocale returns the rule table for a locale.

Description: Sanskrit and Hindi store primary and commentary text in
Devanagari; English (and any unknown locale) treats it as free text.
Translations are always free text and transliteration is always Latin.

Parameters:
  - locale: string

Returns:
  - Set: Rule table
*/
func ForLocale(locale string) Set {
	primary := FreeText
	if locale == LocaleSanskrit || locale == LocaleHindi {
		primary = Devanagari
	}

	rules := []Rule{
		{Field: FieldVerseNumber, Kind: Integer, Required: true},
		{Field: FieldVerseText, Kind: primary, Required: true},
		{Field: FieldTransliteration, Kind: Transliteration},
		{Field: FieldTranslation, Kind: FreeText},
		{Field: FieldCommentaryText, Kind: primary},
		{Field: FieldTikaTitle, Kind: FreeText, MaxLen: 255},
		{Field: FieldTikaText, Kind: primary},
		{Field: FieldVariableLabel, Kind: FreeText, Required: true, MaxLen: 100},
		{Field: FieldNumericVariable, Kind: Number, Required: true},
		{Field: FieldTextVariable, Kind: FreeText},
		{Field: FieldHierarchyValue, Kind: FreeText, Required: true, MaxLen: 32},
	}

	set := Set{Locale: locale, rules: make(map[string]Rule, len(rules))}
	for _, rule := range rules {
		set.rules[rule.Field] = rule
	}

	return set
}

// Rule returns the rule for field. Unknown fields fall back to optional free text.
func (s Set) Rule(field string) Rule {
	if rule, ok := s.rules[field]; ok {
		return rule
	}
	return Rule{Field: field, Kind: FreeText}
}

// Normalize applies the field's rule to value.
func (s Set) Normalize(field, value string) string {
	return s.Rule(field).Normalize(value)
}

/*
Check validates value against the field's rule, recording failures under name.

Description: name lets callers report nested positions such as
"commentaries[2].text" while sharing one rule.
*/
func (s Set) Check(validator *validate.Validator, name, field, value string) *validate.Validator {
	return s.Rule(field).Check(validator, name, value)
}

// Normalize cleans value according to the rule's kind.
func (r Rule) Normalize(value string) string {
	var t transform.Transformer

	switch r.Kind {
	case Devanagari:
		t = transform.Chain(norm.NFC, runes.Remove(runes.Predicate(notDevanagari)))
	case Transliteration:
		t = transform.Chain(norm.NFC, runes.Remove(runes.Predicate(notLatin)))
	case Integer, Number:
		return strings.TrimSpace(foldDigits(value))
	default:
		t = transform.Chain(norm.NFC, runes.Remove(runes.Predicate(isStrayControl)))
	}

	normalized, _, err := transform.String(t, value)
	if err != nil {
		return value
	}

	return normalized
}

// Check validates the normalized form of value.
func (r Rule) Check(validator *validate.Validator, name, value string) *validate.Validator {
	normalized := r.Normalize(value)

	if strings.TrimSpace(normalized) == "" {
		switch {
		case strings.TrimSpace(value) != "" && r.Kind == Devanagari:
			return validator.Custom(name, true, "Must be written in Devanagari")
		case strings.TrimSpace(value) != "" && r.Kind == Transliteration:
			return validator.Custom(name, true, "Must be written in Latin script")
		case r.Required:
			return validator.Required(name, normalized)
		default:
			return validator
		}
	}

	switch r.Kind {
	case Integer:
		validator.PositiveInt(name, normalized)
	case Number:
		validator.Float(name, normalized)
	}

	if r.MaxLen > 0 {
		validator.MaxLen(name, normalized, r.MaxLen)
	}

	return validator
}

// # Character Classes

const (
	zeroWidthNonJoiner = '\u200c'
	zeroWidthJoiner    = '\u200d'
)

// vedicExtensions covers Vedic accent marks used alongside Devanagari.
var vedicExtensions = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x1CD0, Hi: 0x1CFF, Stride: 1}},
}

func isCommon(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsDigit(r) || unicode.IsPunct(r)
}

func notDevanagari(r rune) bool {
	if r == zeroWidthJoiner || r == zeroWidthNonJoiner {
		return false
	}
	return !(unicode.Is(unicode.Devanagari, r) || unicode.Is(vedicExtensions, r) || isCommon(r))
}

func notLatin(r rune) bool {
	return !(unicode.Is(unicode.Latin, r) || unicode.Is(unicode.Mn, r) || isCommon(r))
}

func isStrayControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t'
}

// foldDigits maps Devanagari digits to ASCII.
func foldDigits(value string) string {
	return strings.Map(func(r rune) rune {
		if r >= '०' && r <= '९' {
			return '0' + (r - '०')
		}
		return r
	}, value)
}
