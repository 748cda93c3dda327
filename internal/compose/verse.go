// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package compose

import (
	"math"
	"strconv"
	"strings"

	"github.com/taibuivan/shloka-console/pkg/pointer"
	"github.com/taibuivan/shloka-console/pkg/slice"
)

// # Dynamic Zone

// VariableKind is the declared type of an extra variable.
type VariableKind string

const (
	// TextVariable keeps its value as a string.
	TextVariable VariableKind = "text-variable"

	// NumericVariable coerces its value to a float64.
	NumericVariable VariableKind = "numeric-variable"
)

// componentNamespace prefixes dynamic-zone component identifiers.
const componentNamespace = "variables."

// IsValid reports whether k is a recognised [VariableKind].
func (k VariableKind) IsValid() bool {
	return k == TextVariable || k == NumericVariable
}

// Component returns the dynamic-zone discriminator, e.g. "variables.numeric-variable".
func (k VariableKind) Component() string {
	return componentNamespace + string(k)
}

// # Composer Input

// LanguageText is a translation of a verse or commentary into one language.
type LanguageText struct {
	Language string
	Text     string
}

// VerseFields holds the top-level verse values.
type VerseFields struct {
	Locale          string
	Chapter         int
	Number          int
	Transliteration string
	Text            string
	Translation     string
	Translations    []LanguageText
}

// Commentary is a Bhashya with its nested sub-commentaries.
type Commentary struct {
	Text         string
	Translation  string
	Author       int
	Translations []LanguageText
	Tikas        []Tika
}

// Tika is a sub-commentary attached to a [Commentary].
type Tika struct {
	Title       string
	Text        string
	Translation string
	Author      int
}

// ExtraVariable is a typed label/value pair destined for the dynamic zone.
type ExtraVariable struct {
	Kind  VariableKind
	Label string
	Value string
}

// Options carries the editor toggles that gate optional sections.
type Options struct {
	CommentaryEnabled bool
	TikaEnabled       bool
}

// # Composer Output

// Submission is the request body for creating a verse record.
type Submission struct {
	Data VerseDocument `json:"data"`
}

// VerseDocument mirrors the content API's verse schema. Field names follow
// the upstream API IDs, including their irregular casing.
type VerseDocument struct {
	Locale          string             `json:"locale"`
	Chapter         int                `json:"chapter"`
	VerseNumber     int                `json:"Verse_Number"`
	Transliteration *string            `json:"Transliteration"`
	Text            RichText           `json:"Text"`
	Translation     RichText           `json:"Translation"`
	Translations    []TranslationEntry `json:"translations,omitempty"`
	Commentary      []CommentaryEntry  `json:"Commentry,omitempty"`
	ExtraVariables  []DynamicComponent `json:"extra_variables,omitempty"`
}

// TranslationEntry is one language translation component.
type TranslationEntry struct {
	Language string   `json:"language"`
	Text     RichText `json:"text"`
}

// CommentaryEntry is one Bhashya component.
type CommentaryEntry struct {
	Text         RichText           `json:"Text"`
	Translation  RichText           `json:"translation"`
	Author       int                `json:"author"`
	Translations []TranslationEntry `json:"translations,omitempty"`
	Tika         []TikaEntry        `json:"tika,omitempty"`
}

// TikaEntry is one sub-commentary component.
type TikaEntry struct {
	Title       *string  `json:"title"`
	Text        RichText `json:"text"`
	Translation RichText `json:"translation"`
	Author      int      `json:"author"`
}

// DynamicComponent is one entry of the extra-variable dynamic zone.
// Value is a float64 for numeric variables and a string otherwise.
type DynamicComponent struct {
	Component string `json:"__component"`
	Label     string `json:"Label"`
	Value     any    `json:"Value"`
}

// # Composition

/*
ComposeVerseSubmission builds the verse submission document.

Description: The commentary list is attached only when commentary is enabled
and at least one entry exists; each entry carries its sub-commentaries only
when Tika is enabled and it has at least one. The dynamic zone is attached
only when extra variables exist.

Parameters:
  - fields: VerseFields
  - commentaries: []Commentary
  - extras: []ExtraVariable
  - options: Options

Returns:
  - Submission: JSON-ready document
*/
func ComposeVerseSubmission(fields VerseFields, commentaries []Commentary, extras []ExtraVariable, options Options) Submission {
	document := VerseDocument{
		Locale:          fields.Locale,
		Chapter:         fields.Chapter,
		VerseNumber:     fields.Number,
		Transliteration: pointer.NonBlank(fields.Transliteration),
		Text:            TextToRichBlocks(fields.Text),
		Translation:     TextToRichBlocks(fields.Translation),
		Translations:    composeTranslations(fields.Translations),
	}

	if options.CommentaryEnabled && len(commentaries) > 0 {
		document.Commentary = slice.Map(commentaries, func(commentary Commentary) CommentaryEntry {
			return composeCommentary(commentary, options.TikaEnabled)
		})
	}

	if len(extras) > 0 {
		document.ExtraVariables = slice.Map(extras, composeVariable)
	}

	return Submission{Data: document}
}

func composeCommentary(commentary Commentary, tikaEnabled bool) CommentaryEntry {
	entry := CommentaryEntry{
		Text:         TextToRichBlocks(commentary.Text),
		Translation:  TextToRichBlocks(commentary.Translation),
		Author:       commentary.Author,
		Translations: composeTranslations(commentary.Translations),
	}

	if tikaEnabled && len(commentary.Tikas) > 0 {
		entry.Tika = slice.Map(commentary.Tikas, func(tika Tika) TikaEntry {
			return TikaEntry{
				Title:       pointer.NonBlank(tika.Title),
				Text:        TextToRichBlocks(tika.Text),
				Translation: TextToRichBlocks(tika.Translation),
				Author:      tika.Author,
			}
		})
	}

	return entry
}

// composeTranslations drops translations whose text is blank.
func composeTranslations(translations []LanguageText) []TranslationEntry {
	var entries []TranslationEntry
	for _, translation := range translations {
		blocks := TextToRichBlocks(translation.Text)
		if blocks == nil {
			continue
		}
		entries = append(entries, TranslationEntry{Language: translation.Language, Text: blocks})
	}
	return entries
}

func composeVariable(variable ExtraVariable) DynamicComponent {
	component := DynamicComponent{
		Component: variable.Kind.Component(),
		Label:     variable.Label,
		Value:     variable.Value,
	}

	if variable.Kind == NumericVariable {
		component.Value = numericValue(variable.Value)
	}

	return component
}

// numericValue parses a float, degrading to nil (JSON null) when the value is
// not a finite number.
func numericValue(raw string) any {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return value
}
