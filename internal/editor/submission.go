// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package editor

import (
	"fmt"
	"strconv"

	"github.com/taibuivan/shloka-console/internal/compose"
	"github.com/taibuivan/shloka-console/internal/fieldrule"
	"github.com/taibuivan/shloka-console/internal/platform/validate"
)

// # Validation

func metadataValidator(metadata Metadata) *validate.Validator {
	validator := &validate.Validator{}
	validator.OneOf("locale", metadata.Locale, fieldrule.Locales...).
		Custom("book_id", metadata.BookID < 0, "Must not be negative").
		Custom("chapter_id", metadata.ChapterID < 0, "Must not be negative").
		Custom("author_id", metadata.AuthorID < 0, "Must not be negative")
	return validator
}

func stepOneValidator(metadata Metadata) *validate.Validator {
	validator := &validate.Validator{}
	validator.Custom("chapter_id", metadata.ChapterID <= 0, "Please select a chapter").
		Custom("author_id", metadata.AuthorID <= 0, "Please select an author")
	return validator
}

/*
Validate checks the draft is ready to submit.

Description: Step-one selections must be present, the verse number must be a
positive integer, the source text must be present and in the locale's script,
and every extra variable needs a label (and a number, for numeric ones).

Returns:
  - error: apperr.ValidationError listing every failed field
*/
func (d Draft) Validate() error {
	rules := fieldrule.ForLocale(d.Metadata.Locale)
	validator := stepOneValidator(d.Metadata)

	rules.Check(validator, "verse.number", fieldrule.FieldVerseNumber, d.Verse.Number)
	rules.Check(validator, "verse.text", fieldrule.FieldVerseText, d.Verse.Text)
	rules.Check(validator, "verse.transliteration", fieldrule.FieldTransliteration, d.Verse.Transliteration)

	for index, id := range d.commentaryIDs() {
		node := d.Commentaries[id]
		rules.Check(validator, fmt.Sprintf("commentaries[%d].text", index), fieldrule.FieldCommentaryText, node.Text)

		for tikaIndex, tikaID := range d.tikaIDs(node) {
			tika := d.Tikas[tikaID]
			name := fmt.Sprintf("commentaries[%d].tikas[%d]", index, tikaIndex)
			rules.Check(validator, name+".title", fieldrule.FieldTikaTitle, tika.Title)
			rules.Check(validator, name+".text", fieldrule.FieldTikaText, tika.Text)
		}
	}

	for index, id := range d.VariableOrder {
		node := d.Variables[id]
		name := fmt.Sprintf("variables[%d]", index)
		rules.Check(validator, name+".label", fieldrule.FieldVariableLabel, node.Label)

		if node.Kind == compose.NumericVariable {
			rules.Check(validator, name+".value", fieldrule.FieldNumericVariable, node.Value)
		}
	}

	return validator.Err()
}

// commentaryIDs returns the commentaries that will be submitted.
func (d Draft) commentaryIDs() []string {
	if !d.Metadata.CommentaryEnabled {
		return nil
	}
	return d.CommentaryOrder
}

// tikaIDs returns the sub-commentaries of node that will be submitted.
func (d Draft) tikaIDs(node CommentaryNode) []string {
	if !d.Metadata.TikaEnabled {
		return nil
	}
	return node.TikaIDs
}

// # Composition

/*
Submission composes the verse document from the normalized draft.

Description: Every text passes through the locale's field rules first.
Commentary and sub-commentary authors default to the metadata author.
*/
func (d Draft) Submission() compose.Submission {
	rules := fieldrule.ForLocale(d.Metadata.Locale)

	number, _ := strconv.Atoi(rules.Normalize(fieldrule.FieldVerseNumber, d.Verse.Number))

	fields := compose.VerseFields{
		Locale:          d.Metadata.Locale,
		Chapter:         d.Metadata.ChapterID,
		Number:          number,
		Transliteration: rules.Normalize(fieldrule.FieldTransliteration, d.Verse.Transliteration),
		Text:            rules.Normalize(fieldrule.FieldVerseText, d.Verse.Text),
		Translation:     rules.Normalize(fieldrule.FieldTranslation, d.Verse.Translation),
		Translations:    d.languageTexts(rules, d.VerseTranslation),
	}

	var commentaries []compose.Commentary
	for _, id := range d.CommentaryOrder {
		node := d.Commentaries[id]

		commentary := compose.Commentary{
			Text:         rules.Normalize(fieldrule.FieldCommentaryText, node.Text),
			Translation:  rules.Normalize(fieldrule.FieldTranslation, node.Translation),
			Author:       d.authorOr(node.AuthorID),
			Translations: d.languageTexts(rules, node.TranslationIDs),
		}

		for _, tikaID := range node.TikaIDs {
			tika := d.Tikas[tikaID]
			commentary.Tikas = append(commentary.Tikas, compose.Tika{
				Title:       rules.Normalize(fieldrule.FieldTikaTitle, tika.Title),
				Text:        rules.Normalize(fieldrule.FieldTikaText, tika.Text),
				Translation: rules.Normalize(fieldrule.FieldTranslation, tika.Translation),
				Author:      d.authorOr(tika.AuthorID),
			})
		}

		commentaries = append(commentaries, commentary)
	}

	var extras []compose.ExtraVariable
	for _, id := range d.VariableOrder {
		node := d.Variables[id]

		valueField := fieldrule.FieldTextVariable
		if node.Kind == compose.NumericVariable {
			valueField = fieldrule.FieldNumericVariable
		}

		extras = append(extras, compose.ExtraVariable{
			Kind:  node.Kind,
			Label: rules.Normalize(fieldrule.FieldVariableLabel, node.Label),
			Value: rules.Normalize(valueField, node.Value),
		})
	}

	return compose.ComposeVerseSubmission(fields, commentaries, extras, compose.Options{
		CommentaryEnabled: d.Metadata.CommentaryEnabled,
		TikaEnabled:       d.Metadata.TikaEnabled,
	})
}

func (d Draft) authorOr(authorID int) int {
	if authorID > 0 {
		return authorID
	}
	return d.Metadata.AuthorID
}

func (d Draft) languageTexts(rules fieldrule.Set, ids []string) []compose.LanguageText {
	var texts []compose.LanguageText
	for _, id := range ids {
		node := d.Translations[id]
		texts = append(texts, compose.LanguageText{
			Language: node.Language,
			Text:     rules.Normalize(fieldrule.FieldTranslation, node.Text),
		})
	}
	return texts
}
