// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package editor holds the server-side state of the two-step verse editor.

A [Draft] is a normalized arena: every commentary, sub-commentary (tika),
translation, and extra variable is a node stored in a map keyed by its own ID,
with separate order slices. Parents reference children by ID only, so editing
or removing one node never shifts the identity of another.

Every operation on a Draft returns a new Draft and leaves the receiver
untouched. The [Service] persists the result.
*/
package editor

import (
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/taibuivan/shloka-console/internal/compose"
	"github.com/taibuivan/shloka-console/internal/fieldrule"
	"github.com/taibuivan/shloka-console/internal/platform/apperr"
)

// # Steps & Banner

// Step is the editor page the draft is on.
type Step int

const (
	// StepMetadata selects locale, book, chapter, author, and toggles.
	StepMetadata Step = 1

	// StepContent collects the verse, commentaries, and extra variables.
	StepContent Step = 2
)

// BannerKind classifies the status banner.
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerError   BannerKind = "error"
)

// Banner is the dismissable result of the last submission.
type Banner struct {
	Kind    BannerKind `json:"kind"`
	Message string     `json:"message"`
}

// OwnerVerse marks a translation attached to the verse itself.
const OwnerVerse = "verse"

// # Nodes

// Metadata is the step-one form.
type Metadata struct {
	Locale            string `json:"locale"`
	BookID            int    `json:"book_id"`
	ChapterID         int    `json:"chapter_id"`
	AuthorID          int    `json:"author_id"`
	CommentaryEnabled bool   `json:"commentary_enabled"`
	TikaEnabled       bool   `json:"tika_enabled"`
}

// Verse is the core verse form. Number is kept as typed and checked on submit.
type Verse struct {
	Number          string `json:"number"`
	Transliteration string `json:"transliteration"`
	Text            string `json:"text"`
	Translation     string `json:"translation"`
}

// CommentaryNode is one Bhashya. AuthorID 0 means "the metadata author".
type CommentaryNode struct {
	ID             string   `json:"id"`
	Text           string   `json:"text"`
	Translation    string   `json:"translation"`
	AuthorID       int      `json:"author_id"`
	TikaIDs        []string `json:"tika_ids"`
	TranslationIDs []string `json:"translation_ids"`
}

// TikaNode is one sub-commentary under a commentary.
type TikaNode struct {
	ID           string `json:"id"`
	CommentaryID string `json:"commentary_id"`
	Title        string `json:"title"`
	Text         string `json:"text"`
	Translation  string `json:"translation"`
	AuthorID     int    `json:"author_id"`
}

// TranslationNode is a language translation owned by the verse or a commentary.
type TranslationNode struct {
	ID       string `json:"id"`
	Owner    string `json:"owner"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

// VariableNode is one typed extra variable.
type VariableNode struct {
	ID    string               `json:"id"`
	Kind  compose.VariableKind `json:"kind"`
	Label string               `json:"label"`
	Value string               `json:"value"`
}

// # Draft

// Draft is one editor session's form state. Version counts stored writes and
// guards concurrent edits (see [DraftRepository.Replace]).
type Draft struct {
	ID        string            `json:"id"`
	SessionID string            `json:"session_id"`
	Version   int64             `json:"version"`
	Step      Step              `json:"step"`
	Metadata  Metadata          `json:"metadata"`
	Verse     Verse             `json:"verse"`
	Hierarchy compose.Hierarchy `json:"hierarchy"`
	Banner    *Banner           `json:"banner,omitempty"`

	Commentaries     map[string]CommentaryNode  `json:"commentaries"`
	CommentaryOrder  []string                   `json:"commentary_order"`
	Tikas            map[string]TikaNode        `json:"tikas"`
	Translations     map[string]TranslationNode `json:"translations"`
	VerseTranslation []string                   `json:"verse_translation_ids"`
	Variables        map[string]VariableNode    `json:"variables"`
	VariableOrder    []string                   `json:"variable_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDraft returns a blank step-one draft for a session.
func NewDraft(id, sessionID string, now time.Time) Draft {
	return Draft{
		ID:           id,
		SessionID:    sessionID,
		Step:         StepMetadata,
		Metadata:     Metadata{Locale: fieldrule.LocaleSanskrit},
		Verse:        Verse{Number: "1"},
		Hierarchy:    compose.NewHierarchy(compose.MinHierarchyDepth),
		Commentaries: map[string]CommentaryNode{},
		Tikas:        map[string]TikaNode{},
		Translations: map[string]TranslationNode{},
		Variables:    map[string]VariableNode{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// clone deep-copies every map, slice, and node slice.
func (d Draft) clone() Draft {
	next := d

	next.Commentaries = make(map[string]CommentaryNode, len(d.Commentaries))
	for id, node := range d.Commentaries {
		node.TikaIDs = slices.Clone(node.TikaIDs)
		node.TranslationIDs = slices.Clone(node.TranslationIDs)
		next.Commentaries[id] = node
	}

	next.Tikas = maps.Clone(d.Tikas)
	next.Translations = maps.Clone(d.Translations)
	next.Variables = maps.Clone(d.Variables)
	next.CommentaryOrder = slices.Clone(d.CommentaryOrder)
	next.VerseTranslation = slices.Clone(d.VerseTranslation)
	next.VariableOrder = slices.Clone(d.VariableOrder)
	next.Hierarchy = compose.Hierarchy{
		Names:  slices.Clone(d.Hierarchy.Names),
		Values: slices.Clone(d.Hierarchy.Values),
	}

	if d.Banner != nil {
		banner := *d.Banner
		next.Banner = &banner
	}

	if next.Tikas == nil {
		next.Tikas = map[string]TikaNode{}
	}
	if next.Translations == nil {
		next.Translations = map[string]TranslationNode{}
	}
	if next.Variables == nil {
		next.Variables = map[string]VariableNode{}
	}

	return next
}

// # Step One

/*
WithMetadata replaces the step-one form.

Description: The form is replaced as a whole, so turning commentary off means
sending both toggles off. Asking for sub-commentary without commentary is
rejected with 422 and the stored toggles stay as they were.
*/
func (d Draft) WithMetadata(metadata Metadata) (Draft, error) {
	validator := metadataValidator(metadata)
	if err := validator.Err(); err != nil {
		return d, err
	}

	if metadata.TikaEnabled && !metadata.CommentaryEnabled {
		return d, apperr.Unprocessable("Tika requires Bhashya to be enabled")
	}

	next := d.clone()
	next.Metadata = metadata
	return next, nil
}

// Next moves to step two. A chapter and an author are required. When
// commentary is enabled and none exists, one blank commentary is seeded
// with seedID.
func (d Draft) Next(seedID string) (Draft, error) {
	if d.Step != StepMetadata {
		return d, apperr.Unprocessable("Draft is not on the metadata step")
	}

	if err := stepOneValidator(d.Metadata).Err(); err != nil {
		return d, err
	}

	next := d.clone()
	next.Step = StepContent

	if next.Metadata.CommentaryEnabled && len(next.CommentaryOrder) == 0 {
		next = next.addCommentary(seedID)
	}

	return next, nil
}

// Back returns to step one. Content is kept.
func (d Draft) Back() Draft {
	next := d.clone()
	next.Step = StepMetadata
	return next
}

// # Verse & Hierarchy

// WithVerse replaces the verse form.
func (d Draft) WithVerse(verse Verse) Draft {
	next := d.clone()
	next.Verse = verse
	return next
}

// WithHierarchy resizes to depth and applies names and values, which must be
// equal length when given.
func (d Draft) WithHierarchy(depth int, names, values []string) (Draft, error) {
	hierarchy := d.Hierarchy

	if names != nil || values != nil {
		if len(names) != len(values) {
			return d, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   "hierarchy",
				Message: "Names and values must have the same length",
			})
		}
		hierarchy = compose.Hierarchy{Names: slices.Clone(names), Values: slices.Clone(values)}
	}

	if depth == 0 {
		depth = len(hierarchy.Values)
	}

	next := d.clone()
	next.Hierarchy = hierarchy.WithDepth(depth)
	return next, nil
}

// # Commentaries

// CommentaryFields are the editable commentary values.
type CommentaryFields struct {
	Text        string
	Translation string
	AuthorID    int
}

// AddCommentary appends a blank commentary.
func (d Draft) AddCommentary(id string) (Draft, error) {
	if !d.Metadata.CommentaryEnabled {
		return d, apperr.Unprocessable("Bhashya is not enabled")
	}
	return d.clone().addCommentary(id), nil
}

// addCommentary mutates a draft that is already a private clone.
func (d Draft) addCommentary(id string) Draft {
	d.Commentaries[id] = CommentaryNode{ID: id, TikaIDs: []string{}, TranslationIDs: []string{}}
	d.CommentaryOrder = append(d.CommentaryOrder, id)
	return d
}

// UpdateCommentary edits one commentary in place.
func (d Draft) UpdateCommentary(id string, fields CommentaryFields) (Draft, error) {
	if _, ok := d.Commentaries[id]; !ok {
		return d, apperr.NotFound("Commentary")
	}

	next := d.clone()
	node := next.Commentaries[id]
	node.Text = fields.Text
	node.Translation = fields.Translation
	node.AuthorID = fields.AuthorID
	next.Commentaries[id] = node
	return next, nil
}

// RemoveCommentary deletes a commentary with its tikas and translations.
func (d Draft) RemoveCommentary(id string) (Draft, error) {
	node, ok := d.Commentaries[id]
	if !ok {
		return d, apperr.NotFound("Commentary")
	}

	next := d.clone()
	for _, tikaID := range node.TikaIDs {
		delete(next.Tikas, tikaID)
	}
	for _, translationID := range node.TranslationIDs {
		delete(next.Translations, translationID)
	}
	delete(next.Commentaries, id)
	next.CommentaryOrder = without(next.CommentaryOrder, id)
	return next, nil
}

// # Tikas

// TikaFields are the editable sub-commentary values.
type TikaFields struct {
	Title       string
	Text        string
	Translation string
	AuthorID    int
}

// AddTika appends a blank sub-commentary to a commentary.
func (d Draft) AddTika(commentaryID, id string) (Draft, error) {
	if !d.Metadata.TikaEnabled {
		return d, apperr.Unprocessable("Tika is not enabled")
	}
	if _, ok := d.Commentaries[commentaryID]; !ok {
		return d, apperr.NotFound("Commentary")
	}

	next := d.clone()
	parent := next.Commentaries[commentaryID]
	parent.TikaIDs = append(parent.TikaIDs, id)
	next.Commentaries[commentaryID] = parent
	next.Tikas[id] = TikaNode{ID: id, CommentaryID: commentaryID}
	return next, nil
}

// UpdateTika edits one sub-commentary.
func (d Draft) UpdateTika(id string, fields TikaFields) (Draft, error) {
	if _, ok := d.Tikas[id]; !ok {
		return d, apperr.NotFound("Tika")
	}

	next := d.clone()
	node := next.Tikas[id]
	node.Title = fields.Title
	node.Text = fields.Text
	node.Translation = fields.Translation
	node.AuthorID = fields.AuthorID
	next.Tikas[id] = node
	return next, nil
}

// RemoveTika deletes one sub-commentary.
func (d Draft) RemoveTika(id string) (Draft, error) {
	node, ok := d.Tikas[id]
	if !ok {
		return d, apperr.NotFound("Tika")
	}

	next := d.clone()
	delete(next.Tikas, id)
	if parent, ok := next.Commentaries[node.CommentaryID]; ok {
		parent.TikaIDs = without(parent.TikaIDs, id)
		next.Commentaries[node.CommentaryID] = parent
	}
	return next, nil
}

// # Translations

// AddTranslation appends a translation owned by the verse ([OwnerVerse]) or
// by the commentary with ID owner.
func (d Draft) AddTranslation(owner, id, language string) (Draft, error) {
	if owner != OwnerVerse {
		if _, ok := d.Commentaries[owner]; !ok {
			return d, apperr.NotFound("Commentary")
		}
	}

	next := d.clone()
	next.Translations[id] = TranslationNode{ID: id, Owner: owner, Language: language}

	if owner == OwnerVerse {
		next.VerseTranslation = append(next.VerseTranslation, id)
		return next, nil
	}

	parent := next.Commentaries[owner]
	parent.TranslationIDs = append(parent.TranslationIDs, id)
	next.Commentaries[owner] = parent
	return next, nil
}

// UpdateTranslation edits one translation.
func (d Draft) UpdateTranslation(id, language, text string) (Draft, error) {
	if _, ok := d.Translations[id]; !ok {
		return d, apperr.NotFound("Translation")
	}

	next := d.clone()
	node := next.Translations[id]
	node.Language = language
	node.Text = text
	next.Translations[id] = node
	return next, nil
}

// RemoveTranslation deletes one translation.
func (d Draft) RemoveTranslation(id string) (Draft, error) {
	node, ok := d.Translations[id]
	if !ok {
		return d, apperr.NotFound("Translation")
	}

	next := d.clone()
	delete(next.Translations, id)

	if node.Owner == OwnerVerse {
		next.VerseTranslation = without(next.VerseTranslation, id)
	} else if parent, ok := next.Commentaries[node.Owner]; ok {
		parent.TranslationIDs = without(parent.TranslationIDs, id)
		next.Commentaries[node.Owner] = parent
	}

	return next, nil
}

// # Extra Variables

// AddVariable appends a blank variable of the given kind.
func (d Draft) AddVariable(id string, kind compose.VariableKind) (Draft, error) {
	if !kind.IsValid() {
		return d, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "kind",
			Message: "Must be one of: text-variable, numeric-variable",
		})
	}

	next := d.clone()
	next.Variables[id] = VariableNode{ID: id, Kind: kind}
	next.VariableOrder = append(next.VariableOrder, id)
	return next, nil
}

// UpdateVariable edits one variable's label and value.
func (d Draft) UpdateVariable(id, label, value string) (Draft, error) {
	if _, ok := d.Variables[id]; !ok {
		return d, apperr.NotFound("Variable")
	}

	next := d.clone()
	node := next.Variables[id]
	node.Label = label
	node.Value = value
	next.Variables[id] = node
	return next, nil
}

// RemoveVariable deletes one variable.
func (d Draft) RemoveVariable(id string) (Draft, error) {
	if _, ok := d.Variables[id]; !ok {
		return d, apperr.NotFound("Variable")
	}

	next := d.clone()
	delete(next.Variables, id)
	next.VariableOrder = without(next.VariableOrder, id)
	return next, nil
}

// # Banner

// WithBanner records the outcome of a submission.
func (d Draft) WithBanner(kind BannerKind, message string) Draft {
	next := d.clone()
	next.Banner = &Banner{Kind: kind, Message: message}
	return next
}

// DismissBanner clears the status banner.
func (d Draft) DismissBanner() Draft {
	next := d.clone()
	next.Banner = nil
	return next
}

/*
AfterSubmit prepares the form for the next verse.

Description: The verse number is incremented, primary text and translation
are cleared (verse translation rows keep their language), transliteration and
extra variables are kept, and the hierarchy advances. Commentaries are
replaced by one blank commentary (seedID) when commentary is enabled, or
removed otherwise. A success banner names the saved verse.
*/
func (d Draft) AfterSubmit(seedID string) Draft {
	next := d.clone()

	saved := fieldrule.ForLocale(d.Metadata.Locale).Normalize(fieldrule.FieldVerseNumber, d.Verse.Number)
	if number, err := strconv.Atoi(saved); err == nil {
		next.Verse.Number = strconv.Itoa(number + 1)
	}
	next.Verse.Text = ""
	next.Verse.Translation = ""

	for _, id := range next.VerseTranslation {
		node := next.Translations[id]
		node.Text = ""
		next.Translations[id] = node
	}

	for _, id := range d.CommentaryOrder {
		for _, translationID := range d.Commentaries[id].TranslationIDs {
			delete(next.Translations, translationID)
		}
	}
	next.Commentaries = map[string]CommentaryNode{}
	next.CommentaryOrder = nil
	next.Tikas = map[string]TikaNode{}

	if next.Metadata.CommentaryEnabled {
		next = next.addCommentary(seedID)
	}

	next.Hierarchy = d.Hierarchy.Advance()
	next.Banner = &Banner{Kind: BannerSuccess, Message: "Verse " + saved + " saved successfully"}

	return next
}

// without returns ids minus one value, preserving order.
func without(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(candidate string) bool { return candidate == id })
}
