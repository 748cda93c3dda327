// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package batch turns YAML verse files into editor drafts for bulk entry.

A file carries the step-one selections once and a list of verses. Each verse
is replayed through the same [editor.Draft] operations the console uses, so
the same field rules, defaults, and composer apply. Verse numbers and the
innermost hierarchy value auto-increment when a verse omits them.
*/
package batch

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/shloka-console/internal/compose"
	"github.com/taibuivan/shloka-console/internal/editor"
	"github.com/taibuivan/shloka-console/internal/fieldrule"
	"github.com/taibuivan/shloka-console/pkg/uuid"
)

// # File Format

// File is one YAML batch.
type File struct {
	Locale     string     `yaml:"locale"`
	Book       int        `yaml:"book"`
	Chapter    int        `yaml:"chapter"`
	Author     int        `yaml:"author"`
	Commentary bool       `yaml:"commentary"`
	Tika       bool       `yaml:"tika"`
	Start      int        `yaml:"start"`
	Hierarchy  *Hierarchy `yaml:"hierarchy"`
	Verses     []Verse    `yaml:"verses"`
}

// Hierarchy is the starting position of the first verse.
type Hierarchy struct {
	Names  []string `yaml:"names"`
	Values []string `yaml:"values"`
}

// Verse is one verse with its optional sections.
type Verse struct {
	Number          string        `yaml:"number"`
	Hierarchy       []string      `yaml:"hierarchy"`
	Transliteration string        `yaml:"transliteration"`
	Text            string        `yaml:"text"`
	Translation     string        `yaml:"translation"`
	Translations    []Translation `yaml:"translations"`
	Commentaries    []Commentary  `yaml:"commentaries"`
	Variables       []Variable    `yaml:"variables"`
}

// Translation is a language translation row.
type Translation struct {
	Language string `yaml:"language"`
	Text     string `yaml:"text"`
}

// Commentary is one Bhashya. Author 0 uses the file author.
type Commentary struct {
	Text         string        `yaml:"text"`
	Translation  string        `yaml:"translation"`
	Author       int           `yaml:"author"`
	Translations []Translation `yaml:"translations"`
	Tikas        []Tika        `yaml:"tikas"`
}

// Tika is one sub-commentary.
type Tika struct {
	Title       string `yaml:"title"`
	Text        string `yaml:"text"`
	Translation string `yaml:"translation"`
	Author      int    `yaml:"author"`
}

// Variable is one extra variable.
type Variable struct {
	Kind  compose.VariableKind `yaml:"kind"`
	Label string               `yaml:"label"`
	Value string               `yaml:"value"`
}

// Load decodes a batch file. Unknown keys are rejected.
func Load(reader io.Reader) (*File, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	var file File
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("batch_decode_failed: %w", err)
	}

	if file.Locale == "" {
		file.Locale = fieldrule.LocaleSanskrit
	}
	if len(file.Verses) == 0 {
		return nil, fmt.Errorf("batch: file has no verses")
	}

	return &file, nil
}

// # Drafts

// Item is one verse prepared for submission.
type Item struct {
	Position int
	Draft    editor.Draft
}

// Label names the item in reports, e.g. "verse 12 (2.12)".
func (item Item) Label() string {
	return fmt.Sprintf("verse %s (%s)", item.Draft.Verse.Number, item.Draft.Hierarchy.Label())
}

/*
Drafts builds one step-two draft per verse.

Description: A verse without a number takes the previous number plus one
(the first defaults to Start, or 1). A verse without hierarchy values takes
the previous values advanced by one. Builder errors (unknown variable kind,
Tika without Bhashya) abort the whole batch.
*/
func (file *File) Drafts() ([]Item, error) {
	metadata := editor.Metadata{
		Locale:            file.Locale,
		BookID:            file.Book,
		ChapterID:         file.Chapter,
		AuthorID:          file.Author,
		CommentaryEnabled: file.Commentary,
		TikaEnabled:       file.Tika,
	}

	hierarchy := compose.NewHierarchy(compose.MinHierarchyDepth)
	if file.Hierarchy != nil {
		hierarchy = resize(file.Hierarchy.Names, file.Hierarchy.Values)
	}

	number := max(file.Start, 1) - 1
	items := make([]Item, 0, len(file.Verses))

	rules := fieldrule.ForLocale(file.Locale)

	for position, verse := range file.Verses {
		label := verse.Number
		if label == "" {
			number++
			label = strconv.Itoa(number)
		} else if parsed, err := strconv.Atoi(rules.Normalize(fieldrule.FieldVerseNumber, label)); err == nil {
			number = parsed
		}

		if len(verse.Hierarchy) > 0 {
			hierarchy = resize(hierarchy.Names, verse.Hierarchy)
		} else if position > 0 {
			hierarchy = hierarchy.Advance()
		}

		draft, err := build(metadata, verse, label, hierarchy)
		if err != nil {
			return nil, fmt.Errorf("batch: verse %d: %w", position+1, err)
		}

		items = append(items, Item{Position: position + 1, Draft: draft})
	}

	return items, nil
}

// resize pairs values with names, falling back to the default level names
// when the counts differ.
func resize(names, values []string) compose.Hierarchy {
	if len(names) != len(values) {
		names = compose.NewHierarchy(len(values)).Names
	}
	return compose.Hierarchy{Names: names, Values: values}.WithDepth(len(values))
}

// build replays one verse through the editor operations.
func build(metadata editor.Metadata, verse Verse, number string, hierarchy compose.Hierarchy) (editor.Draft, error) {

	// Enter step two with commentary off so no blank commentary is seeded;
	// the file lists its own.
	draft, err := editor.NewDraft(uuid.New(), "", time.Now().UTC()).WithMetadata(editor.Metadata{
		Locale:    metadata.Locale,
		ChapterID: metadata.ChapterID,
		AuthorID:  metadata.AuthorID,
	})
	if err != nil {
		return draft, err
	}
	if draft, err = draft.Next(""); err != nil {
		return draft, err
	}
	if draft, err = draft.WithMetadata(metadata); err != nil {
		return draft, err
	}

	draft = draft.WithVerse(editor.Verse{
		Number:          number,
		Transliteration: verse.Transliteration,
		Text:            verse.Text,
		Translation:     verse.Translation,
	})

	if draft, err = draft.WithHierarchy(0, hierarchy.Names, hierarchy.Values); err != nil {
		return draft, err
	}

	for _, translation := range verse.Translations {
		if draft, err = addTranslation(draft, editor.OwnerVerse, translation); err != nil {
			return draft, err
		}
	}

	for _, commentary := range verse.Commentaries {
		commentaryID := uuid.New()
		if draft, err = draft.AddCommentary(commentaryID); err != nil {
			return draft, err
		}
		if draft, err = draft.UpdateCommentary(commentaryID, editor.CommentaryFields{
			Text:        commentary.Text,
			Translation: commentary.Translation,
			AuthorID:    commentary.Author,
		}); err != nil {
			return draft, err
		}

		for _, translation := range commentary.Translations {
			if draft, err = addTranslation(draft, commentaryID, translation); err != nil {
				return draft, err
			}
		}

		for _, tika := range commentary.Tikas {
			tikaID := uuid.New()
			if draft, err = draft.AddTika(commentaryID, tikaID); err != nil {
				return draft, err
			}
			if draft, err = draft.UpdateTika(tikaID, editor.TikaFields{
				Title:       tika.Title,
				Text:        tika.Text,
				Translation: tika.Translation,
				AuthorID:    tika.Author,
			}); err != nil {
				return draft, err
			}
		}
	}

	for _, variable := range verse.Variables {
		variableID := uuid.New()
		if draft, err = draft.AddVariable(variableID, variable.Kind); err != nil {
			return draft, err
		}
		if draft, err = draft.UpdateVariable(variableID, variable.Label, variable.Value); err != nil {
			return draft, err
		}
	}

	return draft, nil
}

func addTranslation(draft editor.Draft, owner string, translation Translation) (editor.Draft, error) {
	id := uuid.New()
	draft, err := draft.AddTranslation(owner, id, translation.Language)
	if err != nil {
		return draft, err
	}
	return draft.UpdateTranslation(id, translation.Language, translation.Text)
}
