// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package editor

import (
	"time"

	"github.com/taibuivan/shloka-console/internal/compose"
	"github.com/taibuivan/shloka-console/pkg/slice"
)

// # Client View

// CommentaryView is a commentary with its children resolved in order.
type CommentaryView struct {
	ID           string            `json:"id"`
	Text         string            `json:"text"`
	Translation  string            `json:"translation"`
	AuthorID     int               `json:"author_id"`
	Tikas        []TikaNode        `json:"tikas"`
	Translations []TranslationNode `json:"translations"`
}

// View is the tree-shaped projection of a [Draft] rendered to clients.
type View struct {
	ID           string            `json:"id"`
	Step         Step              `json:"step"`
	Metadata     Metadata          `json:"metadata"`
	Verse        Verse             `json:"verse"`
	Hierarchy    compose.Hierarchy `json:"hierarchy"`
	Translations []TranslationNode `json:"translations"`
	Commentaries []CommentaryView  `json:"commentaries"`
	Variables    []VariableNode    `json:"variables"`
	Banner       *Banner           `json:"banner"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// View resolves the arena into nested, ordered lists.
func (d Draft) View() View {
	commentaries := slice.Map(d.CommentaryOrder, func(id string) CommentaryView {
		node := d.Commentaries[id]
		return CommentaryView{
			ID:           node.ID,
			Text:         node.Text,
			Translation:  node.Translation,
			AuthorID:     node.AuthorID,
			Tikas:        slice.Pick(node.TikaIDs, d.Tikas),
			Translations: slice.Pick(node.TranslationIDs, d.Translations),
		}
	})

	return View{
		ID:           d.ID,
		Step:         d.Step,
		Metadata:     d.Metadata,
		Verse:        d.Verse,
		Hierarchy:    d.Hierarchy,
		Translations: slice.Pick(d.VerseTranslation, d.Translations),
		Commentaries: orEmpty(commentaries),
		Variables:    slice.Pick(d.VariableOrder, d.Variables),
		Banner:       d.Banner,
		UpdatedAt:    d.UpdatedAt,
	}
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
