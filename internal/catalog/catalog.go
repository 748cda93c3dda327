// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog loads the metadata dropdowns for the verse editor.

Books, authors, and chapters are read from the content API in parallel. The
load is all-or-nothing: if any read fails the failure is logged and the
editor receives empty lists rather than an error.
*/
package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/shloka-console/internal/fieldrule"
	"github.com/taibuivan/shloka-console/internal/platform/ctxutil"
	"github.com/taibuivan/shloka-console/internal/strapi"
	"github.com/taibuivan/shloka-console/internal/users/session"
	"github.com/taibuivan/shloka-console/pkg/slice"
)

// # Domain Types

// Option is one dropdown entry.
type Option struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Catalog is the full set of editor dropdowns.
type Catalog struct {
	Books    []Option `json:"books"`
	Authors  []Option `json:"authors"`
	Chapters []Option `json:"chapters"`
	Locales  []string `json:"locales"`
}

func empty() *Catalog {
	return &Catalog{
		Books:    []Option{},
		Authors:  []Option{},
		Chapters: []Option{},
		Locales:  fieldrule.Locales,
	}
}

// Source is the subset of the content API client the catalog reads.
type Source interface {
	ListBooks(context context.Context, current *session.Session) ([]strapi.Book, error)
	ListAuthors(context context.Context, current *session.Session) ([]strapi.Author, error)
	ListChapters(context context.Context, current *session.Session) ([]strapi.Chapter, error)
}

// labelled is satisfied by every content API option type.
type labelled interface {
	Label() string
}

func toOptions[T labelled](items []T, id func(T) int) []Option {
	options := slice.Map(items, func(item T) Option {
		return Option{ID: id(item), Label: item.Label()}
	})
	if options == nil {
		return []Option{}
	}
	return options
}

// # Service

// Service loads catalogs.
type Service struct {
	source Source
}

// NewService constructs a new [Service].
func NewService(source Source) *Service {
	return &Service{source: source}
}

/*
Load fetches the three collections concurrently.

Description: Mirrors an all-settled-or-nothing fetch: the first failure
cancels the siblings, is logged at warn level, and yields an empty catalog.

Parameters:
  - context: context.Context
  - current: *session.Session

Returns:
  - *Catalog: Never nil
*/
func (service *Service) Load(context context.Context, current *session.Session) *Catalog {
	var (
		books    []strapi.Book
		authors  []strapi.Author
		chapters []strapi.Chapter
	)

	group, groupCtx := errgroup.WithContext(context)

	group.Go(func() error {
		var err error
		books, err = service.source.ListBooks(groupCtx, current)
		return err
	})
	group.Go(func() error {
		var err error
		authors, err = service.source.ListAuthors(groupCtx, current)
		return err
	})
	group.Go(func() error {
		var err error
		chapters, err = service.source.ListChapters(groupCtx, current)
		return err
	})

	if err := group.Wait(); err != nil {
		ctxutil.GetLogger(context).Warn("metadata_load_failed", "error", err.Error())
		return empty()
	}

	return &Catalog{
		Books:    toOptions(books, func(b strapi.Book) int { return b.ID }),
		Authors:  toOptions(authors, func(a strapi.Author) int { return a.ID }),
		Chapters: toOptions(chapters, func(c strapi.Chapter) int { return c.ID }),
		Locales:  fieldrule.Locales,
	}
}
