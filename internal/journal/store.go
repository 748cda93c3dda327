// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package journal

import "context"

// Repository persists submission records.
type Repository interface {

	// Create inserts a record. ID and CreatedAt are already set.
	Create(context context.Context, record *Record) error

	/*
		ListByEmail returns an editor's records, newest first.

		Parameters:
		  - context: context.Context
		  - email: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*Record: One page
		  - int: Total matching records
		  - error: Database failures
	*/
	ListByEmail(context context.Context, email string, limit, offset int) ([]*Record, int, error)
}
