// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package compose is the payload composer of the console.

It performs deterministic, pure transformations between editor state and the
content API's document shapes:

  - Forward: [ComposeVerseSubmission] builds the nested verse document
    (rich-text blocks, commentaries, sub-commentaries, dynamic zone).
  - Inverse: [FlattenNestedEntries] projects nested entry records into flat
    rows for listing and search.
  - Numbering: [IncrementHierarchyValue] advances sequential numbering after
    a successful save.

# Failure Semantics

Nothing in this package returns an error. Malformed input degrades (null
blocks, null numeric values, unchanged non-numeric hierarchy values).
Required-field validation is the caller's precondition.
*/
package compose
