// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migrations embeds the journal schema so the server binary can
// migrate without the source tree on disk.
package migrations

import "embed"

// Files holds every *.up.sql and *.down.sql in this directory.
//
//go:embed *.sql
var Files embed.FS
