// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package compose

import "strings"

// # Rich Text Blocks

const (
	blockParagraph = "paragraph"
	runText        = "text"
)

// TextRun is a leaf node inside a block.
type TextRun struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Block is a single structured block of the content API's rich-text field.
type Block struct {
	Type     string    `json:"type"`
	Children []TextRun `json:"children"`
}

// RichText is an ordered block list. A nil RichText encodes as JSON null.
type RichText []Block

// TextToRichBlocks converts plain multi-line text into paragraph blocks.
//
// Each non-blank line becomes one paragraph holding one trimmed text run, in
// input order. Empty or whitespace-only input yields nil.
func TextToRichBlocks(text string) RichText {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	var blocks RichText
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		blocks = append(blocks, Block{
			Type:     blockParagraph,
			Children: []TextRun{{Type: runText, Text: trimmed}},
		})
	}

	return blocks
}

// PlainText flattens blocks back to newline-separated text.
func (r RichText) PlainText() string {
	lines := make([]string, 0, len(r))
	for _, block := range r {
		var line strings.Builder
		for _, child := range block.Children {
			line.WriteString(child.Text)
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
