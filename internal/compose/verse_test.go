// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package compose_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shloka-console/internal/compose"
)

func sampleFields() compose.VerseFields {
	return compose.VerseFields{
		Locale:          "sa",
		Chapter:         12,
		Number:          47,
		Transliteration: "dharmakṣetre kurukṣetre",
		Text:            "धर्मक्षेत्रे कुरुक्षेत्रे\nसमवेता युयुत्सवः",
		Translation:     "On the field of dharma",
	}
}

func encode(t *testing.T, submission compose.Submission) map[string]any {
	t.Helper()
	raw, err := json.Marshal(submission)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

/*
TestComposeVerseSubmission_CoreFields checks the top-level verse document.
*/
func TestComposeVerseSubmission_CoreFields(t *testing.T) {
	submission := compose.ComposeVerseSubmission(sampleFields(), nil, nil, compose.Options{})

	want := compose.VerseDocument{
		Locale:          "sa",
		Chapter:         12,
		VerseNumber:     47,
		Transliteration: submission.Data.Transliteration,
		Text:            compose.TextToRichBlocks("धर्मक्षेत्रे कुरुक्षेत्रे\nसमवेता युयुत्सवः"),
		Translation:     compose.TextToRichBlocks("On the field of dharma"),
	}

	if diff := cmp.Diff(want, submission.Data); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
	require.NotNil(t, submission.Data.Transliteration)
	assert.Equal(t, "dharmakṣetre kurukṣetre", *submission.Data.Transliteration)

	body := encode(t, submission)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(47), data["Verse_Number"])
	assert.Len(t, data["Text"], 2)
}

/*
TestComposeVerseSubmission_EmptyTransliteration encodes a blank value as null.
*/
func TestComposeVerseSubmission_EmptyTransliteration(t *testing.T) {
	fields := sampleFields()
	fields.Transliteration = "  "

	data := encode(t, compose.ComposeVerseSubmission(fields, nil, nil, compose.Options{}))["data"].(map[string]any)

	value, present := data["Transliteration"]
	assert.True(t, present)
	assert.Nil(t, value)
}

/*
TestComposeVerseSubmission_CommentaryGate covers the commentary and tika toggles.
*/
func TestComposeVerseSubmission_CommentaryGate(t *testing.T) {
	commentaries := []compose.Commentary{{
		Text:   "भाष्यम्",
		Author: 3,
		Tikas:  []compose.Tika{{Title: "Anandagiri", Text: "टीका", Author: 4}},
	}}

	tests := []struct {
		name          string
		options       compose.Options
		commentaries  []compose.Commentary
		hasCommentary bool
		hasTika       bool
	}{
		{"disabled", compose.Options{CommentaryEnabled: false, TikaEnabled: true}, commentaries, false, false},
		{"enabled_without_entries", compose.Options{CommentaryEnabled: true}, nil, false, false},
		{"enabled_without_tika", compose.Options{CommentaryEnabled: true}, commentaries, true, false},
		{"enabled_with_tika", compose.Options{CommentaryEnabled: true, TikaEnabled: true}, commentaries, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := encode(t, compose.ComposeVerseSubmission(sampleFields(), tt.commentaries, nil, tt.options))["data"].(map[string]any)

			raw, present := data["Commentry"]
			assert.Equal(t, tt.hasCommentary, present)
			if !present {
				return
			}

			entries := raw.([]any)
			require.Len(t, entries, 1)
			entry := entries[0].(map[string]any)
			assert.Equal(t, float64(3), entry["author"])

			_, hasTika := entry["tika"]
			assert.Equal(t, tt.hasTika, hasTika)
		})
	}
}

/*
TestComposeVerseSubmission_TikaShape checks sub-commentary fields.
*/
func TestComposeVerseSubmission_TikaShape(t *testing.T) {
	commentaries := []compose.Commentary{{
		Text: "भाष्यम्",
		Tikas: []compose.Tika{
			{Title: "Anandagiri", Text: "टीका", Translation: "gloss", Author: 4},
			{Text: "द्वितीया"},
		},
	}}

	submission := compose.ComposeVerseSubmission(sampleFields(), commentaries, nil, compose.Options{CommentaryEnabled: true, TikaEnabled: true})

	tikas := submission.Data.Commentary[0].Tika
	require.Len(t, tikas, 2)
	require.NotNil(t, tikas[0].Title)
	assert.Equal(t, "Anandagiri", *tikas[0].Title)
	assert.Equal(t, 4, tikas[0].Author)
	assert.Nil(t, tikas[1].Title)
	assert.Nil(t, tikas[1].Translation)
}

/*
TestComposeVerseSubmission_ExtraVariables checks dynamic-zone typing.
*/
func TestComposeVerseSubmission_ExtraVariables(t *testing.T) {
	extras := []compose.ExtraVariable{
		{Kind: compose.NumericVariable, Label: "Meter", Value: "3.5"},
		{Kind: compose.TextVariable, Label: "Chandas", Value: "Anushtubh"},
		{Kind: compose.NumericVariable, Label: "Broken", Value: "abc"},
	}

	submission := compose.ComposeVerseSubmission(sampleFields(), nil, extras, compose.Options{})

	want := []compose.DynamicComponent{
		{Component: "variables.numeric-variable", Label: "Meter", Value: 3.5},
		{Component: "variables.text-variable", Label: "Chandas", Value: "Anushtubh"},
		{Component: "variables.numeric-variable", Label: "Broken", Value: nil},
	}

	if diff := cmp.Diff(want, submission.Data.ExtraVariables); diff != "" {
		t.Errorf("extra variables mismatch (-want +got):\n%s", diff)
	}

	data := encode(t, submission)["data"].(map[string]any)
	first := data["extra_variables"].([]any)[0].(map[string]any)
	assert.Equal(t, 3.5, first["Value"])
}

/*
TestComposeVerseSubmission_NoExtras omits the dynamic zone entirely.
*/
func TestComposeVerseSubmission_NoExtras(t *testing.T) {
	data := encode(t, compose.ComposeVerseSubmission(sampleFields(), nil, nil, compose.Options{}))["data"].(map[string]any)

	_, present := data["extra_variables"]
	assert.False(t, present)
}

/*
TestComposeVerseSubmission_Translations drops blank translations.
*/
func TestComposeVerseSubmission_Translations(t *testing.T) {
	fields := sampleFields()
	fields.Translations = []compose.LanguageText{
		{Language: "hi", Text: "धर्म के क्षेत्र में"},
		{Language: "de", Text: "   "},
	}

	submission := compose.ComposeVerseSubmission(fields, nil, nil, compose.Options{})

	require.Len(t, submission.Data.Translations, 1)
	assert.Equal(t, "hi", submission.Data.Translations[0].Language)
}

/*
TestVariableKind_IsValid checks the known discriminators.
*/
func TestVariableKind_IsValid(t *testing.T) {
	assert.True(t, compose.TextVariable.IsValid())
	assert.True(t, compose.NumericVariable.IsValid())
	assert.False(t, compose.VariableKind("date-variable").IsValid())
}
