// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assist

import (
	"context"

	"github.com/taibuivan/shloka-console/internal/strapi"
	"github.com/taibuivan/shloka-console/internal/users/session"
)

// PluginClient is the content API's assist surface.
type PluginClient interface {
	Transliterate(context context.Context, current *session.Session, request strapi.AssistRequest) (string, error)
	Translate(context context.Context, current *session.Session, request strapi.AssistRequest) (string, error)
}

// Upstream forwards requests to the content API plugin with the editor's credential.
type Upstream struct {
	client PluginClient
}

// NewUpstream constructs a new [Upstream].
func NewUpstream(client PluginClient) *Upstream {
	return &Upstream{client: client}
}

// Name implements [Assistant].
func (upstream *Upstream) Name() string { return ProviderUpstream }

// Transliterate implements [Assistant].
func (upstream *Upstream) Transliterate(context context.Context, current *session.Session, request Request) (string, error) {
	output, err := upstream.client.Transliterate(context, current, toPlugin(request))
	if err != nil {
		return "", strapi.AsAppError(err, "Assist endpoint")
	}
	return output, nil
}

// Translate implements [Assistant].
func (upstream *Upstream) Translate(context context.Context, current *session.Session, request Request) (string, error) {
	output, err := upstream.client.Translate(context, current, toPlugin(request))
	if err != nil {
		return "", strapi.AsAppError(err, "Assist endpoint")
	}
	return output, nil
}

func toPlugin(request Request) strapi.AssistRequest {
	return strapi.AssistRequest{
		Content:        request.Content,
		SourceLanguage: request.SourceLanguage,
		TargetLanguage: request.TargetLanguage,
	}
}
