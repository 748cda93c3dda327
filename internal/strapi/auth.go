// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package strapi

import (
	"context"
	"net/http"

	"github.com/taibuivan/shloka-console/internal/platform/constants"
)

// Credentials are the identity service's local login fields.
type Credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Identity is the successful login response.
type Identity struct {
	JWT  string `json:"jwt"`
	User struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

/*
Login exchanges credentials for an upstream JWT.

Parameters:
  - context: context.Context
  - baseURL: string (content API root; trailing slashes are ignored)
  - credentials: Credentials

Returns:
  - *Identity: Token and user email
  - error: [*Error] on rejection, [ErrMissingBaseURL], or transport failure
*/
func (client *Client) Login(context context.Context, baseURL string, credentials Credentials) (*Identity, error) {
	var identity Identity

	err := client.do(context, call{
		method:  http.MethodPost,
		baseURL: baseURL,
		path:    constants.StrapiLoginPath,
		body:    credentials,
	}, &identity)
	if err != nil {
		return nil, err
	}

	return &identity, nil
}
