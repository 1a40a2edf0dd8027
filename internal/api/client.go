// Package api binds the motel backend's REST endpoints. It is the data-access
// layer of the client: services call these methods the way a server-side
// service would call its repositories, and the backend remains authoritative
// for all state.
package api

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"

	"github.com/gaibarra/motel1/internal/apierror"
)

// TokenSource yields the current access credential. The value is read exactly
// once when a request is built, so a logout or refresh that lands mid-flight
// cannot swap the credential under an outgoing call.
type TokenSource interface {
	AccessToken() string
}

// anonymous is used for the credential-issuance endpoints.
type anonymous struct{}

func (anonymous) AccessToken() string { return "" }

// Client wraps the shared resty client with per-request bearer injection.
// There is no ambient default Authorization header.
type Client struct {
	rc     *resty.Client
	tokens TokenSource
}

func New(rc *resty.Client, tokens TokenSource) *Client {
	if tokens == nil {
		tokens = anonymous{}
	}
	return &Client{rc: rc, tokens: tokens}
}

// req builds an authenticated request. The bearer token is captured here,
// at request-construction time.
func (c *Client) req(ctx context.Context) *resty.Request {
	r := c.rc.R().SetContext(ctx)
	if tok := c.tokens.AccessToken(); tok != "" {
		r.SetAuthToken(tok)
	}
	return r
}

// detailBody is the backend's error envelope. Django REST framework uses
// "detail" almost everywhere and "error" in a couple of function views.
type detailBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// check converts a resty result into the apierror taxonomy. Transport errors
// (already retried by the client) become NetworkError; non-2xx statuses are
// mapped by code and never retried.
func check(op string, resp *resty.Response, err error) error {
	if err != nil {
		return &apierror.NetworkError{Op: op, Err: err}
	}
	if resp.IsSuccess() {
		return nil
	}
	var body detailBody
	_ = json.Unmarshal(resp.Body(), &body)
	detail := body.Detail
	if detail == "" {
		detail = body.Error
	}
	return apierror.FromStatus(op, resp.StatusCode(), detail)
}
