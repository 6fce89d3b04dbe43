package etrade

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/xmyqyl4x/aitrader"
)

// Client talks to the aitradex E*TRADE endpoints under <base>/api/etrade.
type Client struct {
	base   string
	http   *http.Client
	userID string
}

// NewClient returns a client for the service at baseURL (no trailing /api).
func NewClient(baseURL string) *Client {
	return &Client{base: baseURL, http: aitrader.NewHTTPClient()}
}

// SetUserID scopes subsequent calls to a user.
func (c *Client) SetUserID(userID string) { c.userID = userID }

// OAuthStatus returns the current connection state.
func (c *Client) OAuthStatus() (OAuthStatus, error) {
	var status OAuthStatus
	err := c.getJSON("/api/etrade/oauth/status", c.userQuery(), &status)
	return status, err
}

// Accounts lists the linked accounts. A 404 means nothing is linked
// yet, which is an empty list and not an error; anything else is.
func (c *Client) Accounts() ([]Account, error) {
	accounts := make([]Account, 0)
	err := c.getJSON("/api/etrade/accounts", c.userQuery(), &accounts)
	if aitrader.IsNotFound(err) {
		return []Account{}, nil
	}
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// Account returns one account by its service id.
func (c *Client) Account(id string) (Account, error) {
	var account Account
	err := c.getJSON("/api/etrade/accounts/"+url.PathEscape(id), nil, &account)
	return account, err
}

// AccountByKey resolves an account by its broker accountIdKey (or id),
// the way the details page opens from a bookmarked URL. It falls back
// to the listing entry when the detail endpoint fails.
func (c *Client) AccountByKey(key string) (Account, error) {
	accounts, err := c.Accounts()
	if err != nil {
		return Account{}, err
	}
	for _, account := range accounts {
		if account.AccountIDKey == key || account.ID == key {
			if detail, err := c.Account(account.ID); err == nil {
				return detail, nil
			}
			return account, nil
		}
	}
	return Account{}, &aitrader.StatusError{Status: http.StatusNotFound, Message: "account not found"}
}

// Sync asks the service to refresh the account list from E*TRADE. The
// call validates the stored token as a side effect, so a 401/403 here
// means the user has to re-authorize.
func (c *Client) Sync(accountID string) ([]Account, error) {
	query := c.userQuery()
	query.Set("accountId", accountID)
	accounts := make([]Account, 0)
	err := c.postJSON("/api/etrade/accounts/sync", query, &accounts)
	return accounts, err
}

// ValidateToken probes the stored token by listing accounts. Only an
// auth failure counts as invalid; any other failure says nothing about
// the token.
func (c *Client) ValidateToken() (bool, error) {
	_, err := c.Accounts()
	if aitrader.IsAuthError(err) {
		return false, nil
	}
	if err != nil {
		return true, err
	}
	return true, nil
}

// Authorize fetches the E*TRADE authorization hand-off. The payload
// shape differs between service versions, so the fields are picked out
// by path instead of a rigid struct.
func (c *Client) Authorize(correlationID string) (Authorization, error) {
	query := c.userQuery()
	if correlationID != "" {
		query.Set("correlationId", correlationID)
	}
	var payload any
	if err := c.getJSON("/api/etrade/oauth/authorize", query, &payload); err != nil {
		return Authorization{}, err
	}

	auth := Authorization{
		URL:           jstring(payload, "$.authorizationUrl"),
		State:         jstring(payload, "$.state"),
		RequestToken:  jstring(payload, "$.requestToken"),
		CorrelationID: jstring(payload, "$.correlationId"),
		AuthAttemptID: jstring(payload, "$.authAttemptId"),
	}
	if auth.URL == "" {
		return Authorization{}, fmt.Errorf("authorize response carries no authorizationUrl")
	}
	return auth, nil
}

// RenewToken renews the access token for an account.
func (c *Client) RenewToken(accountID string) (TokenAction, error) {
	return c.tokenAction("/api/etrade/oauth/renew-token", accountID)
}

// RevokeToken revokes the access token for an account.
func (c *Client) RevokeToken(accountID string) (TokenAction, error) {
	return c.tokenAction("/api/etrade/oauth/revoke-token", accountID)
}

func (c *Client) tokenAction(path, accountID string) (TokenAction, error) {
	query := url.Values{}
	query.Set("accountId", accountID)
	var action TokenAction
	err := c.postJSON(path, query, &action)
	return action, err
}

// Balance returns the cash position of an account.
func (c *Client) Balance(accountID string) (Balance, error) {
	var balance Balance
	err := c.getJSON("/api/etrade/accounts/"+url.PathEscape(accountID)+"/balance", nil, &balance)
	return balance, err
}

// PortfolioOf returns the positions of an account.
func (c *Client) PortfolioOf(accountID string) (Portfolio, error) {
	var portfolio Portfolio
	err := c.getJSON("/api/etrade/accounts/"+url.PathEscape(accountID)+"/portfolio", nil, &portfolio)
	return portfolio, err
}

// Orders lists the orders of an account. The service answers either a
// bare array or a content-wrapped page depending on version, so both
// are accepted.
func (c *Client) Orders(accountID string) ([]Order, error) {
	query := url.Values{}
	query.Set("accountId", accountID)
	var raw json.RawMessage
	if err := c.getJSON("/api/etrade/orders", query, &raw); err != nil {
		return nil, err
	}

	orders := make([]Order, 0)
	if err := json.Unmarshal(raw, &orders); err == nil {
		return orders, nil
	}
	var page struct {
		Content []Order `json:"content"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("cannot decode orders response: %w", err)
	}
	if page.Content == nil {
		return []Order{}, nil
	}
	return page.Content, nil
}

func (c *Client) userQuery() url.Values {
	query := url.Values{}
	if c.userID != "" {
		query.Set("userId", c.userID)
	}
	return query
}

// jstring extracts a string by jsonpath, "" when absent or not a string.
func jstring(payload any, path string) string {
	jval, err := jsonpath.Get(path, payload)
	if err != nil {
		return ""
	}
	// jsonpath sometimes answers a list of one; keep the first if so.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, _ := jval.(string)
	return s
}

func (c *Client) getJSON(path string, query url.Values, out any) error {
	return c.doJSON(http.MethodGet, path, query, out)
}

func (c *Client) postJSON(path string, query url.Values, out any) error {
	return c.doJSON(http.MethodPost, path, query, out)
}

func (c *Client) doJSON(method, path string, query url.Values, out any) error {
	addr := c.base + path
	if len(query) > 0 {
		addr += "?" + query.Encode()
	}
	req, err := http.NewRequest(method, addr, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return aitrader.NetError(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return aitrader.ResponseError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cannot decode %s %s response: %w", method, path, err)
	}
	return nil
}
