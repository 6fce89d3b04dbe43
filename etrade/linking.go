package etrade

import (
	"log"
	"sync"

	"github.com/xmyqyl4x/aitrader"
)

// Banner severities for the connection state line.
const (
	BannerWarning = "warning"
	BannerSuccess = "success"
	BannerDanger  = "danger"
)

// Banner is the connection state line shown above the account list.
type Banner struct {
	Severity string
	Message  string
}

// ConnectResult is the outcome of connecting an account. When the stored
// token is unusable the result carries the authorization hand-off instead
// of accounts, and the caller sends the user to AuthorizeURL.
type ConnectResult struct {
	Accounts     []Account
	Message      string
	AuthorizeURL string
	State        string
}

// LinkingController drives the account-linking screen: status plus
// account list on entry, then connect, renew and revoke on demand.
type LinkingController struct {
	client *Client

	mu       sync.Mutex
	status   OAuthStatus
	accounts []Account
	loadErr  error
}

// NewLinkingController returns a controller over client.
func NewLinkingController(client *Client) *LinkingController {
	return &LinkingController{client: client}
}

// Init loads the connection status and the account list concurrently.
// The account load can prove a connection the status endpoint does not
// know about yet, so status is re-derived once both are in. A missing
// account list (nothing linked) is the empty state, not a failure.
func (l *LinkingController) Init() error {
	var (
		wg        sync.WaitGroup
		status    OAuthStatus
		statusErr error
		accounts  []Account
		accErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		status, statusErr = l.client.OAuthStatus()
	}()
	go func() {
		defer wg.Done()
		accounts, accErr = l.client.Accounts()
	}()
	wg.Wait()

	l.mu.Lock()
	defer l.mu.Unlock()
	if statusErr != nil {
		// Without status, accounts still decide whether anything is linked.
		log.Printf("oauth status check failed, deriving state from accounts: %v", statusErr)
		status = OAuthStatus{}
	}
	if accErr != nil {
		l.loadErr = accErr
		l.accounts = nil
	} else {
		l.loadErr = nil
		l.accounts = accounts
		if len(accounts) > 0 {
			status.Connected = true
			status.HasAccounts = true
			status.AccountCount = len(accounts)
		}
	}
	l.status = status
	return accErr
}

// Status returns the last loaded connection status.
func (l *LinkingController) Status() OAuthStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Accounts returns the last loaded account list.
func (l *LinkingController) Accounts() []Account {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts
}

// LoadError returns the account-list failure from Init, if any.
func (l *LinkingController) LoadError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadErr
}

// Banner derives the state line from the loaded status: not connected is
// a warning, a dead token is danger, a live connection is success.
func (l *LinkingController) Banner() Banner {
	l.mu.Lock()
	status := l.status
	l.mu.Unlock()

	if !status.Connected {
		return Banner{Severity: BannerWarning, Message: "Your E*TRADE account is not connected. Connect it to sync your accounts."}
	}
	switch status.TokenStatus {
	case TokenExpired:
		return Banner{Severity: BannerDanger, Message: "Your E*TRADE session has expired. Renew the token or re-authorize."}
	case TokenInvalid:
		return Banner{Severity: BannerDanger, Message: "Your E*TRADE token is invalid. Re-authorize to reconnect."}
	}
	return Banner{Severity: BannerSuccess, Message: "Your E*TRADE account is connected."}
}

// Connect syncs an account. When the sync fails because the token is
// unusable it fetches the authorization hand-off instead, so the caller
// can send the user to E*TRADE and come back.
func (l *LinkingController) Connect(accountID string) (ConnectResult, error) {
	accounts, err := l.client.Sync(accountID)
	if err == nil {
		l.mu.Lock()
		l.accounts = accounts
		l.status.Connected = true
		l.status.HasAccounts = len(accounts) > 0
		l.status.AccountCount = len(accounts)
		l.status.TokenStatus = TokenValid
		l.mu.Unlock()
		return ConnectResult{Accounts: accounts, Message: "Account connected successfully."}, nil
	}

	if aitrader.IsTokenError(err) {
		auth, authErr := l.client.Authorize("")
		if authErr != nil {
			return ConnectResult{}, authErr
		}
		l.mu.Lock()
		l.status.TokenStatus = TokenExpired
		l.mu.Unlock()
		return ConnectResult{
			AuthorizeURL: auth.URL,
			State:        auth.State,
			Message:      "Authorization required. Open the E*TRADE authorization page to continue.",
		}, nil
	}
	return ConnectResult{}, err
}

// Renew renews the token for an account and refreshes the status.
func (l *LinkingController) Renew(accountID string) (TokenAction, error) {
	action, err := l.client.RenewToken(accountID)
	if err != nil {
		return TokenAction{}, err
	}
	if action.Success {
		l.mu.Lock()
		l.status.TokenStatus = TokenValid
		l.mu.Unlock()
	}
	return action, nil
}

// Revoke revokes the token for an account and marks the link dead.
func (l *LinkingController) Revoke(accountID string) (TokenAction, error) {
	action, err := l.client.RevokeToken(accountID)
	if err != nil {
		return TokenAction{}, err
	}
	if action.Success {
		l.mu.Lock()
		l.status.Connected = false
		l.status.TokenStatus = TokenMissing
		l.mu.Unlock()
	}
	return action, nil
}
