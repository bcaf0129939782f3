package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/quillpad/gsheet-mcp/internal/credentials"
)

// LoginOptions configures an interactive login.
type LoginOptions struct {
	Profile string
	Scopes  []string

	// ClientSecretPath overrides credential discovery when set.
	ClientSecretPath string

	// Notify receives the authorization URL the user must open. Required:
	// this package never prints, so URL presentation belongs to the caller.
	Notify func(authURL string)
}

// Login runs the installed-app OAuth flow: it starts a loopback redirect
// listener on an ephemeral port, hands the authorization URL to
// opts.Notify, exchanges the returned code, and writes the token to the
// profile's cache path.
func Login(ctx context.Context, opts LoginOptions) (*oauth2.Token, error) {
	if opts.Profile == "" {
		opts.Profile = "default"
	}
	if len(opts.Scopes) == 0 {
		opts.Scopes = DefaultScopes()
	}

	cachePath, err := credentials.ResolveTokenCache(opts.Profile)
	if err != nil {
		return nil, err
	}

	conf, err := clientConfig(opts.ClientSecretPath, opts.Scopes)
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("starting redirect listener: %w", err)
	}
	defer listener.Close() //nolint:errcheck // second close after server shutdown is harmless

	conf.RedirectURL = fmt.Sprintf("http://%s/", listener.Addr().String())

	state, err := randomState()
	if err != nil {
		return nil, err
	}

	results := make(chan callbackResult, 1)
	server := &http.Server{
		Handler:           callbackHandler(state, results),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() { _ = server.Serve(listener) }()
	defer server.Close() //nolint:errcheck // shutting down a one-shot server

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	if opts.Notify != nil {
		opts.Notify(authURL)
	}

	var code string
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-results:
		if result.err != nil {
			return nil, result.err
		}
		code = result.code
	}

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}

	if err := writeCache(cachePath, tok, opts.Scopes); err != nil {
		return nil, err
	}
	return tok, nil
}

type callbackResult struct {
	code string
	err  error
}

// callbackHandler accepts the OAuth redirect, validates state, and
// delivers the authorization code exactly once.
func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if errMsg := query.Get("error"); errMsg != "" {
			deliver(results, callbackResult{err: fmt.Errorf("authorization refused: %s", errMsg)})
			http.Error(w, "Authorization refused. You can close this window.", http.StatusBadRequest)
			return
		}
		if query.Get("state") != state {
			deliver(results, callbackResult{err: fmt.Errorf("state mismatch in OAuth redirect")})
			http.Error(w, "State mismatch. You can close this window.", http.StatusBadRequest)
			return
		}
		code := query.Get("code")
		if code == "" {
			deliver(results, callbackResult{err: fmt.Errorf("OAuth redirect carried no code")})
			http.Error(w, "Missing authorization code.", http.StatusBadRequest)
			return
		}

		deliver(results, callbackResult{code: code})
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "Authentication complete. You can close this window.")
	})
}

// deliver sends a result without blocking; late duplicate redirects are
// dropped.
func deliver(results chan<- callbackResult, result callbackResult) {
	select {
	case results <- result:
	default:
	}
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating OAuth state: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
