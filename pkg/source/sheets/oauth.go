package sheets

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/matzehuels/sheetprint/pkg/session"
)

// Scope grants read-only access to the user's spreadsheets.
const Scope = "https://www.googleapis.com/auth/spreadsheets.readonly"

// CallbackPath is where the loopback server receives the authorization code.
const CallbackPath = "/callback"

// LoadConfig reads an OAuth client secret (the client_secret.json
// downloaded from the Google Cloud console for a desktop app).
func LoadConfig(path string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read client secret: %w", err)
	}
	cfg, err := google.ConfigFromJSON(data, Scope)
	if err != nil {
		return nil, fmt.Errorf("parse client secret %s: %w", path, err)
	}
	return cfg, nil
}

// Authorize runs the installed-app flow: it starts a callback server on a
// random loopback port, hands the consent URL to open and exchanges the
// returned code using PKCE. It blocks until the callback arrives or ctx is
// done.
func Authorize(ctx context.Context, cfg *oauth2.Config, open func(authURL string) error) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("start callback listener: %w", err)
	}

	conf := *cfg
	conf.RedirectURL = fmt.Sprintf("http://%s%s", ln.Addr(), CallbackPath)

	state, err := session.GenerateState()
	if err != nil {
		ln.Close()
		return nil, fmt.Errorf("generate state: %w", err)
	}
	verifier := oauth2.GenerateVerifier()

	codes := make(chan callbackResult, 1)
	srv := &http.Server{
		Handler:           callbackRouter(state, codes),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go srv.Serve(ln)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))
	if err := open(authURL); err != nil {
		return nil, err
	}

	var res callbackResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-codes:
	}
	if res.err != nil {
		return nil, res.err
	}

	tok, err := conf.Exchange(ctx, res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

type callbackResult struct {
	code string
	err  error
}

func callbackRouter(state string, out chan<- callbackResult) http.Handler {
	var once sync.Once
	deliver := func(r callbackResult) {
		once.Do(func() { out <- r })
	}

	r := chi.NewRouter()
	r.Get(CallbackPath, func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "invalid state", http.StatusBadRequest)
			deliver(callbackResult{err: session.ErrInvalidState})
			return
		}
		if e := q.Get("error"); e != "" {
			http.Error(w, "authorization failed: "+e, http.StatusForbidden)
			deliver(callbackResult{err: fmt.Errorf("authorization denied: %s", e)})
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			deliver(callbackResult{err: errors.New("callback without authorization code")})
			return
		}
		fmt.Fprintln(w, "sheetprint is authorized. You can close this window.")
		deliver(callbackResult{code: code})
	})
	return r
}

// Authorizer obtains a fresh token interactively.
type Authorizer func(ctx context.Context) (*oauth2.Token, error)

// HTTPClient returns a client that authorizes requests with the stored
// token, running authorize when no usable token is stored. Refreshed tokens
// are written back to store.
func HTTPClient(ctx context.Context, cfg *oauth2.Config, store session.TokenStore, authorize Authorizer) (*http.Client, error) {
	tok, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if tok == nil || (!tok.Valid() && tok.RefreshToken == "") {
		if authorize == nil {
			return nil, session.ErrNotLoggedIn
		}
		if tok, err = authorize(ctx); err != nil {
			return nil, err
		}
		if err := store.Save(ctx, tok); err != nil {
			return nil, err
		}
	}

	src := &savingSource{
		ctx:   ctx,
		src:   cfg.TokenSource(ctx, tok),
		store: store,
		last:  tok.AccessToken,
	}
	hc := oauth2.NewClient(ctx, src)
	hc.Timeout = httpTimeout
	return hc, nil
}

// savingSource persists every token the wrapped source refreshes.
type savingSource struct {
	ctx   context.Context
	src   oauth2.TokenSource
	store session.TokenStore

	mu   sync.Mutex
	last string
}

func (s *savingSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		s.last = tok.AccessToken
		if err := s.store.Save(s.ctx, tok); err != nil {
			return nil, fmt.Errorf("save refreshed token: %w", err)
		}
	}
	return tok, nil
}
