// Package app holds the application state shared by every view: the current
// user, the global feed and its pager, and the saved session.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/pevans/snooze/client"
	"github.com/pevans/snooze/session"
	"github.com/pevans/snooze/stories"
	"github.com/pevans/snooze/users"
)

// ErrNotLoggedIn is returned by operations that need an authenticated user.
var ErrNotLoggedIn = errors.New("not logged in")

// API is the remote client surface the application uses.
type API interface {
	users.API
	stories.Source
	stories.Publisher
}

// App is the application context. It is safe for concurrent use.
type App struct {
	api      API
	store    session.Store
	log      *zap.SugaredLogger
	pageSize int

	mu    sync.Mutex
	user  *users.User
	feed  *stories.StoryList
	pager *stories.Pager

	// userMu serializes operations that change the user's collections.
	userMu sync.Mutex
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(a *App) {
		a.log = log
	}
}

// WithPageSize sets how many stories each feed page holds.
func WithPageSize(n int) Option {
	return func(a *App) {
		if n > 0 {
			a.pageSize = n
		}
	}
}

// New creates an anonymous application. Call Init to restore a saved login.
func New(api API, store session.Store, opts ...Option) *App {
	a := &App{
		api:      api,
		store:    store,
		log:      zap.NewNop().Sugar(),
		pageSize: stories.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.feed = stories.NewStoryList(a.pageSize)
	a.pager = stories.NewPager(api, 0, a.pageSize)
	return a
}

// Init restores the user from the saved session. A token the server rejects
// is discarded. Any other API failure leaves the app anonymous with the saved
// session kept for the next run, and is returned so the caller can report it.
func (a *App) Init(ctx context.Context) error {
	rec, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	user, err := users.GetLoggedInUser(ctx, a.api, rec.Token, rec.Username)
	if errors.Is(err, client.ErrAuth) {
		a.log.Warnw("saved session rejected, logging out", "username", rec.Username, "error", err)
		if err := a.store.Clear(); err != nil {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		return nil
	}
	if err != nil {
		a.log.Warnw("could not restore session, continuing anonymously", "username", rec.Username, "error", err)
		return err
	}

	a.mu.Lock()
	a.user = user
	a.mu.Unlock()

	if user != nil {
		a.log.Debugw("session restored", "username", user.Username)
	}
	return nil
}

// Signup creates an account and logs in as it.
func (a *App) Signup(ctx context.Context, username, password, name string) (*users.User, error) {
	user, err := users.Create(ctx, a.api, username, password, name)
	if err != nil {
		return nil, err
	}
	if err := a.setUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates and saves the session.
func (a *App) Login(ctx context.Context, username, password string) (*users.User, error) {
	user, err := users.Login(ctx, a.api, username, password)
	if err != nil {
		return nil, err
	}
	if err := a.setUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (a *App) setUser(user *users.User) error {
	if err := a.store.Save(session.Record{Token: user.Token, Username: user.Username}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	a.mu.Lock()
	a.user = user
	a.mu.Unlock()

	a.log.Infow("logged in", "username", user.Username)
	return nil
}

// Logout clears the saved session and forgets the current user. It clears
// the store even when no user was restored.
func (a *App) Logout() error {
	if err := a.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	a.mu.Lock()
	a.user = nil
	a.mu.Unlock()

	a.log.Infow("logged out")
	return nil
}

// Teardown releases the session store.
func (a *App) Teardown() error {
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("failed to close session store: %w", err)
	}
	return nil
}

// CurrentUser returns the logged-in user, or nil.
func (a *App) CurrentUser() *users.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

// LoggedIn reports whether a user is logged in.
func (a *App) LoggedIn() bool {
	return a.CurrentUser() != nil
}

func (a *App) requireUser() (*users.User, error) {
	user := a.CurrentUser()
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	return user, nil
}

// Recoverable reports whether err left the application usable. API failures
// are recoverable; session storage errors and the like are not.
func Recoverable(err error) bool {
	return err == nil || client.IsAPIFailure(err) ||
		errors.Is(err, ErrNotLoggedIn) ||
		errors.Is(err, stories.ErrInvalidDraft) ||
		errors.Is(err, stories.ErrFetchInProgress)
}
