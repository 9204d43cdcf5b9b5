// Package portal composes the session manager, credential store, progress
// tracker and portal service client behind the single contract the UI uses.
package portal

import (
	"context"
	"errors"
	"fmt"

	"github.com/aihubacademy/backend/services/portal-client/internal/api"
	"github.com/aihubacademy/backend/services/portal-client/internal/credentials"
	"github.com/aihubacademy/backend/services/portal-client/internal/models"
	"github.com/aihubacademy/backend/services/portal-client/internal/progress"
	"github.com/aihubacademy/backend/services/portal-client/internal/quiz"
	"github.com/aihubacademy/backend/services/portal-client/internal/session"
	"github.com/aihubacademy/backend/services/portal-client/internal/storage"
	"go.uber.org/zap"
)

// Portal is the facade over authentication and progress. It owns the single
// session value and the progress tracker for the current identity; consumers
// receive it by reference instead of reaching for ambient globals.
type Portal struct {
	creds    *credentials.Store
	sessions *session.Manager
	client   *api.Client // nil in local-only mode
	storage  storage.Store
	logger   *zap.Logger
	tracker  *progress.Tracker
}

// New creates the facade. apiBaseURL may be empty, which puts the portal
// into local-only mode: all accounts and progress stay on this machine.
func New(ctx context.Context, st storage.Store, apiBaseURL string, logger *zap.Logger) *Portal {
	p := &Portal{
		creds:    credentials.NewStore(st, logger),
		sessions: session.NewManager(st),
		storage:  st,
		logger:   logger,
	}

	if apiBaseURL != "" {
		p.client = api.NewClient(apiBaseURL)
	}

	p.tracker = p.buildTracker(ctx, p.sessions.Current())
	return p
}

// buildTracker picks the progress backend for an identity once, at login,
// logout and startup: demo and local-only users write to local storage,
// registered users go through the portal service, and anonymous browsing
// uses the shared local record.
//
// Anonymous progress is deliberately not merged into an account's record on
// login; the anonymous record simply stops being the active one.
func (p *Portal) buildTracker(ctx context.Context, user *models.User) *progress.Tracker {
	if user == nil {
		return progress.NewTracker(ctx, progress.NewLocalBackend(p.storage, "", p.logger))
	}

	if user.IsDemo || p.client == nil {
		return progress.NewTracker(ctx, progress.NewLocalBackend(p.storage, user.ID, p.logger))
	}

	return progress.NewTracker(ctx, progress.NewRemoteBackend(p.client, user.ID, p.logger))
}

// CurrentUser returns the logged-in user, or nil when browsing anonymously
func (p *Portal) CurrentUser() *models.User {
	return p.sessions.Current()
}

// Login authenticates a user and establishes the session. The local
// collection (demo accounts and offline registrations) is checked first,
// then the portal service.
func (p *Portal) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := p.creds.Authenticate(email, password)
	if errors.Is(err, credentials.ErrInvalidCredentials) && p.client != nil {
		user, err = p.remoteLogin(ctx, email, password)
	}
	if err != nil {
		return nil, err
	}

	p.sessions.Set(user)
	p.tracker = p.buildTracker(ctx, user)
	return user, nil
}

// remoteLogin authenticates against the portal service, collapsing a 401
// into the same ErrInvalidCredentials the local store reports
func (p *Portal) remoteLogin(ctx context.Context, email, password string) (*models.User, error) {
	user, err := p.client.Login(ctx, email, password)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 401 {
			return nil, credentials.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return user, nil
}

// Logout clears the session and reverts to the anonymous local progress
// record. Logging out without a session is a no-op.
func (p *Portal) Logout(ctx context.Context) {
	p.sessions.Clear()
	p.tracker = p.buildTracker(ctx, nil)
}

// Register creates an account: on the portal service when one is configured,
// in the local collection otherwise. Registration does not log the user in.
func (p *Portal) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	if p.client == nil {
		return p.creds.Register(email, password, name)
	}

	user, err := p.client.Register(ctx, email, password, name)
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 400 {
			return nil, credentials.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return user, nil
}

// RequestPasswordReset issues a reset token for a local account. It always
// reports success; the token is empty for unknown emails.
func (p *Portal) RequestPasswordReset(email string) string {
	return p.creds.RequestPasswordReset(email)
}

// ResetPassword consumes a reset token and overwrites the local password
func (p *Portal) ResetPassword(token, newPassword string) error {
	return p.creds.ResetPassword(token, newPassword)
}

// UpdateProfile updates the logged-in user's local profile and refreshes
// the session record to match
func (p *Portal) UpdateProfile(update models.ProfileUpdate) (*models.User, error) {
	current := p.sessions.Current()
	if current == nil {
		return nil, credentials.ErrUserNotFound
	}

	user, err := p.creds.UpdateProfile(current.ID, update)
	if err != nil {
		return nil, err
	}

	p.sessions.Set(user)
	return user, nil
}

// ChangePassword changes the logged-in user's local password
func (p *Portal) ChangePassword(currentPassword, newPassword string) error {
	current := p.sessions.Current()
	if current == nil {
		return credentials.ErrUserNotFound
	}

	return p.creds.ChangePassword(current.ID, currentPassword, newPassword)
}

// MarkTutorialCompleted records a tutorial as completed for the current
// identity. Repeated calls for the same tutorial are no-ops.
func (p *Portal) MarkTutorialCompleted(ctx context.Context, tutorialID int) {
	p.tracker.MarkCompleted(ctx, tutorialID)
}

// MarkTutorialVisited records the last visited tutorial
func (p *Portal) MarkTutorialVisited(ctx context.Context, tutorialID int) {
	p.tracker.MarkVisited(ctx, tutorialID)
}

// IsCompleted reports whether a tutorial is completed for the current identity
func (p *Portal) IsCompleted(tutorialID int) bool {
	return p.tracker.IsCompleted(tutorialID)
}

// CompletedTutorials returns the completed tutorial IDs for the current identity
func (p *Portal) CompletedTutorials() []int {
	return p.tracker.Completed()
}

// LastVisited returns the last visited tutorial and whether one is recorded
func (p *Portal) LastVisited() (int, bool) {
	return p.tracker.LastVisited()
}

// ProgressPercentage returns the rounded completion percentage for a catalog
// of totalTutorials tutorials
func (p *Portal) ProgressPercentage(totalTutorials int) int {
	return p.tracker.Percentage(totalTutorials)
}

// StartQuiz builds a quiz engine for a tutorial whose completion callback
// marks the tutorial complete for the current identity. The engine reports a
// passing attempt exactly once; failing attempts leave progress untouched.
func (p *Portal) StartQuiz(ctx context.Context, tutorialID int, questions []quiz.Question) *quiz.Engine {
	return quiz.NewEngine(questions, func() {
		p.MarkTutorialCompleted(ctx, tutorialID)
	})
}
