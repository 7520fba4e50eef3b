// Package app holds the state of the single words page: the session, the
// bootstrap loading gate, the server time, the input buffer, the status
// message and the word ledger.
//
// Every state change is applied under one mutex, one at a time. Network
// calls run outside the lock with a context bound to the controller
// lifetime; once Close is called, late results are dropped instead of
// being applied.
package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wordledger/wordledger/internal/apiclient"
	"github.com/wordledger/wordledger/internal/ledger"
	"github.com/wordledger/wordledger/internal/model"
	"github.com/wordledger/wordledger/internal/session"
)

// InitialServerTime is shown until the time fetch succeeds.
const InitialServerTime = "0"

// ErrAlreadyStarted is returned by a second call to Start.
var ErrAlreadyStarted = errors.New("controller already started")

// Client is everything the page needs from the API.
type Client interface {
	session.TokenIssuer
	ledger.Client
	Time(ctx context.Context, token string) (string, error)
}

// State is a point-in-time copy of the page state, ready for rendering.
type State struct {
	Loading       bool
	Authenticated bool
	ServerTime    string
	Input         string
	Status        string
	Words         []model.WordEntry
}

// StatusIsError reports whether the status message describes a failure.
func (s State) StatusIsError() bool {
	return strings.Contains(s.Status, "Error")
}

// CanSubmit reports whether the save form is enabled.
func (s State) CanSubmit() bool {
	return !s.Loading && s.Authenticated
}

// Controller owns the page state.
type Controller struct {
	client   Client
	acquirer *session.Acquirer
	ledger   *ledger.Manager
	logger   *slog.Logger

	lifetime context.Context
	cancel   context.CancelFunc

	mu         sync.Mutex
	started    bool
	sess       session.Session
	loading    bool
	serverTime string
	input      string
	status     string
}

// New creates a Controller. Call Start to run the login bootstrap.
func New(client Client, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	lifetime, cancel := context.WithCancel(context.Background())

	return &Controller{
		client:     client,
		acquirer:   session.NewAcquirer(client, logger),
		ledger:     ledger.NewManager(client, logger),
		logger:     logger,
		lifetime:   lifetime,
		cancel:     cancel,
		loading:    true,
		serverTime: InitialServerTime,
	}
}

// Close ends the controller lifetime. In-flight calls are cancelled and
// their results discarded.
func (c *Controller) Close() {
	c.cancel()
}

// bind derives a context that is also cancelled when the controller closes.
func (c *Controller) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.lifetime, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// apply runs fn under the state lock unless ctx is already done.
func (c *Controller) apply(ctx context.Context, fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ctx.Err() != nil {
		c.logger.Debug("discarding stale result", slog.String("reason", ctx.Err().Error()))
		return false
	}
	fn()
	return true
}

func (c *Controller) currentSession() session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// Start performs the one-time bootstrap: a single login call and, when it
// yields a token, the time and word list fetches, concurrently. A failed
// login is returned but leaves the page usable in its unauthenticated state.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	c.mu.Unlock()

	ctx, cancel := c.bind(ctx)
	defer cancel()

	sess, err := c.acquirer.Acquire(ctx)
	if err != nil {
		c.apply(ctx, func() {
			c.loading = false
		})
		return err
	}

	if !c.apply(ctx, func() { c.sess = sess }) {
		return ctx.Err()
	}

	var g errgroup.Group
	g.Go(func() error {
		return c.fetchTime(ctx, sess)
	})
	g.Go(func() error {
		return c.refresh(ctx, sess)
	})

	err = g.Wait()
	c.logger.Info("bootstrap finished",
		slog.Bool("authenticated", sess.IsAuthenticated()),
		slog.Int("words", c.ledger.Len()),
	)
	return err
}

// fetchTime loads the server time once. Success or failure, it clears the
// loading gate.
func (c *Controller) fetchTime(ctx context.Context, sess session.Session) error {
	token, ok := sess.Token()
	if !ok {
		return nil
	}

	value, err := c.client.Time(ctx, token)
	if err != nil {
		c.logger.Warn("time fetch failed", slog.String("error", err.Error()))
	}

	c.apply(ctx, func() {
		c.loading = false
		if err != nil {
			c.status = describe(apiclient.OpTime, err)
			return
		}
		c.serverTime = value
	})

	return err
}

func (c *Controller) refresh(ctx context.Context, sess session.Session) error {
	err := c.ledger.Refresh(ctx, sess)
	if err != nil && ctx.Err() == nil {
		c.apply(ctx, func() {
			c.status = describe(apiclient.OpListWords, err)
		})
	}
	return err
}

// Refresh re-fetches the word list on demand.
func (c *Controller) Refresh(ctx context.Context) error {
	ctx, cancel := c.bind(ctx)
	defer cancel()

	return c.refresh(ctx, c.currentSession())
}

// Submit saves text as a new word. On success the input buffer is cleared
// and the list refreshed; on failure the input is kept and the status
// message explains what went wrong. A failed refresh after a successful
// save is reported in place of the success message.
func (c *Controller) Submit(ctx context.Context, text string) error {
	ctx, cancel := c.bind(ctx)
	defer cancel()

	c.mu.Lock()
	c.input = text
	c.status = MsgSaving
	sess := c.sess
	c.mu.Unlock()

	res, err := c.ledger.Create(ctx, sess, text)
	c.apply(ctx, func() {
		if err != nil {
			c.status = describe(apiclient.OpCreateWord, err)
			return
		}
		c.input = ""
		if res.RefreshErr != nil {
			c.status = describe(apiclient.OpListWords, res.RefreshErr)
			return
		}
		c.status = savedMessage(res.Word)
	})

	return err
}

// Delete removes the word with the given id after confirm agrees.
// Declining leaves the page untouched and makes no request. As with
// Submit, a failed refresh after the delete becomes the status.
func (c *Controller) Delete(ctx context.Context, id int64, confirm ledger.Confirmer) error {
	ctx, cancel := c.bind(ctx)
	defer cancel()

	res, err := c.ledger.Delete(ctx, c.currentSession(), id, confirm)
	if errors.Is(err, ledger.ErrDeclined) {
		return err
	}

	c.apply(ctx, func() {
		switch {
		case err != nil:
			c.status = describe(apiclient.OpDeleteWord, err)
		case res.RefreshErr != nil:
			c.status = describe(apiclient.OpListWords, res.RefreshErr)
		}
	})

	return err
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		Loading:       c.loading,
		Authenticated: c.sess.IsAuthenticated(),
		ServerTime:    c.serverTime,
		Input:         c.input,
		Status:        c.status,
		Words:         c.ledger.Entries(),
	}
}
