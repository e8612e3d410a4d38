// Package ticker runs the earnings ticker: it collects a shift, persists it, and
// pushes the accrued amount to the UI once per tick until the shift is over.
package ticker

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/julianstephens/paytick/internal/accrual"
	"github.com/julianstephens/paytick/internal/constants"
	"github.com/julianstephens/paytick/internal/currency"
	"github.com/julianstephens/paytick/internal/errors"
	"github.com/julianstephens/paytick/internal/logger"
	"github.com/julianstephens/paytick/internal/models"
	"github.com/julianstephens/paytick/internal/scheduler"
	"github.com/julianstephens/paytick/internal/validation"
)

const (
	labelCurrency = "Enter your currency (e.g. USD):"
	labelSalary   = "Enter your annual salary (NUMBERS ONLY):"
	labelStart    = "Enter your shift start time (HH:MM AM/PM):"
	labelEnd      = "Enter your shift end time (HH:MM AM/PM):"

	reusePrompt = "An earnings ticker was running. Reuse the last shift or enter a new one?"
)

// Options configures a Controller. Zero values are replaced with defaults.
type Options struct {
	Clock        clockwork.Clock
	Settings     models.Settings
	Notifier     Notifier
	NewSessionID func() string
}

// Snapshot is a point-in-time copy of the controller's state
type Snapshot struct {
	State     constants.ControllerState
	Ticker    models.TickerState
	Last      accrual.Result
	SessionID string
	Settings  models.Settings
}

// Controller owns the ticker lifecycle. All state changes happen under mu;
// UI calls and notifications are collected and performed after it is released.
type Controller struct {
	ui       UI
	store    *StateStore
	notifier Notifier
	clock    clockwork.Clock
	newID    func() string

	mu          sync.Mutex
	state       constants.ControllerState
	ticker      models.TickerState
	settings    models.Settings
	last        accrual.Result
	sessionID   string
	lastTick    time.Time
	generation  uint64
	stopLoop    func()
	deactivate  clockwork.Timer
	cancelInput context.CancelFunc
	runDone     chan struct{}
}

// effects are the side effects of a state change, applied outside the lock
type effects struct {
	clear  bool
	info   string
	err    string
	view   *LiveView
	notify string
}

func (c *Controller) apply(fx effects) {
	if fx.clear {
		c.ui.ClearDisplay()
	}
	if fx.view != nil {
		c.ui.DisplayLiveValue(*fx.view)
	}
	if fx.err != "" {
		c.ui.ShowError(fx.err)
	}
	if fx.info != "" {
		c.ui.ShowInfo(fx.info)
	}
	if fx.notify != "" && c.notifier != nil {
		go func(text string) {
			if err := c.notifier.Notify(text); err != nil {
				logger.Debug("Desktop notification not delivered", "error", err)
			}
		}(fx.notify)
	}
}

// New creates an idle controller.
func New(ui UI, store *StateStore, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.NewSessionID == nil {
		opts.NewSessionID = uuid.NewString
	}
	if opts.Settings == (models.Settings{}) {
		opts.Settings = models.DefaultSettings()
	}

	done := make(chan struct{})
	close(done)

	return &Controller{
		ui:       ui,
		store:    store,
		notifier: opts.Notifier,
		clock:    opts.Clock,
		newID:    opts.NewSessionID,
		settings: opts.Settings,
		runDone:  done,
	}
}

// Done is closed when the current run returns to Idle
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runDone
}

// Status returns a snapshot of the controller
func (c *Controller) Status() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:     c.state,
		Ticker:    c.ticker,
		Last:      c.last,
		SessionID: c.sessionID,
		Settings:  c.settings,
	}
}

// Start begins a run. Any previous run is stopped first. When the store holds an
// active shift the user may reuse it; otherwise the shift is prompted for,
// validated and saved. Start returns once the tick loop is running, or with the
// error that ended the attempt.
func (c *Controller) Start(ctx context.Context) error {
	inputCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	// A replaced run stays active in the store until this attempt saves or gives up
	replaced := c.state == constants.StateRunning || c.state == constants.StateDraining
	c.haltLocked()
	c.generation++
	attempt := c.generation
	c.cancelInput = cancel
	c.ticker = models.TickerState{}
	c.last = accrual.Result{}
	c.lastTick = time.Time{}
	c.state = constants.StateAwaitingInput
	c.closeDoneLocked()
	c.runDone = make(chan struct{})
	settings := c.settings
	c.mu.Unlock()

	logger.Debug("Ticker start requested", "replacing", replaced)

	rec := c.store.Load()
	if rec.Active && rec.Complete() {
		choice, err := c.ui.ShowChoice(inputCtx, reusePrompt, []string{constants.ChoiceReuse, constants.ChoiceReset})
		if err != nil {
			return c.abandon(attempt, replaced, err)
		}
		if choice == constants.ChoiceReuse {
			if err := validation.ValidateSettings(settings); err != nil {
				return c.reject(attempt, replaced, err)
			}
			cfg := scheduler.Rebase(rec.ShiftConfig(), c.clock.Now()).
				WithDaysActivelyWorking(settings.DaysActivelyWorking())
			logger.Info("Reusing last shift", "shift", cfg.String())
			return c.begin(inputCtx, attempt, cfg)
		}
	}

	answers, err := c.prompt(inputCtx)
	if err != nil {
		return c.abandon(attempt, replaced, err)
	}

	c.mu.Lock()
	if attempt != c.generation {
		c.mu.Unlock()
		return errors.ErrAbandoned
	}
	c.state = constants.StateValidating
	settings = c.settings
	c.mu.Unlock()

	cfg, err := c.validate(answers, settings)
	if err != nil {
		return c.reject(attempt, replaced, err)
	}

	return c.begin(inputCtx, attempt, cfg)
}

type shiftAnswers struct {
	currency, salary, start, end string
}

func (c *Controller) prompt(ctx context.Context) (shiftAnswers, error) {
	var a shiftAnswers
	steps := []struct {
		label, placeholder string
		dst                *string
	}{
		{labelCurrency, "USD", &a.currency},
		{labelSalary, "52000", &a.salary},
		{labelStart, "9:00 AM", &a.start},
		{labelEnd, "5:00 PM", &a.end},
	}
	for _, step := range steps {
		value, err := c.ui.PromptText(ctx, step.label, step.placeholder)
		if err != nil {
			return shiftAnswers{}, err
		}
		*step.dst = value
	}
	return a, nil
}

func (c *Controller) validate(a shiftAnswers, settings models.Settings) (models.ShiftConfig, error) {
	code, err := validation.ValidateCurrency(a.currency)
	if err != nil {
		return models.ShiftConfig{}, err
	}
	if !currency.Known(code) {
		logger.Debug("Currency label is not an ISO 4217 code; showing it as a prefix", "currency", code)
	}
	salary, err := validation.ValidateSalary(a.salary)
	if err != nil {
		return models.ShiftConfig{}, err
	}
	start, end, err := validation.ValidateTimeWindow(a.start, a.end)
	if err != nil {
		return models.ShiftConfig{}, err
	}
	if err := validation.ValidateSettings(settings); err != nil {
		return models.ShiftConfig{}, err
	}
	return scheduler.BuildSchedule(salary, code, settings.DaysActivelyWorking(), start, end, c.clock.Now())
}

// abandon ends a start attempt whose input was dismissed. Nothing new is persisted.
func (c *Controller) abandon(attempt uint64, replaced bool, err error) error {
	c.mu.Lock()
	fx := c.endAttemptLocked(attempt, replaced)
	c.mu.Unlock()
	c.apply(fx)

	logger.Info("Ticker start abandoned", "error", err)
	if stderrors.Is(err, errors.ErrAbandoned) {
		return err
	}
	return fmt.Errorf("%w: %v", errors.ErrAbandoned, err)
}

// reject ends a start attempt whose shift or settings failed validation
func (c *Controller) reject(attempt uint64, replaced bool, err error) error {
	logger.Info("Rejected shift input", "error", err)

	c.mu.Lock()
	fx := c.endAttemptLocked(attempt, replaced)
	c.mu.Unlock()

	if fx.err == "" {
		fx.err = err.Error()
	} else {
		fx.err = err.Error() + "\n" + fx.err
	}
	c.apply(fx)
	return err
}

// endAttemptLocked returns a failed start attempt to Idle. When the attempt
// replaced a run, that run is marked inactive. Superseded attempts change nothing.
func (c *Controller) endAttemptLocked(attempt uint64, replaced bool) effects {
	var fx effects
	if attempt != c.generation {
		return fx
	}
	if replaced {
		if err := c.store.Save(nil, false, c.sessionID); err != nil {
			logger.Error("Failed to mark replaced ticker inactive", "error", err)
			fx.err = err.Error()
		}
	}
	c.toIdleLocked()
	return fx
}

// begin persists cfg and enters Running. The save happens under the lock so a
// concurrent Cancel either prevents it or runs after it.
func (c *Controller) begin(ctx context.Context, attempt uint64, cfg models.ShiftConfig) error {
	c.mu.Lock()
	if attempt != c.generation || ctx.Err() != nil {
		c.mu.Unlock()
		return errors.ErrAbandoned
	}

	sessionID := c.newID()
	var fx effects
	if err := c.store.Save(&cfg, true, sessionID); err != nil {
		logger.Error("Failed to persist shift, continuing in memory", "error", err)
		fx.err = err.Error()
	}

	c.sessionID = sessionID
	c.ticker = models.NewTickerState(cfg)
	c.state = constants.StateRunning
	if c.cancelInput != nil {
		c.cancelInput()
		c.cancelInput = nil
	}
	gen := c.startLoopLocked()
	c.mu.Unlock()

	logger.Info("Ticker started", "session", sessionID, "shift", cfg.String())
	c.apply(fx)
	c.tick(gen, c.clock.Now())
	return nil
}

// Tick advances the current run to now. It is a no-op unless a run is active.
func (c *Controller) Tick(now time.Time) {
	c.mu.Lock()
	gen := c.generation
	c.mu.Unlock()
	c.tick(gen, now)
}

func (c *Controller) tick(gen uint64, now time.Time) {
	c.mu.Lock()
	if gen != c.generation || (c.state != constants.StateRunning && c.state != constants.StateDraining) {
		c.mu.Unlock()
		return
	}
	// Ticks can queue behind the lock; one older than the last applied is stale.
	if now.Before(c.lastTick) {
		c.mu.Unlock()
		return
	}
	c.lastTick = now

	cooldown := c.settings.Cooldown()
	next, res := accrual.Step(c.ticker, now, cooldown)
	c.ticker = next
	c.last = res

	var fx effects
	switch {
	case res.ShouldDeactivate:
		logger.Info("Shift over, deactivating ticker", "session", c.sessionID)
		fx = c.stopLocked("Shift complete. The earnings ticker has stopped.")

	case res.Phase == models.PhaseJustEnded && c.state == constants.StateRunning:
		c.state = constants.StateDraining
		c.armDeactivationLocked(gen, accrual.Remaining(next, now, cooldown))
		view := c.viewLocked(res, now)
		fx.view = &view
		if c.settings.NotificationsEnabled {
			fx.notify = view.Text
		}
		logger.Info("Shift ended", "session", c.sessionID, "earned", res.Earned.StringFixed(2))

	default:
		view := c.viewLocked(res, now)
		fx.view = &view
	}
	c.mu.Unlock()

	c.apply(fx)
}

// Cancel stops the current run from any state: pending prompts are aborted,
// timers stopped, and a running shift is marked inactive in the store.
func (c *Controller) Cancel() {
	c.mu.Lock()
	if c.state == constants.StateIdle {
		c.mu.Unlock()
		return
	}
	logger.Info("Ticker cancelled", "state", c.state.String(), "session", c.sessionID)
	fx := c.stopLocked("Earnings ticker cancelled.")
	c.mu.Unlock()

	c.apply(fx)
}

// stopLocked ends the run and returns the UI effects for it
func (c *Controller) stopLocked(info string) effects {
	wasRunning := c.state == constants.StateRunning || c.state == constants.StateDraining
	c.generation++
	c.haltLocked()

	var fx effects
	if wasRunning {
		if err := c.store.Save(nil, false, c.sessionID); err != nil {
			logger.Error("Failed to mark ticker inactive", "error", err)
			fx.err = err.Error()
		}
	}
	c.toIdleLocked()

	fx.clear = true
	fx.info = info
	return fx
}

// haltLocked stops the tick loop, the deactivation timer and any pending prompt
func (c *Controller) haltLocked() {
	if c.cancelInput != nil {
		c.cancelInput()
		c.cancelInput = nil
	}
	if c.stopLoop != nil {
		c.stopLoop()
		c.stopLoop = nil
	}
	if c.deactivate != nil {
		c.deactivate.Stop()
		c.deactivate = nil
	}
}

func (c *Controller) toIdleLocked() {
	c.haltLocked()
	c.state = constants.StateIdle
	c.ticker = models.TickerState{}
	c.closeDoneLocked()
}

func (c *Controller) closeDoneLocked() {
	select {
	case <-c.runDone:
	default:
		close(c.runDone)
	}
}

// startLoopLocked installs a fresh tick loop and returns its generation
func (c *Controller) startLoopLocked() uint64 {
	c.generation++
	gen := c.generation

	tk := c.clock.NewTicker(constants.TickInterval)
	stop := make(chan struct{})
	c.stopLoop = func() {
		tk.Stop()
		close(stop)
	}

	go func() {
		for {
			select {
			case <-stop:
				return
			case now := <-tk.Chan():
				c.tick(gen, now)
			}
		}
	}()
	return gen
}

func (c *Controller) armDeactivationLocked(gen uint64, after time.Duration) {
	if c.deactivate != nil {
		c.deactivate.Stop()
	}
	c.deactivate = c.clock.AfterFunc(after, func() {
		c.expire(gen)
	})
}

// expire fires when the cooldown runs out
func (c *Controller) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.state != constants.StateDraining {
		c.mu.Unlock()
		return
	}
	c.deactivate = nil
	logger.Info("Cooldown elapsed, deactivating ticker", "session", c.sessionID)
	fx := c.stopLocked("Shift complete. The earnings ticker has stopped.")
	c.mu.Unlock()

	c.apply(fx)
}

// Reconfigure applies new settings. A running shift keeps its times and cooldown
// but picks up the new daily-wage denominator. Invalid settings are reported and ignored.
func (c *Controller) Reconfigure(settings models.Settings) error {
	if err := validation.ValidateSettings(settings); err != nil {
		logger.Warn("Ignoring invalid settings", "error", err)
		c.ui.ShowError(err.Error())
		return err
	}

	c.mu.Lock()
	c.settings = settings
	if c.state != constants.StateRunning && c.state != constants.StateDraining {
		c.mu.Unlock()
		logger.Debug("Settings updated while idle")
		return nil
	}

	if c.stopLoop != nil {
		c.stopLoop()
		c.stopLoop = nil
	}
	if c.deactivate != nil {
		c.deactivate.Stop()
		c.deactivate = nil
	}

	cfg := *c.ticker.Config
	if rec := c.store.Load(); rec.Complete() && rec.SessionID == c.sessionID {
		cfg = rec.ShiftConfig()
	}
	cfg = cfg.WithDaysActivelyWorking(settings.DaysActivelyWorking())

	prev := c.ticker
	c.ticker = models.TickerState{
		Config:        &cfg,
		Active:        true,
		WorkdayActive: prev.WorkdayActive,
		CooldownArmed: prev.CooldownArmed,
		CooldownSince: prev.CooldownSince,
	}

	var fx effects
	if err := c.store.Save(&cfg, true, c.sessionID); err != nil {
		logger.Error("Failed to persist reconfigured shift", "error", err)
		fx.err = err.Error()
	}

	gen := c.startLoopLocked()
	now := c.clock.Now()
	if c.ticker.CooldownArmed {
		c.armDeactivationLocked(gen, accrual.Remaining(c.ticker, now, settings.Cooldown()))
	}
	c.mu.Unlock()

	logger.Info("Ticker reconfigured", "days_actively_working", cfg.DaysActivelyWorking)
	c.apply(fx)
	c.tick(gen, now)
	return nil
}

func (c *Controller) viewLocked(res accrual.Result, now time.Time) LiveView {
	cfg := c.ticker.Config
	view := LiveView{
		Phase:    res.Phase,
		Visible:  res.Visible,
		Earned:   res.Earned,
		Currency: cfg.Currency,
		Text:     FormatEarnings(res, cfg.Currency),
		Start:    cfg.Start,
		End:      cfg.End,
		Now:      now,
		Progress: accrual.Fraction(*cfg, now).InexactFloat64(),
	}
	if res.Phase.Ended() {
		view.Cooldown = accrual.Remaining(c.ticker, now, c.settings.Cooldown())
	}
	return view
}

// FormatEarnings renders the display text for a tick result
func FormatEarnings(res accrual.Result, code string) string {
	amount := currency.Format(res.Earned, code)
	if res.Phase.Ended() {
		return "Congrats! You earned " + amount
	}
	return amount
}
