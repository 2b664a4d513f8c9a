package costmn

import (
	"context"
	"fmt"
	"sync"
)

type navMode int

const (
	navSmart navMode = iota
	navManual
)

// navState is the page's navigation state: either smart resolution or an
// explicit manually chosen month. The two are mutually exclusive; every
// change goes through one transition function so they cannot disagree.
type navState struct {
	mode  navMode
	month YearMonth
}

// Page orchestrates the budget view: smart vs manual month navigation,
// stats display, the pending-completion banner and the gap dialog. All
// mutations are fire-and-refetch: submit, await the server, then
// re-derive view state from a fresh fetch, never patch in place.
type Page struct {
	budgets  BudgetService
	resolver *SmartResolver
	tracker  *CompletionTracker
	notifier Notifier
	clock    Clock

	mu      sync.Mutex
	gen     uint64
	nav     navState
	active  YearMonth
	stats   *BudgetStats
	pending []*Budget
	gap     *GapPrompt
}

// PageOption configures a Page
type PageOption func(*Page)

// WithNotifier routes user-facing notices to n
func WithNotifier(n Notifier) PageOption {
	return func(p *Page) { p.notifier = n }
}

// WithClock overrides the page's notion of "now"
func WithClock(clock Clock) PageOption {
	return func(p *Page) { p.clock = clock }
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

// NewPage creates a page orchestrator in smart mode
func NewPage(budgets BudgetService, opts ...PageOption) *Page {
	p := &Page{
		budgets:  budgets,
		resolver: NewSmartResolver(budgets),
		tracker:  NewCompletionTracker(budgets),
		notifier: nopNotifier{},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.active = CurrentYearMonth(p.clock)
	return p
}

// Tracker exposes the completion tracker so views can render per-budget
// busy states
func (p *Page) Tracker() *CompletionTracker {
	return p.tracker
}

// Active returns the (month, year) the page currently displays
func (p *Page) Active() YearMonth {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// InSmartMode reports whether the resolver picks the displayed month
func (p *Page) InSmartMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.nav.mode == navSmart
}

// Stats returns the active month's stats, nil when no budget exists
func (p *Page) Stats() *BudgetStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Pending returns the budgets still awaiting completion
func (p *Page) Pending() []*Budget {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// Gap returns the open gap prompt, nil when no gap dialog is showing
func (p *Page) Gap() *GapPrompt {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gap
}

// nextGen invalidates any fetch still in flight and returns the token
// for the new one. A response is applied only if its token is still
// current, so a stale response arriving after navigation is a no-op.
func (p *Page) nextGen() uint64 {
	p.gen++
	return p.gen
}

// Refresh re-derives the view state for the current navigation mode
func (p *Page) Refresh(ctx context.Context) error {
	p.mu.Lock()
	nav := p.nav
	gen := p.nextGen()
	p.mu.Unlock()

	if nav.mode == navSmart {
		return p.refreshSmart(ctx, gen)
	}
	return p.refreshManual(ctx, gen, nav.month)
}

func (p *Page) refreshSmart(ctx context.Context, gen uint64) error {
	res, err := p.resolver.Resolve(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		// Superseded by a later navigation, drop the response
		return nil
	}
	if err != nil {
		p.notifier.Error(err.Error())
		return err
	}

	if res.Active != nil {
		p.active = *res.Active
		p.stats = res.Stats
	} else {
		p.stats = nil
	}
	p.pending = res.Pending
	return nil
}

func (p *Page) refreshManual(ctx context.Context, gen uint64, month YearMonth) error {
	// Manual navigation fetches stats directly and leaves the pending
	// list alone
	stats, err := p.budgets.Stats(ctx, &month)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gen != gen {
		return nil
	}
	if err != nil {
		p.notifier.Error(err.Error())
		return err
	}

	p.stats = stats
	return nil
}

// transition is the single place navigation state changes
func (p *Page) transition(ctx context.Context, next navState) error {
	p.mu.Lock()
	p.nav = next
	if next.mode == navManual {
		p.active = next.month
	}
	p.mu.Unlock()

	return p.Refresh(ctx)
}

// StepForward navigates manually to the month after the displayed one
func (p *Page) StepForward(ctx context.Context) error {
	return p.transition(ctx, navState{mode: navManual, month: p.Active().Next()})
}

// StepBack navigates manually to the month before the displayed one
func (p *Page) StepBack(ctx context.Context) error {
	return p.transition(ctx, navState{mode: navManual, month: p.Active().Prev()})
}

// GoToMonth navigates manually to an arbitrary month
func (p *Page) GoToMonth(ctx context.Context, month YearMonth) error {
	if !month.Valid() {
		return &ValidationError{Field: "month", Message: "invalid month " + month.String()}
	}
	return p.transition(ctx, navState{mode: navManual, month: month})
}

// BackToSmart returns to smart mode, re-invoking the resolver from scratch
func (p *Page) BackToSmart(ctx context.Context) error {
	return p.transition(ctx, navState{mode: navSmart})
}

// budgetCompleted is the post-completion refresh: always hand control
// back to the resolver so carry-over math comes from the server
func (p *Page) budgetCompleted(ctx context.Context) error {
	return p.transition(ctx, navState{mode: navSmart})
}

// CompleteActive finalizes the displayed month. A detected gap opens the
// gap prompt instead of completing; any error leaves the month open.
func (p *Page) CompleteActive(ctx context.Context) error {
	month := p.Active()

	outcome, err := p.tracker.CompleteMonth(ctx, month)
	if err != nil {
		p.notifier.Error(err.Error())
		return err
	}

	if outcome.Gap != nil {
		p.mu.Lock()
		p.gap = outcome.Gap
		p.mu.Unlock()
		return nil
	}

	p.notifier.Success(completionMessage(month, outcome))
	return p.budgetCompleted(ctx)
}

// CompletePending finalizes one budget from the pending banner
func (p *Page) CompletePending(ctx context.Context, budget *Budget) error {
	outcome, err := p.tracker.Complete(ctx, budget)
	if err != nil {
		p.notifier.Error(err.Error())
		return err
	}

	if outcome.Gap != nil {
		// The gap dialog needs the pending budget's month as its context
		p.mu.Lock()
		p.active = budget.YearMonth()
		p.gap = outcome.Gap
		p.mu.Unlock()
		return nil
	}

	p.notifier.Success(completionMessage(budget.YearMonth(), outcome))
	return p.budgetCompleted(ctx)
}

// ResolveGap sends the user's choice for the open gap prompt. On failure
// the prompt stays open so the user can retry or dismiss.
func (p *Page) ResolveGap(ctx context.Context, action GapAction) error {
	p.mu.Lock()
	prompt := p.gap
	p.mu.Unlock()

	if prompt == nil {
		return &ValidationError{Field: "gap", Message: "no gap is awaiting resolution"}
	}

	resolution, err := prompt.Resolution(action)
	if err != nil {
		return err
	}

	outcome, err := p.tracker.ResolveGap(ctx, prompt.Completing, resolution)
	if err != nil {
		p.notifier.Error(err.Error())
		return err
	}

	p.mu.Lock()
	p.gap = nil
	p.mu.Unlock()

	p.notifier.Success(completionMessage(prompt.Completing, outcome))
	return p.budgetCompleted(ctx)
}

// DismissGap closes the gap prompt without completing anything
func (p *Page) DismissGap() {
	p.mu.Lock()
	p.gap = nil
	p.mu.Unlock()
}

// NewDraft opens an editor draft seeded from the displayed month's stats
func (p *Page) NewDraft() *Editor {
	p.mu.Lock()
	month, stats := p.active, p.stats
	p.mu.Unlock()

	if stats == nil {
		return NewEditor(month)
	}
	return NewEditorFromStats(month, stats)
}

// SaveDraft persists an editor draft and refreshes whichever navigation
// mode is active. Validation failures surface like any other error but
// never reach the network.
func (p *Page) SaveDraft(ctx context.Context, draft *Editor) error {
	if _, err := draft.Save(ctx, p.budgets); err != nil {
		p.notifier.Error(err.Error())
		return err
	}

	p.notifier.Success(fmt.Sprintf("Saved budget for %s", draft.Month()))
	return p.Refresh(ctx)
}

// CreateSample seeds the displayed month with the starter budget
func (p *Page) CreateSample(ctx context.Context) error {
	month := p.Active()

	if _, err := p.budgets.Upsert(ctx, SampleBudgetParams(month)); err != nil {
		p.notifier.Error(err.Error())
		return err
	}

	p.notifier.Success(fmt.Sprintf("Created sample budget for %s", month))
	return p.Refresh(ctx)
}

func completionMessage(month YearMonth, outcome *CompletionOutcome) string {
	msg := fmt.Sprintf("Completed budget %s", month)
	if outcome.Next != nil {
		msg += fmt.Sprintf(", created budget %s", outcome.Next.YearMonth())
	}
	return msg
}
