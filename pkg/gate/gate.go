package gate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"stable-wallet/pkg/types"
)

// Outcome is the result of resolving user input against a pending ticket
type Outcome string

const (
	OutcomeConfirmed  Outcome = "confirmed"
	OutcomeCancelled  Outcome = "cancelled"
	OutcomeExpired    Outcome = "expired"     // Ticket existed but the window passed
	OutcomeNoTicket   Outcome = "no_ticket"   // Nothing pending for this user
	OutcomeNotKeyword Outcome = "not_keyword" // Input is not a confirmation keyword
)

// Ticket holds one sensitive intent awaiting explicit approval.
// Exactly one ticket exists per user at a time.
type Ticket struct {
	UserID      string
	Intent      types.Intent
	ChatContext string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Dispatcher hands a confirmed intent to the matching orchestrator
type Dispatcher interface {
	Dispatch(ctx context.Context, userID string, intent types.Intent) error
}

// Notifier delivers out-of-band messages to the user (expiry notices)
type Notifier func(userID, message string)

// Gate is the per-user, time-boxed hold for sensitive intents. The
// ticket map is the only mutable state and lives under one mutex;
// this is single-process state, no distributed locking.
type Gate struct {
	mu      sync.Mutex
	tickets map[string]*Ticket

	dispatcher Dispatcher
	notify     Notifier

	window        time.Duration
	sweepInterval time.Duration

	running  bool
	stopChan chan struct{}
}

// New creates a confirmation gate. window is the human-approval
// deadline; sweepInterval is how often expired tickets are reaped.
func New(dispatcher Dispatcher, notify Notifier, window, sweepInterval time.Duration) *Gate {
	if window <= 0 {
		window = 30 * time.Second
	}
	if sweepInterval <= 0 {
		sweepInterval = 60 * time.Second
	}
	return &Gate{
		tickets:       make(map[string]*Ticket),
		dispatcher:    dispatcher,
		notify:        notify,
		window:        window,
		sweepInterval: sweepInterval,
	}
}

// Request stores a ticket for a sensitive intent and returns the
// confirmation prompt to display. A new sensitive intent replaces any
// pending ticket for the same user (latest intent wins); replaced
// reports whether that happened so the user can be told.
func (g *Gate) Request(userID string, intent types.Intent, chatContext string) (prompt string, replaced bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, replaced = g.tickets[userID]
	now := time.Now()
	g.tickets[userID] = &Ticket{
		UserID:      userID,
		Intent:      intent,
		ChatContext: chatContext,
		CreatedAt:   now,
		ExpiresAt:   now.Add(g.window),
	}

	return buildPrompt(intent, g.window), replaced
}

// Pending returns the user's current ticket, if any
func (g *Gate) Pending(userID string) (*Ticket, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ticket, ok := g.tickets[userID]
	return ticket, ok
}

// Resolve matches user input against the confirmation vocabulary while
// a ticket is pending. An expired or missing ticket resolves to a
// no-op outcome; it is never Confirmed regardless of keyword. On
// confirmation the intent is handed to the dispatcher and the ticket
// cleared; the gate never retries on the user's behalf.
func (g *Gate) Resolve(ctx context.Context, userID, input string) (Outcome, error) {
	keyword := strings.ToUpper(strings.TrimSpace(input))

	var confirm bool
	switch keyword {
	case "CONFIRM", "CONFIRMAR":
		confirm = true
	case "CANCEL", "CANCELAR":
		confirm = false
	default:
		return OutcomeNotKeyword, nil
	}

	g.mu.Lock()
	ticket, ok := g.tickets[userID]
	if !ok {
		g.mu.Unlock()
		return OutcomeNoTicket, nil
	}
	delete(g.tickets, userID)
	g.mu.Unlock()

	if time.Now().After(ticket.ExpiresAt) {
		return OutcomeExpired, nil
	}
	if !confirm {
		return OutcomeCancelled, nil
	}

	// Dispatch outside the lock; orchestrator runs can take minutes
	if err := g.dispatcher.Dispatch(ctx, userID, ticket.Intent); err != nil {
		return OutcomeConfirmed, err
	}
	return OutcomeConfirmed, nil
}

// Start begins the background expiry sweep
func (g *Gate) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return fmt.Errorf("gate is already running")
	}
	g.running = true

	// Fresh channel per run so a stopped gate can be restarted
	g.stopChan = make(chan struct{})
	go g.sweepLoop(g.stopChan)
	return nil
}

// Stop halts the background sweep
func (g *Gate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.running {
		return
	}
	g.running = false
	close(g.stopChan)
}

func (g *Gate) sweepLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(g.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			g.sweep()
		}
	}
}

// sweep removes tickets past their deadline and notifies the user
func (g *Gate) sweep() {
	now := time.Now()
	expired := make([]*Ticket, 0)

	g.mu.Lock()
	for userID, ticket := range g.tickets {
		if now.After(ticket.ExpiresAt) {
			delete(g.tickets, userID)
			expired = append(expired, ticket)
		}
	}
	g.mu.Unlock()

	for _, ticket := range expired {
		fmt.Printf("[Gate] Ticket for user %s expired\n", ticket.UserID)
		if g.notify != nil {
			g.notify(ticket.UserID, "Your pending action expired without confirmation. Send the command again if you still want it.")
		}
	}
}

func buildPrompt(intent types.Intent, window time.Duration) string {
	var action string
	switch intent.Kind {
	case types.IntentSimpleTransfer:
		action = fmt.Sprintf("Send %s to %s", intent.Amount, intent.DestAddress)
	case types.IntentCrossChainTransfer:
		action = fmt.Sprintf("Bridge %s to %s on %s", intent.Amount, intent.DestAddress, intent.DestNetworkKey)
	case types.IntentSwap:
		action = fmt.Sprintf("Swap up to %s for exactly %s %s", intent.MaxInput, intent.ExactOutput, intent.OutputAsset)
	default:
		action = intent.RawText
	}

	return fmt.Sprintf("%s?\nReply CONFIRM/CONFIRMAR to proceed or CANCEL/CANCELAR to abort. This request expires in %.0f seconds.",
		action, window.Seconds())
}
