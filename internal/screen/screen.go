// Package screen implements the Pro upgrade screen: a small state machine
// over an injected store service. All store failures are contained here and
// surfaced as a single user-facing message; nothing escapes the handlers.
package screen

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/raceday/pro-upgrade/internal/domain/entity"
	"github.com/raceday/pro-upgrade/internal/domain/store"
)

// EventRecorder receives telemetry for settled screen actions. Recording
// failures are logged and never affect the screen.
type EventRecorder interface {
	Record(ctx context.Context, event *entity.PurchaseEvent) error
}

// State is the screen-local state. It is never persisted.
type State struct {
	// IsPurchasing is true only while a purchase or restore is in
	// flight. Both actions share the flag, so at most one of them can
	// run at a time.
	IsPurchasing bool

	ShowSuccessAlert bool
	ShowRestoreAlert bool

	// ErrorMessage non-empty means the error alert is presented.
	ErrorMessage string

	// Closed is set when the user acknowledges the success alert.
	Closed bool
}

// Screen mediates the two user intents (purchase, restore) against the
// store and renders entitlement-aware view models.
type Screen struct {
	userID   string
	store    store.Service
	recorder EventRecorder
	logger   *zap.Logger

	mu    sync.Mutex
	state State
}

// New creates an upgrade screen for one user. recorder may be nil.
func New(userID string, svc store.Service, recorder EventRecorder, logger *zap.Logger) *Screen {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Screen{
		userID:   userID,
		store:    svc,
		recorder: recorder,
		logger:   logger.With(zap.String("user_id", userID)),
	}
}

// State returns a snapshot of the screen-local state.
func (s *Screen) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HandlePurchase buys the product with the given catalog id. At most one
// purchase or restore runs at a time; a second call returns
// store.ErrOperationInFlight. Store failures are contained: they set the
// error message and the method returns nil.
func (s *Screen) HandlePurchase(ctx context.Context, productID string) error {
	product, ok := s.findProduct(productID)
	if !ok {
		return store.ErrProductNotFound
	}

	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	result, err := s.store.Purchase(ctx, product)
	if err != nil {
		s.logger.Warn("purchase call failed",
			zap.String("product_id", product.ID),
			zap.Error(err),
		)
		s.setErrorMessage(err.Error())
		s.record(ctx, entity.EventActionPurchase, product.ID, string(entity.PurchaseFailed), err.Error())
		return nil
	}

	switch result.Outcome {
	case entity.PurchaseSuccess:
		s.mu.Lock()
		s.state.ShowSuccessAlert = true
		s.mu.Unlock()
		s.logger.Info("purchase succeeded", zap.String("product_id", product.ID))
		s.record(ctx, entity.EventActionPurchase, product.ID, string(result.Outcome), "")
	case entity.PurchaseUserCancelled, entity.PurchasePending:
		// The platform purchase sheet already told the user; stay silent.
		s.record(ctx, entity.EventActionPurchase, product.ID, string(result.Outcome), "")
	case entity.PurchaseFailed:
		msg := result.FailureMessage()
		s.setErrorMessage(msg)
		s.record(ctx, entity.EventActionPurchase, product.ID, string(result.Outcome), msg)
	}
	return nil
}

// HandleRestore re-queries previously completed purchases. It shares the
// in-flight guard with HandlePurchase. The restore alert is shown only when
// the store reports the entitlement afterwards.
func (s *Screen) HandleRestore(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	if err := s.store.RestorePurchases(ctx); err != nil {
		s.logger.Warn("restore call failed", zap.Error(err))
		s.setErrorMessage(err.Error())
		s.record(ctx, entity.EventActionRestore, "", entity.RestoreOutcomeFailed, err.Error())
		return nil
	}

	if s.store.IsProUser() {
		s.mu.Lock()
		s.state.ShowRestoreAlert = true
		s.mu.Unlock()
		s.record(ctx, entity.EventActionRestore, "", entity.RestoreOutcomeRestored, "")
	} else {
		s.record(ctx, entity.EventActionRestore, "", entity.RestoreOutcomeNone, "")
	}
	return nil
}

// ReloadProducts is the retry action of the load-error layout. Failures are
// contained; the layout itself keeps showing the error state.
func (s *Screen) ReloadProducts(ctx context.Context) {
	if err := s.store.LoadProducts(ctx); err != nil {
		s.logger.Warn("product reload failed", zap.Error(err))
	}
}

// DismissSuccessAlert acknowledges the success alert and closes the screen.
func (s *Screen) DismissSuccessAlert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ShowSuccessAlert = false
	s.state.Closed = true
}

// DismissRestoreAlert acknowledges the restore alert.
func (s *Screen) DismissRestoreAlert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ShowRestoreAlert = false
}

// DismissErrorAlert clears the error message. Idempotent.
func (s *Screen) DismissErrorAlert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ErrorMessage = ""
}

func (s *Screen) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsPurchasing {
		return store.ErrOperationInFlight
	}
	s.state.IsPurchasing = true
	return nil
}

func (s *Screen) end() {
	s.mu.Lock()
	s.state.IsPurchasing = false
	s.mu.Unlock()
}

func (s *Screen) setErrorMessage(msg string) {
	s.mu.Lock()
	s.state.ErrorMessage = msg
	s.mu.Unlock()
}

func (s *Screen) findProduct(productID string) (entity.Product, bool) {
	for _, p := range s.store.Products() {
		if p.ID == productID {
			return p, true
		}
	}
	return entity.Product{}, false
}

func (s *Screen) record(ctx context.Context, action entity.PurchaseEventAction, productID, outcome, errText string) {
	if s.recorder == nil {
		return
	}
	event := entity.NewPurchaseEvent(s.userID, action, productID, outcome, errText)
	if err := s.recorder.Record(ctx, event); err != nil {
		s.logger.Warn("failed to record purchase event",
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}
