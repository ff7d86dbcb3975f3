package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"renovirt-backend/internal/edge"
	"renovirt-backend/internal/logger"
	"renovirt-backend/internal/models"
	"renovirt-backend/internal/supabase"
	"renovirt-backend/internal/wizard"
)

var (
	ErrDraftIncomplete  = errors.New("order draft is incomplete")
	ErrQuoteUnavailable = errors.New("quote not available yet")
	ErrPaymentNotPaid   = errors.New("payment not confirmed")
)

// OrderStore is the slice of the database layer the order flow depends on.
type OrderStore interface {
	CreateOrder(order *models.Order) (*models.Order, error)
	CreateOrderImage(img *models.OrderImage) error
	CreateNotification(n *models.OrderNotification) error
	GetOrderAny(orderID uuid.UUID) (*models.Order, error)
	GetPackage(id uuid.UUID) (*models.Package, error)
	ListAddons() ([]models.Addon, error)
	GetUserCredits(userID uuid.UUID) (int64, error)
	SetPaymentIntent(orderID uuid.UUID, intentID string) error
	MarkOrderPaid(orderID uuid.UUID) error
}

// PaymentBackend is the slice of the edge-function client the order flow
// depends on.
type PaymentBackend interface {
	CreatePaymentIntent(orderID string, amountCents int64, email string) (*edge.PaymentIntentResult, error)
	VerifyPayment(intentID string) (*edge.VerifyPaymentResult, error)
}

// OrderService turns a completed wizard draft into a persisted order.
type OrderService struct {
	dbClient       OrderStore
	realtimeClient *supabase.RealtimeClient
	edgeClient     PaymentBackend
	registry       *wizard.Registry
}

func NewOrderService(
	dbClient OrderStore,
	realtimeClient *supabase.RealtimeClient,
	edgeClient PaymentBackend,
	registry *wizard.Registry,
) *OrderService {
	return &OrderService{
		dbClient:       dbClient,
		realtimeClient: realtimeClient,
		edgeClient:     edgeClient,
		registry:       registry,
	}
}

// Quote prices the user's current draft against fetched reference data and the
// credit balance. ok=false means the inputs are incomplete and no price may be
// shown yet.
func (s *OrderService) Quote(userID uuid.UUID) (wizard.Quote, bool, error) {
	snap := s.registry.Get(userID).Draft.Snapshot()
	if snap.PackageID == uuid.Nil {
		return wizard.Quote{}, false, nil
	}

	pkg, err := s.dbClient.GetPackage(snap.PackageID)
	if err != nil {
		return wizard.Quote{}, false, fmt.Errorf("failed to fetch package: %w", err)
	}
	addons, err := s.dbClient.ListAddons()
	if err != nil {
		return wizard.Quote{}, false, fmt.Errorf("failed to fetch addons: %w", err)
	}
	credits, err := s.dbClient.GetUserCredits(userID)
	if err != nil {
		return wizard.Quote{}, false, fmt.Errorf("failed to fetch credits: %w", err)
	}

	quote, ok := wizard.ComputeQuote(snap, wizard.PriceInput{
		Package:       pkg,
		Addons:        addons,
		Credits:       credits,
		CreditsLoaded: true,
	})
	return quote, ok, nil
}

// Submit persists the draft as an order, records its images, notifies the
// customer, and opens a payment intent when something is left to pay. The
// wizard session is discarded on success.
func (s *OrderService) Submit(userID uuid.UUID) (*models.Order, *edge.PaymentIntentResult, error) {
	sess := s.registry.Get(userID)
	snap := sess.Draft.Snapshot()

	for _, step := range []wizard.Step{wizard.StepPhotoType, wizard.StepUpload, wizard.StepPackage, wizard.StepSummary} {
		if !wizard.CanProceed(step, snap) {
			return nil, nil, fmt.Errorf("%w: step %s not satisfied", ErrDraftIncomplete, step)
		}
	}

	quote, ok, err := s.Quote(userID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrQuoteUnavailable
	}

	order := &models.Order{
		ID:                 sess.ID,
		UserID:             userID,
		Status:             models.StatusPending,
		PhotoType:          string(snap.PhotoType),
		PackageID:          snap.PackageID,
		AddonIDs:           snap.AddonIDs,
		ImageCount:         quote.ImageCount,
		GrossCents:         quote.GrossCents,
		CreditCentsApplied: quote.CreditCentsApplied,
		FinalCents:         quote.FinalCents,
		Email:              snap.Contact.Email,
		Metadata:           json.RawMessage("{}"),
	}
	if snap.Contact.Company != "" {
		order.Company = sql.NullString{String: snap.Contact.Company, Valid: true}
	}
	if snap.Contact.ObjectReference != "" {
		order.ObjectReference = sql.NullString{String: snap.Contact.ObjectReference, Valid: true}
	}
	if snap.Contact.SpecialRequests != "" {
		order.SpecialRequests = sql.NullString{String: snap.Contact.SpecialRequests, Valid: true}
	}

	created, err := s.dbClient.CreateOrder(order)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, f := range snap.Files {
		img := &models.OrderImage{
			ID:          uuid.New(),
			OrderID:     created.ID,
			UserID:      userID,
			Filename:    f.Filename,
			StoragePath: f.StoragePath,
			StorageURL:  f.StorageURL,
			FileSize:    sql.NullInt64{Int64: f.Size, Valid: true},
			MimeType:    f.MimeType,
		}
		if err := s.dbClient.CreateOrderImage(img); err != nil {
			logger.Log.Error("failed to record order image",
				zap.String("order_id", created.ID.String()),
				zap.String("filename", f.Filename), zap.Error(err))
		}
	}

	notification := &models.OrderNotification{
		ID:      uuid.New(),
		OrderID: created.ID,
		UserID:  userID,
		Status:  models.StatusPending,
	}
	if err := s.dbClient.CreateNotification(notification); err != nil {
		logger.Log.Error("failed to create submission notification",
			zap.String("order_id", created.ID.String()), zap.Error(err))
	}

	s.realtimeClient.PublishOrderEvent(created.ID, "order_submitted",
		supabase.OrderSubmittedPayload(created.ID, created.FinalCents))

	var intent *edge.PaymentIntentResult
	if created.FinalCents > 0 {
		intent, err = s.edgeClient.CreatePaymentIntent(created.ID.String(), created.FinalCents, created.Email)
		if err != nil {
			// The session stays in place so the customer can resubmit;
			// the next attempt reuses the same order row.
			return nil, nil, fmt.Errorf("failed to create payment intent: %w", err)
		}
		if err := s.dbClient.SetPaymentIntent(created.ID, intent.IntentID); err != nil {
			logger.Log.Error("failed to store payment intent id",
				zap.String("order_id", created.ID.String()), zap.Error(err))
		}
	}

	s.registry.Reset(userID)
	return created, intent, nil
}

// VerifyPayment confirms a payment intent with the backend and publishes the
// confirmation on the order's channel.
func (s *OrderService) VerifyPayment(intentID string) (*models.Order, error) {
	result, err := s.edgeClient.VerifyPayment(intentID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify payment: %w", err)
	}
	if !result.Paid {
		return nil, ErrPaymentNotPaid
	}

	orderID, err := uuid.Parse(result.OrderID)
	if err != nil {
		return nil, fmt.Errorf("invalid order id from payment verification: %w", err)
	}

	if err := s.dbClient.MarkOrderPaid(orderID); err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}

	order, err := s.dbClient.GetOrderAny(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	s.realtimeClient.PublishOrderEvent(order.ID, "payment_confirmed",
		supabase.OrderSubmittedPayload(order.ID, order.FinalCents))
	return order, nil
}
