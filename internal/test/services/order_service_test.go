package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"renovirt-backend/internal/edge"
	"renovirt-backend/internal/models"
	"renovirt-backend/internal/services"
	"renovirt-backend/internal/supabase"
	"renovirt-backend/internal/wizard"
)

type fakeOrderStore struct {
	orders        map[uuid.UUID]*models.Order
	imageKeys     map[string]bool
	notifications []*models.OrderNotification
	pkg           *models.Package
	addons        []models.Addon
	credits       int64
	paid          map[uuid.UUID]bool
	intents       map[uuid.UUID]string
	createCalls   []uuid.UUID
}

func newFakeOrderStore(pkg *models.Package, credits int64) *fakeOrderStore {
	return &fakeOrderStore{
		orders:    make(map[uuid.UUID]*models.Order),
		imageKeys: make(map[string]bool),
		pkg:       pkg,
		credits:   credits,
		paid:      make(map[uuid.UUID]bool),
		intents:   make(map[uuid.UUID]string),
	}
}

func (f *fakeOrderStore) CreateOrder(order *models.Order) (*models.Order, error) {
	f.createCalls = append(f.createCalls, order.ID)
	copied := *order
	f.orders[order.ID] = &copied
	return &copied, nil
}

func (f *fakeOrderStore) CreateOrderImage(img *models.OrderImage) error {
	f.imageKeys[img.OrderID.String()+"/"+img.StoragePath] = true
	return nil
}

func (f *fakeOrderStore) CreateNotification(n *models.OrderNotification) error {
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeOrderStore) GetOrderAny(orderID uuid.UUID) (*models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, supabase.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderStore) GetPackage(id uuid.UUID) (*models.Package, error) {
	return f.pkg, nil
}

func (f *fakeOrderStore) ListAddons() ([]models.Addon, error) {
	return f.addons, nil
}

func (f *fakeOrderStore) GetUserCredits(userID uuid.UUID) (int64, error) {
	return f.credits, nil
}

func (f *fakeOrderStore) SetPaymentIntent(orderID uuid.UUID, intentID string) error {
	f.intents[orderID] = intentID
	return nil
}

func (f *fakeOrderStore) MarkOrderPaid(orderID uuid.UUID) error {
	f.paid[orderID] = true
	return nil
}

type fakePaymentBackend struct {
	intentFailures int
	intentCalls    []string
	verifyResult   *edge.VerifyPaymentResult
}

func (f *fakePaymentBackend) CreatePaymentIntent(orderID string, amountCents int64, email string) (*edge.PaymentIntentResult, error) {
	f.intentCalls = append(f.intentCalls, orderID)
	if f.intentFailures > 0 {
		f.intentFailures--
		return nil, errors.New("edge function unreachable")
	}
	return &edge.PaymentIntentResult{
		IntentID:     "pi_" + orderID,
		ClientSecret: "secret",
		AmountCents:  amountCents,
	}, nil
}

func (f *fakePaymentBackend) VerifyPayment(intentID string) (*edge.VerifyPaymentResult, error) {
	return f.verifyResult, nil
}

func testPackage() *models.Package {
	return &models.Package{ID: uuid.New(), Name: "Basic", PriceCentsEach: 900, IsActive: true}
}

func completeDraft(registry *wizard.Registry, userID uuid.UUID, pkgID uuid.UUID) *wizard.Session {
	sess := registry.Get(userID)
	sess.Draft.SetPhotoType(wizard.PhotoTypeCamera)
	sess.Draft.AddFile(wizard.FileRef{
		Filename:    "a.jpg",
		Size:        100,
		MimeType:    "image/jpeg",
		StoragePath: "users/x/orders/y/a.jpg",
	})
	sess.Draft.SetPackage(pkgID)
	sess.Draft.SetContact(wizard.Contact{Email: "kunde@example.com"})
	sess.Draft.SetTermsAccepted(true)
	return sess
}

func newOrderService(store *fakeOrderStore, payments *fakePaymentBackend, registry *wizard.Registry) *services.OrderService {
	return services.NewOrderService(store, supabase.NewRealtimeClient(nil), payments, registry)
}

func TestOrderService_Submit_IncompleteDraft(t *testing.T) {
	registry := wizard.NewRegistry(time.Hour)
	store := newFakeOrderStore(testPackage(), 0)
	svc := newOrderService(store, &fakePaymentBackend{}, registry)

	userID := uuid.New()
	registry.Get(userID) // empty draft

	_, _, err := svc.Submit(userID)
	assert.ErrorIs(t, err, services.ErrDraftIncomplete)
	assert.Empty(t, store.createCalls)
}

func TestOrderService_Submit_CreditsCoverTotal(t *testing.T) {
	registry := wizard.NewRegistry(time.Hour)
	pkg := testPackage()
	store := newFakeOrderStore(pkg, 50) // 50 credits = 5000 cents, gross is 900
	payments := &fakePaymentBackend{}
	svc := newOrderService(store, payments, registry)

	userID := uuid.New()
	completeDraft(registry, userID, pkg.ID)

	order, intent, err := svc.Submit(userID)
	assert.NoError(t, err)
	assert.Nil(t, intent)
	assert.Empty(t, payments.intentCalls)
	assert.Equal(t, int64(0), order.FinalCents)
	assert.Equal(t, int64(900), order.CreditCentsApplied)
}

func TestOrderService_Submit_RetryAfterPaymentIntentFailure(t *testing.T) {
	registry := wizard.NewRegistry(time.Hour)
	pkg := testPackage()
	store := newFakeOrderStore(pkg, 0)
	payments := &fakePaymentBackend{intentFailures: 1}
	svc := newOrderService(store, payments, registry)

	userID := uuid.New()
	sess := completeDraft(registry, userID, pkg.ID)

	_, _, err := svc.Submit(userID)
	assert.Error(t, err)

	// The draft survives the failed attempt under the same session.
	assert.Same(t, sess, registry.Get(userID))

	order, intent, err := svc.Submit(userID)
	assert.NoError(t, err)
	assert.NotNil(t, intent)

	// Both attempts wrote the same order row instead of piling up copies.
	assert.Equal(t, []uuid.UUID{sess.ID, sess.ID}, store.createCalls)
	assert.Equal(t, sess.ID, order.ID)
	assert.Len(t, store.orders, 1)
	assert.Len(t, store.imageKeys, 1)
	assert.Equal(t, intent.IntentID, store.intents[order.ID])

	// Success discards the session; the next visit starts fresh.
	assert.NotEqual(t, sess.ID, registry.Get(userID).ID)
}

func TestOrderService_VerifyPayment_MarksOrderPaid(t *testing.T) {
	registry := wizard.NewRegistry(time.Hour)
	pkg := testPackage()
	store := newFakeOrderStore(pkg, 0)
	payments := &fakePaymentBackend{}
	svc := newOrderService(store, payments, registry)

	userID := uuid.New()
	completeDraft(registry, userID, pkg.ID)
	order, intent, err := svc.Submit(userID)
	assert.NoError(t, err)

	payments.verifyResult = &edge.VerifyPaymentResult{
		IntentID: intent.IntentID,
		OrderID:  order.ID.String(),
		Paid:     true,
	}
	confirmed, err := svc.VerifyPayment(intent.IntentID)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, confirmed.ID)
	assert.True(t, store.paid[order.ID])
}

func TestOrderService_VerifyPayment_NotPaid(t *testing.T) {
	registry := wizard.NewRegistry(time.Hour)
	store := newFakeOrderStore(testPackage(), 0)
	payments := &fakePaymentBackend{
		verifyResult: &edge.VerifyPaymentResult{IntentID: "pi_x", OrderID: uuid.New().String(), Paid: false},
	}
	svc := newOrderService(store, payments, registry)

	_, err := svc.VerifyPayment("pi_x")
	assert.ErrorIs(t, err, services.ErrPaymentNotPaid)
	assert.Empty(t, store.paid)
}
