package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"renovirt-backend/internal/models"
	"renovirt-backend/internal/services"
	"renovirt-backend/internal/wizard"
)

// OrderFlowHandler drives the multi-step order wizard. Content mutations go to
// the draft store, navigation to the meta store; the handler gates Advance on
// the validation layer since the stores themselves do not.
type OrderFlowHandler struct {
	registry     *wizard.Registry
	orderService *services.OrderService
}

func NewOrderFlowHandler(registry *wizard.Registry, orderService *services.OrderService) *OrderFlowHandler {
	return &OrderFlowHandler{
		registry:     registry,
		orderService: orderService,
	}
}

func draftResponse(sess *wizard.Session) models.DraftResponse {
	snap := sess.Draft.Snapshot()

	resp := models.DraftResponse{
		PhotoType:       string(snap.PhotoType),
		Files:           make([]models.DraftFileInfo, len(snap.Files)),
		HasWatermark:    snap.Watermark != nil,
		Email:           snap.Contact.Email,
		Company:         snap.Contact.Company,
		ObjectReference: snap.Contact.ObjectReference,
		SpecialRequests: snap.Contact.SpecialRequests,
		TermsAccepted:   snap.TermsAccepted,
		CurrentStep:     string(sess.Meta.Current()),
	}
	for i, f := range snap.Files {
		resp.Files[i] = models.DraftFileInfo{
			Filename: f.Filename,
			Size:     f.Size,
			MimeType: f.MimeType,
		}
	}
	if snap.PackageID != uuid.Nil {
		resp.PackageID = snap.PackageID.String()
	}
	for _, id := range snap.AddonIDs {
		resp.AddonIDs = append(resp.AddonIDs, id.String())
	}
	for _, step := range wizard.Steps() {
		resp.Steps = append(resp.Steps, models.StepInfo{
			Step:  string(step),
			State: string(sess.Meta.State(step)),
		})
	}
	return resp
}

// GetDraft returns the current draft, creating the wizard session on first
// access.
func (h *OrderFlowHandler) GetDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, draftResponse(h.registry.Get(userID)))
}

// PatchDraft applies per-field setters. Setters always succeed; cross-field
// consistency is checked by Advance and Submit, not here.
func (h *OrderFlowHandler) PatchDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.DraftPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	sess := h.registry.Get(userID)
	draft := sess.Draft

	if req.PhotoType != nil {
		draft.SetPhotoType(wizard.PhotoType(*req.PhotoType))
	}
	if req.PackageID != nil {
		id, err := uuid.Parse(*req.PackageID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid package id"})
			return
		}
		draft.SetPackage(id)
	}
	for _, raw := range req.AddAddonIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid addon id"})
			return
		}
		draft.AddAddon(id)
	}
	for _, raw := range req.RemoveAddonIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid addon id"})
			return
		}
		draft.RemoveAddon(id)
	}
	if req.Email != nil || req.Company != nil || req.ObjectReference != nil || req.SpecialRequests != nil {
		contact := draft.Snapshot().Contact
		if req.Email != nil {
			contact.Email = *req.Email
		}
		if req.Company != nil {
			contact.Company = *req.Company
		}
		if req.ObjectReference != nil {
			contact.ObjectReference = *req.ObjectReference
		}
		if req.SpecialRequests != nil {
			contact.SpecialRequests = *req.SpecialRequests
		}
		draft.SetContact(contact)
	}
	if req.TermsAccepted != nil {
		draft.SetTermsAccepted(*req.TermsAccepted)
	}

	c.JSON(http.StatusOK, draftResponse(sess))
}

// Advance moves to the next wizard step after checking the current step's
// completion predicate.
func (h *OrderFlowHandler) Advance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sess := h.registry.Get(userID)
	current := sess.Meta.Current()
	if !wizard.CanProceed(current, sess.Draft.Snapshot()) {
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "step not complete",
			Message: "step " + string(current) + " is not complete",
		})
		return
	}

	sess.Meta.Advance()
	c.JSON(http.StatusOK, draftResponse(sess))
}

func (h *OrderFlowHandler) Retreat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	sess := h.registry.Get(userID)
	sess.Meta.Retreat()
	c.JSON(http.StatusOK, draftResponse(sess))
}

// ResetDraft discards the whole wizard session, content and navigation alike.
func (h *OrderFlowHandler) ResetDraft(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	h.registry.Reset(userID)
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// Quote returns the derived price for the current draft. While reference data
// or credits are unavailable no price is returned at all, so the client never
// renders a transient full-gross amount.
func (h *OrderFlowHandler) Quote(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quote, ready, err := h.orderService.Quote(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to compute quote",
			Message: err.Error(),
		})
		return
	}
	if !ready {
		c.JSON(http.StatusOK, gin.H{"ready": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ready": true,
		"quote": models.QuoteResponse{
			ImageCount:         quote.ImageCount,
			GrossCents:         quote.GrossCents,
			CreditCentsApplied: quote.CreditCentsApplied,
			FinalCents:         quote.FinalCents,
		},
	})
}

// Submit turns the draft into a persisted order and, when something remains to
// pay, returns the payment intent for the client to confirm.
func (h *OrderFlowHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	order, intent, err := h.orderService.Submit(userID)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrDraftIncomplete) || errors.Is(err, services.ErrQuoteUnavailable) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, models.ErrorResponse{
			Error:   "failed to submit order",
			Message: err.Error(),
		})
		return
	}

	resp := models.SubmitResponse{Order: orderResponse(order)}
	if intent != nil {
		resp.Payment = &models.PaymentIntentResponse{
			ClientSecret: intent.ClientSecret,
			AmountCents:  intent.AmountCents,
		}
	}
	c.JSON(http.StatusOK, resp)
}
