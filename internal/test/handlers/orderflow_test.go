package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"renovirt-backend/internal/handlers"
	"renovirt-backend/internal/middleware"
	"renovirt-backend/internal/models"
	"renovirt-backend/internal/wizard"
)

func orderFlowRouter() (*gin.Engine, *wizard.Registry, uuid.UUID) {
	gin.SetMode(gin.TestMode)
	registry := wizard.NewRegistry(time.Hour)
	handler := handlers.NewOrderFlowHandler(registry, nil)

	userID := uuid.New()
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID.String())
	})
	router.GET("/order-flow/draft", handler.GetDraft)
	router.PATCH("/order-flow/draft", handler.PatchDraft)
	router.DELETE("/order-flow/draft", handler.ResetDraft)
	router.POST("/order-flow/advance", handler.Advance)
	router.POST("/order-flow/retreat", handler.Retreat)
	return router, registry, userID
}

func patchDraft(t *testing.T, router *gin.Engine, patch map[string]interface{}) models.DraftResponse {
	t.Helper()
	body, _ := json.Marshal(patch)
	req, _ := http.NewRequest("PATCH", "/order-flow/draft", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.DraftResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestOrderFlow_GetDraftCreatesSession(t *testing.T) {
	router, registry, userID := orderFlowRouter()

	req, _ := http.NewRequest("GET", "/order-flow/draft", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, registry.Len())

	var resp models.DraftResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "photo-type", resp.CurrentStep)
	assert.NotEqual(t, uuid.Nil, registry.Get(userID).ID)
}

func TestOrderFlow_PatchDraftSetsFields(t *testing.T) {
	router, _, _ := orderFlowRouter()
	pkgID := uuid.New().String()

	resp := patchDraft(t, router, map[string]interface{}{
		"photo_type": "bracketing-3",
		"package_id": pkgID,
		"email":      "kunde@example.com",
	})

	assert.Equal(t, "bracketing-3", resp.PhotoType)
	assert.Equal(t, pkgID, resp.PackageID)
	assert.Equal(t, "kunde@example.com", resp.Email)
}

func TestOrderFlow_PatchDraftRejectsBadPackageID(t *testing.T) {
	router, _, _ := orderFlowRouter()

	body, _ := json.Marshal(map[string]interface{}{"package_id": "not-a-uuid"})
	req, _ := http.NewRequest("PATCH", "/order-flow/draft", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderFlow_AdvanceGatesOnStepCompletion(t *testing.T) {
	router, _, _ := orderFlowRouter()

	// photo type not selected yet
	req, _ := http.NewRequest("POST", "/order-flow/advance", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	patchDraft(t, router, map[string]interface{}{"photo_type": "camera"})

	req, _ = http.NewRequest("POST", "/order-flow/advance", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.DraftResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "upload", resp.CurrentStep)
}

func TestOrderFlow_RetreatKeepsDraftContent(t *testing.T) {
	router, _, _ := orderFlowRouter()

	patchDraft(t, router, map[string]interface{}{"photo_type": "camera"})
	req, _ := http.NewRequest("POST", "/order-flow/advance", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ = http.NewRequest("POST", "/order-flow/retreat", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.DraftResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "photo-type", resp.CurrentStep)
	// content survives navigation
	assert.Equal(t, "camera", resp.PhotoType)
}

func TestOrderFlow_ResetDiscardsEverything(t *testing.T) {
	router, registry, _ := orderFlowRouter()

	patchDraft(t, router, map[string]interface{}{"photo_type": "camera"})
	assert.Equal(t, 1, registry.Len())

	req, _ := http.NewRequest("DELETE", "/order-flow/draft", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, registry.Len())

	req, _ = http.NewRequest("GET", "/order-flow/draft", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp models.DraftResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.PhotoType)
	assert.Equal(t, "photo-type", resp.CurrentStep)
}
