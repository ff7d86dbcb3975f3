package edge_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"renovirt-backend/internal/edge"
)

func TestClient_RetryWithBackoff(t *testing.T) {
	client := edge.NewClient("https://functions.test.com/", "test-key")

	callCount := 0
	err := client.RetryWithBackoff(func() error {
		callCount++
		if callCount < 3 {
			return assert.AnError
		}
		return nil
	}, 3)

	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
}

func TestClient_RetryWithBackoff_Exhausted(t *testing.T) {
	client := edge.NewClient("https://functions.test.com/", "test-key")

	err := client.RetryWithBackoff(func() error {
		return assert.AnError
	}, 3)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 3 retries")
}

func TestClient_ProcessReferral(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/process-referral", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "WELCOME10", body["code"])

		json.NewEncoder(w).Encode(edge.ReferralResult{
			Code:    "WELCOME10",
			Valid:   true,
			Credits: 10,
		})
	}))
	defer server.Close()

	client := edge.NewClient(server.URL, "test-key")
	result, err := client.ProcessReferral("WELCOME10", "user-123")

	assert.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, int64(10), result.Credits)
}

func TestClient_VerifyPayment_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "intent not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := edge.NewClient(server.URL, "test-key")
	_, err := client.VerifyPayment("pi_missing")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestClient_CreatePaymentIntent_RejectsEmptySecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(edge.PaymentIntentResult{IntentID: "pi_123"})
	}))
	defer server.Close()

	client := edge.NewClient(server.URL, "test-key")
	_, err := client.CreatePaymentIntent("order-1", 5000, "kunde@example.com")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "client_secret")
}
