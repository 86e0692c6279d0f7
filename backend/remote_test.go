package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Kariqs/foodcash-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRemoteServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		if body["password"] != "secret1" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid email or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"tok-123","user":{"id":"u-1","email":"a@example.com","referralCode":"FOOD1234"}}`))
	})
	mux.HandleFunc("POST /auth/signup", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"user already exists"}`))
	})
	mux.HandleFunc("GET /referrals/{code}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.PathValue("code") != "FOOD1234" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":"u-1","fullName":"Farid","referralCode":"FOOD1234"}}`))
	})
	mux.HandleFunc("GET /cashback/transactions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"missing token"}`))
			return
		}
		assert.Equal(t, "FOOD1234", r.URL.Query().Get("beneficiary"))
		_, _ = w.Write([]byte(`{"transactions":[{"id":"t1","type":"order","amount":"3.00","beneficiary":"FOOD1234"}]}`))
	})
	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"database down"}`))
	})

	mux.HandleFunc("PUT /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		var user models.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
		w.Header().Set("Content-Type", "application/json")
		if user.Email == "taken@example.com" {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"email already registered"}`))
			return
		}
		_, _ = w.Write([]byte(`{}`))
	})
	mux.HandleFunc("GET /users/{userId}/payment-methods", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		assert.Equal(t, "u-1", r.PathValue("userId"))
		_, _ = w.Write([]byte(`{"paymentMethods":[{"id":"pm-1","type":"card","last4":"4242","isDefault":true}]}`))
	})
	mux.HandleFunc("DELETE /users/{userId}/payment-methods/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRemote_AuthenticateStoresToken(t *testing.T) {
	ctx := context.Background()
	remote := NewRemote(newRemoteServer(t).URL)

	_, err := remote.Transactions(ctx, "FOOD1234")
	assert.Error(t, err)

	_, err = remote.Authenticate(ctx, "a@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, err := remote.Authenticate(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)

	txs, err := remote.Transactions(ctx, "FOOD1234")
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "3.00", txs[0].Amount.StringFixed(2))
}

func TestRemote_ErrorMapping(t *testing.T) {
	ctx := context.Background()
	remote := NewRemote(newRemoteServer(t).URL)

	_, err := remote.Register(ctx, models.User{Email: "a@example.com"}, "secret1")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = remote.FindByReferralCode(ctx, "FOOD0000")
	assert.ErrorIs(t, err, ErrUserNotFound)

	user, err := remote.FindByReferralCode(ctx, "FOOD1234")
	require.NoError(t, err)
	assert.Equal(t, "Farid", user.FullName)

	err = remote.RecordOrder(ctx, models.Order{ID: "o1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database down")
}

func TestRemote_LogoutDropsToken(t *testing.T) {
	ctx := context.Background()
	remote := NewRemote(newRemoteServer(t).URL)

	_, err := remote.Authenticate(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	_, err = remote.Transactions(ctx, "FOOD1234")
	require.NoError(t, err)

	remote.Logout()
	_, err = remote.Transactions(ctx, "FOOD1234")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing token")
}

func TestRemote_ProfileEndpoints(t *testing.T) {
	ctx := context.Background()
	remote := NewRemote(newRemoteServer(t).URL)

	err := remote.SaveUser(ctx, models.User{ID: "u-1", Email: "taken@example.com"})
	assert.ErrorIs(t, err, ErrUserExists)
	require.NoError(t, remote.SaveUser(ctx, models.User{ID: "u-1", Email: "free@example.com"}))

	methods, err := remote.PaymentMethods(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, methods, 1)
	assert.Equal(t, "4242", methods[0].Last4)
	assert.Equal(t, "u-1", methods[0].UserID)

	assert.ErrorIs(t, remote.DeletePaymentMethod(ctx, "u-1", "pm-9"), ErrRecordNotFound)
}
