package backend

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Kariqs/foodcash-api/models"
	"github.com/go-resty/resty/v2"
)

// Remote talks to the delivery platform's REST API.
type Remote struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

type apiError struct {
	Message string `json:"message"`
}

func NewRemote(baseURL string) *Remote {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetError(&apiError{})
	return &Remote{client: client}
}

func (r *Remote) request(ctx context.Context) *resty.Request {
	req := r.client.R().SetContext(ctx)
	r.mu.RLock()
	if r.token != "" {
		req.SetAuthToken(r.token)
	}
	r.mu.RUnlock()
	return req
}

func (r *Remote) setToken(token string) {
	r.mu.Lock()
	r.token = token
	r.mu.Unlock()
}

// Logout forgets the bearer token of the signed-in user.
func (r *Remote) Logout() {
	r.setToken("")
}

func failure(resp *resty.Response) error {
	msg := resp.Status()
	if e, ok := resp.Error().(*apiError); ok && e.Message != "" {
		msg = e.Message
	}
	return fmt.Errorf("%s %s failed with status %d: %s", resp.Request.Method, resp.Request.URL, resp.StatusCode(), msg)
}

func (r *Remote) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	var out authResponse
	resp, err := r.request(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&out).
		Post("/auth/login")
	if err != nil {
		return models.User{}, err
	}
	switch {
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusBadRequest:
		return models.User{}, ErrInvalidCredentials
	case resp.IsError():
		return models.User{}, failure(resp)
	}
	r.setToken(out.Token)
	return out.User, nil
}

func (r *Remote) Register(ctx context.Context, user models.User, password string) (models.User, error) {
	var out authResponse
	resp, err := r.request(ctx).
		SetBody(map[string]string{
			"fullName":     user.FullName,
			"email":        user.Email,
			"password":     password,
			"phone":        user.Phone,
			"referralCode": user.ReferralCode,
		}).
		SetResult(&out).
		Post("/auth/signup")
	if err != nil {
		return models.User{}, err
	}
	switch {
	case resp.StatusCode() == http.StatusConflict:
		return models.User{}, ErrUserExists
	case resp.IsError():
		return models.User{}, failure(resp)
	}
	r.setToken(out.Token)
	return out.User, nil
}

func (r *Remote) SaveUser(ctx context.Context, user models.User) error {
	resp, err := r.request(ctx).
		SetPathParam("id", user.ID).
		SetBody(user).
		Put("/users/{id}")
	if err != nil {
		return err
	}
	switch resp.StatusCode() {
	case http.StatusNotFound:
		return ErrUserNotFound
	case http.StatusConflict:
		return ErrUserExists
	}
	if resp.IsError() {
		return failure(resp)
	}
	return nil
}

func (r *Remote) FindByReferralCode(ctx context.Context, code string) (models.User, error) {
	var out struct {
		User models.User `json:"user"`
	}
	resp, err := r.request(ctx).
		SetPathParam("code", code).
		SetResult(&out).
		Get("/referrals/{code}")
	if err != nil {
		return models.User{}, err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return models.User{}, ErrUserNotFound
	}
	if resp.IsError() {
		return models.User{}, failure(resp)
	}
	return out.User, nil
}

func (r *Remote) RecordTransaction(ctx context.Context, tx models.CashbackTransaction) error {
	resp, err := r.request(ctx).SetBody(tx).Post("/cashback/transactions")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return failure(resp)
	}
	return nil
}

func (r *Remote) Transactions(ctx context.Context, beneficiary string) ([]models.CashbackTransaction, error) {
	var out struct {
		Transactions []models.CashbackTransaction `json:"transactions"`
	}
	resp, err := r.request(ctx).
		SetQueryParam("beneficiary", beneficiary).
		SetResult(&out).
		Get("/cashback/transactions")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, failure(resp)
	}
	return out.Transactions, nil
}

func (r *Remote) RecordOrder(ctx context.Context, order models.Order) error {
	resp, err := r.request(ctx).SetBody(order).Post("/orders")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return failure(resp)
	}
	return nil
}

func (r *Remote) Orders(ctx context.Context, userID string) ([]models.Order, error) {
	var out struct {
		Orders []models.Order `json:"orders"`
	}
	resp, err := r.request(ctx).
		SetQueryParam("userId", userID).
		SetResult(&out).
		Get("/orders")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, failure(resp)
	}
	return out.Orders, nil
}

func (r *Remote) SavePaymentMethod(ctx context.Context, pm models.PaymentMethod) error {
	return r.put(ctx, "/users/{userId}/payment-methods/{id}", pm.UserID, pm.ID, pm)
}

func (r *Remote) PaymentMethods(ctx context.Context, userID string) ([]models.PaymentMethod, error) {
	var out struct {
		PaymentMethods []models.PaymentMethod `json:"paymentMethods"`
	}
	if err := r.list(ctx, "/users/{userId}/payment-methods", userID, &out); err != nil {
		return nil, err
	}
	for i := range out.PaymentMethods {
		out.PaymentMethods[i].UserID = userID
	}
	return out.PaymentMethods, nil
}

func (r *Remote) DeletePaymentMethod(ctx context.Context, userID, id string) error {
	return r.delete(ctx, "/users/{userId}/payment-methods/{id}", userID, id)
}

func (r *Remote) SaveAddress(ctx context.Context, addr models.Address) error {
	return r.put(ctx, "/users/{userId}/addresses/{id}", addr.UserID, addr.ID, addr)
}

func (r *Remote) Addresses(ctx context.Context, userID string) ([]models.Address, error) {
	var out struct {
		Addresses []models.Address `json:"addresses"`
	}
	if err := r.list(ctx, "/users/{userId}/addresses", userID, &out); err != nil {
		return nil, err
	}
	for i := range out.Addresses {
		out.Addresses[i].UserID = userID
	}
	return out.Addresses, nil
}

func (r *Remote) DeleteAddress(ctx context.Context, userID, id string) error {
	return r.delete(ctx, "/users/{userId}/addresses/{id}", userID, id)
}

func (r *Remote) put(ctx context.Context, path, userID, id string, body any) error {
	resp, err := r.request(ctx).
		SetPathParams(map[string]string{"userId": userID, "id": id}).
		SetBody(body).
		Put(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return failure(resp)
	}
	return nil
}

func (r *Remote) list(ctx context.Context, path, userID string, out any) error {
	resp, err := r.request(ctx).
		SetPathParam("userId", userID).
		SetResult(out).
		Get(path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return failure(resp)
	}
	return nil
}

func (r *Remote) delete(ctx context.Context, path, userID, id string) error {
	resp, err := r.request(ctx).
		SetPathParams(map[string]string{"userId": userID, "id": id}).
		Delete(path)
	if err != nil {
		return err
	}
	if resp.StatusCode() == http.StatusNotFound {
		return ErrRecordNotFound
	}
	if resp.IsError() {
		return failure(resp)
	}
	return nil
}
