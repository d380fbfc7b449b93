package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/flowershop/internal/domain/errors"
	"github.com/polkiloo/flowershop/internal/domain/model"
	"github.com/polkiloo/flowershop/internal/server/http/dto"
	"github.com/polkiloo/flowershop/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/flowershop/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var alice = &model.User{ID: 7, Username: "alice", Token: "tok"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func withUser(c *gin.Context) {
	c.Set(middleware.UserContextKey, alice)
}

func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, w.Body.String())
	}
	return resp
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestCurrentUser(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUser(c); got != nil {
		t.Fatalf("expected nil when not set, got %+v", got)
	}

	c.Set(middleware.UserContextKey, alice)
	if got := CurrentUser(c); got != alice {
		t.Fatalf("expected alice, got %+v", got)
	}

	c.Set(middleware.UserContextKey, "not a user")
	if got := CurrentUser(c); got != nil {
		t.Fatalf("expected nil for foreign value, got %+v", got)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domainErrors.NewValidationError("quantity", "must be greater than 0"), http.StatusBadRequest},
		{domainErrors.ErrConflict, http.StatusConflict},
		{domainErrors.ErrUnauthorized, http.StatusForbidden},
		{domainErrors.ErrNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusOf(tt.err); got != tt.want {
			t.Fatalf("statusOf(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	creds := testhelpers.RandomCredentials()
	var got testhelpers.Credentials
	facade := &testhelpers.ShopFacadeStub{RegisterFn: func(_ context.Context, username, email, password string) error {
		got = testhelpers.Credentials{Username: username, Email: email, Password: password}
		return nil
	}}
	body := mustJSON(t, dto.RegisterRequest{Username: creds.Username, Email: creds.Email, Password: creds.Password})
	w := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(facade, discardLogger()).Register, nil, body, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got != creds {
		t.Fatalf("unexpected facade args %+v, want %+v", got, creds)
	}
	if resp := decodeEnvelope(t, w); !resp.Success {
		t.Fatalf("expected success envelope, got %+v", resp)
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    []byte
		err     error
		status  int
		message string
	}{
		{"bad json", []byte("{"), nil, http.StatusBadRequest, msgInvalidBody},
		{"duplicate", []byte(`{"username":"a","email":"a@x.com","password":"pw123456"}`), domainErrors.ErrConflict, http.StatusConflict, msgUserExists},
		{"invalid email", []byte(`{"username":"a","email":"nope","password":"pw123456"}`), domainErrors.NewValidationError("email", "is not a valid address"), http.StatusBadRequest, "Error. Field email is not a valid address."},
		{"storage", []byte(`{"username":"a","email":"a@x.com","password":"pw123456"}`), errors.New("db down"), http.StatusInternalServerError, middleware.MessageInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := &testhelpers.ShopFacadeStub{RegisterFn: func(context.Context, string, string, string) error { return tt.err }}
			w := performRequest(t, http.MethodPost, "/register", "/register", NewAuthHandler(facade, discardLogger()).Register, nil, tt.body, nil)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			resp := decodeEnvelope(t, w)
			if resp.Success || resp.Message != tt.message {
				t.Fatalf("unexpected envelope %+v", resp)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body := mustJSON(t, dto.LoginRequest{Email: "alice@x.com", Password: "pw123456"})
	w := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(&testhelpers.ShopFacadeStub{}, discardLogger()).Login, nil, body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp dto.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Token != "session-token" {
		t.Fatalf("unexpected login response %+v", resp)
	}
}

func TestAuthHandlerLoginFailures(t *testing.T) {
	tests := []struct {
		name   string
		body   []byte
		err    error
		status int
	}{
		{"bad json", []byte("nope"), nil, http.StatusBadRequest},
		{"wrong credentials", []byte(`{"email":"a@x.com","password":"bad"}`), domainErrors.ErrUnauthorized, http.StatusForbidden},
		{"storage", []byte(`{"email":"a@x.com","password":"pw"}`), errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := &testhelpers.ShopFacadeStub{LoginFn: func(context.Context, string, string) (string, error) { return "", tt.err }}
			w := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(facade, discardLogger()).Login, nil, tt.body, nil)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			var resp dto.LoginResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Success || resp.Token != "" {
				t.Fatalf("unexpected login response %+v", resp)
			}
		})
	}
}

func TestAuthHandlerLogout(t *testing.T) {
	var seen string
	facade := &testhelpers.ShopFacadeStub{LogoutFn: func(_ context.Context, token string) error {
		seen = token
		if token != "tok" {
			return domainErrors.ErrUnauthorized
		}
		return nil
	}}
	handler := NewAuthHandler(facade, discardLogger()).Logout

	w := performRequest(t, http.MethodPost, "/logout", "/logout", handler, nil, nil, map[string]string{middleware.TokenHeader: " tok "})
	if w.Code != http.StatusOK || seen != "tok" {
		t.Fatalf("expected 200 with trimmed token, got %d %q", w.Code, seen)
	}

	w = performRequest(t, http.MethodPost, "/logout", "/logout", handler, nil, nil, map[string]string{middleware.TokenHeader: "stale"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Message != middleware.MessageIncorrectToken {
		t.Fatalf("unexpected message %q", resp.Message)
	}

	facade.LogoutFn = func(context.Context, string) error { return errors.New("db down") }
	w = performRequest(t, http.MethodPost, "/logout", "/logout", handler, nil, nil, map[string]string{middleware.TokenHeader: "tok"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

type flowersEnvelope struct {
	Success bool                 `json:"success"`
	Data    []dto.FlowerResponse `json:"data"`
}

func TestCatalogHandlerList(t *testing.T) {
	handler := NewCatalogHandler(&testhelpers.ShopFacadeStub{}, discardLogger()).List

	tests := []struct {
		name   string
		target string
		names  []string
	}{
		{"all", "/flowers", []string{"Rose", "Tulip"}},
		{"by category", "/flowers?category=Birthday", []string{"Tulip"}},
		{"category ignores case", "/flowers?category=for%20a%20loved%20one", []string{"Rose"}},
		{"unknown category", "/flowers?category=Graduation", nil},
		{"empty category", "/flowers?category=", []string{"Rose", "Tulip"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(t, http.MethodGet, "/flowers", tt.target, handler, nil, nil, nil)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			var resp flowersEnvelope
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !resp.Success || resp.Data == nil {
				t.Fatalf("expected success with data array, got %s", w.Body.String())
			}
			if len(resp.Data) != len(tt.names) {
				t.Fatalf("expected %v, got %+v", tt.names, resp.Data)
			}
			for i, name := range tt.names {
				if resp.Data[i].Name != name {
					t.Fatalf("expected %s at %d, got %s", name, i, resp.Data[i].Name)
				}
			}
		})
	}
}

func TestCatalogHandlerRendersPrice(t *testing.T) {
	w := performRequest(t, http.MethodGet, "/flowers", "/flowers", NewCatalogHandler(&testhelpers.ShopFacadeStub{}, discardLogger()).List, nil, nil, nil)
	if !bytes.Contains(w.Body.Bytes(), []byte(`"price":10.50`)) {
		t.Fatalf("expected two-decimal price in %s", w.Body.String())
	}
}

func TestCatalogHandlerFailure(t *testing.T) {
	facade := &testhelpers.ShopFacadeStub{FlowersFn: func(context.Context, *model.FlowerCategory) ([]model.Flower, error) {
		return nil, errors.New("db down")
	}}
	w := performRequest(t, http.MethodGet, "/flowers", "/flowers", NewCatalogHandler(facade, discardLogger()).List, nil, nil, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

type ordersEnvelope struct {
	Success bool `json:"success"`
	Data    []struct {
		ID       int64           `json:"id"`
		Status   string          `json:"status"`
		Quantity int             `json:"quantity"`
		Amount   json.Number     `json:"amount"`
		Flower   json.RawMessage `json:"flower"`
	} `json:"data"`
}

func TestOrderHandlerList(t *testing.T) {
	var seen *model.User
	facade := &testhelpers.ShopFacadeStub{}
	facade.OrdersFn = func(ctx context.Context, user *model.User) ([]model.Order, error) {
		seen = user
		return (&testhelpers.ShopFacadeStub{}).Orders(ctx, user)
	}
	w := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(facade, discardLogger()).List, withUser, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if seen != alice {
		t.Fatalf("expected orders of the authenticated user, got %+v", seen)
	}
	var resp ordersEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("expected one order, got %s", w.Body.String())
	}
	o := resp.Data[0]
	if o.Status != "Pending" || o.Quantity != 3 || o.Amount.String() != "31.50" {
		t.Fatalf("unexpected order %+v", o)
	}
	if !bytes.Contains(o.Flower, []byte(`"name":"Rose"`)) {
		t.Fatalf("expected nested flower, got %s", o.Flower)
	}
}

func TestOrderHandlerListEmpty(t *testing.T) {
	facade := &testhelpers.ShopFacadeStub{OrdersFn: func(context.Context, *model.User) ([]model.Order, error) { return nil, nil }}
	w := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(facade, discardLogger()).List, withUser, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"data":[]`)) {
		t.Fatalf("expected empty array, got %s", w.Body.String())
	}
}

func TestOrderHandlerCreate(t *testing.T) {
	var gotName string
	var gotQty int
	facade := &testhelpers.ShopFacadeStub{PlaceOrderFn: func(_ context.Context, user *model.User, name string, qty int) error {
		if user != alice {
			t.Fatalf("unexpected user %+v", user)
		}
		gotName, gotQty = name, qty
		return nil
	}}
	body := mustJSON(t, dto.CreateOrderRequest{FlowerName: "Rose", Quantity: 3})
	w := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(facade, discardLogger()).Create, withUser, body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotName != "Rose" || gotQty != 3 {
		t.Fatalf("unexpected facade args %q %d", gotName, gotQty)
	}
}

func TestOrderHandlerCreateFailures(t *testing.T) {
	tests := []struct {
		name    string
		body    []byte
		err     error
		status  int
		message string
	}{
		{"bad json", []byte("{"), nil, http.StatusBadRequest, msgInvalidBody},
		{"unknown flower", []byte(`{"flower_name":"Cactus","quantity":1}`), domainErrors.ErrNotFound, http.StatusForbidden, msgNoSuchFlower},
		{"zero quantity", []byte(`{"flower_name":"Rose","quantity":0}`), domainErrors.NewValidationError("quantity", "must be greater than 0"), http.StatusBadRequest, msgInvalidQuantity},
		{"missing name", []byte(`{"quantity":1}`), domainErrors.NewValidationError("flower_name", "is required"), http.StatusBadRequest, "Error. Field flower_name is required."},
		{"storage", []byte(`{"flower_name":"Rose","quantity":1}`), errors.New("db down"), http.StatusInternalServerError, middleware.MessageInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := &testhelpers.ShopFacadeStub{PlaceOrderFn: func(context.Context, *model.User, string, int) error { return tt.err }}
			w := performRequest(t, http.MethodPost, "/orders", "/orders", NewOrderHandler(facade, discardLogger()).Create, withUser, tt.body, nil)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			if resp := decodeEnvelope(t, w); resp.Success || resp.Message != tt.message {
				t.Fatalf("unexpected envelope %+v", resp)
			}
		})
	}
}

func TestOrderHandlerUpdatePassesOptionalFields(t *testing.T) {
	facade := &testhelpers.ShopFacadeStub{}
	handler := NewOrderHandler(facade, discardLogger()).Update

	w := performRequest(t, http.MethodPut, "/orders/:id", "/orders/12", handler, withUser, []byte(`{"quantity":5}`), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w = performRequest(t, http.MethodPut, "/orders/:id", "/orders/12", handler, withUser, []byte(`{"status":"Completed"}`), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	if len(facade.Updates) != 2 {
		t.Fatalf("expected two updates, got %d", len(facade.Updates))
	}
	first, second := facade.Updates[0], facade.Updates[1]
	if first.OrderID != 12 || first.UserID != alice.ID || first.Status != nil || first.Quantity == nil || *first.Quantity != 5 {
		t.Fatalf("unexpected quantity update %+v", first)
	}
	if second.Quantity != nil || second.Status == nil || *second.Status != "Completed" {
		t.Fatalf("unexpected status update %+v", second)
	}
}

func TestOrderHandlerUpdateFailures(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		body    []byte
		err     error
		status  int
		message string
	}{
		{"bad id", "/orders/abc", []byte(`{"quantity":1}`), nil, http.StatusBadRequest, msgInvalidOrderID},
		{"bad json", "/orders/1", []byte("{"), nil, http.StatusBadRequest, msgInvalidBody},
		{"not owned", "/orders/1", []byte(`{"quantity":1}`), domainErrors.ErrNotFound, http.StatusNotFound, msgOrderNotFound},
		{"invalid status", "/orders/1", []byte(`{"status":"Lost"}`), domainErrors.NewValidationError("status", "is not a known status"), http.StatusBadRequest, msgInvalidStatus},
		{"invalid quantity", "/orders/1", []byte(`{"quantity":0}`), domainErrors.NewValidationError("quantity", "must be greater than 0"), http.StatusBadRequest, msgInvalidQuantity},
		{"storage", "/orders/1", []byte(`{"quantity":1}`), errors.New("db down"), http.StatusInternalServerError, middleware.MessageInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facade := &testhelpers.ShopFacadeStub{UpdateOrderFn: func(context.Context, *model.User, int64, *string, *int) error { return tt.err }}
			w := performRequest(t, http.MethodPut, "/orders/:id", tt.target, NewOrderHandler(facade, discardLogger()).Update, withUser, tt.body, nil)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			if resp := decodeEnvelope(t, w); resp.Success || resp.Message != tt.message {
				t.Fatalf("unexpected envelope %+v", resp)
			}
		})
	}
}

func TestOrderHandlerDelete(t *testing.T) {
	var deleted int64
	facade := &testhelpers.ShopFacadeStub{DeleteOrderFn: func(_ context.Context, _ *model.User, id int64) error {
		if deleted == id {
			return domainErrors.ErrNotFound
		}
		deleted = id
		return nil
	}}
	handler := NewOrderHandler(facade, discardLogger()).Delete

	w := performRequest(t, http.MethodDelete, "/orders/:id", "/orders/4", handler, withUser, nil, nil)
	if w.Code != http.StatusOK || deleted != 4 {
		t.Fatalf("expected 200 deleting order 4, got %d (%d)", w.Code, deleted)
	}

	w = performRequest(t, http.MethodDelete, "/orders/:id", "/orders/4", handler, withUser, nil, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Message != msgNoOrdersForDelete {
		t.Fatalf("unexpected message %q", resp.Message)
	}

	w = performRequest(t, http.MethodDelete, "/orders/:id", "/orders/x", handler, withUser, nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", w.Code)
	}

	facade.DeleteOrderFn = func(context.Context, *model.User, int64) error { return errors.New("db down") }
	w = performRequest(t, http.MethodDelete, "/orders/:id", "/orders/5", handler, withUser, nil, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestCommentHandlerList(t *testing.T) {
	w := performRequest(t, http.MethodGet, "/comments", "/comments", NewCommentHandler(&testhelpers.ShopFacadeStub{}, discardLogger()).List, nil, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte(`"username":"alice"`)) {
		t.Fatalf("expected comment author in %s", w.Body.String())
	}
}

func TestCommentHandlerListFailure(t *testing.T) {
	facade := &testhelpers.ShopFacadeStub{CommentsFn: func(context.Context) ([]model.Comment, error) {
		return nil, errors.New("db down")
	}}
	w := performRequest(t, http.MethodGet, "/comments", "/comments", NewCommentHandler(facade, discardLogger()).List, nil, nil, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := w.Body.String()
	if !bytes.Contains(w.Body.Bytes(), []byte(`"success":false`)) || !bytes.Contains(w.Body.Bytes(), []byte(`"data":[]`)) {
		t.Fatalf("expected failed envelope with empty data, got %s", body)
	}
}

func TestCommentHandlerCreate(t *testing.T) {
	var got string
	facade := &testhelpers.ShopFacadeStub{PostCommentFn: func(_ context.Context, user *model.User, text string) error {
		if user != alice {
			t.Fatalf("unexpected user %+v", user)
		}
		got = text
		if text == "" {
			return domainErrors.NewValidationError("text", "must not be empty")
		}
		return nil
	}}
	handler := NewCommentHandler(facade, discardLogger()).Create

	w := performRequest(t, http.MethodPost, "/comments", "/comments", handler, withUser, []byte(`{"text":"Great bouquet"}`), nil)
	if w.Code != http.StatusOK || got != "Great bouquet" {
		t.Fatalf("expected 200, got %d (%q)", w.Code, got)
	}

	w = performRequest(t, http.MethodPost, "/comments", "/comments", handler, withUser, []byte(`{"text":""}`), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Message != "Error. Field text must not be empty." {
		t.Fatalf("unexpected message %q", resp.Message)
	}

	w = performRequest(t, http.MethodPost, "/comments", "/comments", handler, withUser, []byte("]"), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on bad json, got %d", w.Code)
	}

	facade.PostCommentFn = func(context.Context, *model.User, string) error { return errors.New("db down") }
	w = performRequest(t, http.MethodPost, "/comments", "/comments", handler, withUser, []byte(`{"text":"hi"}`), nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Message != middleware.MessageInternalError {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestHealthHandler(t *testing.T) {
	facade := &testhelpers.ShopFacadeStub{}
	handler := NewHealthHandler(facade, discardLogger()).Check

	w := performRequest(t, http.MethodGet, "/health", "/health", handler, nil, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	facade.HealthFn = func(context.Context) error { return errors.New("refused") }
	w = performRequest(t, http.MethodGet, "/health", "/health", handler, nil, nil, nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if resp := decodeEnvelope(t, w); resp.Success {
		t.Fatalf("expected failure envelope, got %+v", resp)
	}
}
