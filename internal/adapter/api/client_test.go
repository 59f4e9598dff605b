package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gabrielnatan/petinova-2-sub000/internal/core/domain"
)

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticToken("tok-123"), nil)
	if err := client.Get(context.Background(), "/api/auth/me", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer tok-123" {
		t.Errorf("expected 'Bearer tok-123', got %q", gotAuth)
	}
}

func TestDo_NoTokenMeansUnauthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticToken(""), nil)
	if err := client.Get(context.Background(), "/api/pets", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestTokenChain_ResolutionOrder(t *testing.T) {
	chain := TokenChain{StaticToken(""), StaticToken("cookie-token")}
	if got := chain.Token(); got != "cookie-token" {
		t.Errorf("expected cookie fallback, got %q", got)
	}

	chain = TokenChain{StaticToken("store-token"), StaticToken("cookie-token")}
	if got := chain.Token(); got != "store-token" {
		t.Errorf("expected store token to win, got %q", got)
	}
}

func TestDo_ErrorMessageFromJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"sessão expirada"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticToken("t"), nil)
	err := client.Get(context.Background(), "/api/auth/me", nil)
	if err == nil {
		t.Fatal("expected error")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if statusErr.Code != http.StatusUnauthorized {
		t.Errorf("expected code 401, got %d", statusErr.Code)
	}
	if statusErr.Message != "sessão expirada" {
		t.Errorf("expected message from error field, got %q", statusErr.Message)
	}
}

func TestDo_ErrorMessageFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticToken("t"), nil)
	err := client.Get(context.Background(), "/api/products", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != http.StatusText(http.StatusBadGateway) {
		t.Errorf("expected status text message, got %q", err.Error())
	}
}

func TestDo_NoContentLeavesOutUntouched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticToken("t"), nil)
	out := map[string]string{"existing": "value"}
	if err := client.Post(context.Background(), "/api/auth/logout", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["existing"] != "value" {
		t.Error("expected out to be untouched for a no-content response")
	}
}

func TestGetLayout_NullLayoutIsAbsenceNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"layout":null}`))
	}))
	defer srv.Close()

	dash := NewDashboardAPI(NewClient(srv.URL, StaticToken("t"), nil))
	layout, err := dash.GetLayout(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layout != nil {
		t.Error("expected nil layout for null response")
	}
}

func TestSaveLayout_PostsEnvelope(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.Write([]byte(`{"success":true,"layout":{"widgets":[]}}`))
	}))
	defer srv.Close()

	dash := NewDashboardAPI(NewClient(srv.URL, StaticToken("t"), nil))
	layout := domain.Layout{Widgets: []domain.Widget{
		{ID: "pets-count", Type: domain.WidgetPetsCount, Position: domain.Position{X: 0, Y: 4}, Size: domain.Size{W: 3, H: 3}, Visible: true},
	}}
	if err := dash.SaveLayout(context.Background(), layout); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotBody == "" || gotBody[:10] != `{"layout":` {
		t.Errorf("expected layout envelope, got %q", gotBody)
	}
}
