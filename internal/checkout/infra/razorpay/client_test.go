package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCreateOrder(t *testing.T) {
	var gotReq createOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key-id" || pass != "key-secret" {
			t.Errorf("basic auth = %s/%s/%v", user, pass, ok)
		}
		if r.URL.Path != "/orders" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(orderResponse{
			ID: "order_xyz", Amount: gotReq.Amount, Currency: gotReq.Currency, Status: "created",
		})
	}))
	defer srv.Close()

	c := NewClient("key-id", "key-secret")
	c.baseURL = srv.URL

	po, err := c.CreateOrder(context.Background(), 264500, "USD", "cart-u1")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if po.ID != "order_xyz" || po.Amount != 264500 || po.Status != "created" {
		t.Errorf("payment order = %+v", po)
	}
	if gotReq.Receipt != "cart-u1" {
		t.Errorf("receipt = %q", gotReq.Receipt)
	}
}

func TestCreateOrderErrors(t *testing.T) {
	t.Run("non-positive amount", func(t *testing.T) {
		c := NewClient("k", "s")
		if _, err := c.CreateOrder(context.Background(), 0, "USD", ""); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("gateway error surfaces description", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"currency is not supported"}}`))
		}))
		defer srv.Close()

		c := NewClient("k", "s")
		c.baseURL = srv.URL
		_, err := c.CreateOrder(context.Background(), 100, "XTS", "")
		if err == nil {
			t.Fatal("expected error")
		}
		if want := "currency is not supported"; !strings.Contains(err.Error(), want) {
			t.Errorf("err = %v, want it to mention %q", err, want)
		}
	})
}
