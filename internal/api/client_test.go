package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/recycleflux/adminbot/internal/domain"
)

func TestListCampaignsAuthAndScope(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]domain.Campaign{{ID: "c1", Title: "Beach Cleanup"}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	campaigns, err := c.ListCampaigns(context.Background(), "tok123", true)
	if err != nil {
		t.Fatalf("ListCampaigns: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotQuery != "createdByMe=true" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(campaigns) != 1 || campaigns[0].ID != "c1" {
		t.Errorf("campaigns = %+v", campaigns)
	}
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.GetCampaign(context.Background(), "expired", "c1")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestSignupReferralConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Invalid referral",
			"details": "Code expired",
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Signup(context.Background(), SignupRequest{Username: "alice"})

	var conflict *domain.ReferralConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ReferralConflictError", err)
	}
	if conflict.Details != "Code expired" {
		t.Errorf("Details = %q", conflict.Details)
	}
}

func TestSignupOmitsEmptyReferral(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(SignupResponse{Token: "t", Passkey: "pk"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Signup(context.Background(), SignupRequest{
		Username: "alice", Email: "alice@x.com", FullName: "Alice A", Password: "Passw0rd!",
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if _, present := body["referralCode"]; present {
		t.Error("empty referralCode must not travel in the payload")
	}
}

func TestApproveProofBody(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/campaigns/c1/approve-proof" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL)
	if err := c.ApproveProof(context.Background(), "tok", "c1", "t1", "u1", false); err != nil {
		t.Fatalf("ApproveProof: %v", err)
	}
	if body["taskId"] != "t1" || body["userId"] != "u1" || body["approve"] != false {
		t.Errorf("body = %v", body)
	}
}

func TestGenericErrorFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>nginx</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	err := c.DeleteCampaign(context.Background(), "tok", "c1")

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *Error", err)
	}
	if apiErr.Message != "Something went wrong" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}
