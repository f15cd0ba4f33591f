package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPreviewFetchOpenGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
			<title>Fallback Title</title>
			<meta property="og:title" content="Ocean Cleanup Guide">
			<meta property="og:image" content="https://cdn.example.com/guide.jpg">
			<meta name="description" content="How to run a cleanup">
		</head><body></body></html>`))
	}))
	defer srv.Close()

	p, err := NewPreviewService().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if p.Title != "Ocean Cleanup Guide" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.ImageURL != "https://cdn.example.com/guide.jpg" {
		t.Errorf("ImageURL = %q", p.ImageURL)
	}
	if p.Description != "How to run a cleanup" {
		t.Errorf("Description = %q", p.Description)
	}
}

func TestPreviewFetchTitleFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Plain Page</title></head><body></body></html>`))
	}))
	defer srv.Close()

	p, err := NewPreviewService().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if p.Title != "Plain Page" {
		t.Errorf("Title = %q", p.Title)
	}
}

func TestPreviewFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewPreviewService().Fetch(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 404")
	}
}
