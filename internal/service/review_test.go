package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/recycleflux/adminbot/internal/api"
	"github.com/recycleflux/adminbot/internal/domain"
)

func TestDecideProofsPartialFailureStillRefetches(t *testing.T) {
	var decided []string
	var refetched bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/approve-proof"):
			var body struct {
				UserID string `json:"userId"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			decided = append(decided, body.UserID)
			if body.UserID == "u2" {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"message":"review failed"}`))
				return
			}
			w.Write([]byte(`{}`))
		case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/proofs"):
			refetched = true
			w.Write([]byte(`[{"taskId":"t1","taskTitle":"Share the launch","day":1,"proofs":[
				{"taskId":"t1","userId":"u1","username":"ann","status":"completed"},
				{"taskId":"t1","userId":"u2","username":"bo","status":"pending"}]}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	keys := []domain.ProofKey{{TaskID: "t1", UserID: "u1"}, {TaskID: "t1", UserID: "u2"}}
	out := DecideProofs(context.Background(), api.New(srv.URL), "tok", "c1", keys, true)

	if len(decided) != 2 {
		t.Fatalf("decision requests = %v, a failure must not abort the round", decided)
	}
	if out.Failed != 1 {
		t.Errorf("Failed = %d, want 1", out.Failed)
	}
	if len(out.Decided) != 1 || out.Decided[0].UserID != "u1" {
		t.Errorf("Decided = %+v, want only the landed pair", out.Decided)
	}
	if !refetched {
		t.Error("groups must be refetched even after a partial failure")
	}
	if out.FetchErr != nil {
		t.Fatalf("FetchErr = %v", out.FetchErr)
	}
	if len(out.Groups) != 1 || len(out.Groups[0].Proofs) != 2 {
		t.Errorf("Groups = %+v", out.Groups)
	}
}

func TestDecideProofsAllLandedKeepsOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	keys := []domain.ProofKey{{TaskID: "t1", UserID: "u1"}, {TaskID: "t2", UserID: "u2"}}
	out := DecideProofs(context.Background(), api.New(srv.URL), "tok", "c1", keys, false)

	if out.Failed != 0 {
		t.Errorf("Failed = %d", out.Failed)
	}
	if len(out.Decided) != 2 || out.Decided[0] != keys[0] || out.Decided[1] != keys[1] {
		t.Errorf("Decided = %+v, must follow request order", out.Decided)
	}
}
