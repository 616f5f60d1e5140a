package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestRedemptionInvoker_Redeem(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind OutcomeKind
	}{
		{name: "Success", status: http.StatusOK, body: `{"code":1,"message":"ok","data":"success"}`, wantKind: OutcomeSuccess},
		{name: "Rejected", status: http.StatusOK, body: `{"code":80006,"message":"Maximum limit redemption times reached","data":null}`, wantKind: OutcomeRejected},
		{name: "Malformed", status: http.StatusOK, body: `<html>`, wantKind: OutcomeTransportFailure},
		{name: "ServerError", status: http.StatusInternalServerError, body: `oops`, wantKind: OutcomeTransportFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got redeemRequest
			var authz string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != DefaultRedeemPath {
					t.Errorf("path = %s, want %s", r.URL.Path, DefaultRedeemPath)
				}
				authz = r.Header.Get("Authorization")
				_ = json.NewDecoder(r.Body).Decode(&got)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			out := NewRedemptionInvoker(c, nil).Redeem(context.Background(), Credential{Token: "Bearer t"}, "1A2B3C4D")
			if out.Kind != tt.wantKind {
				t.Fatalf("Kind = %v, want %v (reason %q)", out.Kind, tt.wantKind, out.Reason())
			}
			if authz != "Bearer t" {
				t.Errorf("Authorization = %q, want %q", authz, "Bearer t")
			}
			want := redeemRequest{ProjectID: DefaultProjectID, RedemptionCode: "1A2B3C4D"}
			if got != want {
				t.Errorf("redeem body = %+v, want %+v", got, want)
			}
		})
	}
}

func TestRedemptionInvoker_StatusErrorIsWrapped(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	out := NewRedemptionInvoker(c, nil).Redeem(context.Background(), Credential{Token: "t"}, "X")
	var statusErr *StatusError
	if !errors.As(out.Err, &statusErr) {
		t.Fatalf("Err = %v, want *StatusError", out.Err)
	}
}

func TestCheckInInvoker_CheckIn(t *testing.T) {
	var got checkInRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != DefaultCheckInPath {
			t.Errorf("path = %s, want %s", r.URL.Path, DefaultCheckInPath)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"code":1,"message":"ok","data":"success"}`))
	})

	out := NewCheckInInvoker(c, nil).CheckIn(context.Background(), Credential{Token: "t"}, 42)
	if !out.Succeeded() {
		t.Fatalf("CheckIn() = %v, want success", out.Kind)
	}
	want := checkInRequest{SiteID: DefaultSiteID, ActivityID: 42, SignInType: SignInTypeDaily}
	if got != want {
		t.Errorf("check-in body = %+v, want %+v", got, want)
	}
}

func TestCheckInInvoker_CustomClassifier(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":80006,"message":"already signed","data":null}`))
	})

	out := NewCheckInInvoker(c, LenientClassifier(80006)).CheckIn(context.Background(), Credential{Token: "t"}, 7)
	if !out.Succeeded() {
		t.Errorf("CheckIn() = %v, want success with lenient classifier", out.Kind)
	}
}
