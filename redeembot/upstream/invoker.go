package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// decodeOutcome reads a store envelope and classifies it. Malformed bodies
// are transport failures.
func decodeOutcome(resp *http.Response, classify Classifier) Outcome {
	defer resp.Body.Close()

	var body Response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return TransportFailure(fmt.Errorf("failed to decode response: %w", err))
	}
	return classify(body)
}

type redeemRequest struct {
	ProjectID      int    `json:"project_id"`
	RedemptionCode string `json:"redemption_code"`
}

// RedemptionInvoker submits gift codes.
type RedemptionInvoker struct {
	client   *Client
	classify Classifier
}

// NewRedemptionInvoker creates an invoker. A nil classify uses DefaultClassifier.
func NewRedemptionInvoker(client *Client, classify Classifier) *RedemptionInvoker {
	if classify == nil {
		classify = DefaultClassifier
	}
	return &RedemptionInvoker{client: client, classify: classify}
}

func (r *RedemptionInvoker) Redeem(ctx context.Context, cred Credential, giftCode string) Outcome {
	resp, err := r.client.post(ctx, r.client.cfg.RedeemPath, redeemRequest{
		ProjectID:      r.client.cfg.ProjectID,
		RedemptionCode: giftCode,
	}, cred.Token)
	if err != nil {
		return TransportFailure(err)
	}
	return decodeOutcome(resp, r.classify)
}

// SignInTypeDaily is the sign_in_type the store expects for daily check-ins.
const SignInTypeDaily = 1

type checkInRequest struct {
	SiteID     int `json:"site_id"`
	ActivityID int `json:"activity_id"`
	SignInType int `json:"sign_in_type"`
}

// CheckInInvoker signs an account in to a recurring activity. It is kept
// apart from RedemptionInvoker since the two request shapes evolve
// independently.
type CheckInInvoker struct {
	client   *Client
	classify Classifier
}

// NewCheckInInvoker creates an invoker. A nil classify uses DefaultClassifier.
func NewCheckInInvoker(client *Client, classify Classifier) *CheckInInvoker {
	if classify == nil {
		classify = DefaultClassifier
	}
	return &CheckInInvoker{client: client, classify: classify}
}

func (c *CheckInInvoker) CheckIn(ctx context.Context, cred Credential, activityID int) Outcome {
	resp, err := c.client.post(ctx, c.client.cfg.CheckInPath, checkInRequest{
		SiteID:     c.client.cfg.SiteID,
		ActivityID: activityID,
		SignInType: SignInTypeDaily,
	}, cred.Token)
	if err != nil {
		return TransportFailure(err)
	}
	return decodeOutcome(resp, c.classify)
}
