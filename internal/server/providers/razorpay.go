package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// RazorpayVerifier checks a payment id against the Razorpay payments API.
// Only payments in the "captured" state count as completed.
type RazorpayVerifier struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
}

func NewRazorpayVerifier(baseURL, keyID, keySecret string) *RazorpayVerifier {
	return &RazorpayVerifier{
		baseURL:   baseURL,
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type razorpayPayment struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (v *RazorpayVerifier) Verify(ctx context.Context, paymentID string) error {
	endpoint := fmt.Sprintf("%s/v1/payments/%s", v.baseURL, url.PathEscape(paymentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building provider request: %w", err)
	}
	req.SetBasicAuth(v.keyID, v.keySecret)

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to status check below
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// Unknown or malformed payment id.
		return ErrPaymentNotCaptured
	default:
		return fmt.Errorf("provider responded with status %d", resp.StatusCode)
	}

	var payment razorpayPayment
	if err := json.NewDecoder(resp.Body).Decode(&payment); err != nil {
		return fmt.Errorf("decoding provider response: %w", err)
	}

	if payment.Status != "captured" {
		return ErrPaymentNotCaptured
	}
	return nil
}
