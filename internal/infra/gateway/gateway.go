package gateway

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InitiateResult 金流商建立交易後回傳的識別資訊
type InitiateResult struct {
	GatewayTransactionID string
	RedirectURL          string
}

// IPaymentGateway 對外金流介面
// 呼叫必須有界限逾時, 且呼叫期間不得持有任何鎖
type IPaymentGateway interface {
	InitiateTransaction(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal, method string) (*InitiateResult, error)
	VerifySignature(body []byte, signature string) bool
}

type httpGateway struct {
	baseURL string
	secret  string
	client  *http.Client
}

func NewHTTPGateway(baseURL, secret string, timeout time.Duration) IPaymentGateway {
	return &httpGateway{
		baseURL: baseURL,
		secret:  secret,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type initiateRequest struct {
	OrderID string `json:"order_id"`
	Amount  string `json:"amount"`
	Method  string `json:"method"`
}

type initiateResponse struct {
	TransactionID string `json:"transaction_id"`
	RedirectURL   string `json:"redirect_url"`
}

func (g *httpGateway) InitiateTransaction(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal, method string) (*InitiateResult, error) {
	body, err := json.Marshal(initiateRequest{
		OrderID: orderID.String(),
		Amount:  amount.StringFixed(2),
		Method:  method,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature", g.sign(body))

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var result initiateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", err)
	}

	return &InitiateResult{
		GatewayTransactionID: result.TransactionID,
		RedirectURL:          result.RedirectURL,
	}, nil
}

func (g *httpGateway) sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature 驗證webhook的HMAC-SHA256簽章
func (g *httpGateway) VerifySignature(body []byte, signature string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), expected)
}
