package chapa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/stock-orders-api/internal/application/payments"
	"github.com/jhoicas/stock-orders-api/internal/domain/entity"
)

var _ payments.Gateway = (*Gateway)(nil)

// Gateway adaptador de la API REST de Chapa (initialize / verify).
type Gateway struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewGateway construye el adaptador. baseURL suele ser https://api.chapa.co/v1.
func NewGateway(baseURL, secretKey string) *Gateway {
	return &Gateway{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// ── Protocolo ────────────────────────────────────────────────────────────────

type initializeRequest struct {
	Amount        string        `json:"amount"`
	Currency      string        `json:"currency"`
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	TxRef         string        `json:"tx_ref"`
	CallbackURL   string        `json:"callback_url"`
	ReturnURL     string        `json:"return_url,omitempty"`
	Customization customization `json:"customization"`
}

type customization struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type chapaResponse struct {
	Message json.RawMessage `json:"message"`
	Status  string          `json:"status"`
	Data    struct {
		CheckoutURL string `json:"checkout_url"`
		Status      string `json:"status"`
	} `json:"data"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Initialize abre el checkout y devuelve la URL de pago.
func (g *Gateway) Initialize(ctx context.Context, req payments.CheckoutRequest) (string, error) {
	payload := initializeRequest{
		Amount:      req.Amount.StringFixed(2),
		Currency:    string(req.Currency),
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		TxRef:       req.TxRef,
		CallbackURL: req.CallbackURL,
		ReturnURL:   req.ReturnURL,
		Customization: customization{
			Title:       "Pedido",
			Description: "Pago de pedidos",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("chapa: serializar request: %w", err)
	}
	resp, err := g.do(ctx, http.MethodPost, "/transaction/initialize", body)
	if err != nil {
		return "", err
	}
	if resp.Data.CheckoutURL == "" {
		return "", fmt.Errorf("chapa: respuesta sin checkout_url")
	}
	return resp.Data.CheckoutURL, nil
}

// Verify consulta el estado de la transacción. Estados desconocidos se reportan como pending.
func (g *Gateway) Verify(ctx context.Context, txRef string) (string, error) {
	resp, err := g.do(ctx, http.MethodGet, "/transaction/verify/"+txRef, nil)
	if err != nil {
		return "", err
	}
	switch strings.ToLower(resp.Data.Status) {
	case entity.PaymentStatusSuccess:
		return entity.PaymentStatusSuccess, nil
	case entity.PaymentStatusFailed:
		return entity.PaymentStatusFailed, nil
	}
	return entity.PaymentStatusPending, nil
}

func (g *Gateway) do(ctx context.Context, method, path string, body []byte) (*chapaResponse, error) {
	if g.secretKey == "" {
		return nil, fmt.Errorf("chapa: CHAPA_SECRET_KEY no configurado")
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("chapa: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("chapa: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("chapa: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("chapa: leer respuesta: %w", err)
	}
	var out chapaResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("chapa: HTTP %d, respuesta no JSON: %s", resp.StatusCode, string(raw))
	}
	if resp.StatusCode != http.StatusOK || out.Status != "success" {
		return nil, fmt.Errorf("chapa: HTTP %d: %s", resp.StatusCode, string(out.Message))
	}
	return &out, nil
}
