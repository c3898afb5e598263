package sms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tennis_backend/internal/config"
	"tennis_backend/internal/logger"
)

// Provider - абстракция SMS-шлюза; сервисам неважно, кто доставляет код
type Provider interface {
	SendVerificationCode(phone, code string) error
}

// GatewayProvider отправляет SMS через HTTP-шлюз оператора
type GatewayProvider struct {
	gatewayURL string
	apiKey     string
	sender     string
	client     *http.Client
}

func NewGatewayProvider(cfg *config.Config) *GatewayProvider {
	return &GatewayProvider{
		gatewayURL: cfg.SMS.GatewayURL,
		apiKey:     cfg.SMS.APIKey,
		sender:     cfg.SMS.Sender,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type gatewayRequest struct {
	Sender  string `json:"sender"`
	To      string `json:"to"`
	Message string `json:"message"`
}

func (p *GatewayProvider) SendVerificationCode(phone, code string) error {
	payload, err := json.Marshal(gatewayRequest{
		Sender:  p.sender,
		To:      phone,
		Message: fmt.Sprintf("Your verification code: %s", code),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, p.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// LogProvider пишет код в лог вместо реальной отправки (dev-окружение,
// когда шлюз не сконфигурирован)
type LogProvider struct{}

func NewLogProvider() *LogProvider {
	return &LogProvider{}
}

func (p *LogProvider) SendVerificationCode(phone, code string) error {
	logger.Info("SMS verification code (dev mode)", "phone", phone, "code", code)
	return nil
}

// NewProvider выбирает реализацию по наличию настроенного шлюза
func NewProvider(cfg *config.Config) Provider {
	if cfg.SMS.GatewayURL == "" {
		return NewLogProvider()
	}
	return NewGatewayProvider(cfg)
}
