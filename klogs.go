// Package klogs is a client for the Klogs payment gateway API.
//
// A Client signs every request with the account's API key and secret key
// and exposes the gateway operations through services:
//
//	client, err := klogs.NewClient(klogs.Config{
//		APIKey:    "api-key",
//		SecretKey: "secret-key",
//	})
//	if err != nil {
//		return err
//	}
//	resp, err := client.CardPayment().CreatePaymentToken(ctx)
//
// Errors come in two tiers. A response the gateway accepted but refused on
// business grounds has Success set to false and is returned without an
// error. Transport failures, non-2xx statuses and unparsable bodies are
// returned as errors of the classes ErrTransport, ErrAPI and
// ErrMalformedResponse.
package klogs

import (
	"go.uber.org/zap"

	"github.com/klogs-hub/klogs-pgw-go/client/cardpayment"
	httpclient "github.com/klogs-hub/klogs-pgw-go/http_client"
)

const (
	Version        = "1.0.0"
	DefaultBaseURL = "https://pgw.klogs.io"
)

// The error classes are shared with httpclient, so Has matches errors
// raised there.
var (
	ErrAPI               = &httpclient.ErrAPI
	ErrMalformedResponse = &httpclient.ErrMalformedResponse
	ErrTransport         = &httpclient.ErrTransport
	ErrRequest           = &httpclient.ErrRequest
)

type (
	APIError               = httpclient.APIError
	MalformedResponseError = httpclient.MalformedResponseError
)

// Client is safe for concurrent use. Clients are independent of each other.
type Client struct {
	config      Config
	cardPayment *cardpayment.Service
}

func NewClient(config Config) (*Client, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	log := config.Logger.Named("klogs")
	httpClient := httpclient.NewHttpClient(httpclient.Config{
		BaseURL:           config.BaseURL,
		APIKey:            config.APIKey,
		SecretKey:         config.SecretKey,
		AdditionalHeaders: config.AdditionalHeaders,
		Timeout:           config.Timeout,
		Transport:         config.Transport,
		Logger:            log.Named("http"),
		TracerProvider:    config.TracerProvider,
		MeterProvider:     config.MeterProvider,
	})

	log.Debug("client created", zap.String("base_url", config.BaseURL), zap.String("version", Version))
	return &Client{
		config:      config,
		cardPayment: cardpayment.NewService(httpClient, log.Named("cardpayment")),
	}, nil
}

func (c *Client) CardPayment() *cardpayment.Service {
	return c.cardPayment
}

// Config returns a copy of the configuration the client was built with,
// defaults included.
func (c *Client) Config() Config {
	return c.config.withDefaults()
}
