// Package cardpayment implements the card payment operations of the
// gateway: payments, payment tokens, provision commits and installment
// commissions.
package cardpayment

import (
	"context"

	"github.com/zeebo/errs"
	"go.uber.org/zap"

	"github.com/klogs-hub/klogs-pgw-go/client"
)

// Error is the class of errors raised by this package before any request
// is sent.
var Error = errs.Class("cardpayment")

// Transport is the part of the HTTP client the service needs.
type Transport interface {
	Get(ctx context.Context, path string, params map[string]string, out any) error
	Post(ctx context.Context, path string, body any, out any) error
}

type Service struct {
	httpClient Transport
	log        *zap.Logger
}

func NewService(httpClient Transport, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{httpClient: httpClient, log: log}
}

// Pay creates a card payment. A declined payment is reported through the
// response's Success flag, not as an error.
func (s *Service) Pay(ctx context.Context, request *CreatePaymentRequest) (*CardPaymentResponse, error) {
	if request == nil {
		return nil, Error.New("nil payment request")
	}
	var resp CardPaymentResponse
	if err := s.httpClient.Post(ctx, PayPath, request, &resp); err != nil {
		return nil, err
	}
	s.log.Debug("payment processed",
		zap.Bool("success", resp.Success),
		zap.String("behavior", resp.Behavior),
		zap.Int("installment", request.Installment),
	)
	return &resp, nil
}

func (s *Service) CreatePaymentToken(ctx context.Context) (*PaymentTokenResponse, error) {
	var resp PaymentTokenResponse
	if err := s.httpClient.Get(ctx, TokenPath, nil, &resp); err != nil {
		return nil, err
	}
	s.log.Debug("payment token created", zap.Bool("success", resp.Success))
	return &resp, nil
}

// ProvisionCommit captures a previously authorized provision.
func (s *Service) ProvisionCommit(ctx context.Context, request *ProvisionCommitRequest) (*client.Response, error) {
	if request == nil {
		return nil, Error.New("nil provision commit request")
	}
	var resp client.Response
	if err := s.httpClient.Post(ctx, ProvisionCommitPath, request, &resp); err != nil {
		return nil, err
	}
	s.log.Debug("provision committed",
		zap.Bool("success", resp.Success),
		zap.String("reference_code", request.ReferenceCode),
	)
	return &resp, nil
}

// CommissionsByBin lists installment commissions, optionally filtered by
// amount, card BIN and currency.
func (s *Service) CommissionsByBin(ctx context.Context, request *CommissionsRequest) (*CommissionResponse, error) {
	if request == nil {
		return nil, Error.New("nil commissions request")
	}
	var resp CommissionResponse
	if err := s.httpClient.Get(ctx, InstallmentsPath, request.Query().Params(), &resp); err != nil {
		return nil, err
	}
	s.log.Debug("commissions fetched",
		zap.Bool("success", resp.Success),
		zap.Int("installments", len(resp.Installments)),
	)
	return &resp, nil
}
