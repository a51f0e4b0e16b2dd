package cardpayment

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/klogs-hub/klogs-pgw-go/client"
)

// CreatePaymentRequest describes a card payment. Empty strings, nil
// pointers, a nil AdditionalData map and an empty Products slice are left
// out of the request body. Exactly one of Token or Card is expected by the
// gateway; that is not checked here.
type CreatePaymentRequest struct {
	Amount          decimal.Decimal
	Installment     int
	Token           string
	ReferenceCode   string
	UseStoredCard   bool
	Card            *CreditCard
	Reward          *Reward
	Invoice         *Address
	Shipping        *Address
	Explanation     string
	Use3D           bool
	AdditionalData  map[string]string
	Currency        string
	Email           string
	Phone           string
	ReturnURL       string
	ChargeType      ChargeType
	PaymentSystemID string
	NationalNumber  string
	Products        []Product
}

type jsonpayment struct {
	Token           string             `json:"token,omitempty"`
	Amount          json.Number        `json:"amount"`
	Installment     int                `json:"installment"`
	ReferenceCode   string             `json:"referenceCode,omitempty"`
	UseStoredCard   bool               `json:"useStoredCard"`
	Card            *CreditCard        `json:"card,omitempty"`
	Reward          *Reward            `json:"reward,omitempty"`
	Invoice         *Address           `json:"invoice,omitempty"`
	Shipping        *Address           `json:"shipping,omitempty"`
	Explanation     string             `json:"explanation,omitempty"`
	Use3D           bool               `json:"use3d"`
	AdditionalData  *map[string]string `json:"additionalData,omitempty"`
	Currency        string             `json:"currency,omitempty"`
	Email           string             `json:"email,omitempty"`
	Phone           string             `json:"phone,omitempty"`
	ReturnURL       string             `json:"returnURL,omitempty"`
	ChargeType      *ChargeType        `json:"chargeType,omitempty"`
	PaymentSystemID string             `json:"paymentSystemId,omitempty"`
	NationalNumber  string             `json:"nationalNumber,omitempty"`
	Products        []Product          `json:"products,omitempty"`
}

func (r CreatePaymentRequest) MarshalJSON() ([]byte, error) {
	payment := jsonpayment{
		Token:           r.Token,
		Amount:          client.AmountNumber(r.Amount),
		Installment:     r.Installment,
		ReferenceCode:   r.ReferenceCode,
		UseStoredCard:   r.UseStoredCard,
		Card:            r.Card,
		Reward:          r.Reward,
		Invoice:         r.Invoice,
		Shipping:        r.Shipping,
		Explanation:     r.Explanation,
		Use3D:           r.Use3D,
		Currency:        r.Currency,
		Email:           r.Email,
		Phone:           r.Phone,
		ReturnURL:       r.ReturnURL,
		PaymentSystemID: r.PaymentSystemID,
		NationalNumber:  r.NationalNumber,
		Products:        r.Products,
	}
	if r.AdditionalData != nil {
		payment.AdditionalData = &r.AdditionalData
	}
	if r.ChargeType != ChargeTypeUnset {
		chargeType := r.ChargeType
		payment.ChargeType = &chargeType
	}
	return json.Marshal(payment)
}

type ProvisionCommitRequest struct {
	ReferenceCode string
	// Amount is optional; an unset amount commits the full provision.
	Amount decimal.NullDecimal
}

type jsonprovisioncommit struct {
	ReferenceCode string       `json:"referenceCode"`
	Amount        *json.Number `json:"amount,omitempty"`
}

func (r ProvisionCommitRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonprovisioncommit{
		ReferenceCode: r.ReferenceCode,
		Amount:        client.NullAmountNumber(r.Amount),
	})
}

// CommissionsRequest filters the installment options. Every field is
// optional.
type CommissionsRequest struct {
	Amount    decimal.NullDecimal
	BinNumber string
	Currency  string
}

// Query returns the query parameters for the fields that are set.
func (r *CommissionsRequest) Query() *client.QueryBuilder {
	qb := client.NewQueryBuilder()
	if r.Amount.Valid {
		qb.Add("amount", client.FormatAmount(r.Amount.Decimal))
	}
	qb.AddIfNotEmpty("binNumber", r.BinNumber)
	qb.AddIfNotEmpty("currency", r.Currency)
	return qb
}
