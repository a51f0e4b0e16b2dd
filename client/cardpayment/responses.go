package cardpayment

import (
	"encoding/json"

	"github.com/klogs-hub/klogs-pgw-go/client"
)

type CardPaymentResponse struct {
	client.Response
	// Behavior tells how the payment continues, e.g. "3d" for a redirect.
	Behavior string
	Link     string
}

type jsoncardpayment struct {
	Behavior string `json:"behavior"`
	Link     string `json:"link"`
}

func (r *CardPaymentResponse) UnmarshalJSON(data []byte) error {
	if err := r.Response.UnmarshalJSON(data); err != nil {
		return err
	}
	var jsoncardpayment jsoncardpayment
	if err := json.Unmarshal(data, &jsoncardpayment); err != nil {
		return err
	}
	r.Behavior = jsoncardpayment.Behavior
	r.Link = jsoncardpayment.Link
	return nil
}

type PaymentTokenResponse struct {
	client.Response
	Token string
}

type jsonpaymenttoken struct {
	Token string `json:"token"`
}

func (r *PaymentTokenResponse) UnmarshalJSON(data []byte) error {
	if err := r.Response.UnmarshalJSON(data); err != nil {
		return err
	}
	var jsonpaymenttoken jsonpaymenttoken
	if err := json.Unmarshal(data, &jsonpaymenttoken); err != nil {
		return err
	}
	r.Token = jsonpaymenttoken.Token
	return nil
}

type CommissionResponse struct {
	client.Response
	// Installments are passed through as decoded; their shape is owned by
	// the gateway.
	Installments []map[string]any
}

type jsoncommission struct {
	Installments []map[string]any `json:"installments"`
}

func (r *CommissionResponse) UnmarshalJSON(data []byte) error {
	if err := r.Response.UnmarshalJSON(data); err != nil {
		return err
	}
	var jsoncommission jsoncommission
	if err := json.Unmarshal(data, &jsoncommission); err != nil {
		return err
	}
	r.Installments = jsoncommission.Installments
	return nil
}
