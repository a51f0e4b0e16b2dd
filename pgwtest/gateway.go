package pgwtest

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/klogs-hub/klogs-pgw-go/client/cardpayment"
	"github.com/klogs-hub/klogs-pgw-go/msync"
)

// DeclinedCardNumber is refused by the fake with a business failure.
const DeclinedCardNumber = "4000000000000002"

const defaultCurrency = "TRY"

type installmentPlan struct {
	count int
	rate  decimal.Decimal
}

var installmentPlans = []installmentPlan{
	{count: 1, rate: decimal.Zero},
	{count: 3, rate: decimal.RequireFromString("0.0299")},
	{count: 6, rate: decimal.RequireFromString("0.0549")},
	{count: 9, rate: decimal.RequireFromString("0.0799")},
}

type gateway struct {
	baseUrl    string
	tokens     *msync.MuMap[string, bool]
	provisions *msync.MuMap[string, decimal.Decimal]
}

func newGateway() *gateway {
	return &gateway{
		tokens:     msync.NewMuMap[string, bool](),
		provisions: msync.NewMuMap[string, decimal.Decimal](),
	}
}

func (g *gateway) AppendRoutes(r chi.Router) {
	r.Post(cardpayment.PayPath, g.pay)
	r.Get(cardpayment.TokenPath, g.token)
	r.Post(cardpayment.ProvisionCommitPath, g.provisionCommit)
	r.Get(cardpayment.InstallmentsPath, g.installments)
}

type payment struct {
	Amount        *decimal.Decimal `json:"amount"`
	Installment   *int             `json:"installment"`
	Token         string           `json:"token"`
	ReferenceCode string           `json:"referenceCode"`
	Card          *struct {
		CardNumber string `json:"cardNumber"`
	} `json:"card"`
	Use3D      bool   `json:"use3d"`
	ChargeType string `json:"chargeType"`
}

func (g *gateway) pay(w http.ResponseWriter, r *http.Request) {
	var p payment
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Amount == nil || p.Installment == nil {
		writeFailure(w, http.StatusBadRequest, "amount and installment are required")
		return
	}
	if !p.Amount.IsPositive() {
		writeFailure(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	switch {
	case p.Token != "":
		if _, ok := g.tokens.Get(p.Token); !ok {
			writeJSON(w, http.StatusOK, failure("unknown payment token"))
			return
		}
	case p.Card != nil:
		if p.Card.CardNumber == DeclinedCardNumber {
			writeJSON(w, http.StatusOK, failure("card declined"))
			return
		}
	default:
		writeJSON(w, http.StatusOK, failure("card or token is required"))
		return
	}

	if p.ChargeType == cardpayment.ChargeTypeProvision.String() {
		if p.ReferenceCode == "" {
			writeJSON(w, http.StatusOK, failure("referenceCode is required for provisions"))
			return
		}
		g.provisions.Set(p.ReferenceCode, *p.Amount)
	}

	if p.Use3D {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":  true,
			"behavior": "3d",
			"link":     g.baseUrl + "/3d/" + uuid.NewString(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "behavior": "direct"})
}

func (g *gateway) token(w http.ResponseWriter, r *http.Request) {
	token := uuid.NewString()
	g.tokens.Set(token, true)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

type provisionCommit struct {
	ReferenceCode string           `json:"referenceCode"`
	Amount        *decimal.Decimal `json:"amount"`
}

func (g *gateway) provisionCommit(w http.ResponseWriter, r *http.Request) {
	var c provisionCommit
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if c.ReferenceCode == "" {
		writeFailure(w, http.StatusBadRequest, "referenceCode is required")
		return
	}

	provisioned, ok := g.provisions.Take(c.ReferenceCode)
	if !ok {
		writeJSON(w, http.StatusOK, failure("provision not found"))
		return
	}
	if c.Amount != nil && c.Amount.GreaterThan(provisioned) {
		g.provisions.Set(c.ReferenceCode, provisioned)
		writeJSON(w, http.StatusOK, failure("amount exceeds provision"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (g *gateway) installments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var amount decimal.NullDecimal
	if raw := query.Get("amount"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "invalid amount")
			return
		}
		amount = decimal.NewNullDecimal(parsed)
	}
	if bin := query.Get("binNumber"); bin != "" && !validBin(bin) {
		writeJSON(w, http.StatusOK, failure("invalid bin number"))
		return
	}
	currency := query.Get("currency")
	if currency == "" {
		currency = defaultCurrency
	}

	installments := make([]map[string]any, 0, len(installmentPlans))
	for _, plan := range installmentPlans {
		entry := map[string]any{
			"installment":    plan.count,
			"commissionRate": plan.rate.InexactFloat64(),
			"currency":       currency,
		}
		if amount.Valid {
			total := amount.Decimal.Mul(decimal.NewFromInt(1).Add(plan.rate)).Round(2)
			entry["totalAmount"] = total.InexactFloat64()
		}
		installments = append(installments, entry)
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "installments": installments})
}

func validBin(bin string) bool {
	if len(bin) != 6 && len(bin) != 8 {
		return false
	}
	for _, c := range bin {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
