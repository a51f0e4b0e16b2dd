package cardpayment

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/klogs-hub/klogs-pgw-go/client"
)

type ChargeType int

const (
	ChargeTypeUnset ChargeType = iota
	ChargeTypeDirectSale
	ChargeTypeProvision
)

var chargeTypeNames = map[ChargeType]string{
	ChargeTypeDirectSale: "directSale",
	ChargeTypeProvision:  "provision",
}

func ParseChargeType(s string) (ChargeType, error) {
	for chargeType, name := range chargeTypeNames {
		if name == s {
			return chargeType, nil
		}
	}
	return ChargeTypeUnset, Error.New("unknown charge type %q", s)
}

func (c ChargeType) String() string {
	if name, ok := chargeTypeNames[c]; ok {
		return name
	}
	if c == ChargeTypeUnset {
		return ""
	}
	return fmt.Sprintf("ChargeType(%d)", int(c))
}

func (c ChargeType) MarshalText() ([]byte, error) {
	name, ok := chargeTypeNames[c]
	if !ok {
		return nil, Error.New("unknown charge type %d", int(c))
	}
	return []byte(name), nil
}

func (c *ChargeType) UnmarshalText(text []byte) error {
	parsed, err := ParseChargeType(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CreditCard is raw card data. Nothing here is validated locally. Empty
// strings are omitted from the request, so an empty field cannot be sent.
type CreditCard struct {
	CardHolderName string `json:"cardHolderName,omitempty"`
	CardNumber     string `json:"cardNumber,omitempty"`
	CVV            string `json:"cvv,omitempty"`
	ExpireMonth    int    `json:"expireMonth"`
	ExpireYear     int    `json:"expireYear"`
}

type Reward struct {
	Amount    decimal.Decimal
	UseReward bool
}

type jsonreward struct {
	Amount    json.Number `json:"amount"`
	UseReward bool        `json:"useReward"`
}

func (r Reward) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonreward{
		Amount:    client.AmountNumber(r.Amount),
		UseReward: r.UseReward,
	})
}

// Address is used for both invoice and shipping details. Empty fields are
// omitted from the request.
type Address struct {
	Name        string `json:"name,omitempty"`
	Surname     string `json:"surname,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	City        string `json:"city,omitempty"`
	District    string `json:"district,omitempty"`
	Street1     string `json:"street1,omitempty"`
	Street2     string `json:"street2,omitempty"`
	Number      string `json:"number,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	Company     string `json:"company,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Fax         string `json:"fax,omitempty"`
}

type Product struct {
	ID          string
	Category    string
	Quantity    decimal.Decimal
	Code        string
	Description string
	Price       decimal.Decimal
}

type jsonproduct struct {
	ID          string      `json:"id,omitempty"`
	Category    string      `json:"category,omitempty"`
	Quantity    json.Number `json:"quantity"`
	Code        string      `json:"code,omitempty"`
	Description string      `json:"description,omitempty"`
	Price       json.Number `json:"price"`
}

func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonproduct{
		ID:          p.ID,
		Category:    p.Category,
		Quantity:    client.AmountNumber(p.Quantity),
		Code:        p.Code,
		Description: p.Description,
		Price:       client.AmountNumber(p.Price),
	})
}
