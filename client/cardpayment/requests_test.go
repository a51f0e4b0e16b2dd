package cardpayment_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/klogs-hub/klogs-pgw-go/client/cardpayment"
)

func marshalMap(t *testing.T, v any) map[string]any {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestPaymentWithCardOmitsUnsetFields(t *testing.T) {
	request := &cardpayment.CreatePaymentRequest{
		Amount:      decimal.NewFromInt(15),
		Installment: 1,
		Use3D:       true,
		Card: &cardpayment.CreditCard{
			CardHolderName: "Jane Doe",
			CardNumber:     "5526080000000006",
			CVV:            "123",
			ExpireMonth:    12,
			ExpireYear:     2030,
		},
	}

	data, err := json.Marshal(request)
	require.NoError(t, err)
	require.Contains(t, string(data), `"amount":15.0`)

	body := marshalMap(t, request)
	for _, key := range []string{"token", "reward", "invoice", "shipping", "additionalData", "paymentSystemId", "nationalNumber", "products", "chargeType", "referenceCode", "returnURL"} {
		require.NotContains(t, body, key)
	}
	require.Equal(t, true, body["use3d"])
	require.Equal(t, false, body["useStoredCard"])
	require.Equal(t, 1.0, body["installment"])
	require.Equal(t, map[string]any{
		"cardHolderName": "Jane Doe",
		"cardNumber":     "5526080000000006",
		"cvv":            "123",
		"expireMonth":    12.0,
		"expireYear":     2030.0,
	}, body["card"])
}

func TestPaymentFullWireNames(t *testing.T) {
	request := cardpayment.CreatePaymentRequest{
		Amount:          decimal.RequireFromString("99.90"),
		Installment:     3,
		Token:           "tok-1",
		ReferenceCode:   "ORD-42",
		UseStoredCard:   true,
		Reward:          &cardpayment.Reward{Amount: decimal.NewFromInt(5), UseReward: true},
		Invoice:         &cardpayment.Address{Name: "Jane", CountryCode: "TR", PostalCode: "34000"},
		Shipping:        &cardpayment.Address{City: "Istanbul", Street1: "Main St"},
		Explanation:     "order 42",
		AdditionalData:  map[string]string{"channel": "web"},
		Currency:        "TRY",
		Email:           "jane@example.com",
		Phone:           "+905551112233",
		ReturnURL:       "https://shop.example/return",
		ChargeType:      cardpayment.ChargeTypeDirectSale,
		PaymentSystemID: "ps-1",
		NationalNumber:  "12345678901",
		Products: []cardpayment.Product{
			{ID: "sku-1", Category: "books", Quantity: decimal.NewFromInt(2), Price: decimal.RequireFromString("49.95")},
		},
	}

	data, err := json.Marshal(request)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"token": "tok-1",
		"amount": 99.9,
		"installment": 3,
		"referenceCode": "ORD-42",
		"useStoredCard": true,
		"reward": {"amount": 5.0, "useReward": true},
		"invoice": {"name": "Jane", "countryCode": "TR", "postalCode": "34000"},
		"shipping": {"city": "Istanbul", "street1": "Main St"},
		"explanation": "order 42",
		"use3d": false,
		"additionalData": {"channel": "web"},
		"currency": "TRY",
		"email": "jane@example.com",
		"phone": "+905551112233",
		"returnURL": "https://shop.example/return",
		"chargeType": "directSale",
		"paymentSystemId": "ps-1",
		"nationalNumber": "12345678901",
		"products": [{"id": "sku-1", "category": "books", "quantity": 2.0, "price": 49.95}]
	}`, string(data))
	require.Contains(t, string(data), `"amount":99.9`)
	require.Contains(t, string(data), `"quantity":2.0`)
}

func TestPaymentAdditionalDataAndProducts(t *testing.T) {
	body := marshalMap(t, cardpayment.CreatePaymentRequest{
		Amount:         decimal.NewFromInt(1),
		AdditionalData: map[string]string{},
		Products:       []cardpayment.Product{},
	})
	require.Equal(t, map[string]any{}, body["additionalData"])
	require.NotContains(t, body, "products")
}

func TestPaymentUnknownChargeType(t *testing.T) {
	_, err := json.Marshal(cardpayment.CreatePaymentRequest{ChargeType: cardpayment.ChargeType(9)})
	require.Error(t, err)
}

func TestChargeType(t *testing.T) {
	require.Equal(t, "provision", cardpayment.ChargeTypeProvision.String())
	require.Equal(t, "", cardpayment.ChargeTypeUnset.String())
	require.Equal(t, "ChargeType(9)", cardpayment.ChargeType(9).String())

	parsed, err := cardpayment.ParseChargeType("directSale")
	require.NoError(t, err)
	require.Equal(t, cardpayment.ChargeTypeDirectSale, parsed)

	_, err = cardpayment.ParseChargeType("DIRECT_SALE")
	require.True(t, cardpayment.Error.Has(err))

	var c cardpayment.ChargeType
	require.NoError(t, json.Unmarshal([]byte(`"provision"`), &c))
	require.Equal(t, cardpayment.ChargeTypeProvision, c)
}

func TestEmptyNestedFieldsOmitted(t *testing.T) {
	body := marshalMap(t, cardpayment.CreatePaymentRequest{
		Amount:  decimal.NewFromInt(1),
		Card:    &cardpayment.CreditCard{CardHolderName: "", CardNumber: "5526080000000006"},
		Invoice: &cardpayment.Address{Name: "Jane", Fax: ""},
	})
	require.Equal(t, map[string]any{
		"cardNumber":  "5526080000000006",
		"expireMonth": 0.0,
		"expireYear":  0.0,
	}, body["card"])
	require.Equal(t, map[string]any{"name": "Jane"}, body["invoice"])
}

func TestProvisionCommitRequest(t *testing.T) {
	data, err := json.Marshal(cardpayment.ProvisionCommitRequest{ReferenceCode: "ORD-1"})
	require.NoError(t, err)
	require.JSONEq(t, `{"referenceCode": "ORD-1"}`, string(data))

	data, err = json.Marshal(cardpayment.ProvisionCommitRequest{
		ReferenceCode: "ORD-1",
		Amount:        decimal.NewNullDecimal(decimal.Zero),
	})
	require.NoError(t, err)
	require.Equal(t, `{"referenceCode":"ORD-1","amount":0.0}`, string(data))

	data, err = json.Marshal(cardpayment.ProvisionCommitRequest{})
	require.NoError(t, err)
	require.Equal(t, `{"referenceCode":""}`, string(data))
}

func TestCommissionsQuery(t *testing.T) {
	cases := []struct {
		name     string
		request  cardpayment.CommissionsRequest
		expected string
	}{
		{"empty", cardpayment.CommissionsRequest{}, ""},
		{"amount and bin", cardpayment.CommissionsRequest{Amount: decimal.NewNullDecimal(decimal.NewFromInt(100)), BinNumber: "552608"}, "amount=100.0&binNumber=552608"},
		{"currency only", cardpayment.CommissionsRequest{Currency: "USD"}, "currency=USD"},
		{"zero amount", cardpayment.CommissionsRequest{Amount: decimal.NewNullDecimal(decimal.Zero)}, "amount=0.0"},
		{"fractional amount", cardpayment.CommissionsRequest{Amount: decimal.NewNullDecimal(decimal.RequireFromString("12.50")), Currency: "EUR"}, "amount=12.5&currency=EUR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, tc.request.Query().String())
		})
	}
}
