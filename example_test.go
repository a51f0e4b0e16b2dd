package klogs_test

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/klogs-hub/klogs-pgw-go"
	"github.com/klogs-hub/klogs-pgw-go/client/cardpayment"
)

func ExampleNewClient() {
	client, err := klogs.NewClient(klogs.Config{
		APIKey:    "your-api-key",
		SecretKey: "your-secret-key",
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(client.Config().BaseURL)
	// Output: https://pgw.klogs.io
}

func ExampleClient_CardPayment() {
	client, err := klogs.NewClient(klogs.Config{
		APIKey:    "your-api-key",
		SecretKey: "your-secret-key",
	})
	if err != nil {
		log.Fatal(err)
	}

	resp, err := client.CardPayment().Pay(context.Background(), &cardpayment.CreatePaymentRequest{
		Amount:      decimal.RequireFromString("15.00"),
		Installment: 1,
		Use3D:       true,
		Card: &cardpayment.CreditCard{
			CardHolderName: "Jane Doe",
			CardNumber:     "5526080000000006",
			CVV:            "123",
			ExpireMonth:    12,
			ExpireYear:     2030,
		},
	})
	var apiErr *klogs.APIError
	switch {
	case errors.As(err, &apiErr):
		log.Printf("gateway rejected the request with status %d: %s", apiErr.StatusCode, apiErr.Summary)
	case err != nil:
		log.Printf("payment failed: %v", err)
	case !resp.Success:
		log.Printf("payment declined: %v", resp.Err())
	case resp.Behavior == "3d":
		log.Printf("redirect the customer to %s", resp.Link)
	}
}
