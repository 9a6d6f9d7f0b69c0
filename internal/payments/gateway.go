package payments

import (
	"context"
	"log"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

// Gateway charges card and e-payment methods through Mercado Pago.
// Nil when no access token is configured; cash never touches it.
type Gateway struct {
	payments payment.Client
}

func NewGateway(accessToken string) *Gateway {
	if accessToken == "" {
		return nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		log.Printf("payment gateway disabled: %v", err)
		return nil
	}

	return &Gateway{payments: payment.NewClient(cfg)}
}

// Charge returns the gateway payment reference.
func (g *Gateway) Charge(
	ctx context.Context,
	amountPHP float64,
	description string,
	payerEmail string,
) (string, error) {

	res, err := g.payments.Create(ctx, payment.Request{
		TransactionAmount: amountPHP,
		Description:       description,
		Payer: &payment.PayerRequest{
			Email: payerEmail,
		},
	})
	if err != nil {
		return "", err
	}

	return strconv.Itoa(res.ID), nil
}
