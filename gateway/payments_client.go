package gateway

import (
	"context"
	"fmt"
	"net/http"

	"stayfront/entity"
)

type PaymentsClient struct {
	client *Client
}

func NewPaymentsClient(client *Client) PaymentsClient {
	return PaymentsClient{client: client}
}

// List returns all payments as a bare array.
func (c PaymentsClient) List(ctx context.Context) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := c.client.do(ctx, http.MethodGet, "/payments", "/payments", nil, nil, &payments)
	if err != nil {
		return nil, fmt.Errorf("could not list payments: %w", err)
	}
	return payments, nil
}

func (c PaymentsClient) ListByUser(ctx context.Context, userID int64) ([]entity.Payment, error) {
	var payments []entity.Payment
	path := fmt.Sprintf("/payment/user/%d", userID)
	err := c.client.do(ctx, http.MethodGet, "/payment/user/{userId}", path, nil, nil, &payments)
	if err != nil {
		return nil, fmt.Errorf("could not list payments for user %d: %w", userID, err)
	}
	return payments, nil
}

func (c PaymentsClient) Get(ctx context.Context, id int64) (entity.Payment, error) {
	var payment entity.Payment
	path := fmt.Sprintf("/payment/%d", id)
	err := c.client.do(ctx, http.MethodGet, "/payment/{id}", path, nil, nil, &payment)
	if err != nil {
		return entity.Payment{}, fmt.Errorf("could not get payment %d: %w", id, err)
	}
	return payment, nil
}

func (c PaymentsClient) Create(ctx context.Context, payment entity.NewPayment) (entity.Payment, error) {
	var created entity.Payment
	err := c.client.do(ctx, http.MethodPost, "/payment", "/payment", nil, payment, &created)
	if err != nil {
		return entity.Payment{}, fmt.Errorf("could not create payment: %w", err)
	}
	return created, nil
}

func (c PaymentsClient) Update(ctx context.Context, id int64, update entity.PaymentUpdate) (entity.Payment, error) {
	var updated entity.Payment
	path := fmt.Sprintf("/payment/%d", id)
	err := c.client.do(ctx, http.MethodPut, "/payment/{id}", path, nil, update, &updated)
	if err != nil {
		return entity.Payment{}, fmt.Errorf("could not update payment %d: %w", id, err)
	}
	return updated, nil
}

func (c PaymentsClient) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/payment/%d", id)
	err := c.client.do(ctx, http.MethodDelete, "/payment/{id}", path, nil, nil, nil)
	if err != nil {
		return fmt.Errorf("could not delete payment %d: %w", id, err)
	}
	return nil
}
