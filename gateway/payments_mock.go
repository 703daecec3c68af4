package gateway

import (
	"context"
	"sort"
	"sync"

	"stayfront/entity"
)

type PaymentsMock struct {
	mock sync.Mutex

	Payments map[int64]entity.Payment
	NextID   int64
	FailWith error

	ListCalls int
	GetCalls  int
}

func (m *PaymentsMock) List(ctx context.Context) ([]entity.Payment, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.ListCalls++
	return m.sorted(), nil
}

func (m *PaymentsMock) ListByUser(ctx context.Context, userID int64) ([]entity.Payment, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}

	var payments []entity.Payment
	for _, payment := range m.sorted() {
		if payment.UserID == userID {
			payments = append(payments, payment)
		}
	}
	return payments, nil
}

func (m *PaymentsMock) Get(ctx context.Context, id int64) (entity.Payment, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return entity.Payment{}, m.FailWith
	}
	m.GetCalls++

	payment, ok := m.Payments[id]
	if !ok {
		return entity.Payment{}, entity.ErrNotFound
	}
	return payment, nil
}

func (m *PaymentsMock) Create(ctx context.Context, payment entity.NewPayment) (entity.Payment, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return entity.Payment{}, m.FailWith
	}
	if m.Payments == nil {
		m.Payments = make(map[int64]entity.Payment)
	}

	m.NextID++
	created := entity.Payment{
		ID:        m.NextID,
		BookingID: payment.BookingID,
		UserID:    payment.UserID,
		Amount:    payment.Amount,
		Status:    entity.PaymentPending,
		Method:    payment.Method,
	}
	m.Payments[created.ID] = created
	return created, nil
}

func (m *PaymentsMock) Update(ctx context.Context, id int64, update entity.PaymentUpdate) (entity.Payment, error) {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return entity.Payment{}, m.FailWith
	}

	payment, ok := m.Payments[id]
	if !ok {
		return entity.Payment{}, entity.ErrNotFound
	}
	if update.Status != nil {
		payment.Status = *update.Status
	}
	if update.Method != nil {
		payment.Method = *update.Method
	}
	if update.TransactionID != nil {
		payment.TransactionID = *update.TransactionID
	}
	m.Payments[id] = payment
	return payment, nil
}

func (m *PaymentsMock) Delete(ctx context.Context, id int64) error {
	m.mock.Lock()
	defer m.mock.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	if _, ok := m.Payments[id]; !ok {
		return entity.ErrNotFound
	}
	delete(m.Payments, id)
	return nil
}

func (m *PaymentsMock) sorted() []entity.Payment {
	payments := make([]entity.Payment, 0, len(m.Payments))
	for _, payment := range m.Payments {
		payments = append(payments, payment)
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments
}
