package query

import (
	"context"

	"stayfront/cache"
	"stayfront/entity"
)

type PaymentsAPI interface {
	List(ctx context.Context) ([]entity.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.Payment, error)
	Get(ctx context.Context, id int64) (entity.Payment, error)
	Create(ctx context.Context, payment entity.NewPayment) (entity.Payment, error)
	Update(ctx context.Context, id int64, update entity.PaymentUpdate) (entity.Payment, error)
	Delete(ctx context.Context, id int64) error
}

type Payments struct {
	api PaymentsAPI
}

func NewPayments(api PaymentsAPI) Payments {
	return Payments{api: api}
}

func (p Payments) List() Query[[]entity.Payment] {
	return Query[[]entity.Payment]{
		Key: Key("payments.list", nil),
		Fetch: func(ctx context.Context) ([]entity.Payment, []cache.Tag, error) {
			payments, err := p.api.List(ctx)
			if err != nil {
				return nil, nil, err
			}
			tags := []cache.Tag{cache.ListTag(cache.TypePayment)}
			for _, payment := range payments {
				tags = append(tags, cache.ItemTag(cache.TypePayment, payment.ID))
			}
			return payments, tags, nil
		},
	}
}

func (p Payments) ListByUser(userID int64) Query[[]entity.Payment] {
	type keyParams struct {
		UserID int64
	}
	return Query[[]entity.Payment]{
		Key: Key("payments.listByUser", keyParams{UserID: userID}),
		Fetch: func(ctx context.Context) ([]entity.Payment, []cache.Tag, error) {
			payments, err := p.api.ListByUser(ctx, userID)
			if err != nil {
				return nil, nil, err
			}
			tags := []cache.Tag{cache.UserTag(cache.TypePayment, userID)}
			for _, payment := range payments {
				tags = append(tags, cache.ItemTag(cache.TypePayment, payment.ID))
			}
			return payments, tags, nil
		},
	}
}

func (p Payments) Get(id int64) Query[entity.Payment] {
	type keyParams struct {
		ID int64
	}
	return Query[entity.Payment]{
		Key: Key("payments.get", keyParams{ID: id}),
		Fetch: func(ctx context.Context) (entity.Payment, []cache.Tag, error) {
			payment, err := p.api.Get(ctx, id)
			if err != nil {
				return entity.Payment{}, nil, err
			}
			return payment, []cache.Tag{cache.ItemTag(cache.TypePayment, id)}, nil
		},
	}
}

func (p Payments) Create(payment entity.NewPayment) Mutation[entity.Payment] {
	return Mutation[entity.Payment]{
		Name: "payments.create",
		Invalidates: []cache.Tag{
			cache.ListTag(cache.TypePayment),
			cache.UserTag(cache.TypePayment, payment.UserID),
		},
		Exec: func(ctx context.Context) (entity.Payment, error) {
			return p.api.Create(ctx, payment)
		},
	}
}

func (p Payments) Update(id, userID int64, update entity.PaymentUpdate) Mutation[entity.Payment] {
	return Mutation[entity.Payment]{
		Name:        "payments.update",
		Invalidates: paymentItemTags(id, userID),
		Exec: func(ctx context.Context) (entity.Payment, error) {
			return p.api.Update(ctx, id, update)
		},
	}
}

func (p Payments) Delete(id, userID int64) Mutation[struct{}] {
	return Mutation[struct{}]{
		Name:        "payments.delete",
		Invalidates: paymentItemTags(id, userID),
		Exec: func(ctx context.Context) (struct{}, error) {
			return struct{}{}, p.api.Delete(ctx, id)
		},
	}
}

func paymentItemTags(id, userID int64) []cache.Tag {
	tags := []cache.Tag{
		cache.ItemTag(cache.TypePayment, id),
		cache.ListTag(cache.TypePayment),
	}
	if userID > 0 {
		tags = append(tags, cache.UserTag(cache.TypePayment, userID))
	}
	return tags
}
