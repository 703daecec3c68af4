package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stayfront/entity"
	"stayfront/view"
)

func TestToggle_FlipsDirectionPerInvocation(t *testing.T) {
	payments := []entity.Payment{
		{ID: 1, Amount: 300},
		{ID: 2, Amount: 100},
		{ID: 3, Amount: 200},
	}

	sorter := view.ByAmount()

	first := sorter.Sort(payments)
	assert.Equal(t, []float64{100, 200, 300}, amounts(first))

	second := sorter.Sort(payments)
	assert.Equal(t, []float64{300, 200, 100}, amounts(second))

	third := sorter.Sort(payments)
	assert.Equal(t, []float64{100, 200, 300}, amounts(third))
}

func TestToggle_StableForEqualKeys(t *testing.T) {
	payments := []entity.Payment{
		{ID: 1, Amount: 100},
		{ID: 2, Amount: 100},
		{ID: 3, Amount: 50},
	}

	sorted := view.ByAmount().Sort(payments)

	// Equal amounts keep their original relative order.
	assert.Equal(t, []int64{3, 1, 2}, ids(sorted))
}

func TestToggle_DoesNotMutateInput(t *testing.T) {
	payments := []entity.Payment{
		{ID: 1, Amount: 300},
		{ID: 2, Amount: 100},
	}

	view.ByAmount().Sort(payments)

	assert.Equal(t, []int64{1, 2}, ids(payments))
}

func amounts(payments []entity.Payment) []float64 {
	out := make([]float64, 0, len(payments))
	for _, p := range payments {
		out = append(out, p.Amount)
	}
	return out
}

func ids(payments []entity.Payment) []int64 {
	out := make([]int64, 0, len(payments))
	for _, p := range payments {
		out = append(out, p.ID)
	}
	return out
}
