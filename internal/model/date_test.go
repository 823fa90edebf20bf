package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var o Order
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"userId":2,"date":"2024-03-09","totalPrice":340,"meals":[{"mealId":1,"quantity":2}]}`), &o))

	assert.Equal(t, Date{Year: 2024, Month: time.March, Day: 9}, o.Date)
	assert.True(t, decimal.NewFromInt(340).Equal(o.TotalPrice))
	assert.Equal(t, []LineItem{{MealID: 1, Quantity: 2}}, o.LineItems)

	out, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"userId":2,"date":"2024-03-09","totalPrice":340,"meals":[{"mealId":1,"quantity":2}]}`, string(out))
}

func TestDate_EmptyIsZero(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())

	require.Error(t, json.Unmarshal([]byte(`"09/03/2024"`), &d))
}

func TestDate_OrderingAndDisplay(t *testing.T) {
	a := Date{Year: 2024, Month: time.January, Day: 31}
	b := Date{Year: 2024, Month: time.February, Day: 1}

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
	assert.Equal(t, "31.01.2024", a.Display())
	assert.Equal(t, "2024-01-31", a.String())
}
