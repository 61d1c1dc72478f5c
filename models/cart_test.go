package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func product(title, price string) Product {
	return Product{
		ID:       primitive.NewObjectID(),
		Title:    title,
		Category: "Living Room Furniture",
		Price:    decimal.RequireFromString(price),
	}
}

func onSale(p Product, sale string) Product {
	p.SalePrice = decimal.NewNullDecimal(decimal.RequireFromString(sale))
	return p
}

func TestCartAddMergesSameProduct(t *testing.T) {
	chair := product("Chair", "10.00")
	sofa := product("Sofa", "20.00")

	var cart Cart
	cart.Add(chair)
	cart.Add(sofa)
	cart.Add(chair)

	require.Len(t, cart.Lines, 2)
	assert.Equal(t, chair.ID, cart.Lines[0].Product.ID)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, 1, cart.Lines[1].Quantity)
	assert.Equal(t, 3, cart.ItemCount())
}

func TestCartUpdateQuantity(t *testing.T) {
	chair := product("Chair", "10.00")
	cases := map[string]int{
		"5":                    5,
		" 7":                   7,
		"3 items":              3,
		"0":                    1,
		"-4":                   1,
		"abc":                  1,
		"":                     1,
		"9999":                 MaxQuantity,
		"12345678":             MaxQuantity,
		"99999999999999999999": MaxQuantity,
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			var cart Cart
			cart.Add(chair)
			cart.UpdateQuantity(chair.ID.Hex(), raw)
			assert.Equal(t, want, cart.Lines[0].Quantity)
		})
	}
}

func TestParseQuantityKeepsEveryDigit(t *testing.T) {
	assert.Equal(t, 1234, ParseQuantity("1234"))
	assert.Equal(t, MaxQuantity, ParseQuantity("10000"))
	assert.Equal(t, MaxQuantity, ParseQuantity("12345678 units"))
}

func TestCartAddStopsAtMaxQuantity(t *testing.T) {
	chair := product("Chair", "10.00")
	var cart Cart
	cart.Add(chair)
	cart.UpdateQuantity(chair.ID.Hex(), "9999")

	cart.Add(chair)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, MaxQuantity, cart.Lines[0].Quantity)
}

func TestCartUpdateQuantityUnknownProduct(t *testing.T) {
	chair := product("Chair", "10.00")
	var cart Cart
	cart.Add(chair)

	cart.UpdateQuantity(primitive.NewObjectID().Hex(), "9")

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestCartRemove(t *testing.T) {
	chair := product("Chair", "10.00")
	sofa := product("Sofa", "20.00")
	var cart Cart
	cart.Add(chair)
	cart.Add(sofa)

	cart.Remove(primitive.NewObjectID().Hex())
	assert.Len(t, cart.Lines, 2)

	cart.Remove(chair.ID.Hex())
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, sofa.ID, cart.Lines[0].Product.ID)
}

func TestCartTotals(t *testing.T) {
	plain := product("Table", "10.00")
	sale := onSale(product("Sofa", "20.00"), "15.00")

	var cart Cart
	cart.Add(plain)
	cart.Add(plain)
	cart.Add(sale)

	summary := cart.Totals()
	assert.True(t, summary.Subtotal.Equal(decimal.RequireFromString("35.00")), summary.Subtotal.String())
	assert.True(t, summary.Tax.Equal(decimal.RequireFromString("3.50")), summary.Tax.String())
	assert.True(t, summary.GrandTotal.Equal(decimal.RequireFromString("38.50")), summary.GrandTotal.String())
	require.Len(t, summary.Lines, 2)
	assert.Equal(t, "$15.00", Money(summary.Lines[1].UnitPrice))
}

func TestCartTotalsRoundOnlyWhenFormatting(t *testing.T) {
	var cart Cart
	cart.Add(product("Lamp", "0.333"))
	cart.UpdateQuantity(cart.Lines[0].Product.ID.Hex(), "3")

	summary := cart.Totals()
	assert.Equal(t, "0.999", summary.Subtotal.String())
	assert.Equal(t, "$1.00", Money(summary.Subtotal))
}

func TestOrderSummaryPlainText(t *testing.T) {
	var cart Cart
	cart.Add(onSale(product("Modern Sofa", "799.99"), "599.99"))

	text := cart.Totals().PlainText()
	want := "Your Order Details:\n\n" +
		"Title: Modern Sofa\nQuantity: 1\nPrice: $599.99\nLine Total: $599.99\n\n" +
		"Subtotal: $599.99\nTax (10%): $60.00\nGrand Total: $659.99\n"
	assert.Equal(t, want, text)
}

func TestGroupByCategoryKeepsFirstSeenOrder(t *testing.T) {
	bed := product("Bed", "1")
	bed.Category = "Bedroom Furniture"
	chair := product("Chair", "1")
	sofa := product("Sofa", "1")

	groups := GroupByCategory([]Product{chair, bed, sofa})

	require.Len(t, groups, 2)
	assert.Equal(t, "Living Room Furniture", groups[0].Category)
	assert.Len(t, groups[0].Products, 2)
	assert.Equal(t, "Bedroom Furniture", groups[1].Category)
}

func TestIdentityForUsesStoredRole(t *testing.T) {
	u := User{ID: primitive.NewObjectID(), FirstName: "Ana", Email: "ana@example.com", Role: RoleClerk}
	assert.Equal(t, RoleClerk, IdentityFor(u).Role)

	u.Role = ""
	assert.Equal(t, RoleCustomer, IdentityFor(u).Role)
}
