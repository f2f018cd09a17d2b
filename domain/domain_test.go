package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	cases := map[string]string{
		"2024-03-15":                "2024-03-15",
		" 2024-03-15 ":              "2024-03-15",
		"2024-03-15T10:30:00":       "2024-03-15",
		"2024-03-15 23:59:59-05:00": "2024-03-15",
	}
	for in, want := range cases {
		got, err := ParseDay("fecha", in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "15/03/2024", "2024-13-01", "None"} {
		_, err := ParseDay("fecha", in)
		assert.ErrorIs(t, err, ErrInvalidInput, in)
	}
}

func TestToday(t *testing.T) {
	assert.Equal(t, "2024-03-15", Today(time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)))
}

func TestPurchaseInputNormalize(t *testing.T) {
	in := PurchaseInput{
		SupplierName:    "  Gloria ",
		SupplierContact: " 999 ",
		Product:         " Milk",
		Quantity:        10,
		UnitPrice:       1.5,
		RegisteredOn:    "2024-03-15T08:00:00",
		ExpiresOn:       "2024-12-31 00:00:00",
	}
	got, err := in.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "Gloria", got.SupplierName)
	assert.Equal(t, "Milk", got.Product)
	assert.Equal(t, "2024-03-15", got.RegisteredOn)
	assert.Equal(t, "2024-12-31", got.ExpiresOn)
	assert.Equal(t, LotKey{Product: "Milk", SalePrice: 1.5, ExpiresOn: "2024-12-31"}, got.Lot())

	bad := got
	bad.Quantity = 0
	_, err = bad.Normalize()
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = got
	bad.Product = " "
	_, err = bad.Normalize()
	assert.ErrorIs(t, err, ErrInvalidInput)

	bad = got
	bad.UnitPrice = -1
	_, err = bad.Normalize()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestPurchaseLockKeyIgnoresTimeOfDay(t *testing.T) {
	a, err := PurchaseInput{SupplierName: "S", Product: "P", Quantity: 1, RegisteredOn: "2024-03-15T08:00:00", ExpiresOn: "2024-12-31"}.Normalize()
	require.NoError(t, err)
	b, err := PurchaseInput{SupplierName: "S", Product: "P", Quantity: 7, RegisteredOn: "2024-03-15 19:00", ExpiresOn: "2024-12-31"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, a.LockKey(), b.LockKey())
	assert.NotEqual(t, a.LockKey(), a.Lot().LockKey())
}

func TestRegistrationValidate(t *testing.T) {
	ok := Registration{Username: "ana", Email: "ana@mail.com", Name: "Ana", LastName: "Q", Phone: "9", Password: "x"}
	assert.NoError(t, ok.Validate())

	net := ok
	net.Email = "ana@mail.net"
	assert.NoError(t, net.Validate())

	missing := ok
	missing.Phone = ""
	var verr *ValidationError
	require.True(t, errors.As(missing.Validate(), &verr))
	assert.Equal(t, "registro", verr.Field)

	for _, email := range []string{"ana.mail.com", "ana@mail.org"} {
		bad := ok
		bad.Email = email
		require.True(t, errors.As(bad.Validate(), &verr), email)
		assert.Equal(t, "correo", verr.Field)
	}
}

func TestValidateSaleLines(t *testing.T) {
	assert.ErrorIs(t, ValidateSaleLines(nil), ErrInvalidInput)
	assert.ErrorIs(t, ValidateSaleLines([]SaleLine{{InventoryID: 1, ProductName: "Milk", Quantity: 0}}), ErrInvalidInput)
	assert.ErrorIs(t, ValidateSaleLines([]SaleLine{{InventoryID: 0, ProductName: "Milk", Quantity: 1}}), ErrInvalidInput)
	assert.NoError(t, ValidateSaleLines([]SaleLine{{InventoryID: 1, ProductName: "Milk", Quantity: 2, LineTotal: 4}}))
}
