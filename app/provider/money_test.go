package provider

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnit(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
		want     int64
	}{
		{"1200", "JPY", 1200},
		{"1200.4", "JPY", 1200},
		{"1200.5", "jpy", 1201},
		{"12.34", "USD", 1234},
		{"12.345", "EUR", 1235},
		{"1.234", "KWD", 1234},
		{"0", "USD", 0},
		{"1000", "XOF", 1000},
		{"1000.6", "xaf", 1001},
		{"25000", "UGX", 25000},
		{"1.234", "LYD", 1234},
	}
	for _, tc := range cases {
		got, err := ToMinorUnit(decimal.RequireFromString(tc.amount), tc.currency)
		require.NoError(t, err)
		require.Equal(t, tc.want, got, "%s %s", tc.amount, tc.currency)
	}
}

func TestToMinorUnitRejectsOutOfRange(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
	}{
		{"100000000000000000000", "JPY"},
		{"-100000000000000000000", "JPY"},
		{"92233720368547758.08", "USD"},
	}
	for _, tc := range cases {
		_, err := ToMinorUnit(decimal.RequireFromString(tc.amount), tc.currency)
		require.ErrorIs(t, err, ErrAmountOutOfRange, "%s %s", tc.amount, tc.currency)
	}

	got, err := ToMinorUnit(decimal.RequireFromString("92233720368547758.07"), "USD")
	require.NoError(t, err)
	require.Equal(t, int64(9223372036854775807), got)
}

func TestCurrencyExponent(t *testing.T) {
	require.Equal(t, int32(0), CurrencyExponent("JPY"))
	require.Equal(t, int32(0), CurrencyExponent(" xof "))
	require.Equal(t, int32(3), CurrencyExponent("LYD"))
	require.Equal(t, int32(2), CurrencyExponent("EUR"))
	require.Equal(t, int32(2), CurrencyExponent("not-a-code"))
}

func TestMinorUnitRoundTrip(t *testing.T) {
	for _, currency := range []string{"JPY", "USD", "KWD", "XOF", "LYD", "XXX"} {
		for _, minor := range []int64{0, 1, 99, 1000, 123456789} {
			major := FromMinorUnit(minor, currency)
			back, err := ToMinorUnit(major, currency)
			require.NoError(t, err)
			require.Equal(t, minor, back, "currency=%s", currency)
		}
	}
}

func TestRegistryDefaultsToFirstProvider(t *testing.T) {
	first := &stubProvider{code: "np-atobarai"}
	reg := NewRegistry(first, &stubProvider{code: "other"})

	got, err := reg.Get("")
	require.NoError(t, err)
	require.Same(t, first, got)

	got, err = reg.Get(" NP-Atobarai ")
	require.NoError(t, err)
	require.Same(t, first, got)

	_, err = reg.Get("stripe")
	require.ErrorIs(t, err, ErrProviderNotSupported)
}

func TestAutoCancelReportFailed(t *testing.T) {
	var nilReport *AutoCancelReport
	require.False(t, nilReport.Failed())
	require.False(t, (&AutoCancelReport{TransactionID: "T1"}).Failed())
	require.True(t, (&AutoCancelReport{TransactionID: "T1", ErrorCodes: []string{"E0100113"}}).Failed())
	require.True(t, (&AutoCancelReport{TransactionID: "T1", Err: ErrGatewayUnreachable}).Failed())
}
