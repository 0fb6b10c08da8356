package postal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	require.Equal(t, "1020083", NormalizeCode("102-0083"))
	require.Equal(t, "1020083", NormalizeCode("〒102-0083"))
	require.Equal(t, "1020083", NormalizeCode("１０２－００８３"))
	require.Equal(t, "", NormalizeCode(""))
}

func TestEmbeddedDatasetLookup(t *testing.T) {
	dataset, err := LoadDataset("")
	require.NoError(t, err)
	require.Greater(t, dataset.Len(), 0)

	item, err := dataset.Lookup(context.Background(), "1020083")
	require.NoError(t, err)
	require.Equal(t, "千代田区", item.City)
	require.Equal(t, "麹町", item.Neighborhood)
	require.Equal(t, "東京都", item.Prefecture)
}

func TestDatasetLookupUnknownCode(t *testing.T) {
	dataset := NewDataset(Locality{PostalCode: "102-0083", City: "千代田区", Neighborhood: "麹町"})

	_, err := dataset.Lookup(context.Background(), "999-9999")
	require.ErrorIs(t, err, ErrPostalCodeNotFound)
}

func TestParseDatasetRejectsInvalidCodes(t *testing.T) {
	_, err := ParseDataset([]byte("localities:\n  - postal_code: \"12-34\"\n    city: x\n"))
	require.Error(t, err)
}

type countingLookup struct {
	next  Lookup
	calls int
}

func (l *countingLookup) Lookup(ctx context.Context, postalCode string) (*Locality, error) {
	l.calls++
	return l.next.Lookup(ctx, postalCode)
}

func TestCachedLookupServesSecondCallFromRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	inner := &countingLookup{next: NewDataset(Locality{PostalCode: "1500002", City: "渋谷区", Neighborhood: "渋谷"})}
	lookup := NewCachedLookup(inner, client, time.Hour, nil)

	first, err := lookup.Lookup(context.Background(), "150-0002")
	require.NoError(t, err)
	second, err := lookup.Lookup(context.Background(), "1500002")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, inner.calls)
	require.True(t, mr.Exists(cacheKeyPrefix+"1500002"))
}

func TestCachedLookupDoesNotCacheMisses(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	inner := &countingLookup{next: NewDataset()}
	lookup := NewCachedLookup(inner, client, time.Hour, nil)

	for i := 0; i < 2; i++ {
		_, err := lookup.Lookup(context.Background(), "1000001")
		require.True(t, errors.Is(err, ErrPostalCodeNotFound))
	}
	require.Equal(t, 2, inner.calls)
	require.False(t, mr.Exists(cacheKeyPrefix+"1000001"))
}

func TestCachedLookupFallsBackWhenRedisIsDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	lookup := NewCachedLookup(NewDataset(Locality{PostalCode: "8100001", City: "福岡市中央区", Neighborhood: "天神"}), client, time.Hour, nil)

	item, err := lookup.Lookup(context.Background(), "810-0001")
	require.NoError(t, err)
	require.Equal(t, "天神", item.Neighborhood)
}
