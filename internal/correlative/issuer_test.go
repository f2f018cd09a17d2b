package correlative

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"hattucci/internal/keylock"
	"hattucci/internal/testdb"
)

func TestNextStartsAtOneAndHasNoGaps(t *testing.T) {
	db := testdb.Open(t)
	issuer := NewIssuer(db.DB, keylock.Default(), zaptest.NewLogger(t))
	ctx := context.Background()

	current, err := issuer.Current(ctx)
	require.NoError(t, err)
	assert.Zero(t, current)

	for want := int64(1); want <= 5; want++ {
		got, err := issuer.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	current, err = issuer.Current(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 5, current)
}

func TestNextConcurrentCallersGetDistinctNumbers(t *testing.T) {
	db := testdb.Open(t)
	issuer := NewIssuer(db.DB, keylock.Default(), zaptest.NewLogger(t))
	ctx := context.Background()

	const callers = 25
	var (
		mu  sync.Mutex
		got []int
		wg  sync.WaitGroup
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := issuer.Next(ctx)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			got = append(got, int(n))
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Ints(got)
	require.Len(t, got, callers)
	for i, n := range got {
		assert.Equal(t, i+1, n)
	}
}
