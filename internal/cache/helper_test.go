package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withMiniredis points the package client at an in-process server for the
// duration of the test.
func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type profilePayload struct {
	Name string `json:"name"`
}

func TestGetJSON_MissAndHit(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	var out profilePayload
	found, err := GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "k", profilePayload{Name: "ada"}, time.Minute))

	found, err = GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "ada", out.Name)
}

func TestAside_FetchesOnceThenServesCached(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	calls := 0
	load := func(dest *profilePayload) error {
		calls++
		dest.Name = "ada"
		return nil
	}

	var first profilePayload
	require.NoError(t, Aside(ctx, "profile:1", &first, time.Minute, func() error {
		return load(&first)
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "ada", first.Name)

	var second profilePayload
	require.NoError(t, Aside(ctx, "profile:1", &second, time.Minute, func() error {
		return load(&second)
	}))
	assert.Equal(t, 1, calls, "second read must come from the cache")
	assert.Equal(t, "ada", second.Name)
}

func TestAside_FetchErrorPropagates(t *testing.T) {
	withMiniredis(t)

	boom := errors.New("boom")
	var out profilePayload
	err := Aside(context.Background(), "profile:2", &out, time.Minute, func() error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestInvalidate_ForcesRefetch(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *profilePayload) func() error {
		return func() error {
			calls++
			dest.Name = "ada"
			return nil
		}
	}

	var out profilePayload
	require.NoError(t, Aside(ctx, ProfileKey(7), &out, ProfileTTL, fetch(&out)))
	require.Equal(t, 1, calls)

	InvalidateProfile(ctx, 7)

	var again profilePayload
	require.NoError(t, Aside(ctx, ProfileKey(7), &again, ProfileTTL, fetch(&again)))
	assert.Equal(t, 2, calls)
}

func TestAside_TTLExpires(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *profilePayload) func() error {
		return func() error {
			calls++
			dest.Name = "ada"
			return nil
		}
	}

	var out profilePayload
	require.NoError(t, Aside(ctx, "ttl-key", &out, time.Minute, fetch(&out)))
	mr.FastForward(2 * time.Minute)

	var again profilePayload
	require.NoError(t, Aside(ctx, "ttl-key", &again, time.Minute, fetch(&again)))
	assert.Equal(t, 2, calls)
}

func TestNilClientDegradesToPassThrough(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var out profilePayload
	found, err := GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "k", profilePayload{Name: "ada"}, time.Minute))

	calls := 0
	require.NoError(t, Aside(ctx, "k", &out, time.Minute, func() error {
		calls++
		out.Name = "ada"
		return nil
	}))
	require.NoError(t, Aside(ctx, "k", &out, time.Minute, func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 2, calls, "without a client every read hits the loader")

	// Invalidation is a no-op rather than a panic.
	Invalidate(ctx, "k")
	InvalidateBadWords(ctx)
}
