package lock

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/require"

	"eventticketing/internal/domain"
)

func TestLocal_MutualExclusion(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "event:1")
			require.NoError(t, err)
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, 1, maxSeen)
	require.Equal(t, 0, l.held())
}

func TestLocal_IndependentKeys(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	unlockA, err := l.Lock(ctx, "event:a")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	unlockB, err := l.Lock(ctx, "event:b")
	require.NoError(t, err)
	unlockB()
}

func TestLocal_ContextTimeout(t *testing.T) {
	l := NewLocal()
	unlock, err := l.Lock(context.Background(), "event:1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "event:1")
	require.True(t, errors.Is(err, domain.ErrLockTimeout))

	unlock()
	unlock()
	require.Equal(t, 0, l.held())
}

func TestRedis_LockAndRelease(t *testing.T) {
	client, mock := redismock.NewClientMock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := NewRedis(client, logger, time.Second, time.Millisecond)
	l.newToken = func() string { return "token-1" }

	key := redisKeyPrefix + "event:1"
	mock.ExpectSetNX(key, "token-1", time.Second).SetVal(false)
	mock.ExpectSetNX(key, "token-1", time.Second).SetVal(true)
	mock.ExpectEvalSha(releaseScript.Hash(), []string{key}, "token-1").SetVal(int64(1))

	unlock, err := l.Lock(context.Background(), "event:1")
	require.NoError(t, err)
	unlock()

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_Timeout(t *testing.T) {
	client, mock := redismock.NewClientMock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := NewRedis(client, logger, time.Second, 50*time.Millisecond)
	l.newToken = func() string { return "token-2" }

	key := redisKeyPrefix + "event:2"
	mock.ExpectSetNX(key, "token-2", time.Second).SetVal(false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := l.Lock(ctx, "event:2")
	require.True(t, errors.Is(err, domain.ErrLockTimeout))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_BackendError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	l := NewRedis(client, logger, time.Second, time.Millisecond)
	l.newToken = func() string { return "token-3" }

	mock.ExpectSetNX(redisKeyPrefix+"event:3", "token-3", time.Second).SetErr(errors.New("connection refused"))

	_, err := l.Lock(context.Background(), "event:3")
	require.Error(t, err)
	require.False(t, errors.Is(err, domain.ErrLockTimeout))
}
