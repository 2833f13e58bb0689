package redis_test

import (
	"context"
	"io"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/marionette/pkg/adapters/redis"
	"github.com/aretw0/marionette/pkg/domain"
	"github.com/aretw0/marionette/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T, opts ...redis.Option) (*redis.Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewFromClient(client, opts...), mr
}

func TestRedisLocation_Contract(t *testing.T) {
	ports.RunLocationContract(t, func(t *testing.T, files map[string]string) ports.LocationFixture {
		repo, _ := newRepository(t)
		for p, content := range files {
			require.NoError(t, repo.Put(context.Background(), p, []byte(content)))
		}
		return ports.LocationFixture{
			Locate:   func(p string) ports.Location { return repo.Locate(p) },
			Absolute: func(p string) string { return "/" + p },
		}
	})
}

func TestRedisLocation_Prefix(t *testing.T) {
	repo, mr := newRepository(t, redis.WithPrefix("test:"))
	require.NoError(t, repo.Put(context.Background(), "a/b.txt", []byte("print b\n")))

	got, err := mr.Get("test:script:a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "print b\n", got)

	rc, err := repo.Locate("/a/b.txt").Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "print b\n", string(data))
}

func TestRedisLocation_ServerDown(t *testing.T) {
	repo, mr := newRepository(t)
	mr.Close()

	_, err := repo.Locate("main.txt").Open()
	assert.ErrorIs(t, err, domain.ErrIO)
}
