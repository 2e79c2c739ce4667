package main

import (
	"context"
	"errors"
	"testing"

	"user-hub/internal/cache"
	"user-hub/internal/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	newPgxPool = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc = func(code int) {}
}

// setValidEnv 設定 run 所需的全部環境變數
func setValidEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "0")
	t.Setenv("REDIS_PASSWORD", "pw")
	t.Setenv("JWT_SECRET", "testsecret")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("PORT", "")
}

func TestCustomValidator(t *testing.T) {
	cv := &CustomValidator{validator: validator.New()}

	type payload struct {
		Name string `validate:"required"`
	}
	require.Error(t, cv.Validate(&payload{}))
	require.NoError(t, cv.Validate(&payload{Name: "ok"}))
}

func TestRunSuccess(t *testing.T) {
	t.Cleanup(restore)
	setValidEnv(t)

	called := map[string]bool{}
	newPgxPool = func(_ context.Context, url string) (database.DB, error) {
		require.Equal(t, "postgres://localhost/test", url)
		called["pool"] = true
		return &database.FakeDB{CloseFn: func() { called["dbClose"] = true }}, nil
	}
	newRedisClient = func(addr, password string, db int) (cache.Cache, error) {
		require.Equal(t, "localhost:6379", addr)
		require.Equal(t, "pw", password)
		require.Equal(t, 0, db)
		called["redis"] = true
		return &cache.FakeCache{CloseFn: func() error {
			called["redisClose"] = true
			return nil
		}}, nil
	}
	runMigrationsFn = func(_ string) error {
		called["migrate"] = true
		return nil
	}
	startServer = func(e *echo.Echo, addr string) error {
		require.Equal(t, ":8080", addr)
		require.NotNil(t, e.Validator)
		called["start"] = true
		return nil
	}

	require.NoError(t, run())
	for _, key := range []string{"pool", "redis", "migrate", "start", "dbClose", "redisClose"} {
		require.True(t, called[key], key)
	}
}

func TestRunErrors(t *testing.T) {
	stubHappyPath := func() {
		newPgxPool = func(_ context.Context, _ string) (database.DB, error) {
			return &database.FakeDB{}, nil
		}
		newRedisClient = func(_, _ string, _ int) (cache.Cache, error) {
			return &cache.FakeCache{}, nil
		}
		runMigrationsFn = func(_ string) error { return nil }
		startServer = func(_ *echo.Echo, _ string) error { return nil }
	}

	t.Run("missing env vars", func(t *testing.T) {
		for _, key := range []string{"DATABASE_URL", "REDIS_ADDR", "REDIS_DB", "REDIS_PASSWORD", "JWT_SECRET"} {
			t.Run(key, func(t *testing.T) {
				t.Cleanup(restore)
				setValidEnv(t)
				stubHappyPath()
				t.Setenv(key, "")
				require.Error(t, run())
			})
		}
	})

	t.Run("bad REDIS_DB", func(t *testing.T) {
		t.Cleanup(restore)
		setValidEnv(t)
		stubHappyPath()
		t.Setenv("REDIS_DB", "not-a-number")
		require.Error(t, run())
	})

	t.Run("bad TOKEN_TTL", func(t *testing.T) {
		t.Cleanup(restore)
		setValidEnv(t)
		stubHappyPath()
		t.Setenv("TOKEN_TTL", "soon")
		require.Error(t, run())
	})

	t.Run("negative TOKEN_TTL", func(t *testing.T) {
		t.Cleanup(restore)
		setValidEnv(t)
		stubHappyPath()
		t.Setenv("TOKEN_TTL", "-1h")
		require.Error(t, run())
	})

	t.Run("pool error", func(t *testing.T) {
		t.Cleanup(restore)
		setValidEnv(t)
		stubHappyPath()
		newPgxPool = func(_ context.Context, _ string) (database.DB, error) {
			return nil, errors.New("dial")
		}
		require.Error(t, run())
	})

	t.Run("redis error", func(t *testing.T) {
		t.Cleanup(restore)
		setValidEnv(t)
		stubHappyPath()
		newRedisClient = func(_, _ string, _ int) (cache.Cache, error) {
			return nil, errors.New("refused")
		}
		require.Error(t, run())
	})

	t.Run("migration error", func(t *testing.T) {
		t.Cleanup(restore)
		setValidEnv(t)
		stubHappyPath()
		runMigrationsFn = func(_ string) error { return errors.New("migrate") }
		require.Error(t, run())
	})

	t.Run("server error", func(t *testing.T) {
		t.Cleanup(restore)
		setValidEnv(t)
		stubHappyPath()
		startServer = func(_ *echo.Echo, _ string) error { return errors.New("listen") }
		require.Error(t, run())
	})
}

func TestMainExit(t *testing.T) {
	t.Cleanup(restore)
	t.Setenv("DATABASE_URL", "")

	var exitCode int
	exitFunc = func(code int) { exitCode = code }

	main()
	require.Equal(t, 1, exitCode)
}

func TestMainSuccess(t *testing.T) {
	t.Cleanup(restore)
	setValidEnv(t)

	newPgxPool = func(_ context.Context, _ string) (database.DB, error) {
		return &database.FakeDB{}, nil
	}
	newRedisClient = func(_, _ string, _ int) (cache.Cache, error) {
		return &cache.FakeCache{}, nil
	}
	runMigrationsFn = func(_ string) error { return nil }
	startServer = func(_ *echo.Echo, _ string) error { return nil }

	exited := false
	exitFunc = func(_ int) { exited = true }

	main()
	require.False(t, exited)
}
