package commands

import (
	"bytes"
	"context"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"IEats/internal/cache"
	"IEats/internal/config"
	"IEats/internal/handlers"
	"IEats/internal/metrics"
	"IEats/internal/repo"
	"IEats/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// withTempConfig создаёт конфиг клиента с токеном во временном каталоге.
func withTempConfig(t *testing.T, serverURL string) *config.Config {
	t.Helper()
	return &config.Config{
		ServerURL: serverURL,
		TokenFile: filepath.Join(t.TempDir(), "token"),
	}
}

// перехват stdout на время теста
func withStdoutCapture(t *testing.T, fn func()) string {
	t.Helper()
	old := Out
	var buf bytes.Buffer
	Out = &buf
	defer func() { Out = old }()
	fn()
	return buf.String()
}

// newBackend поднимает настоящий сервер поверх SQLite в памяти.
func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repo.InitDB(fmt.Sprintf("file:cli_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{AuthSecret: "cli-secret", MaxBodyMB: 1}
	logger := zap.NewNop().Sugar()
	m, err := metrics.New()
	require.NoError(t, err)

	h := handlers.NewHandler(
		service.NewUserService(repo.NewUserRepository(db)),
		service.NewEntryService(repo.NewEntryRepository(db), cache.NewSnapshots(time.Minute), m, logger),
		service.NewWishlistService(repo.NewWishlistRepository(db), m, logger),
		func(ctx context.Context) error { return repo.Ping(ctx, db) },
		m, logger, cfg,
	)
	srv := httptest.NewServer(h.Router)
	t.Cleanup(srv.Close)
	return srv
}

// run выполняет команду через диспетчер и возвращает код выхода и вывод.
func run(t *testing.T, cfg *config.Config, args ...string) (int, string) {
	t.Helper()
	var code int
	out := withStdoutCapture(t, func() {
		code = Dispatch(context.Background(), cfg, args)
	})
	return code, out
}
