package service

import (
	"database/sql"
	"io"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/Ordones18/Ponte-Once-Store/internal/config"
	"github.com/Ordones18/Ponte-Once-Store/internal/database"
	"github.com/Ordones18/Ponte-Once-Store/internal/domain"
	"github.com/Ordones18/Ponte-Once-Store/internal/notification"
	"github.com/Ordones18/Ponte-Once-Store/internal/repository"
	"github.com/Ordones18/Ponte-Once-Store/pkg/logger"
)

// fakeDispatcher records queued mail instead of delivering it.
type fakeDispatcher struct {
	mutex    sync.Mutex
	messages []*domain.EmailMessage
	full     bool
}

func (d *fakeDispatcher) Enqueue(msg *domain.EmailMessage) bool {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.full {
		return false
	}
	d.messages = append(d.messages, msg)
	return true
}

func (d *fakeDispatcher) sent() []*domain.EmailMessage {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	out := make([]*domain.EmailMessage, len(d.messages))
	copy(out, d.messages)
	return out
}

type testEnv struct {
	db         *sql.DB
	log        logger.Logger
	users      domain.UserRepository
	products   domain.ProductRepository
	purchases  domain.PurchaseRepository
	dispatcher *fakeDispatcher
	mailer     *notification.Mailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite3", "file::memory:?_busy_timeout=5000")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	log := logger.New(logger.ErrorLevel, io.Discard)
	require.NoError(t, database.NewMigrationService(db, log).RunMigrations())

	return &testEnv{
		db:         db,
		log:        log,
		users:      repository.NewUserRepository(db, log),
		products:   repository.NewProductRepository(db, log),
		purchases:  repository.NewPurchaseRepository(db, log),
		dispatcher: &fakeDispatcher{},
		mailer:     notification.NewMailer("http://localhost:8080"),
	}
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		SecretKey:     "test_secret",
		SessionTTL:    time.Hour,
		ResetTokenTTL: time.Hour,
	}
}

func (e *testEnv) authService() domain.AuthService {
	return NewAuthService(e.users, e.dispatcher, e.mailer, testAuthConfig(), e.log)
}

func (e *testEnv) checkoutService() domain.CheckoutService {
	return NewCheckoutService(e.purchases, e.products, e.dispatcher, e.mailer, e.log)
}
