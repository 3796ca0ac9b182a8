package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wholesale-hub/wholesale-service/internal/auth"
	"github.com/wholesale-hub/wholesale-service/internal/config"
	"github.com/wholesale-hub/wholesale-service/internal/domain"
	"github.com/wholesale-hub/wholesale-service/internal/events"
	"github.com/wholesale-hub/wholesale-service/internal/repository"
)

// store is an in-memory stand-in for Postgres shared by the fake repositories.
type store struct {
	mu         sync.Mutex
	nextID     int64
	users      map[string]domain.User
	sessions   map[string]domain.RefreshSession
	categories []domain.Category
	products   map[int64]domain.Product
	images     map[int64][]domain.ProductImage
	blocks     map[int64][]domain.DetailBlock
	variants   map[int64]domain.Variant
}

func newStore() *store {
	return &store{
		users:    map[string]domain.User{},
		sessions: map[string]domain.RefreshSession{},
		products: map[int64]domain.Product{},
		images:   map[int64][]domain.ProductImage{},
		blocks:   map[int64][]domain.DetailBlock{},
		variants: map[int64]domain.Variant{},
	}
}

func (s *store) id() int64 {
	s.nextID++
	return s.nextID
}

type passthroughTx struct{ calls atomic.Int64 }

func (p *passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls.Add(1)
	return fn(ctx)
}

type memUsers struct{ *store }

func (m memUsers) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.LoginID == user.LoginID {
			return repository.ErrDuplicate
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = *user
	return nil
}

func (m memUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (m memUsers) GetByLoginID(ctx context.Context, loginID string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.LoginID == loginID {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m memUsers) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

type memSessions struct{ *store }

func (m memSessions) Replace(ctx context.Context, session *domain.RefreshSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, s := range m.sessions {
		if s.UserID == session.UserID {
			delete(m.sessions, token)
		}
	}
	session.ID = m.id()
	m.sessions[session.Token] = *session
	return nil
}

func (m memSessions) GetByToken(ctx context.Context, token string) (*domain.RefreshSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &s, nil
}

func (m memSessions) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for token, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, token)
			n++
		}
	}
	return n, nil
}

func (m memSessions) DeleteByToken(ctx context.Context, token string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[token]; !ok {
		return 0, nil
	}
	delete(m.sessions, token)
	return 1, nil
}

func (m memSessions) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for token, s := range m.sessions {
		if s.ExpiresAt.Before(before) {
			delete(m.sessions, token)
			n++
		}
	}
	return n, nil
}

func (m memSessions) forUser(userID string) []domain.RefreshSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.RefreshSession
	for _, s := range m.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out
}

type memCategories struct{ *store }

func (m memCategories) List(ctx context.Context) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Category(nil), m.categories...), nil
}

func (m memCategories) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m memCategories) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.categories)), nil
}

func (m memCategories) Create(ctx context.Context, category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	category.ID = len(m.categories) + 1
	m.categories = append(m.categories, *category)
	return nil
}

type memProducts struct{ *store }

func (m memProducts) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product.ID = m.id()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	m.products[product.ID] = *product
	return nil
}

func (m memProducts) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &p, nil
}

func (m memProducts) UpdateActive(ctx context.Context, id int64, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.products[id]
	p.Active = active
	m.products[id] = p
	return nil
}

func (m memProducts) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	return nil
}

func (m memProducts) AddImage(ctx context.Context, image *domain.ProductImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	image.ID = m.id()
	m.images[image.ProductID] = append(m.images[image.ProductID], *image)
	return nil
}

func (m memProducts) ListImages(ctx context.Context, productID int64) ([]domain.ProductImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.images[productID], nil
}

func (m memProducts) DeleteImages(ctx context.Context, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.images, productID)
	return nil
}

func (m memProducts) AddBlock(ctx context.Context, block *domain.DetailBlock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	block.ID = m.id()
	m.blocks[block.ProductID] = append(m.blocks[block.ProductID], *block)
	return nil
}

func (m memProducts) ListBlocks(ctx context.Context, productID int64) ([]domain.DetailBlock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blocks[productID], nil
}

func (m memProducts) DeleteBlocks(ctx context.Context, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blocks, productID)
	return nil
}

type memVariants struct{ *store }

func (m memVariants) Create(ctx context.Context, variant *domain.Variant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.variants {
		if v.ProductID == variant.ProductID && v.Size == variant.Size && v.Color == variant.Color {
			return repository.ErrDuplicate
		}
	}
	variant.ID = m.id()
	m.variants[variant.ID] = *variant
	return nil
}

func (m memVariants) GetByID(ctx context.Context, id int64) (*domain.Variant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.variants[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &v, nil
}

func (m memVariants) ListByProduct(ctx context.Context, productID int64) ([]domain.Variant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Variant
	for _, v := range m.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m memVariants) UpdateStock(ctx context.Context, id int64, stock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.variants[id]
	if !ok {
		return pgx.ErrNoRows
	}
	v.Stock = stock
	m.variants[id] = v
	return nil
}

func (m memVariants) DeleteByProduct(ctx context.Context, productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, v := range m.variants {
		if v.ProductID == productID {
			delete(m.variants, id)
		}
	}
	return nil
}

func (m memVariants) ListWithFilter(ctx context.Context, filter repository.VariantFilter) ([]domain.VariantListing, int64, error) {
	return nil, 0, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (r *recordingDispatcher) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// fixture wires every service over one in-memory store.
type fixture struct {
	store      *store
	tx         *passthroughTx
	tokens     *auth.TokenManager
	clock      *time.Time
	sessions   memSessions
	dispatcher *recordingDispatcher
	auth       *AuthService
	guard      *OwnershipGuard
	products   *ProductService
	variants   *VariantService
	seeder     *Seeder
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 15,
		RefreshTokenTTLHours:  24,
		SessionTTLDays:        7,
		BcryptCost:            bcrypt.MinCost,
	}
}

func newFixture() *fixture {
	st := newStore()
	now := time.Now().UTC().Truncate(time.Second)
	clock := &now
	nowFn := func() time.Time { return *clock }

	f := &fixture{
		store:      st,
		tx:         &passthroughTx{},
		clock:      clock,
		sessions:   memSessions{st},
		dispatcher: &recordingDispatcher{},
	}
	cfg := testAuthConfig()
	f.tokens = auth.NewTokenManager(cfg.JWTSecret).WithClock(nowFn)
	logger := zap.NewNop()

	f.auth = NewAuthService(cfg, AuthDependencies{
		UserRepo:    memUsers{st},
		SessionRepo: f.sessions,
		TxManager:   f.tx,
		Tokens:      f.tokens,
		Verifier:    auth.BcryptVerifier{Cost: cfg.BcryptCost},
		Logger:      logger,
		Now:         nowFn,
	})
	f.guard = NewOwnershipGuard(memProducts{st}, memVariants{st}, logger)
	f.products = NewProductService(ProductDependencies{
		ProductRepo:  memProducts{st},
		VariantRepo:  memVariants{st},
		CategoryRepo: memCategories{st},
		Guard:        f.guard,
		TxManager:    f.tx,
		Dispatcher:   f.dispatcher,
		Logger:       logger,
	})
	f.variants = NewVariantService(VariantDependencies{
		VariantRepo: memVariants{st},
		Guard:       f.guard,
		TxManager:   f.tx,
		Dispatcher:  f.dispatcher,
		Logger:      logger,
	})
	f.seeder = NewSeeder(f.auth, memUsers{st}, memCategories{st}, logger)
	return f
}

func (f *fixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func (f *fixture) mustSignup(loginID string) *domain.User {
	u, err := f.auth.Signup(context.Background(), loginID, "secret-pass", domain.RoleWholesaler)
	if err != nil {
		panic(err)
	}
	return u
}

func (f *fixture) mustProduct(ownerID, sizes, colors string) *domain.Product {
	ctx := context.Background()
	if n, _ := (memCategories{f.store}).Count(ctx); n == 0 {
		_ = (memCategories{f.store}).Create(ctx, &domain.Category{Name: "Tops"})
	}
	p, err := f.products.CreateProduct(ctx, ownerID, ProductCreateInput{
		Name:       "Tee",
		CategoryID: 1,
		Sizes:      sizes,
		Colors:     colors,
	})
	if err != nil {
		panic(err)
	}
	return p
}
