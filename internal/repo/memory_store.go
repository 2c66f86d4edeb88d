package repo

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/stock-ledger/internal/auth"
	"github.com/rogerio-castellano/stock-ledger/internal/models"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is the volatile Store. Nothing survives a restart.
type MemoryStore struct {
	mu           sync.RWMutex
	products     []models.Product
	transactions []models.Transaction // oldest first
	users        []models.User
	seed         SeedAdmin
	now          func() time.Time
}

func NewMemoryStore(seed SeedAdmin) *MemoryStore {
	return &MemoryStore{
		products:     []models.Product{},
		transactions: []models.Transaction{},
		users:        []models.User{},
		seed:         seed.withDefaults(),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.userIndex(models.SeedAdminID) >= 0 {
		return nil
	}

	hash, err := auth.HashPassword(s.seed.Password)
	if err != nil {
		return err
	}

	s.users = append(s.users, models.User{
		ID:           models.SeedAdminID,
		Username:     s.seed.Username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    s.now(),
	})
	return nil
}

func (s *MemoryStore) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	s.mu.RLock()
	var (
		user  models.User
		found bool
	)
	for _, u := range s.users {
		if u.Username == username {
			user, found = u, true
			break
		}
	}
	s.mu.RUnlock()

	if !found {
		auth.CompareDummy(password)
		return models.User{}, ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (s *MemoryStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products), nil
}

func (s *MemoryStore) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recentTransactions(), nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.publicUsers(), nil
}

func (s *MemoryStore) UpsertProduct(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := validateProduct(in); err != nil {
		return models.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if in.ID != "" {
		if i := s.productIndex(in.ID); i >= 0 {
			p := s.products[i]
			p.Name = in.Name
			p.SKU = cloneString(in.SKU)
			p.Quantity = in.Quantity
			p.UpdatedAt = now
			s.products[i] = p
			return p, nil
		}
	}

	p := models.Product{
		ID:        uuid.NewString(),
		Name:      in.Name,
		SKU:       cloneString(in.SKU),
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.products = append(s.products, p)
	return p, nil
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(id)
	if i < 0 {
		return nil
	}

	s.products = slices.Delete(s.products, i, i+1)
	s.transactions = slices.DeleteFunc(s.transactions, func(t models.Transaction) bool {
		return t.ProductID == id
	})
	return nil
}

func (s *MemoryStore) AppendTransaction(ctx context.Context, in TransactionInput) (models.Transaction, error) {
	if err := validateTransaction(in); err != nil {
		return models.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.productIndex(in.ProductID)
	if i < 0 {
		return models.Transaction{}, ErrProductNotFound
	}

	next := int64(s.products[i].Quantity) + int64(in.Kind.Delta(in.Quantity))
	if next > models.MaxQuantity || next < models.MinQuantity {
		return models.Transaction{}, ErrQuantityOutOfRange
	}

	now := s.now()
	t := models.Transaction{
		ID:        uuid.NewString(),
		ProductID: in.ProductID,
		Kind:      in.Kind,
		Quantity:  in.Quantity,
		Note:      cloneString(in.Note),
		CreatedBy: in.CreatedBy,
		CreatedAt: now,
	}

	// Both writes happen under the same lock with nothing that can fail in
	// between, so the entry and the quantity change are applied together.
	s.products[i].Quantity = int(next)
	s.products[i].UpdatedAt = now
	s.transactions = append(s.transactions, t)
	return t, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, in UserInput) (models.PublicUser, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.PublicUser{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == in.Username {
			return models.PublicUser{}, ErrDuplicateUsername
		}
	}

	u := models.User{
		ID:                 uuid.NewString(),
		Username:           in.Username,
		PasswordHash:       hash,
		Role:               in.Role,
		MustChangePassword: in.MustChangePassword,
		CreatedAt:          s.now(),
	}
	s.users = append(s.users, u)
	return u.Public(), nil
}

func (s *MemoryStore) DeleteUser(ctx context.Context, id string) error {
	if id == models.SeedAdminID {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.userIndex(id); i >= 0 {
		s.users = slices.Delete(s.users, i, i+1)
	}
	return nil
}

func (s *MemoryStore) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	s.mu.RLock()
	i := s.userIndex(id)
	var current models.User
	if i >= 0 {
		current = s.users[i]
	}
	s.mu.RUnlock()

	if i < 0 {
		return ErrUserNotFound
	}
	if !auth.CheckPassword(current.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The user may have been removed while hashing.
	i = s.userIndex(id)
	if i < 0 {
		return ErrUserNotFound
	}
	s.users[i].PasswordHash = hash
	s.users[i].MustChangePassword = false
	return nil
}

func (s *MemoryStore) Snapshot(ctx context.Context) (models.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.Snapshot{
		Products:     slices.Clone(s.products),
		Transactions: s.recentTransactions(),
		Users:        s.publicUsers(),
	}, nil
}

func (s *MemoryStore) productIndex(id string) int {
	return slices.IndexFunc(s.products, func(p models.Product) bool { return p.ID == id })
}

func (s *MemoryStore) userIndex(id string) int {
	return slices.IndexFunc(s.users, func(u models.User) bool { return u.ID == id })
}

func (s *MemoryStore) recentTransactions() []models.Transaction {
	out := slices.Clone(s.transactions)
	slices.Reverse(out)
	return out
}

func (s *MemoryStore) publicUsers() []models.PublicUser {
	out := make([]models.PublicUser, len(s.users))
	for i, u := range s.users {
		out[i] = u.Public()
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
