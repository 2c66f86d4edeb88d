// Package inventory sequences every mutation as validate, commit, then notify
// observers.
package inventory

import (
	"context"
	"log"
	"strings"

	"github.com/rogerio-castellano/stock-ledger/internal/models"
	"github.com/rogerio-castellano/stock-ledger/internal/repo"
)

// ProvisionalPassword is the credential given to admin-created accounts when
// the provisional password policy is on.
const ProvisionalPassword = "1234"

// Notifier is told after each committed mutation.
type Notifier interface {
	Broadcast(ctx context.Context) error
}

type Service struct {
	store                repo.Store
	notifier             Notifier
	provisionalPasswords bool
}

type Option func(*Service)

// WithProvisionalPasswords makes CreateUser ignore the supplied password, use
// ProvisionalPassword instead and flag the account for a mandatory change.
func WithProvisionalPasswords(enabled bool) Option {
	return func(s *Service) {
		s.provisionalPasswords = enabled
	}
}

func NewService(store repo.Store, notifier Notifier, opts ...Option) *Service {
	s := &Service{store: store, notifier: notifier}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type ProductRequest struct {
	ID       string
	Name     string
	SKU      *string
	Quantity int
}

type TransactionRequest struct {
	ProductID string
	Kind      models.TransactionKind
	Quantity  int
	Note      *string
}

type UserRequest struct {
	Username string
	Password string
	Role     models.Role
}

func (s *Service) Login(ctx context.Context, username, password string) (models.User, error) {
	if username == "" || password == "" {
		return models.User{}, repo.ErrInvalidCredentials
	}
	return s.store.Authenticate(ctx, username, password)
}

func (s *Service) Snapshot(ctx context.Context) (models.Snapshot, error) {
	return s.store.Snapshot(ctx)
}

func (s *Service) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.store.ListProducts(ctx)
}

func (s *Service) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

func (s *Service) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	return s.store.ListUsers(ctx)
}

// UpsertProduct is the administrative override: it sets the quantity
// directly and does not write a ledger entry.
func (s *Service) UpsertProduct(ctx context.Context, req ProductRequest) (models.Product, error) {
	if errs := ValidateProduct(req); len(errs) > 0 {
		return models.Product{}, errs
	}

	p, err := s.store.UpsertProduct(ctx, repo.ProductInput{
		ID:       req.ID,
		Name:     strings.TrimSpace(req.Name),
		SKU:      normalizeOptional(req.SKU),
		Quantity: req.Quantity,
	})
	if err != nil {
		return models.Product{}, err
	}

	s.notify(ctx)
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ValidationErrors{{Field: "id", Description: "Product id is required"}}
	}
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.notify(ctx)
	return nil
}

// AppendTransaction records a ledger entry on behalf of actorID.
func (s *Service) AppendTransaction(ctx context.Context, actorID string, req TransactionRequest) (models.Transaction, error) {
	if errs := ValidateTransaction(req); len(errs) > 0 {
		return models.Transaction{}, errs
	}

	t, err := s.store.AppendTransaction(ctx, repo.TransactionInput{
		ProductID: req.ProductID,
		Kind:      req.Kind,
		Quantity:  req.Quantity,
		Note:      normalizeOptional(req.Note),
		CreatedBy: actorID,
	})
	if err != nil {
		return models.Transaction{}, err
	}

	s.notify(ctx)
	return t, nil
}

func (s *Service) CreateUser(ctx context.Context, req UserRequest) (models.PublicUser, error) {
	if req.Role == "" {
		req.Role = models.RoleUser
	}
	if s.provisionalPasswords {
		req.Password = ProvisionalPassword
	}
	if errs := ValidateUser(req); len(errs) > 0 {
		return models.PublicUser{}, errs
	}

	u, err := s.store.CreateUser(ctx, repo.UserInput{
		Username:           req.Username,
		Password:           req.Password,
		Role:               req.Role,
		MustChangePassword: s.provisionalPasswords,
	})
	if err != nil {
		return models.PublicUser{}, err
	}

	s.notify(ctx)
	return u, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ValidationErrors{{Field: "id", Description: "User id is required"}}
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.notify(ctx)
	return nil
}

func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	var errs ValidationErrors
	if oldPassword == "" {
		errs = append(errs, ValidationError{Field: "oldPassword", Description: "Current password is required"})
	}
	if newPassword == "" {
		errs = append(errs, ValidationError{Field: "newPassword", Description: "New password is required"})
	}
	if len(errs) > 0 {
		return errs
	}

	if err := s.store.ChangePassword(ctx, userID, oldPassword, newPassword); err != nil {
		return err
	}

	s.notify(ctx)
	return nil
}

// RowError reports why one imported row was skipped.
type RowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportProducts creates every valid row and reports the others. Observers
// are notified once for the whole batch.
func (s *Service) ImportProducts(ctx context.Context, rows []ProductRequest, firstLine int) (int, []RowError, error) {
	imported := 0
	rowErrs := []RowError{}

	for i, row := range rows {
		line := firstLine + i
		if errs := ValidateProduct(row); len(errs) > 0 {
			rowErrs = append(rowErrs, RowError{Line: line, Reason: errs.Error()})
			continue
		}

		_, err := s.store.UpsertProduct(ctx, repo.ProductInput{
			Name:     strings.TrimSpace(row.Name),
			SKU:      normalizeOptional(row.SKU),
			Quantity: row.Quantity,
		})
		if err != nil {
			if imported > 0 {
				s.notify(ctx)
			}
			return imported, rowErrs, err
		}
		imported++
	}

	if imported > 0 {
		s.notify(ctx)
	}
	return imported, rowErrs, nil
}

func (s *Service) notify(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	// The mutation is committed; a requester hanging up must not stop the push.
	if err := s.notifier.Broadcast(context.WithoutCancel(ctx)); err != nil {
		log.Printf("⚠️ broadcast after commit failed: %v", err)
	}
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
