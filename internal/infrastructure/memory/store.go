// Package memory implementa los puertos de persistencia en memoria.
// Se usa en los tests de casos de uso y con DB_DRIVER=memory para demos locales.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/ferreteria-api/internal/domain/repository"
)

// state contiene todas las tablas. Se guardan copias, nunca punteros del llamador.
type state struct {
	products       map[string]entity.Product
	customers      map[string]entity.Customer
	users          map[string]entity.User
	branches       map[string]entity.Branch
	invoices       map[string]entity.Invoice
	invoiceDetails map[string][]entity.InvoiceDetail
	payments       map[string][]entity.InvoicePayment
	quotes         map[string]entity.Quote
	quoteDetails   map[string][]entity.QuoteDetail
	series         map[string]int64
	movements      []entity.StockMovement
	paymentTypes   []entity.PaymentType
}

func newState() *state {
	return &state{
		products:       map[string]entity.Product{},
		customers:      map[string]entity.Customer{},
		users:          map[string]entity.User{},
		branches:       map[string]entity.Branch{},
		invoices:       map[string]entity.Invoice{},
		invoiceDetails: map[string][]entity.InvoiceDetail{},
		payments:       map[string][]entity.InvoicePayment{},
		quotes:         map[string]entity.Quote{},
		quoteDetails:   map[string][]entity.QuoteDetail{},
		series:         map[string]int64{},
		paymentTypes:   entity.DefaultPaymentTypes(),
	}
}

// clone copia el estado para poder restaurarlo si la transacción falla.
func (s *state) clone() *state {
	c := &state{
		products:       maps.Clone(s.products),
		customers:      maps.Clone(s.customers),
		users:          maps.Clone(s.users),
		branches:       maps.Clone(s.branches),
		invoices:       maps.Clone(s.invoices),
		invoiceDetails: make(map[string][]entity.InvoiceDetail, len(s.invoiceDetails)),
		payments:       make(map[string][]entity.InvoicePayment, len(s.payments)),
		quotes:         maps.Clone(s.quotes),
		quoteDetails:   make(map[string][]entity.QuoteDetail, len(s.quoteDetails)),
		series:         maps.Clone(s.series),
		movements:      slices.Clone(s.movements),
		paymentTypes:   slices.Clone(s.paymentTypes),
	}
	for k, v := range s.invoiceDetails {
		c.invoiceDetails[k] = slices.Clone(v)
	}
	for k, v := range s.payments {
		c.payments[k] = slices.Clone(v)
	}
	for k, v := range s.quoteDetails {
		c.quoteDetails[k] = slices.Clone(v)
	}
	return c
}

// Store es el almacenamiento compartido. Un único mutex serializa las transacciones,
// lo que equivale a bloquear todas las filas que toca cada una.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacenamiento vacío con el catálogo de tipos de pago cargado.
func NewStore() *Store {
	return &Store{st: newState()}
}

// conn da acceso al estado. Fuera de transacción toma el mutex; dentro, el runner ya lo tiene.
type conn struct {
	store *Store
	inTx  bool
}

func (a conn) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return storageErr(err)
	}
	if !a.inTx {
		a.store.mu.Lock()
		defer a.store.mu.Unlock()
	}
	return fn(a.store.st)
}

// Repos devuelve los repositorios fuera de transacción.
func (s *Store) Repos() repository.TxRepos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) repository.TxRepos {
	a := conn{store: s, inTx: inTx}
	return repository.TxRepos{
		Products:  &ProductRepository{a},
		Customers: &CustomerRepository{a},
		Invoices:  &InvoiceRepository{a},
		Quotes:    &QuoteRepository{a},
		Series:    &SeriesRepository{a},
		Movements: &StockMovementRepository{a},
	}
}

// Products etc. devuelven los repositorios sueltos para el cableado de main y los tests.
func (s *Store) Products() *ProductRepository {
	return &ProductRepository{conn{store: s}}
}

func (s *Store) Customers() *CustomerRepository {
	return &CustomerRepository{conn{store: s}}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{conn{store: s}}
}

func (s *Store) Branches() *BranchRepository {
	return &BranchRepository{conn{store: s}}
}

func (s *Store) Invoices() *InvoiceRepository {
	return &InvoiceRepository{conn{store: s}}
}

func (s *Store) Quotes() *QuoteRepository {
	return &QuoteRepository{conn{store: s}}
}

func (s *Store) Series() *SeriesRepository {
	return &SeriesRepository{conn{store: s}}
}

func (s *Store) Movements() *StockMovementRepository {
	return &StockMovementRepository{conn{store: s}}
}

func (s *Store) PaymentTypes() *PaymentTypeRepository {
	return &PaymentTypeRepository{conn{store: s}}
}

func (s *Store) Reports() *ReportRepository {
	return &ReportRepository{conn{store: s}}
}

// Run ejecuta fn con el mutex tomado. Si fn falla o el contexto se cancela, el estado vuelve al previo.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return storageErr(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(s.repos(true)); err != nil {
		s.st = snapshot
		return err
	}
	if err := ctx.Err(); err != nil {
		s.st = snapshot
		return storageErr(err)
	}
	return nil
}

// RunBilling es Run: en memoria no hay niveles de aislamiento ni timeouts por operación.
func (s *Store) RunBilling(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	return s.Run(ctx, fn)
}

// SeedBranch, SeedUser: altas directas usadas por los tests y el modo demo.
func (s *Store) SeedBranch(b entity.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.branches[b.ID] = b
}

func (s *Store) SeedUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.users[u.ID] = u
}

// page aplica limit/offset a un slice ya ordenado.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
