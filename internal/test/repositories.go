package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/flowershop/internal/domain/errors"
	"github.com/polkiloo/flowershop/internal/domain/model"
	"github.com/polkiloo/flowershop/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu    sync.Mutex
	ByID  map[int64]*model.User
	Next  int64
	Err   error
	Calls []string
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{ByID: make(map[int64]*model.User), Next: 1}
}

func (s *UserRepositoryStub) record(call string) error {
	s.Calls = append(s.Calls, call)
	return s.Err
}

// Create registers user unless username or email is taken.
func (s *UserRepositoryStub) Create(ctx context.Context, u repository.NewUser) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("Create"); err != nil {
		return nil, err
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	for _, existing := range s.ByID {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domainErrors.ErrConflict
		}
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{
		ID:           s.Next,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		IsSuperuser:  u.IsSuperuser,
		CreatedAt:    time.Unix(0, 0),
	}
	s.Next++
	s.ByID[user.ID] = user
	return cloneUser(user), nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.find("GetByEmail", func(u *model.User) bool { return u.Email == email })
}

// GetByUsername fetches user by username or returns not found.
func (s *UserRepositoryStub) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.find("GetByUsername", func(u *model.User) bool { return u.Username == username })
}

// GetByToken fetches the user holding token or returns not found.
func (s *UserRepositoryStub) GetByToken(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, domainErrors.ErrNotFound
	}
	return s.find("GetByToken", func(u *model.User) bool { return u.Token == token })
}

// SetToken stores session token for user.
func (s *UserRepositoryStub) SetToken(ctx context.Context, userID int64, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("SetToken"); err != nil {
		return err
	}
	user, ok := s.ByID[userID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	user.Token = token
	return nil
}

// ClearToken drops the session identified by token.
func (s *UserRepositoryStub) ClearToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("ClearToken"); err != nil {
		return err
	}
	if token == "" {
		return domainErrors.ErrNotFound
	}
	for _, user := range s.ByID {
		if user.Token == token {
			user.Token = ""
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *UserRepositoryStub) find(call string, match func(*model.User) bool) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record(call); err != nil {
		return nil, err
	}
	for _, user := range s.ByID {
		if match(user) {
			return cloneUser(user), nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func cloneUser(u *model.User) *model.User {
	c := *u
	return &c
}

// FlowerRepositoryStub serves a fixed catalog.
type FlowerRepositoryStub struct {
	Flowers     []model.Flower
	Err         error
	GetByNameFn func(context.Context, string) (*model.Flower, error)
	Lookups     int
}

// NewFlowerRepositoryStub returns a catalog holding flowers.
func NewFlowerRepositoryStub(flowers ...model.Flower) *FlowerRepositoryStub {
	return &FlowerRepositoryStub{Flowers: flowers}
}

// GetByName returns the flower with exactly matching name.
func (s *FlowerRepositoryStub) GetByName(ctx context.Context, name string) (*model.Flower, error) {
	s.Lookups++
	if s.GetByNameFn != nil {
		return s.GetByNameFn(ctx, name)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	for _, f := range s.Flowers {
		if f.Name == name {
			flower := f
			return &flower, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// List returns flowers filtered by category when provided.
func (s *FlowerRepositoryStub) List(ctx context.Context, category *model.FlowerCategory) ([]model.Flower, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Flower
	for _, f := range s.Flowers {
		if category == nil || f.Category == *category {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *FlowerRepositoryStub) byID(id int64) (model.Flower, bool) {
	for _, f := range s.Flowers {
		if f.ID == id {
			return f, true
		}
	}
	return model.Flower{}, false
}

// FlowerCacheStub keeps flowers in a map.
type FlowerCacheStub struct {
	Items  map[string]model.Flower
	SetErr error
	Sets   int
}

// Get returns a cached flower.
func (s *FlowerCacheStub) Get(ctx context.Context, name string) (*model.Flower, bool) {
	f, ok := s.Items[name]
	if !ok {
		return nil, false
	}
	return &f, true
}

// Set stores flower unless SetErr is configured.
func (s *FlowerCacheStub) Set(ctx context.Context, flower model.Flower) error {
	s.Sets++
	if s.SetErr != nil {
		return s.SetErr
	}
	if s.Items == nil {
		s.Items = make(map[string]model.Flower)
	}
	s.Items[flower.Name] = flower
	return nil
}

// OrderRepositoryStub is an in-memory order store that joins flowers from Catalog.
type OrderRepositoryStub struct {
	mu      sync.Mutex
	Catalog *FlowerRepositoryStub
	Rows    map[int64]model.Order
	Next    int64

	CreateFn func(context.Context, int64, int64, int, decimal.Decimal) (*model.Order, error)
	UpdateFn func(context.Context, model.Order) error
	Err      error
	Updates  []model.Order
}

// NewOrderRepositoryStub constructs an empty store joined to catalog.
func NewOrderRepositoryStub(catalog *FlowerRepositoryStub) *OrderRepositoryStub {
	return &OrderRepositoryStub{Catalog: catalog, Rows: make(map[int64]model.Order), Next: 1}
}

// Create inserts a pending order unless the owner already has one for the flower.
func (s *OrderRepositoryStub) Create(ctx context.Context, userID, flowerID int64, quantity int, amount decimal.Decimal) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, userID, flowerID, quantity, amount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, o := range s.Rows {
		if o.UserID == userID && o.Flower.ID == flowerID {
			return nil, domainErrors.ErrConflict
		}
	}
	if s.Next == 0 {
		s.Next = 1
	}
	order := model.Order{
		ID:       s.Next,
		UserID:   userID,
		Flower:   model.Flower{ID: flowerID},
		Quantity: quantity,
		Amount:   amount,
		Status:   model.OrderStatusPending,
	}
	s.Next++
	s.Rows[order.ID] = order
	joined := s.join(order)
	return &joined, nil
}

// GetByFlower returns the owner's order for flower.
func (s *OrderRepositoryStub) GetByFlower(ctx context.Context, userID, flowerID int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, o := range s.Rows {
		if o.UserID == userID && o.Flower.ID == flowerID {
			joined := s.join(o)
			return &joined, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID returns the owner's order by id.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.Rows[orderID]
	if !ok || o.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	joined := s.join(o)
	return &joined, nil
}

// ListByUser returns the owner's orders ordered by id.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Order
	for _, o := range s.Rows {
		if o.UserID == userID {
			out = append(out, s.join(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update overwrites status, quantity and amount of an owned order.
func (s *OrderRepositoryStub) Update(ctx context.Context, order model.Order) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Updates = append(s.Updates, order)
	row, ok := s.Rows[order.ID]
	if !ok || row.UserID != order.UserID {
		return domainErrors.ErrNotFound
	}
	row.Status = order.Status
	row.Quantity = order.Quantity
	row.Amount = order.Amount
	s.Rows[order.ID] = row
	return nil
}

// Delete removes an owned order.
func (s *OrderRepositoryStub) Delete(ctx context.Context, userID, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	o, ok := s.Rows[orderID]
	if !ok || o.UserID != userID {
		return domainErrors.ErrNotFound
	}
	delete(s.Rows, orderID)
	return nil
}

func (s *OrderRepositoryStub) join(o model.Order) model.Order {
	if s.Catalog != nil {
		if f, ok := s.Catalog.byID(o.Flower.ID); ok {
			o.Flower = f
		}
	}
	return o
}

// CommentRepositoryStub stores comments in a slice.
type CommentRepositoryStub struct {
	Users    *UserRepositoryStub
	Comments []model.Comment
	Err      error
}

// Create appends a comment authored by userID.
func (s *CommentRepositoryStub) Create(ctx context.Context, userID int64, text string) (*model.Comment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	comment := model.Comment{ID: int64(len(s.Comments) + 1), UserID: userID, Text: text}
	if s.Users != nil {
		if u, ok := s.Users.ByID[userID]; ok {
			comment.Username = u.Username
		}
	}
	s.Comments = append(s.Comments, comment)
	return &comment, nil
}

// List returns stored comments.
func (s *CommentRepositoryStub) List(ctx context.Context) ([]model.Comment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Comments, nil
}

// Rose is the reference flower used across tests.
func Rose() model.Flower {
	return model.Flower{
		ID:       1,
		Name:     "Rose",
		Price:    decimal.RequireFromString("10.50"),
		Type:     model.FlowerTypeRed,
		Category: model.CategoryLovedOne,
		ImgLink:  "https://img.local/rose.png",
	}
}

// Tulip is a second catalog entry for tests.
func Tulip() model.Flower {
	return model.Flower{
		ID:       2,
		Name:     "Tulip",
		Price:    decimal.RequireFromString("3.20"),
		Type:     model.FlowerTypeYellow,
		Category: model.CategoryBirthday,
		ImgLink:  "https://img.local/tulip.png",
	}
}

var (
	_ repository.UserRepository    = (*UserRepositoryStub)(nil)
	_ repository.FlowerRepository  = (*FlowerRepositoryStub)(nil)
	_ repository.FlowerCache       = (*FlowerCacheStub)(nil)
	_ repository.OrderRepository   = (*OrderRepositoryStub)(nil)
	_ repository.CommentRepository = (*CommentRepositoryStub)(nil)
)
