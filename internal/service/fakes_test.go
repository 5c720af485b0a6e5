package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Tharunikaraja/ecommerce-backend/internal/models"
)

// fakeStore is an in-memory stand-in for the mongo store, returning
// mongo.ErrNoDocuments the way the real store does.
type fakeStore struct {
	mu        sync.Mutex
	users     map[string]*models.User // keyed by email
	otps      []*models.OTP
	products  map[string]*models.Product // keyed by hex ID
	carts     map[bson.ObjectID]*models.Cart
	orders    map[bson.ObjectID]*models.Order
	wishlists map[bson.ObjectID]*models.Wishlist
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[string]*models.User),
		products:  make(map[string]*models.Product),
		carts:     make(map[bson.ObjectID]*models.Cart),
		orders:    make(map[bson.ObjectID]*models.Order),
		wishlists: make(map[bson.ObjectID]*models.Wishlist),
	}
}

func (f *fakeStore) addProduct(price float64, stock int, category string) *models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &models.Product{
		ID:       bson.NewObjectID(),
		Name:     fmt.Sprintf("product-%d", len(f.products)+1),
		Price:    price,
		Stock:    stock,
		Category: category,
	}
	f.products[p.ID.Hex()] = p
	return p
}

func (f *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.Email]; ok {
		return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	}
	user.ID = bson.NewObjectID()
	f.users[user.Email] = user
	return nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID.Hex() == id {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStore) UpdateUserPassword(_ context.Context, email, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return mongo.ErrNoDocuments
	}
	user.PasswordHash = passwordHash
	return nil
}

func (f *fakeStore) ReplaceOTP(_ context.Context, otp *models.OTP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.otps[:0]
	for _, existing := range f.otps {
		if existing.Email != otp.Email {
			kept = append(kept, existing)
		}
	}
	f.otps = append(kept, otp)
	return nil
}

func (f *fakeStore) GetOTP(_ context.Context, email, code string) (*models.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, otp := range f.otps {
		if otp.Email == email && otp.Code == code {
			return otp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStore) DeleteOTPs(_ context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.otps[:0]
	for _, otp := range f.otps {
		if otp.Email != email {
			kept = append(kept, otp)
		}
	}
	f.otps = kept
	return nil
}

func (f *fakeStore) otpFor(email string) *models.OTP {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, otp := range f.otps {
		if otp.Email == email {
			return otp
		}
	}
	return nil
}

func (f *fakeStore) GetProductByID(_ context.Context, id string) (*models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return product, nil
}

func (f *fakeStore) ListProducts(_ context.Context, category string) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var products []models.Product
	for _, p := range f.products {
		if category == "" || category == "all" || p.Category == category {
			products = append(products, *p)
		}
	}
	return products, nil
}

func (f *fakeStore) GetCartByUserID(_ context.Context, userID bson.ObjectID) (*models.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cart, ok := f.carts[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (f *fakeStore) UpsertCart(_ context.Context, cart *models.Cart) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *cart
	copied.Items = append([]models.CartItem(nil), cart.Items...)
	f.carts[cart.UserID] = &copied
	return nil
}

func (f *fakeStore) DeleteCart(_ context.Context, userID bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, userID)
	return nil
}

func (f *fakeStore) CreateOrder(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order.ID = bson.NewObjectID()
	order.CreatedAt = time.Now()
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeStore) GetOrderByID(_ context.Context, id string, userID bson.ObjectID) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.orders {
		if order.ID.Hex() == id && order.UserID == userID {
			copied := *order
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeStore) ListOrdersByUserID(_ context.Context, userID bson.ObjectID) ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var orders []models.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (f *fakeStore) UpdateOrderStatus(_ context.Context, id, userID bson.ObjectID, status, trackingNumber string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok || order.UserID != userID {
		return mongo.ErrNoDocuments
	}
	order.Status = status
	if trackingNumber != "" {
		order.TrackingNumber = trackingNumber
	}
	return nil
}

func (f *fakeStore) GetWishlistByUserID(_ context.Context, userID bson.ObjectID) (*models.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wishlist, ok := f.wishlists[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *wishlist
	copied.Products = append([]bson.ObjectID(nil), wishlist.Products...)
	return &copied, nil
}

func (f *fakeStore) UpsertWishlist(_ context.Context, wishlist *models.Wishlist) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *wishlist
	copied.Products = append([]bson.ObjectID(nil), wishlist.Products...)
	f.wishlists[wishlist.UserID] = &copied
	return nil
}

func (f *fakeStore) DeleteWishlist(_ context.Context, userID bson.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.wishlists, userID)
	return nil
}

// fakeMailer records sent mail and can be made to fail.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

type sentMail struct {
	to, subject, body string
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// fakePublisher records published events.
type fakePublisher struct {
	mu        sync.Mutex
	created   []*models.OrderCreatedEvent
	changed   []*models.OrderStatusChangedEvent
	cancelled []*models.OrderCancelledEvent
}

func (p *fakePublisher) PublishOrderCreated(_ context.Context, event *models.OrderCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, event)
	return nil
}

func (p *fakePublisher) PublishOrderStatusChanged(_ context.Context, event *models.OrderStatusChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changed = append(p.changed, event)
	return nil
}

func (p *fakePublisher) PublishOrderCancelled(_ context.Context, event *models.OrderCancelledEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelled = append(p.cancelled, event)
	return nil
}
