package store

import (
	"context"
	"sync"

	"github.com/harentsoaR/bistro-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockConnector is an in-memory Connector. Documents are kept in insertion
// order and copied shallowly in and out: pointer fields and Extra maps are
// shared with the caller.
// Setting Err makes every method fail with it.
type MockConnector struct {
	mu      sync.Mutex
	Menus   []models.MenuItem
	Reviews []models.Review
	Carts   []models.CartItem
	Users   []models.User
	Err     error
}

func (m *MockConnector) ListMenus(_ context.Context) ([]models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.MenuItem{}, m.Menus...), nil
}

func (m *MockConnector) FindMenu(_ context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, menu := range m.Menus {
		if menu.ID == id {
			return &menu, nil
		}
	}
	return nil, nil
}

func (m *MockConnector) InsertMenu(_ context.Context, item *models.MenuItem) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return primitive.NilObjectID, m.Err
	}
	item.ID = primitive.NewObjectID()
	m.Menus = append(m.Menus, *item)
	return item.ID, nil
}

func (m *MockConnector) UpdateMenu(_ context.Context, id primitive.ObjectID, update models.MenuUpdate) (*models.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	res := &models.UpdateResult{Acknowledged: true}
	for i := range m.Menus {
		if m.Menus[i].ID != id {
			continue
		}
		res.MatchedCount = 1
		updated := m.Menus[i]
		updated.Name = update.Name
		updated.Category = update.Category
		updated.Price = update.Price
		updated.Recipe = update.Recipe
		updated.Image = update.Image
		if !sameMenuFields(updated, m.Menus[i]) {
			res.ModifiedCount = 1
			m.Menus[i] = updated
		}
		break
	}
	return res, nil
}

func (m *MockConnector) DeleteMenu(_ context.Context, id primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	for i := range m.Menus {
		if m.Menus[i].ID == id {
			m.Menus = append(m.Menus[:i], m.Menus[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockConnector) ListReviews(_ context.Context) ([]models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.Review{}, m.Reviews...), nil
}

func (m *MockConnector) ListCarts(_ context.Context, email string) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.CartItem{}
	for _, item := range m.Carts {
		if item.Email == email {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *MockConnector) InsertCart(_ context.Context, item *models.CartItem) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return primitive.NilObjectID, m.Err
	}
	item.ID = primitive.NewObjectID()
	m.Carts = append(m.Carts, *item)
	return item.ID, nil
}

func (m *MockConnector) DeleteCart(_ context.Context, id primitive.ObjectID, email string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	for i := range m.Carts {
		if m.Carts[i].ID == id && m.Carts[i].Email == email {
			m.Carts = append(m.Carts[:i], m.Carts[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockConnector) ListUsers(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.User{}, m.Users...), nil
}

func (m *MockConnector) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if i := m.userIndex(email); i >= 0 {
		user := m.Users[i]
		return &user, nil
	}
	return nil, nil
}

func (m *MockConnector) InsertUserIfAbsent(_ context.Context, user *models.User) (primitive.ObjectID, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return primitive.NilObjectID, false, m.Err
	}
	if m.userIndex(user.Email) >= 0 {
		return primitive.NilObjectID, false, nil
	}
	user.ID = primitive.NewObjectID()
	m.Users = append(m.Users, *user)
	return user.ID, true, nil
}

func (m *MockConnector) PromoteUser(_ context.Context, id primitive.ObjectID) (*models.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Users {
		if m.Users[i].ID == id {
			return m.promote(i), nil
		}
	}
	return &models.UpdateResult{Acknowledged: true}, nil
}

func (m *MockConnector) PromoteUserByEmail(_ context.Context, email string) (*models.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if i := m.userIndex(email); i >= 0 {
		return m.promote(i), nil
	}
	return &models.UpdateResult{Acknowledged: true}, nil
}

func (m *MockConnector) DeleteUser(_ context.Context, id primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	for i := range m.Users {
		if m.Users[i].ID == id {
			m.Users = append(m.Users[:i], m.Users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockConnector) userIndex(email string) int {
	for i := range m.Users {
		if m.Users[i].Email == email {
			return i
		}
	}
	return -1
}

func (m *MockConnector) promote(i int) *models.UpdateResult {
	res := &models.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if m.Users[i].Role != models.RoleAdmin {
		m.Users[i].Role = models.RoleAdmin
		res.ModifiedCount = 1
	}
	return res
}

func sameMenuFields(a, b models.MenuItem) bool {
	return equalPtr(a.Name, b.Name) &&
		equalPtr(a.Category, b.Category) &&
		equalPtr(a.Price, b.Price) &&
		equalPtr(a.Recipe, b.Recipe) &&
		equalPtr(a.Image, b.Image)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
