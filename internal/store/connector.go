package store

import (
	"context"

	"github.com/harentsoaR/bistro-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MenuCollection   = "menus"
	ReviewCollection = "reviews"
	CartCollection   = "carts"
	UserCollection   = "users"
)

// Connector is the data access surface the HTTP layer depends on.
// MongoConnector talks to a real deployment; MockConnector keeps
// everything in memory.
//
// Lookups of a single document return (nil, nil) when nothing matches.
type Connector interface {
	ListMenus(ctx context.Context) ([]models.MenuItem, error)
	FindMenu(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error)
	InsertMenu(ctx context.Context, item *models.MenuItem) (primitive.ObjectID, error)
	UpdateMenu(ctx context.Context, id primitive.ObjectID, update models.MenuUpdate) (*models.UpdateResult, error)
	DeleteMenu(ctx context.Context, id primitive.ObjectID) (int64, error)

	ListReviews(ctx context.Context) ([]models.Review, error)

	ListCarts(ctx context.Context, email string) ([]models.CartItem, error)
	InsertCart(ctx context.Context, item *models.CartItem) (primitive.ObjectID, error)
	// DeleteCart only removes the item when it belongs to email.
	DeleteCart(ctx context.Context, id primitive.ObjectID, email string) (int64, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	// InsertUserIfAbsent stores user unless another user already has its
	// email. created is false, with a zero id, when the email was taken.
	InsertUserIfAbsent(ctx context.Context, user *models.User) (id primitive.ObjectID, created bool, err error)
	PromoteUser(ctx context.Context, id primitive.ObjectID) (*models.UpdateResult, error)
	PromoteUserByEmail(ctx context.Context, email string) (*models.UpdateResult, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) (int64, error)
}
