package store

import (
	"context"
	"time"

	"github.com/harentsoaR/bistro-api/internal/models"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens the process-wide client with the Stable API v1 and pings
// the primary before returning it. The caller owns Disconnect.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetTimeout(timeout)

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to MongoDB")
	}
	if err = client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "pinging MongoDB")
	}
	return client, nil
}

type MongoConnector struct {
	menus   *mongo.Collection
	reviews *mongo.Collection
	carts   *mongo.Collection
	users   *mongo.Collection
}

func NewMongoConnector(db *mongo.Database) *MongoConnector {
	return &MongoConnector{
		menus:   db.Collection(MenuCollection),
		reviews: db.Collection(ReviewCollection),
		carts:   db.Collection(CartCollection),
		users:   db.Collection(UserCollection),
	}
}

// EnsureIndexes creates the unique index on users.email that
// InsertUserIfAbsent relies on.
func (s *MongoConnector) EnsureIndexes(ctx context.Context) error {
	name, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return errors.Wrap(err, "creating unique index on users.email")
	}
	grip.Info(message.Fields{
		"message":    "ensured index",
		"collection": UserCollection,
		"index":      name,
	})
	return nil
}

func (s *MongoConnector) ListMenus(ctx context.Context) ([]models.MenuItem, error) {
	menus := []models.MenuItem{}
	if err := findAll(ctx, s.menus, bson.M{}, &menus); err != nil {
		return nil, errors.Wrap(err, "listing menus")
	}
	return menus, nil
}

func (s *MongoConnector) FindMenu(ctx context.Context, id primitive.ObjectID) (*models.MenuItem, error) {
	var menu models.MenuItem
	found, err := findOne(ctx, s.menus, menuIDFilter(id), &menu)
	if err != nil {
		return nil, errors.Wrapf(err, "finding menu '%s'", id.Hex())
	}
	if !found {
		return nil, nil
	}
	return &menu, nil
}

func (s *MongoConnector) InsertMenu(ctx context.Context, item *models.MenuItem) (primitive.ObjectID, error) {
	item.ID = primitive.NewObjectID()
	if _, err := s.menus.InsertOne(ctx, item); err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "inserting menu")
	}
	return item.ID, nil
}

func (s *MongoConnector) UpdateMenu(ctx context.Context, id primitive.ObjectID, update models.MenuUpdate) (*models.UpdateResult, error) {
	res, err := s.menus.UpdateOne(ctx, menuIDFilter(id), bson.M{"$set": update})
	if err != nil {
		return nil, errors.Wrapf(err, "updating menu '%s'", id.Hex())
	}
	return updateResult(res), nil
}

func (s *MongoConnector) DeleteMenu(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.menus.DeleteOne(ctx, menuIDFilter(id))
	if err != nil {
		return 0, errors.Wrapf(err, "deleting menu '%s'", id.Hex())
	}
	return res.DeletedCount, nil
}

// menuIDFilter also matches menus seeded with the hex form of their id as
// a plain string _id.
func menuIDFilter(id primitive.ObjectID) bson.M {
	return bson.M{"_id": bson.M{"$in": bson.A{id, id.Hex()}}}
}

func (s *MongoConnector) ListReviews(ctx context.Context) ([]models.Review, error) {
	reviews := []models.Review{}
	if err := findAll(ctx, s.reviews, bson.M{}, &reviews); err != nil {
		return nil, errors.Wrap(err, "listing reviews")
	}
	return reviews, nil
}

func (s *MongoConnector) ListCarts(ctx context.Context, email string) ([]models.CartItem, error) {
	carts := []models.CartItem{}
	if err := findAll(ctx, s.carts, bson.M{"email": email}, &carts); err != nil {
		return nil, errors.Wrapf(err, "listing carts for '%s'", email)
	}
	return carts, nil
}

func (s *MongoConnector) InsertCart(ctx context.Context, item *models.CartItem) (primitive.ObjectID, error) {
	item.ID = primitive.NewObjectID()
	if _, err := s.carts.InsertOne(ctx, item); err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "inserting cart item")
	}
	return item.ID, nil
}

func (s *MongoConnector) DeleteCart(ctx context.Context, id primitive.ObjectID, email string) (int64, error) {
	res, err := s.carts.DeleteOne(ctx, bson.M{"_id": id, "email": email})
	if err != nil {
		return 0, errors.Wrapf(err, "deleting cart item '%s'", id.Hex())
	}
	return res.DeletedCount, nil
}

func (s *MongoConnector) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := findAll(ctx, s.users, bson.M{}, &users); err != nil {
		return nil, errors.Wrap(err, "listing users")
	}
	return users, nil
}

func (s *MongoConnector) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	found, err := findOne(ctx, s.users, bson.M{"email": email}, &user)
	if err != nil {
		return nil, errors.Wrapf(err, "finding user '%s'", email)
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

// InsertUserIfAbsent is a single upsert keyed on email, so two concurrent
// registrations cannot both insert. With the unique index in place the
// losing side of a race may get a duplicate key error instead of a
// matched document; both mean the email is taken.
func (s *MongoConnector) InsertUserIfAbsent(ctx context.Context, user *models.User) (primitive.ObjectID, bool, error) {
	doc := *user
	doc.ID = primitive.NewObjectID()

	res, err := s.users.UpdateOne(ctx,
		bson.M{"email": user.Email},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, false, nil
	}
	if err != nil {
		return primitive.NilObjectID, false, errors.Wrapf(err, "inserting user '%s'", user.Email)
	}
	if res.UpsertedCount == 0 {
		return primitive.NilObjectID, false, nil
	}

	user.ID = doc.ID
	return doc.ID, true, nil
}

func (s *MongoConnector) PromoteUser(ctx context.Context, id primitive.ObjectID) (*models.UpdateResult, error) {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"role": models.RoleAdmin}})
	if err != nil {
		return nil, errors.Wrapf(err, "promoting user '%s'", id.Hex())
	}
	return updateResult(res), nil
}

func (s *MongoConnector) PromoteUserByEmail(ctx context.Context, email string) (*models.UpdateResult, error) {
	res, err := s.users.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"role": models.RoleAdmin}})
	if err != nil {
		return nil, errors.Wrapf(err, "promoting user '%s'", email)
	}
	return updateResult(res), nil
}

func (s *MongoConnector) DeleteUser(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, errors.Wrapf(err, "deleting user '%s'", id.Hex())
	}
	return res.DeletedCount, nil
}

func findAll(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}) error {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}

func findOne(ctx context.Context, coll *mongo.Collection, filter interface{}, out interface{}) (bool, error) {
	err := coll.FindOne(ctx, filter).Decode(out)
	if errors.Cause(err) == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func updateResult(res *mongo.UpdateResult) *models.UpdateResult {
	out := &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = &id
	}
	return out
}
