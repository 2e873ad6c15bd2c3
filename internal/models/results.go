package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// The acknowledgment bodies below keep the field names clients of the
// original service read (insertedId, modifiedCount, deletedCount).

type InsertResult struct {
	Acknowledged bool                `json:"acknowledged"`
	InsertedID   *primitive.ObjectID `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool                `json:"acknowledged"`
	MatchedCount  int64               `json:"matchedCount"`
	ModifiedCount int64               `json:"modifiedCount"`
	UpsertedCount int64               `json:"upsertedCount"`
	UpsertedID    *primitive.ObjectID `json:"upsertedId"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// UserExistsResult is returned instead of an InsertResult when POST /users
// names an email that is already registered.
type UserExistsResult struct {
	Message    string              `json:"message"`
	InsertedID *primitive.ObjectID `json:"insertedId"`
}

func Inserted(id primitive.ObjectID) InsertResult {
	return InsertResult{Acknowledged: true, InsertedID: &id}
}

func Deleted(n int64) DeleteResult {
	return DeleteResult{Acknowledged: true, DeletedCount: n}
}
