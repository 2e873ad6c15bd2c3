package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Details  string             `bson:"details" json:"details"`
	Rating   float64            `bson:"rating" json:"rating"`
	Category string             `bson:"category,omitempty" json:"category,omitempty"`
	Extra    bson.M             `bson:",inline" json:"-"`
}

var reviewFields = []string{"_id", "name", "details", "rating", "category"}

type review Review

func (r Review) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(review(r), r.Extra)
}

func (r *Review) UnmarshalJSON(data []byte) error {
	var known review
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	extra, err := splitExtra(data, reviewFields)
	if err != nil {
		return err
	}
	*r = Review(known)
	r.Extra = extra
	return nil
}
