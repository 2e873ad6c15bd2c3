package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem belongs to the user whose email it carries. Anything else the
// client sends (quantity, category...) is kept in Extra.
type CartItem struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	MenuID string             `bson:"menuId" json:"menuId"`
	Email  string             `bson:"email" json:"email"`
	Name   string             `bson:"name" json:"name"`
	Image  string             `bson:"image" json:"image"`
	Price  float64            `bson:"price" json:"price"`
	Extra  bson.M             `bson:",inline" json:"-"`
}

var cartItemFields = []string{"_id", "menuId", "email", "name", "image", "price"}

type cartItem CartItem

func (ci CartItem) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(cartItem(ci), ci.Extra)
}

func (ci *CartItem) UnmarshalJSON(data []byte) error {
	var known cartItem
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	extra, err := splitExtra(data, cartItemFields)
	if err != nil {
		return err
	}
	*ci = CartItem(known)
	ci.Extra = extra
	return nil
}
