package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MenuItem fields are nullable: an update that leaves one out stores null
// and it is rendered as null.
type MenuItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     *string            `bson:"name" json:"name"`
	Category *string            `bson:"category" json:"category"`
	Price    *float64           `bson:"price" json:"price"`
	Recipe   *string            `bson:"recipe" json:"recipe"`
	Image    *string            `bson:"image" json:"image"`
	Extra    bson.M             `bson:",inline" json:"-"`
}

var menuItemFields = []string{"_id", "name", "category", "price", "recipe", "image"}

type menuItem MenuItem

func (m MenuItem) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(menuItem(m), m.Extra)
}

func (m *MenuItem) UnmarshalJSON(data []byte) error {
	var known menuItem
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	extra, err := splitExtra(data, menuItemFields)
	if err != nil {
		return err
	}
	*m = MenuItem(known)
	m.Extra = extra
	return nil
}

// MenuUpdate is the full set of fields a PATCH /menus/:id rewrites. A nil
// field is stored as null, it does not keep the previous value.
type MenuUpdate struct {
	Name     *string  `bson:"name" json:"name"`
	Category *string  `bson:"category" json:"category"`
	Price    *float64 `bson:"price" json:"price"`
	Recipe   *string  `bson:"recipe" json:"recipe"`
	Image    *string  `bson:"image" json:"image"`
}
