package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// RoleAdmin is the only role the API knows about. Users without it have no
// role field at all.
const RoleAdmin = "admin"

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	Email    string             `bson:"email" json:"email"`
	PhotoURL string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Password string             `bson:"password,omitempty" json:"-"` // bcrypt hash
	Role     string             `bson:"role,omitempty" json:"role,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
