package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	Name           string             `bson:"name" json:"name"`
	HashedPassword string             `bson:"hashed_password" json:"-"`
	Role           string             `bson:"role" json:"role"`
	Projects       []string           `bson:"projects" json:"projects"`
	ExternalID     string             `bson:"external_id" json:"externalId"`
	CreatedAt      int64              `bson:"created_at" json:"createdAt"`
	UpdatedAt      int64              `bson:"updated_at" json:"updatedAt"`
}

func (u *User) HasProject(project string) bool {
	for _, p := range u.Projects {
		if p == project {
			return true
		}
	}

	return false
}
