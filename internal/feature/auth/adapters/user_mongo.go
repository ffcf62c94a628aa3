package adapters

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"message_backend/internal/feature/auth/domain/entity"
	"message_backend/internal/feature/auth/usecase"
)

// UsersCollection is the collection holding user documents.
const UsersCollection = "users"

// userDocument mirrors the stored user document. Field names follow the
// existing collection, which uses isAcceptingMessage (singular).
type userDocument struct {
	ID                 bson.ObjectID `bson:"_id"`
	Username           string        `bson:"username"`
	Email              string        `bson:"email"`
	Password           string        `bson:"password"`
	IsVerified         bool          `bson:"isVerified"`
	IsAcceptingMessage bool          `bson:"isAcceptingMessage"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:                  d.ID.Hex(),
		Username:            d.Username,
		Email:               d.Email,
		PasswordHash:        d.Password,
		IsVerified:          d.IsVerified,
		IsAcceptingMessages: d.IsAcceptingMessage,
		CreatedAt:           d.ID.Timestamp(),
	}
}

// userMongo is a MongoDB implementation of usecase.UserDirectory.
type userMongo struct {
	coll *mongo.Collection
}

var _ usecase.UserDirectory = (*userMongo)(nil)

// NewUserMongo creates a directory backed by the users collection of db.
func NewUserMongo(db *mongo.Database) *userMongo {
	return &userMongo{coll: db.Collection(UsersCollection)}
}

// identifierFilter matches a document by email or username.
func identifierFilter(identifier string) bson.M {
	return bson.M{
		"$or": bson.A{
			bson.M{"email": identifier},
			bson.M{"username": identifier},
		},
	}
}

// FindByIdentifier returns the user whose username or email equals identifier.
func (r *userMongo) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	return userFromResult(r.coll.FindOne(ctx, identifierFilter(identifier)))
}

// userFromResult decodes a FindOne result, translating a miss into usecase.ErrUserNotFound.
func userFromResult(res *mongo.SingleResult) (*entity.User, error) {
	var doc userDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

// Ping checks connectivity to the deployment.
func (r *userMongo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}
