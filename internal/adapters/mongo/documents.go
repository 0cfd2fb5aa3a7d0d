package mongo_adapter

import (
	"real-estate-system/internal/core/domain"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// _id - ключ хранилища, наружу отдаются только idProperty/idOwner/...

type propertyDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	IDProperty   string             `bson:"idProperty"`
	Name         string             `bson:"name"`
	Address      string             `bson:"address"`
	Price        float64            `bson:"price"`
	CodeInternal string             `bson:"codeInternal"`
	Year         int                `bson:"year"`
	IDOwner      string             `bson:"idOwner"`
	ImageURL     string             `bson:"imageUrl"`
}

func newPropertyDocument(p *domain.Property) propertyDocument {
	return propertyDocument{
		IDProperty:   p.IDProperty,
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		IDOwner:      p.IDOwner,
		ImageURL:     p.ImageURL,
	}
}

func (d propertyDocument) toDomain() domain.Property {
	return domain.Property{
		IDProperty:   d.IDProperty,
		Name:         d.Name,
		Address:      d.Address,
		Price:        d.Price,
		CodeInternal: d.CodeInternal,
		Year:         d.Year,
		IDOwner:      d.IDOwner,
		ImageURL:     d.ImageURL,
	}
}

type ownerDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	IDOwner  string             `bson:"idOwner"`
	Name     string             `bson:"name"`
	Address  string             `bson:"address"`
	Photo    string             `bson:"photo"`
	Birthday *time.Time         `bson:"birthday,omitempty"`
}

func newOwnerDocument(o *domain.Owner) ownerDocument {
	doc := ownerDocument{IDOwner: o.IDOwner, Name: o.Name, Address: o.Address, Photo: o.Photo}
	if !o.Birthday.IsZero() {
		b := o.Birthday
		doc.Birthday = &b
	}
	return doc
}

func (d ownerDocument) toDomain() domain.Owner {
	o := domain.Owner{IDOwner: d.IDOwner, Name: d.Name, Address: d.Address, Photo: d.Photo}
	if d.Birthday != nil {
		o.Birthday = d.Birthday.UTC()
	}
	return o
}

type traceDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	IDPropertyTrace string             `bson:"idPropertyTrace"`
	DateSale        time.Time          `bson:"dateSale"`
	Name            string             `bson:"name"`
	Value           float64            `bson:"value"`
	Tax             float64            `bson:"tax"`
	IDProperty      string             `bson:"idProperty"`
}

func newTraceDocument(t *domain.PropertyTrace) traceDocument {
	return traceDocument{
		IDPropertyTrace: t.IDPropertyTrace,
		DateSale:        t.DateSale,
		Name:            t.Name,
		Value:           t.Value,
		Tax:             t.Tax,
		IDProperty:      t.IDProperty,
	}
}

func (d traceDocument) toDomain() domain.PropertyTrace {
	return domain.PropertyTrace{
		IDPropertyTrace: d.IDPropertyTrace,
		DateSale:        d.DateSale.UTC(),
		Name:            d.Name,
		Value:           d.Value,
		Tax:             d.Tax,
		IDProperty:      d.IDProperty,
	}
}

type preferencesDocument struct {
	Theme         string `bson:"theme"`
	Notifications bool   `bson:"notifications"`
	Language      string `bson:"language"`
}

type userDocument struct {
	ID                 primitive.ObjectID  `bson:"_id,omitempty"`
	IDUser             string              `bson:"idUser"`
	Username           string              `bson:"username"`
	Email              string              `bson:"email"`
	PasswordHash       string              `bson:"passwordHash"`
	FirstName          string              `bson:"firstName"`
	LastName           string              `bson:"lastName"`
	Avatar             *string             `bson:"avatar"`
	FavoriteProperties []string            `bson:"favoriteProperties"`
	Preferences        preferencesDocument `bson:"preferences"`
	Role               string              `bson:"role"`
	IsActive           bool                `bson:"isActive"`
	CreatedAt          time.Time           `bson:"createdAt"`
	LastLogin          *time.Time          `bson:"lastLogin"`
}

func newUserDocument(u *domain.User) userDocument {
	favorites := u.FavoriteProperties
	if favorites == nil {
		favorites = []string{}
	}
	return userDocument{
		IDUser:             u.ID.String(),
		Username:           u.Username,
		Email:              u.Email,
		PasswordHash:       u.PasswordHash,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Avatar:             u.Avatar,
		FavoriteProperties: favorites,
		Preferences:        preferencesDocument(u.Preferences),
		Role:               u.Role,
		IsActive:           u.IsActive,
		CreatedAt:          u.CreatedAt,
		LastLogin:          u.LastLogin,
	}
}

func (d userDocument) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(d.IDUser)
	if err != nil {
		return nil, err
	}
	favorites := d.FavoriteProperties
	if favorites == nil {
		favorites = []string{}
	}
	return &domain.User{
		ID:                 id,
		Username:           d.Username,
		Email:              d.Email,
		PasswordHash:       d.PasswordHash,
		FirstName:          d.FirstName,
		LastName:           d.LastName,
		Avatar:             d.Avatar,
		FavoriteProperties: favorites,
		Preferences:        domain.UserPreferences(d.Preferences),
		Role:               d.Role,
		IsActive:           d.IsActive,
		CreatedAt:          d.CreatedAt.UTC(),
		LastLogin:          d.LastLogin,
	}, nil
}
