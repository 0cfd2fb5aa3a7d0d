package rest

import (
	"real-estate-system/internal/core/domain"
	"time"
)

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// PropertyRequest - тело POST/PUT /api/properties
type PropertyRequest struct {
	IDProperty   string  `json:"idProperty"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Price        float64 `json:"price"`
	CodeInternal string  `json:"codeInternal"`
	Year         int     `json:"year"`
	IDOwner      string  `json:"idOwner"`
	ImageURL     string  `json:"imageUrl"`
}

func (r PropertyRequest) toDomain() domain.Property {
	return domain.Property{
		IDProperty:   r.IDProperty,
		Name:         r.Name,
		Address:      r.Address,
		Price:        r.Price,
		CodeInternal: r.CodeInternal,
		Year:         r.Year,
		IDOwner:      r.IDOwner,
		ImageURL:     r.ImageURL,
	}
}

type PropertyResponse struct {
	IDProperty   string  `json:"idProperty"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Price        float64 `json:"price"`
	CodeInternal string  `json:"codeInternal"`
	Year         int     `json:"year"`
	IDOwner      string  `json:"idOwner"`
	ImageURL     string  `json:"imageUrl"`
}

func toPropertyResponse(p domain.Property) PropertyResponse {
	return PropertyResponse{
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

// PropertyWithOwnerResponse - поля объекта плюс вложенный owner (null, если владелец не найден).
type PropertyWithOwnerResponse struct {
	PropertyResponse
	Owner *OwnerResponse `json:"owner"`
}

func toPropertyWithOwnerResponse(p domain.PropertyWithOwner) PropertyWithOwnerResponse {
	resp := PropertyWithOwnerResponse{PropertyResponse: toPropertyResponse(p.Property)}
	if p.Owner != nil {
		owner := toOwnerResponse(*p.Owner)
		resp.Owner = &owner
	}
	return resp
}

func toPropertyWithOwnerList(items []domain.PropertyWithOwner) []PropertyWithOwnerResponse {
	out := make([]PropertyWithOwnerResponse, len(items))
	for i, item := range items {
		out[i] = toPropertyWithOwnerResponse(item)
	}
	return out
}

type PagedResponse[T any] struct {
	Data            []T   `json:"data"`
	CurrentPage     int   `json:"currentPage"`
	PageSize        int   `json:"pageSize"`
	TotalItems      int64 `json:"totalItems"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

type OwnerRequest struct {
	Name     string     `json:"name"`
	Address  string     `json:"address"`
	Photo    string     `json:"photo"`
	Birthday *time.Time `json:"birthday"`
}

func (r OwnerRequest) toDomain() domain.Owner {
	owner := domain.Owner{Name: r.Name, Address: r.Address, Photo: r.Photo}
	if r.Birthday != nil {
		owner.Birthday = *r.Birthday
	}
	return owner
}

type OwnerResponse struct {
	IDOwner  string     `json:"idOwner"`
	Name     string     `json:"name"`
	Address  string     `json:"address"`
	Photo    string     `json:"photo"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

func toOwnerResponse(o domain.Owner) OwnerResponse {
	resp := OwnerResponse{IDOwner: o.IDOwner, Name: o.Name, Address: o.Address, Photo: o.Photo}
	if !o.Birthday.IsZero() {
		birthday := o.Birthday
		resp.Birthday = &birthday
	}
	return resp
}

type TraceRequest struct {
	DateSale   *time.Time `json:"dateSale"`
	Name       string     `json:"name"`
	Value      float64    `json:"value"`
	Tax        float64    `json:"tax"`
	IDProperty string     `json:"idProperty"`
}

func (r TraceRequest) toDomain() domain.PropertyTrace {
	trace := domain.PropertyTrace{Name: r.Name, Value: r.Value, Tax: r.Tax, IDProperty: r.IDProperty}
	if r.DateSale != nil {
		trace.DateSale = *r.DateSale
	}
	return trace
}

type TraceResponse struct {
	IDPropertyTrace string    `json:"idPropertyTrace"`
	DateSale        time.Time `json:"dateSale"`
	Name            string    `json:"name"`
	Value           float64   `json:"value"`
	Tax             float64   `json:"tax"`
	IDProperty      string    `json:"idProperty"`
}

func toTraceResponse(t domain.PropertyTrace) TraceResponse {
	return TraceResponse{
		IDPropertyTrace: t.IDPropertyTrace,
		DateSale:        t.DateSale,
		Name:            t.Name,
		Value:           t.Value,
		Tax:             t.Tax,
		IDProperty:      t.IDProperty,
	}
}

func toTraceResponses(traces []domain.PropertyTrace) []TraceResponse {
	out := make([]TraceResponse, len(traces))
	for i, t := range traces {
		out[i] = toTraceResponse(t)
	}
	return out
}

// LoginRequest - тело запроса для входа.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest - тело запроса для регистрации.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type PreferencesRequest struct {
	Theme         *string `json:"theme"`
	Notifications *bool   `json:"notifications"`
	Language      *string `json:"language"`
}

type UpdateProfileRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Avatar    *string `json:"avatar"`
}

type PreferencesResponse struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language"`
}

// UserResponse - профиль пользователя без хэша пароля.
type UserResponse struct {
	IDUser             string              `json:"idUser"`
	Username           string              `json:"username"`
	Email              string              `json:"email"`
	FirstName          string              `json:"firstName"`
	LastName           string              `json:"lastName"`
	Avatar             *string             `json:"avatar"`
	FavoriteProperties []string            `json:"favoriteProperties"`
	Preferences        PreferencesResponse `json:"preferences"`
	Role               string              `json:"role"`
	CreatedAt          time.Time           `json:"createdAt"`
	LastLogin          *time.Time          `json:"lastLogin"`
}

func toUserResponse(u *domain.User) UserResponse {
	favorites := u.FavoriteProperties
	if favorites == nil {
		favorites = []string{}
	}
	return UserResponse{
		IDUser:             u.ID.String(),
		Username:           u.Username,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Avatar:             u.Avatar,
		FavoriteProperties: favorites,
		Preferences: PreferencesResponse{
			Theme:         u.Preferences.Theme,
			Notifications: u.Preferences.Notifications,
			Language:      u.Preferences.Language,
		},
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

type AuthResponse struct {
	Token     string       `json:"token"`
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

type PingResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
