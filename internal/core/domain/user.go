package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTheme    = "light"
	DefaultLanguage = "en"

	RoleUser = "user"
)

// UserPreferences - пользовательские настройки интерфейса.
type UserPreferences struct {
	Theme         string
	Notifications bool
	Language      string
}

// DefaultPreferences - настройки нового пользователя.
func DefaultPreferences() UserPreferences {
	return UserPreferences{Theme: DefaultTheme, Notifications: true, Language: DefaultLanguage}
}

// User - основная доменная сущность пользователя
type User struct {
	ID                 uuid.UUID
	Username           string
	Email              string
	PasswordHash       string
	FirstName          string
	LastName           string
	Avatar             *string
	FavoriteProperties []string
	Preferences        UserPreferences
	Role               string
	IsActive           bool
	CreatedAt          time.Time
	LastLogin          *time.Time
}

// Claims - данные, которые зашиваются в JWT токен.
type Claims struct {
	UserID   uuid.UUID
	Username string
	Email    string
	Role     string
}

// RegisterData - данные для регистрации.
type RegisterData struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Validate повторяет ограничения формы регистрации.
func (d RegisterData) Validate() error {
	if len(strings.TrimSpace(d.Username)) < 3 {
		return NewValidationError("username", "must be at least 3 characters")
	}
	if !strings.Contains(d.Email, "@") {
		return NewValidationError("email", "must be a valid email address")
	}
	if len(d.Password) < 6 {
		return NewValidationError("password", "must be at least 6 characters")
	}
	if strings.TrimSpace(d.FirstName) == "" {
		return NewValidationError("firstName", "is required")
	}
	if strings.TrimSpace(d.LastName) == "" {
		return NewValidationError("lastName", "is required")
	}
	return nil
}

// NewUser создает нового пользователя. Хэширование пароля происходит здесь.
func NewUser(data RegisterData) (*User, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		ID:                 uuid.New(),
		Username:           strings.TrimSpace(data.Username),
		Email:              strings.TrimSpace(data.Email),
		PasswordHash:       string(hashedPassword),
		FirstName:          strings.TrimSpace(data.FirstName),
		LastName:           strings.TrimSpace(data.LastName),
		FavoriteProperties: []string{},
		Preferences:        DefaultPreferences(),
		Role:               RoleUser,
		IsActive:           true,
		CreatedAt:          time.Now().UTC(),
	}, nil
}

// CheckPassword сравнивает пароль с хэшем, хранящимся у пользователя.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// PreferencesUpdate - частичное обновление настроек.
// Отсутствующие поля сбрасываются в значения по умолчанию.
type PreferencesUpdate struct {
	Theme         *string
	Notifications *bool
	Language      *string
}

// Resolve превращает частичное обновление в полный набор настроек.
func (u PreferencesUpdate) Resolve() UserPreferences {
	prefs := DefaultPreferences()
	if u.Theme != nil {
		prefs.Theme = *u.Theme
	}
	if u.Notifications != nil {
		prefs.Notifications = *u.Notifications
	}
	if u.Language != nil {
		prefs.Language = *u.Language
	}
	return prefs
}

// ProfileUpdate - новые имя, фамилия и аватар.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Avatar    *string
}

// Normalize обрезает пробелы и проверяет обязательные поля.
// Пустой аватар превращается в nil.
func (u ProfileUpdate) Normalize() (ProfileUpdate, error) {
	out := ProfileUpdate{
		FirstName: strings.TrimSpace(u.FirstName),
		LastName:  strings.TrimSpace(u.LastName),
	}
	if out.FirstName == "" {
		return out, NewValidationError("firstName", "is required")
	}
	if out.LastName == "" {
		return out, NewValidationError("lastName", "is required")
	}
	if u.Avatar != nil && *u.Avatar != "" {
		avatar := *u.Avatar
		out.Avatar = &avatar
	}
	return out, nil
}
