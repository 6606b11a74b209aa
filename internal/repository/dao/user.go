package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrRoleNotFound    = errors.New("role not found")
	ErrChapterNotFound = errors.New("chapter not found")
)

type Role struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"unique;not null"`
	Level int    `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Chapter struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"not null"`
	Code string `gorm:"unique;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type User struct {
	ID uint `gorm:"primaryKey"`

	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`
	Name     string `gorm:"not null"`

	RoleID uint `gorm:"not null;index"`
	Role   Role `gorm:"foreignKey:RoleID"`

	ChapterID *uint    `gorm:"index"`
	Chapter   *Chapter `gorm:"foreignKey:ChapterID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := conn(ctx, d.db).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_users_email"`) {
			return User{}, ErrUserEmailExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User
	result := conn(ctx, d.db).Preload("Role").Preload("Chapter").First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User
	result := conn(ctx, d.db).Preload("Role").Preload("Chapter").Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// FindByRoleNames returns every user holding one of the given roles,
// with the role record joined in.
func (d *UserDAO) FindByRoleNames(ctx context.Context, names []string) ([]User, error) {
	var users []User
	result := conn(ctx, d.db).
		Preload("Role").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name IN ?", names).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) FindByRoleLevel(ctx context.Context, level int) ([]User, error) {
	var users []User
	result := conn(ctx, d.db).
		Preload("Role").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.level = ?", level).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) FindRoleByName(ctx context.Context, name string) (Role, error) {
	var role Role
	result := conn(ctx, d.db).Where("name = ?", name).First(&role)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Role{}, ErrRoleNotFound
		}

		return Role{}, result.Error
	}

	return role, nil
}

func (d *UserDAO) FindChapterByID(ctx context.Context, id uint) (Chapter, error) {
	var chapter Chapter
	result := conn(ctx, d.db).First(&chapter, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Chapter{}, ErrChapterNotFound
		}

		return Chapter{}, result.Error
	}

	return chapter, nil
}

// LockByID takes a row lock on a user for the rest of the surrounding
// transaction. Used to serialize mapping changes per proctor.
func (d *UserDAO) LockByID(ctx context.Context, id uint) error {
	var user User
	result := conn(ctx, d.db).Raw("SELECT id FROM users WHERE id = ? FOR UPDATE", id).Scan(&user)
	if result.Error != nil {
		return result.Error
	}
	if user.ID == 0 {
		return ErrUserNotFound
	}

	return nil
}
