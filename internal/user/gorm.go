package user

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Row is the gorm model behind GormStore. EmailKey holds the lower-cased
// email and carries the unique index.
type Row struct {
	ID           uint64    `gorm:"primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"not null"`
	EmailKey     string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;default:now()"`
}

func (Row) TableName() string { return "users" }

func (r Row) user() User {
	return User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}

// GormStore persists users in Postgres. The DB must be opened with
// TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) Create(ctx context.Context, in NewUser) (User, error) {
	r := Row{
		Name:         in.Name,
		Email:        in.Email,
		EmailKey:     EmailKey(in.Email),
		PasswordHash: in.PasswordHash,
		CreatedAt:    time.Now(),
	}
	if err := s.DB.WithContext(ctx).Create(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return User{}, ErrDuplicateEmail
		}
		return User{}, err
	}
	return r.user(), nil
}

func (s *GormStore) FindByID(ctx context.Context, id uint64) (User, error) {
	var r Row
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return User{}, notFound(err)
	}
	return r.user(), nil
}

func (s *GormStore) FindByEmail(ctx context.Context, email string) (User, error) {
	var r Row
	if err := s.DB.WithContext(ctx).Where("email_key = ?", EmailKey(email)).First(&r).Error; err != nil {
		return User{}, notFound(err)
	}
	return r.user(), nil
}

func (s *GormStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&Row{}).Where("email_key = ?", EmailKey(email)).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *GormStore) List(ctx context.Context) ([]User, error) {
	var rows []Row
	if err := s.DB.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]User, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.user())
	}
	return out, nil
}

func (s *GormStore) Update(ctx context.Context, id uint64, p Patch) (User, error) {
	var out User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r Row
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&r).Error; err != nil {
			return notFound(err)
		}

		if p.Email != nil {
			key := EmailKey(*p.Email)
			var n int64
			if err := tx.Model(&Row{}).Where("email_key = ? AND id <> ?", key, id).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return ErrDuplicateEmail
			}
			r.Email = *p.Email
			r.EmailKey = key
		}
		if p.Name != nil {
			r.Name = *p.Name
		}
		if p.PasswordHash != nil {
			r.PasswordHash = *p.PasswordHash
		}

		if err := tx.Save(&r).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateEmail
			}
			return err
		}
		out = r.user()
		return nil
	})
	return out, err
}

func (s *GormStore) Delete(ctx context.Context, id uint64) (bool, error) {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&Row{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

var _ Store = (*GormStore)(nil)
