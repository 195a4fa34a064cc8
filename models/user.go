package models

import (
	"errors"
	"strings"
	"time"

	"galeria/db"
	"galeria/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"

	saltSize = 60
)

type User struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `json:"-"`
	UpdatedAt int64  `json:"-"`
	Name      string `gorm:"type:varchar(100);index:uniq_name,unique" json:"name"`
	Email     string `gorm:"type:varchar(150)" json:"email,omitempty"`
	Avatar    string `gorm:"type:varchar(300)" json:"avatar"`
	Role      Role   `gorm:"type:tinyint(1);not null" json:"role"`
	// Approval gate: only APPROVED users count as authenticated viewers
	Status    string     `gorm:"type:varchar(10);not null" json:"status"`
	Birthdate *time.Time `json:"birthdate,omitempty"`
	Password  string     `gorm:"type:varchar(128)" json:"-"`
	PassSalt  string     `gorm:"type:varchar(200)" json:"-"`
}

func (u *User) Approved() bool {
	return u != nil && u.Status == StatusApproved
}

func (u *User) SetPassword(plainTextPassword string) {
	u.PassSalt = utils.RandSalt(saltSize)
	u.Password = utils.Sha512String(plainTextPassword + u.PassSalt)
}

// UserPatch carries optional field changes for UserSave.
type UserPatch struct {
	Name      *string    `json:"name,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Avatar    *string    `json:"avatar,omitempty"`
	Role      *Role      `json:"role,omitempty"`
	Status    *string    `json:"status,omitempty"`
	Birthdate *time.Time `json:"birthdate,omitempty"`
	Password  *string    `json:"password,omitempty"`
}

// UserRegister creates a self-registered account: READER, PENDING, with a
// generated email and avatar. The account takes part in visibility checks
// only after an admin approves it.
func UserRegister(name, plainTextPassword string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validation("name", "must not be empty")
	}
	u := User{
		Name:   name,
		Email:  strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@galeria.local",
		Avatar: "https://i.pravatar.cc/150?u=" + uuid.NewString(),
		Role:   RoleReader,
		Status: StatusPending,
	}
	if plainTextPassword != "" {
		u.SetPassword(plainTextPassword)
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&User{}).Where("lower(name) = ?", strings.ToLower(name)).Count(&count)
		if count > 0 {
			return validation("name", "already taken")
		}
		return tx.Create(&u).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UserCreate is the administrative creation path - the account is APPROVED
// right away with the given role.
func UserCreate(name, email, plainTextPassword string, role Role) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, validation("name", "must not be empty")
	}
	if !role.Valid() {
		return nil, validation("role", "unknown tier")
	}
	u := User{
		Name:   strings.TrimSpace(name),
		Email:  email,
		Avatar: "https://i.pravatar.cc/150?u=" + uuid.NewString(),
		Role:   role,
		Status: StatusApproved,
	}
	if plainTextPassword != "" {
		u.SetPassword(plainTextPassword)
	}
	if err := db.Instance.Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UserLogin is a stand-in lookup, not a security system: the account must
// exist and be APPROVED. The password is verified only when a hash is
// stored (seeded accounts may have none).
func UserLogin(name, plainTextPassword string) (*User, bool) {
	var u User
	result := db.Instance.First(&u, "lower(name) = ?", strings.ToLower(name))
	if result.Error != nil {
		return nil, false
	}
	if !u.Approved() {
		return nil, false
	}
	if u.Password != "" && u.Password != utils.Sha512String(plainTextPassword+u.PassSalt) {
		return nil, false
	}
	return &u, true
}

func UserByID(id uint64) *User {
	var u User
	if db.Instance.First(&u, id).Error != nil {
		return nil
	}
	return &u
}

func UsersAll() []User {
	users := []User{}
	db.Instance.Order("created_at ASC, id ASC").Find(&users)
	return users
}

func UsersWithBirthdays() []User {
	users := []User{}
	db.Instance.Where("birthdate IS NOT NULL AND status = ?", StatusApproved).Find(&users)
	return users
}

func adminMasterCount(tx *gorm.DB) int64 {
	var count int64
	tx.Model(&User{}).Where("role = ? AND status = ?", RoleAdminMaster, StatusApproved).Count(&count)
	return count
}

// UserSave applies a patch to an existing user. Changing the role or the
// status of the last ADMIN_MASTER is rejected, leaving the user unchanged -
// the user may not demote themself out of ADMIN_MASTER either.
func UserSave(id uint64, patch UserPatch) (*User, error) {
	var user User
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		demotesRole := patch.Role != nil && *patch.Role != RoleAdminMaster
		revokesStatus := patch.Status != nil && *patch.Status != StatusApproved
		if user.Role == RoleAdminMaster && user.Approved() && (demotesRole || revokesStatus) {
			if adminMasterCount(tx) <= 1 {
				return ErrPermissionDenied
			}
		}
		if patch.Role != nil && !patch.Role.Valid() {
			return validation("role", "unknown tier")
		}
		if patch.Status != nil && *patch.Status != StatusPending && *patch.Status != StatusApproved {
			return validation("status", "must be PENDING or APPROVED")
		}
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return validation("name", "must not be empty")
			}
			var count int64
			tx.Model(&User{}).Where("lower(name) = ? AND id <> ?", strings.ToLower(name), user.ID).Count(&count)
			if count > 0 {
				return validation("name", "already taken")
			}
			user.Name = name
		}
		if patch.Email != nil {
			user.Email = *patch.Email
		}
		if patch.Avatar != nil {
			user.Avatar = *patch.Avatar
		}
		if patch.Role != nil {
			user.Role = *patch.Role
		}
		if patch.Status != nil {
			user.Status = *patch.Status
		}
		if patch.Birthdate != nil {
			user.Birthdate = patch.Birthdate
		}
		if patch.Password != nil && *patch.Password != "" {
			user.SetPassword(*patch.Password)
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserDelete removes an account. Deleting the last ADMIN_MASTER is rejected.
func UserDelete(id uint64) (bool, error) {
	deleted := false
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		var user User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if user.Role == RoleAdminMaster && user.Approved() && adminMasterCount(tx) <= 1 {
			return ErrPermissionDenied
		}
		if err := tx.Delete(&User{}, id).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}
