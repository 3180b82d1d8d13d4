package models

// User is a store account credential. Only the Argon2id hash is
// persisted; plaintext passwords exist solely in the seed file.
type User struct {
	Username     string `gorm:"column:username;primaryKey"`
	PasswordHash string `gorm:"column:password_hash;not null"`
	Store        string `gorm:"column:store;not null"`
}

func (User) TableName() string { return "users" }
