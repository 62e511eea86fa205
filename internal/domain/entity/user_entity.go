package entity

// User is an account able to log in. Users are created by seeding only.
// Password holds an Argon2id PHC string (bcrypt hashes are still accepted on verify).
type User struct {
	Base
	Username  string `gorm:"size:50;not null;uniqueIndex"`
	Email     string `gorm:"size:100;not null;uniqueIndex"`
	Password  string `gorm:"size:255;not null"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
}

func (User) TableName() string { return "users" }

func NewUser(username, email, passwordHash, firstName, lastName string) *User {
	return &User{
		Base:      Base{ID: NewID()},
		Username:  username,
		Email:     email,
		Password:  passwordHash,
		FirstName: firstName,
		LastName:  lastName,
	}
}
