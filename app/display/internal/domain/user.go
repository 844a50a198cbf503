package domain

// User 用户领域对象
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}
