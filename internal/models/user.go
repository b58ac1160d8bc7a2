package models

type User struct {
	ID             uint   `gorm:"primaryKey" json:"id" example:"1"`
	Username       string `gorm:"uniqueIndex;not null" json:"username" example:"johndoe"`
	Email          string `gorm:"uniqueIndex;not null" json:"email" example:"john@example.com"`
	HashedPassword string `gorm:"not null" json:"-"`
	IsActive       bool   `gorm:"default:true" json:"is_active" example:"true"`

	Predictions []PredictionLog `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}
