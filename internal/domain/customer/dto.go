// internal/domain/customer/dto.go
package customer

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone" binding:"max=30"`
	Company  string `json:"company" binding:"max=255"`
	Address  string `json:"address" binding:"max=500"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=30"`
	Company *string `json:"company" binding:"omitempty,max=255"`
	Address *string `json:"address" binding:"omitempty,max=500"`
}
