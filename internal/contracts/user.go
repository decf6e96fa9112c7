package contracts

type UserUpdateNameRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type UserUpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type UserDeletionResponse struct {
	Message string `json:"message"`
}
