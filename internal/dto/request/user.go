package request

type UpdateUserRequest struct {
	Firstname *string `json:"firstname,omitempty" validate:"omitempty,max=100"`
	Lastname  *string `json:"lastname,omitempty" validate:"omitempty,max=100"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Mobile    *string `json:"mobile,omitempty" validate:"omitempty,min=6,max=20"`
}

type SaveAddressRequest struct {
	Address string `json:"address" validate:"required,max=500"`
}

type WishlistRequest struct {
	ProductID string `json:"prodId" validate:"required,uuid"`
}
