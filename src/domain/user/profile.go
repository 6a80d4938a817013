package user

// ProfileForm is the profile edit schema
type ProfileForm struct {
	Name   string `json:"name" validate:"required,min=3,max=30,alpha_space"`
	Email  string `json:"email" validate:"required,email"`
	Mobile string `json:"mobile" validate:"omitempty,mobile_in"`
}
