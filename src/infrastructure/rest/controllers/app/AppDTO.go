package app

import (
	domainUser "go-campzeo-client/src/domain/user"
)

type SidebarRequest struct {
	Open *bool `json:"open" binding:"required"`
}

type SidebarResponse struct {
	Open bool `json:"open"`
}

type ProfileRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

func (r *ProfileRequest) toForm() *domainUser.ProfileForm {
	return &domainUser.ProfileForm{
		Name:   r.Name,
		Email:  r.Email,
		Mobile: r.Mobile,
	}
}
