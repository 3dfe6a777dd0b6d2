package request

type UpdateProfileRequest struct {
	FirstName string  `json:"firstName" validate:"required,min=1,max=50"`
	LastName  string  `json:"lastName" validate:"required,min=1,max=50"`
	BirthDate *string `json:"birthDate" validate:"omitempty,datetime=2006-01-02"`
	Bio       *string `json:"bio" validate:"omitempty,max=1000"`
	Country   *string `json:"country" validate:"omitempty,iso3166_1_alpha2"`
	AvatarURL *string `json:"avatarUrl" validate:"omitempty,url,max=500"`
}
