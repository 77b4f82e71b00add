package dto

// StudentRegistrationForm is the multipart payload of the registration form.
// The picture itself travels as the "picture" file part; PictureFID references
// a file uploaded beforehand through the upload endpoint.
type StudentRegistrationForm struct {
	FullName     string `form:"full_name" binding:"required"`
	Email        string `form:"email" binding:"required,email"`
	Password     string `form:"password" binding:"required"`
	MobileNumber string `form:"mobile_number" binding:"required"`
	Stream       int64  `form:"stream" binding:"required,gt=0"`
	JoiningYear  int    `form:"joining_year" binding:"required"`
	PassingYear  int    `form:"passing_year" binding:"required"`
	PictureFID   int64  `form:"picture_fid" binding:"omitempty,gt=0"`
}

// Values returns the submitted values as carried by the notification mails.
// The password is left out.
func (f *StudentRegistrationForm) Values() map[string]interface{} {
	values := map[string]interface{}{
		"full_name":     f.FullName,
		"email":         f.Email,
		"mobile_number": f.MobileNumber,
		"stream":        f.Stream,
		"joining_year":  f.JoiningYear,
		"passing_year":  f.PassingYear,
	}
	if f.PictureFID > 0 {
		values["picture"] = f.PictureFID
	}
	return values
}

// RegistrationResult describes a completed registration.
type RegistrationResult struct {
	AccountID   int64  `json:"accountId"`
	PictureFID  *int64 `json:"pictureFid,omitempty"`
	RedirectTo  string `json:"redirectTo"`
	Message     string `json:"message"`
	MailsQueued int    `json:"mailsQueued"`
}
