package dto

// FileUploadResponse is returned after a managed file upload
type FileUploadResponse struct {
	FID      int64  `json:"fid" example:"12"`
	FileName string `json:"filename" example:"me.png"`
	URL      string `json:"url" example:"http://localhost:8080/uploads/profile_pictures/0b8c.png"`
	MimeType string `json:"mime" example:"image/png"`
	Size     int64  `json:"size" example:"20480"`
}
