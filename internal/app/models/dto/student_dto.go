package dto

// StudentFilter holds the optional query-string filters of the student list.
// An empty value means the filter is not applied.
type StudentFilter struct {
	Stream      string `form:"stream" example:"3"`
	JoiningYear string `form:"joining_year" example:"2023"`
	PassingYear string `form:"passing_year" example:"2027"`
	UsersPhone  string `form:"users_phone" example:"+15555550100"`
}

// StudentRecord is one entry of the student list response. Field values are
// rendered the way they are stored, so years come back as strings.
type StudentRecord struct {
	Name          string  `json:"name" example:"Jane Doe"`
	Email         string  `json:"email" example:"jane@example.edu"`
	JoiningYear   *string `json:"joining_year" example:"2023"`
	PassingYear   *string `json:"passing_year" example:"2027"`
	StudentStream *string `json:"student_stream" example:"Computer Science"`
	UsersPhone    *string `json:"users_phone" example:"+15555550100"`
}
