package dto

// StreamResponse is a stream vocabulary term as exposed by the API
type StreamResponse struct {
	ID   int64  `json:"id" example:"3"`
	Name string `json:"name" example:"Computer Science"`
	URL  string `json:"url" example:"/streams/computer-science"`
}
