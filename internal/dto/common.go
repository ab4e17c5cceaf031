package dto

// PageParams defines the offset pagination query parameters shared by the
// listing endpoints.
type PageParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}
