package dto

// CreateDepartmentRequest creates a new department
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// DepartmentResponse represents a department in API responses
type DepartmentResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Computer Engineering"`
	Code string `json:"code" example:"CENG"`
}
