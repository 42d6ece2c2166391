package models

// Roles carried in token claims. Each role maps to exactly one principal table.
const (
	RoleStudent = "STUDENT"
	RoleVendor  = "VENDOR"
	RoleAdmin   = "ADMIN"
)
