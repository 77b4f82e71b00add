package models

// RoleType defines a role an account can hold
type RoleType string

const (
	RoleStudent       RoleType = "student"
	RoleAdministrator RoleType = "administrator"
)

// FileStatus marks whether an uploaded file survives temporary-file cleanup
type FileStatus int16

const (
	FileStatusTemporary FileStatus = 0
	FileStatusPermanent FileStatus = 1
)
