package response

const (
	DefaultErrorMessage = "Something went wrong"
	MessageSuccess      = "Success"

	ValidationErrorCode = 400
	ValidationErrorMsg  = "Validation error"

	PermissionErrorCode = 403
	PermissionErrorMsg  = "You don't have permission to do this"

	InternalServerErrorCode = 500
)
