package http

import (
	"net/http"

	"cscx-api/internal/alert"
	pkgErrors "cscx-api/pkg/errors"
	"cscx-api/pkg/response"
)

var errMapping = response.ErrorMapping{
	alert.ErrAlertNotFound:       pkgErrors.NewHTTPError(40401, "Alert not found", http.StatusNotFound),
	alert.ErrSuppressionNotFound: pkgErrors.NewHTTPError(40402, "Suppression rule not found", http.StatusNotFound),
	alert.ErrInvalidAlertType:    pkgErrors.NewHTTPError(40001, "Invalid alert type", http.StatusBadRequest),
	alert.ErrInvalidStatus:       pkgErrors.NewHTTPError(40002, "Invalid status transition", http.StatusConflict),
	alert.ErrInvalidRating:       pkgErrors.NewHTTPError(40003, "Invalid feedback rating", http.StatusBadRequest),
	alert.ErrInvalidSuppression:  pkgErrors.NewHTTPError(40004, "Invalid suppression rule", http.StatusBadRequest),
	alert.ErrInvalidThresholds:   pkgErrors.NewHTTPError(40005, "Thresholds must satisfy immediate >= digest >= suppress", http.StatusBadRequest),
	alert.ErrInvalidSnoozeUntil:  pkgErrors.NewHTTPError(40006, "Snooze time must be in the future", http.StatusBadRequest),
	alert.ErrCustomerRequired:    pkgErrors.NewHTTPError(40007, "Customer id is required", http.StatusBadRequest),
	alert.ErrFieldRequired:       pkgErrors.NewHTTPError(40008, "Missing or malformed field", http.StatusBadRequest),
}
