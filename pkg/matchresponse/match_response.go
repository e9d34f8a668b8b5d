package matchresponse

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10" // For handling validation errors
)

// --- Structs for Standardized JSON Response Bodies ---

// jsonSuccessResponse is the structure for successful responses.
type jsonSuccessResponse struct {
	Status  string      `json:"status"`            // Typically "success"
	Message string      `json:"message,omitempty"` // Optional descriptive message
	Data    interface{} `json:"data,omitempty"`    // The actual data payload
}

// jsonErrorResponse is the structure for error responses.
type jsonErrorResponse struct {
	Status  string      `json:"status"`           // "error" or "fail"
	Kind    string      `json:"kind,omitempty"`   // scoring error kind, e.g. illegal_transition
	Message string      `json:"message"`          // Error message
	Code    int         `json:"code"`             // HTTP status code
	Errors  interface{} `json:"errors,omitempty"` // Detailed errors, e.g., for validation
}

// Envelope documents the response shape for swagger.
type Envelope struct {
	Status  string      `json:"status" example:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorBody documents the error shape for swagger.
type ErrorBody struct {
	Status  string            `json:"status" example:"error"`
	Kind    string            `json:"kind,omitempty" example:"illegal_transition"`
	Message string            `json:"message"`
	Code    int               `json:"code" example:"409"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// --- Public Response Helper Functions ---

// ErrorResponse sends a standardized error JSON response.
// It's used for general errors.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	KindErrorResponse(c, statusCode, "", message)
}

// KindErrorResponse is ErrorResponse with the machine-readable error kind the
// scoring engine reported.
func KindErrorResponse(c *gin.Context, statusCode int, kind, message string) {
	statusText := "error"
	if statusCode >= http.StatusInternalServerError {
		statusText = "fail" // Differentiate client errors from server failures
	}
	c.AbortWithStatusJSON(statusCode, jsonErrorResponse{
		Status:  statusText,
		Kind:    kind,
		Message: message,
		Code:    statusCode,
	})
}

// formatValidationErrors converts validator.ValidationErrors into a map.
func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	formattedErrors := make(map[string]string)
	for _, err := range errs {
		fieldKey := strings.ToLower(err.Field())
		var errMsg string
		switch err.Tag() {
		case "required":
			errMsg = fmt.Sprintf("The %s field is required.", err.Field())
		case "min":
			errMsg = fmt.Sprintf("The %s field must be at least %s.", err.Field(), err.Param())
		case "max":
			errMsg = fmt.Sprintf("The %s field must not exceed %s.", err.Field(), err.Param())
		case "oneof":
			errMsg = fmt.Sprintf("The %s field must be one of the following: %s.", err.Field(), strings.ReplaceAll(err.Param(), " ", ", "))
		case "nefield":
			errMsg = fmt.Sprintf("The %s field must differ from %s.", err.Field(), err.Param())
		case "dive":
			errMsg = fmt.Sprintf("The %s field contains an invalid entry.", err.Field())
		default:
			errMsg = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", err.Field(), err.Tag())
		}
		formattedErrors[fieldKey] = errMsg
	}
	return formattedErrors
}

// ValidationErrorResponse sends a structured JSON response for validation errors
// originating from `c.ShouldBindJSON()` or similar.
func ValidationErrorResponse(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(http.StatusBadRequest, jsonErrorResponse{
			Status:  "error",
			Kind:    "validation_error",
			Message: "Validation failed. Please check your input.",
			Code:    http.StatusBadRequest,
			Errors:  formatValidationErrors(ve),
		})
		return
	}
	// For other binding errors (e.g., malformed JSON)
	KindErrorResponse(c, http.StatusBadRequest, "validation_error", "Invalid request payload: "+err.Error())
}

// SuccessResponse sends a standardized success JSON response.
// If `data` is `gin.H` and contains a "message" key (string), it's used as the top-level message,
// and the rest of `gin.H` becomes the `data` payload. Otherwise, the whole `data` argument becomes the payload.
func SuccessResponse(c *gin.Context, statusCode int, responseData interface{}) {
	payload := jsonSuccessResponse{
		Status: "success",
	}

	if gh, ok := responseData.(gin.H); ok {
		if msgStr, isStr := gh["message"].(string); isStr {
			payload.Message = msgStr
			dataMap := make(gin.H)
			for k, v := range gh {
				if k != "message" {
					dataMap[k] = v
				}
			}
			if len(dataMap) > 0 {
				payload.Data = dataMap
			}
		} else {
			payload.Data = responseData
		}
	} else if responseData != nil {
		payload.Data = responseData
	}

	c.JSON(statusCode, payload)
}
