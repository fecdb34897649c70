package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/staynest/service-booking/internal/common/domain"
)

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// Paginated writes a 200 response with paging metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, gin.H{
		"data": items,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// Error maps a domain error kind to an HTTP status and writes the response.
func Error(c *gin.Context, err error) {
	status := statusForKind(domain.KindOf(err))

	body := gin.H{"error": err.Error()}
	var de *domain.Error
	if errors.As(err, &de) {
		body["kind"] = string(de.Kind)
		if len(de.Details) > 0 {
			body["details"] = de.Details
		}
	}

	c.JSON(status, body)
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation,
		domain.KindInvalidFormat,
		domain.KindInvertedRange,
		domain.KindPastCheckIn,
		domain.KindTooFarInFuture,
		domain.KindCapacityExceeded:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict,
		domain.KindIllegalTransition:
		return http.StatusConflict
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindListingInactive,
		domain.KindCancellationWindowClosed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
