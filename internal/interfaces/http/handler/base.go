// Package handler holds the gin handlers of the stock ledger API.
package handler

import (
	"errors"
	"net/http"

	"github.com/erp/stockledger/internal/domain/shared"
	"github.com/erp/stockledger/internal/infrastructure/logger"
	"github.com/erp/stockledger/internal/infrastructure/telemetry"
	"github.com/erp/stockledger/internal/interfaces/http/dto"
	"github.com/erp/stockledger/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.OK(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	f := shared.Filter{Page: page, PageSize: pageSize}.Normalize()
	c.JSON(http.StatusOK, dto.Page(data, total, f.Page, f.PageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.OK(data))
}

// Error sends an error envelope with the status derived from code
func (h *BaseHandler) Error(c *gin.Context, code, message string, details map[string]any) {
	c.Set(middleware.ErrorCodeKey, code)
	c.JSON(dto.GetHTTPStatus(code), dto.Fail(code, message).
		WithRequest(middleware.GetRequestID(c), telemetry.GetTraceID(c.Request.Context())).
		WithDetails(details))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message, nil)
}

// HandleError maps err onto the envelope. Domain errors keep their code and
// details, binding errors become 400s and anything else is logged as a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, domainErr.Code, domainErr.Message, domainErr.Details)
		return
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		c.Set(middleware.ErrorCodeKey, dto.ErrCodeValidation)
		c.JSON(http.StatusBadRequest, dto.Fail(dto.ErrCodeValidation, "Request validation failed").
			WithRequest(middleware.GetRequestID(c), telemetry.GetTraceID(c.Request.Context())).
			WithFields(middleware.ValidationDetails(err)))
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled error", zap.Error(err))
	h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred", nil)
}

// bindJSON binds the body into req, answering 400 on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.handleBindError(c, err)
		return false
	}
	return true
}

// bindQuery binds query parameters into req, answering 400 on failure
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		h.handleBindError(c, err)
		return false
	}
	return true
}

func (h *BaseHandler) handleBindError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		h.HandleError(c, err)
		return
	}
	h.BadRequest(c, err.Error())
}

// pathID parses the :id path parameter, answering 400 when it is not a UUID
func (h *BaseHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid id: must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// actorOr returns actor, falling back to the X-Actor header
func actorOr(c *gin.Context, actor string) string {
	if actor != "" {
		return actor
	}
	return c.GetHeader(middleware.HeaderActor)
}

// queryUUIDs parses optional UUID query parameters into their targets,
// answering 400 on the first malformed one
func (h *BaseHandler) queryUUIDs(c *gin.Context, params map[string]**uuid.UUID) bool {
	for name, target := range params {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid "+name+": must be a UUID")
			return false
		}
		*target = &id
	}
	return true
}

// requireQueryUUIDs is queryUUIDs for parameters that must be present
func (h *BaseHandler) requireQueryUUIDs(c *gin.Context, params map[string]*uuid.UUID) bool {
	for name, target := range params {
		id, err := uuid.Parse(c.Query(name))
		if err != nil {
			h.BadRequest(c, name+" is required and must be a UUID")
			return false
		}
		*target = id
	}
	return true
}
