package leave

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	documentField       = "medical_document"
	idempotencyCacheTTL = 24 * time.Hour
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("leave request binding failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, err.Error())
}

// writeDeliveryError reports a saved change whose e-mail failed. The saved
// request travels in the error details.
func (h *Handler) writeDeliveryError(c *gin.Context, err error, resp LeaveResponse) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Error("leave notification failed",
		zap.String("leave_id", resp.ID),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, resp)
}

func (h *Handler) Submit(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	var (
		req SubmitLeaveRequest
		doc *Document
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&req); err != nil {
			h.writeBindError(c, err)
			return
		}
		fileHeader, err := c.FormFile(documentField)
		switch {
		case err == nil:
			f, openErr := fileHeader.Open()
			if openErr != nil {
				h.writeServiceError(c, apperror.InvalidField("Medical Document"))
				return
			}
			defer f.Close()
			doc = &Document{Name: fileHeader.Filename, Size: fileHeader.Size, Content: f}
		case errors.Is(err, http.ErrMissingFile):
		default:
			h.writeServiceError(c, apperror.InvalidField("Medical Document"))
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), req, doc)
	if err != nil {
		if leaveerrors.IsNotificationFailed(err) {
			// the request is saved, so a retry must replay it instead of booking again
			h.cacheSubmission(c, cacheKey, resp)
			h.writeDeliveryError(c, err, resp)
			return
		}
		h.writeServiceError(c, err)
		return
	}

	h.cacheSubmission(c, cacheKey, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) cacheSubmission(c *gin.Context, cacheKey any, resp LeaveResponse) {
	ck, ok := cacheKey.(string)
	if h.rdb == nil || !ok || ck == "" || resp.ID == "" {
		return
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := h.rdb.Set(c.Request.Context(), ck, payload, idempotencyCacheTTL).Err(); err != nil {
		h.logger.Warn("cache idempotent response failed", zap.String("key", ck), zap.Error(err))
	}
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writePage(c, resp)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByManager(c *gin.Context) {
	resp, err := h.service.GetByManager(c.Request.Context(), c.Param("manager_id"), c.Query("status"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writePage(c, resp)
}

func (h *Handler) GetByEmployee(c *gin.Context) {
	resp, err := h.service.GetByEmployee(c.Request.Context(), c.Param("employee_id"), c.Query("status"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	h.writePage(c, resp)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	resp, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		if leaveerrors.IsNotificationFailed(err) {
			h.writeDeliveryError(c, err, resp)
			return
		}
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		if leaveerrors.IsNotificationFailed(err) {
			h.writeDeliveryError(c, err, resp)
			return
		}
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Leave request deleted successfully"}, nil)
}

func (h *Handler) Balances(c *gin.Context) {
	year := 0
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			h.writeServiceError(c, apperror.InvalidField("Year"))
			return
		}
		year = parsed
	}

	resp, err := h.service.Balances(c.Request.Context(), c.Param("employee_id"), year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DocumentSize(c *gin.Context) {
	ref := c.Query("ref")
	size, err := h.service.DocumentSize(c.Request.Context(), ref)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, DocumentSizeResponse{Ref: ref, Size: size}, nil)
}

func (h *Handler) writePage(c *gin.Context, items []LeaveResponse) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	data, meta := response.Paginate(items, page, pageSize)
	response.Success(c, http.StatusOK, data, &meta)
}
