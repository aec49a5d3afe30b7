package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
)

// AdminHandler 管理後台的使用者管理與稽核查詢
type AdminHandler struct {
	userService  service.IUserService
	auditService service.IAuditService
}

func NewAdminHandler(userService service.IUserService, auditService service.IAuditService) *AdminHandler {
	if userService == nil {
		panic("userService cannot be nil")
	}
	if auditService == nil {
		panic("auditService cannot be nil")
	}
	return &AdminHandler{
		userService:  userService,
		auditService: auditService,
	}
}

// @Summary list users
// @Tags admin
// @Produce json
// @Param page query int false "page"
// @Param page_size query int false "page size"
// @Success 200 {object} api.Response{data=dto.Page[dto.UserDTO]} "success"
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 10)

	users, total, err := h.userService.ListUsers(r.Context(), page, pageSize)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.NewPage(dto.ConvertUserModelsToDTO(users), total, page, pageSize), "")
}

// @Summary enable or disable user
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "user id"
// @Param active body dto.UpdateUserActiveDTO true "target state"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.Response "user not found"
// @Router /admin/users/{id}/active [put]
func (h *AdminHandler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var activeDTO dto.UpdateUserActiveDTO
	if err := json.NewDecoder(r.Body).Decode(&activeDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(activeDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, err.Error())
		return
	}

	if err := h.userService.SetUserActive(r.Context(), id, *activeDTO.IsActive); err != nil {
		api.HandleServiceError(w, err)
		return
	}

	h.auditService.Record(r.Context(), p, "user.set_active", "user", id.String(),
		"is_active="+strconv.FormatBool(*activeDTO.IsActive))

	api.SuccessJSON(w, nil, "user updated")
}

// @Summary list audit logs
// @Tags admin
// @Produce json
// @Param page query int false "page"
// @Param page_size query int false "page size"
// @Success 200 {object} api.Response{data=[]dto.AuditLogDTO} "success"
// @Router /admin/audit [get]
func (h *AdminHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.auditService.ListLogs(r.Context(),
		queryInt(r, "page", 1), queryInt(r, "page_size", 20))
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertAuditLogModelsToDTO(logs), "")
}
