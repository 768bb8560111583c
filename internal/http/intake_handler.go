package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/advice"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/form"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/report"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/validator"
)

// IntakeHandler 将一个表单控制器暴露为本地 JSON 接口
type IntakeHandler struct {
	controller    *form.Controller
	predictor     form.Predictor
	catalog       advice.Catalog
	defaultFormat report.Format
	logger        *zap.Logger
}

func NewIntakeHandler(controller *form.Controller, predictor form.Predictor, catalog advice.Catalog, defaultFormat report.Format, logger *zap.Logger) *IntakeHandler {
	if catalog == nil {
		catalog = advice.Default
	}
	if defaultFormat == "" {
		defaultFormat = report.FormatPDF
	}
	return &IntakeHandler{
		controller:    controller,
		predictor:     predictor,
		catalog:       catalog,
		defaultFormat: defaultFormat,
		logger:        logger,
	}
}

// setFieldRequest PUT /intake/api/v1/form/fields
type setFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// GET /intake/api/v1/form
func (h *IntakeHandler) GetForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Ok(h.controller.Snapshot()))
}

// PUT /intake/api/v1/form/fields
// body: {"field":"Age","value":"45"}
// 字段校验错误不是请求错误：仍返回 200，错误体现在快照的 field_errors 中
func (h *IntakeHandler) SetField(w http.ResponseWriter, r *http.Request) {
	var req setFieldRequest
	if err := readBodyJSON(r, maxBodyBytes, &req); err != nil {
		h.logger.Debug("Rejected set-field body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	id, ok := domain.ParseFieldID(strings.TrimSpace(req.Field))
	if !ok {
		writeJSON(w, http.StatusBadRequest, Fail(fmt.Sprintf("unknown field %q", req.Field)))
		return
	}

	if _, err := h.controller.SetField(id, req.Value); err != nil {
		if errors.Is(err, form.ErrSubmitting) {
			writeJSON(w, http.StatusConflict, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(h.controller.Snapshot()))
}

// POST /intake/api/v1/form/submit
// - 422: 字段校验失败（result 为字段错误列表），不会调用预测服务
// - 409: 已有提交进行中，或本次提交在响应前被重置
// - 502: 预测服务失败（统一的通用提示）
// - 200: 成功，返回快照
func (h *IntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sub, err := h.controller.BeginSubmit()
	if err != nil {
		var fieldErrs *validator.Errors
		switch {
		case errors.As(err, &fieldErrs):
			writeJSON(w, http.StatusUnprocessableEntity, FailWith("please correct the highlighted fields", fieldErrs.List()))
		case errors.Is(err, form.ErrSubmitting):
			writeJSON(w, http.StatusConflict, Fail(err.Error()))
		default:
			h.logger.Error("BeginSubmit failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		}
		return
	}

	result, err := h.predictor.Predict(r.Context(), sub.ID, sub.Payload)
	if applied := h.controller.CompleteSubmit(sub, result, err); !applied {
		writeJSON(w, http.StatusConflict, FailWith("submission was reset before the response arrived", h.controller.Snapshot()))
		return
	}

	snap := h.controller.Snapshot()
	if snap.State == form.StateFailed {
		writeJSON(w, http.StatusBadGateway, FailWith(form.GenericFailureMessage, snap))
		return
	}
	writeJSON(w, http.StatusOK, Ok(snap))
}

// POST /intake/api/v1/form/reset
func (h *IntakeHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.controller.Reset()
	writeJSON(w, http.StatusOK, Ok(h.controller.Snapshot()))
}

// GET /intake/api/v1/form/advice
func (h *IntakeHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	result := h.controller.Result()
	if result == nil {
		writeJSON(w, http.StatusNotFound, Fail("no assessment result yet"))
		return
	}
	entry, err := h.catalog.Lookup(result.Message)
	if err != nil {
		h.logger.Warn("Advice lookup failed", zap.String("message", result.Message), zap.Error(err))
		writeJSON(w, http.StatusUnprocessableEntity, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(entry))
}

// GET /intake/api/v1/report?format=pdf|xlsx|md
// 文件名固定为 diabetes_risk_assessment.<ext>
func (h *IntakeHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	format := h.defaultFormat
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := report.ParseFormat(q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
			return
		}
		format = f
	}

	record, result, err := h.controller.ReportInputs()
	if err != nil {
		var fieldErrs *validator.Errors
		if errors.As(err, &fieldErrs) {
			writeJSON(w, http.StatusUnprocessableEntity, FailWith("the intake record is incomplete", fieldErrs.List()))
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, Fail(err.Error()))
		return
	}

	doc, err := report.Build(record, result, h.catalog)
	if err != nil {
		var unknown *advice.UnknownCategoryError
		if errors.As(err, &unknown) {
			h.logger.Warn("Report blocked by unknown outcome category", zap.String("category", unknown.Category))
			writeJSON(w, http.StatusUnprocessableEntity, Fail(err.Error()))
			return
		}
		h.logger.Error("Failed to compose report", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}

	data, err := report.Render(doc, format)
	if err != nil {
		h.logger.Error("Failed to render report", zap.String("format", string(format)), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to render report"))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Warn("Failed to write report response", zap.Error(err))
	}
}
