package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/validator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// State 表单提交生命周期状态
type State string

const (
	StateEditing    State = "Editing"
	StateSubmitting State = "Submitting"
	StateSucceeded  State = "Succeeded"
	StateFailed     State = "Failed"
)

// GenericFailureMessage is shown for every submission failure, whatever the cause.
const GenericFailureMessage = "Unable to process your request. Please check your connection and try again."

var (
	// ErrSubmitting 已有提交进行中（提交入口在此状态下不可用）
	ErrSubmitting = errors.New("a submission is already in progress")
	// ErrUnknownField 字段名不存在
	ErrUnknownField = errors.New("unknown field")
)

// Predictor 远程预测服务（由 service.PredictionClient 实现）
type Predictor interface {
	Predict(ctx context.Context, submissionID string, payload domain.PredictionPayload) (*domain.PredictionResult, error)
}

// Failure 提交失败：Message 面向用户，Cause 保留原始错误用于诊断
type Failure struct {
	Message string
	Cause   error
}

// Submission 一次已通过校验、进入 Submitting 状态的提交
type Submission struct {
	ID         string
	Record     domain.IntakeRecord
	Payload    domain.PredictionPayload
	generation uint64
}

// Controller 表单状态控制器：唯一持有录入值与提交生命周期
type Controller struct {
	mu     sync.Mutex
	logger *zap.Logger

	values      domain.RawRecord
	fieldErrors map[domain.FieldID]*validator.FieldError

	state      State
	result     *domain.PredictionResult
	failure    *Failure
	submitted  *domain.IntakeRecord // 当前结果对应的记录
	generation uint64               // 每次提交/重置递增，用于丢弃过期响应
}

// NewController 创建控制器（初始状态 Editing，字段为默认值）
func NewController(logger *zap.Logger) *Controller {
	return &Controller{
		logger:      logger,
		values:      defaults(),
		fieldErrors: make(map[domain.FieldID]*validator.FieldError),
		state:       StateEditing,
	}
}

// SetField 更新字段值并立即执行字段级校验，返回该字段当前的错误（nil 表示通过）
func (c *Controller) SetField(id domain.FieldID, value string) (*validator.FieldError, error) {
	if _, ok := fieldInfo[id]; !ok {
		return nil, ErrUnknownField
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		return nil, ErrSubmitting
	}

	c.values[id] = value
	fe := validator.ValidateField(id, value, true)
	if fe != nil {
		c.fieldErrors[id] = fe
	} else {
		delete(c.fieldErrors, id)
	}
	if id == domain.FieldGender {
		c.revalidatePregnancies()
	}
	return fe, nil
}

// revalidatePregnancies 随 Gender 变化同步 Pregnancies 的错误：隐藏时清除，重新可见时按旧值重新校验
func (c *Controller) revalidatePregnancies() {
	if !IsVisible(c.values, domain.FieldPregnancies) {
		delete(c.fieldErrors, domain.FieldPregnancies)
		return
	}
	if fe := validator.ValidateField(domain.FieldPregnancies, c.values[domain.FieldPregnancies], true); fe != nil {
		c.fieldErrors[domain.FieldPregnancies] = fe
	} else {
		delete(c.fieldErrors, domain.FieldPregnancies)
	}
}

// BeginSubmit 聚合校验当前可见字段并进入 Submitting 状态。
// 校验失败时保持 Editing 并返回 *validator.Errors。
func (c *Controller) BeginSubmit() (Submission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		return Submission{}, ErrSubmitting
	}

	rec, errs := validator.Validate(c.collect())
	if errs != nil {
		c.fieldErrors = errs.Fields
		c.logger.Debug("Submission blocked by field errors",
			zap.Int("error_count", len(errs.Fields)),
		)
		return Submission{}, errs
	}

	c.fieldErrors = make(map[domain.FieldID]*validator.FieldError)
	c.result = nil
	c.failure = nil
	c.submitted = nil
	c.generation++
	c.state = StateSubmitting

	sub := Submission{
		ID:         uuid.NewString(),
		Record:     rec,
		Payload:    rec.Payload(),
		generation: c.generation,
	}
	c.logger.Info("Submission started",
		zap.String("submission_id", sub.ID),
		zap.String("gender", sub.Payload.Gender),
		zap.Float64("pregnancies", sub.Payload.Pregnancies),
	)
	return sub, nil
}

// CompleteSubmit 应用提交结果。提交已被重置作废时丢弃响应并返回 false。
func (c *Controller) CompleteSubmit(sub Submission, result *domain.PredictionResult, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateSubmitting || sub.generation != c.generation {
		c.logger.Warn("Discarding stale prediction response",
			zap.String("submission_id", sub.ID),
			zap.String("state", string(c.state)),
			zap.Error(err),
		)
		return false
	}

	if err == nil && result == nil {
		err = errors.New("empty prediction result")
	}
	if err != nil {
		c.state = StateFailed
		c.failure = &Failure{Message: GenericFailureMessage, Cause: err}
		c.logger.Error("Submission failed",
			zap.String("submission_id", sub.ID),
			zap.Error(err),
		)
		return true
	}

	r := *result
	rec := sub.Record
	c.state = StateSucceeded
	c.result = &r
	c.submitted = &rec
	c.logger.Info("Submission succeeded",
		zap.String("submission_id", sub.ID),
		zap.String("message", r.Message),
		zap.String("confidence", r.Confidence),
	)
	return true
}

// Submit 完整执行一次提交：校验、调用预测服务、更新状态。
// 返回值只反映校验/并发错误；预测服务失败体现在 Failed 状态中。
func (c *Controller) Submit(ctx context.Context, p Predictor) error {
	sub, err := c.BeginSubmit()
	if err != nil {
		return err
	}
	result, err := p.Predict(ctx, sub.ID, sub.Payload)
	c.CompleteSubmit(sub, result, err)
	return nil
}

// Reset 回到 Editing：清空结果与错误，字段恢复默认值（不是用户之前的输入）。
// 进行中的提交被作废，其响应到达后会被丢弃。
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSubmitting {
		c.logger.Info("Reset during submission, pending response will be discarded")
	}
	c.values = defaults()
	c.fieldErrors = make(map[domain.FieldID]*validator.FieldError)
	c.result = nil
	c.failure = nil
	c.submitted = nil
	c.generation++
	c.state = StateEditing
}

// ReportInputs 返回组装报告所需的记录与结果。
// Succeeded 时使用提交时的记录；否则校验当前值，结果为 nil。
func (c *Controller) ReportInputs() (domain.IntakeRecord, *domain.PredictionResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateSucceeded && c.result != nil && c.submitted != nil {
		r := *c.result
		return *c.submitted, &r, nil
	}
	rec, errs := validator.Validate(c.collect())
	if errs != nil {
		return domain.IntakeRecord{}, nil, errs
	}
	return rec, nil, nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CanSubmit reports whether the submit action is available (false exactly while Submitting).
func (c *Controller) CanSubmit() bool {
	return c.State() != StateSubmitting
}

func (c *Controller) Result() *domain.PredictionResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.result == nil {
		return nil
	}
	r := *c.result
	return &r
}

func (c *Controller) Failure() *Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failure == nil {
		return nil
	}
	f := *c.failure
	return &f
}

// Values returns a copy of the raw values, hidden fields included.
func (c *Controller) Values() domain.RawRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values.Clone()
}

func (c *Controller) Value(id domain.FieldID) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[id]
}

// FieldErrors returns the current errors of visible fields.
func (c *Controller) FieldErrors() map[domain.FieldID]*validator.FieldError {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[domain.FieldID]*validator.FieldError, len(c.fieldErrors))
	for k, v := range c.fieldErrors {
		fe := *v
		out[k] = &fe
	}
	return out
}

func (c *Controller) VisibleFields() []domain.FieldID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return VisibleFields(c.values)
}

// collect 只采集可见字段（调用方持锁）
func (c *Controller) collect() domain.RawRecord {
	out := make(domain.RawRecord)
	for _, id := range VisibleFields(c.values) {
		out[id] = c.values[id]
	}
	return out
}

func normalizeGender(s string) domain.Gender {
	return domain.Gender(strings.ToLower(strings.TrimSpace(s)))
}
