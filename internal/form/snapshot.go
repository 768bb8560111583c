package form

import (
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/validator"
)

// Snapshot 控制器某一时刻的完整只读视图（HTTP 接口与终端界面共用）
type Snapshot struct {
	State         State                    `json:"state"`
	CanSubmit     bool                     `json:"can_submit"`
	CanReset      bool                     `json:"can_reset"`
	Values        map[string]string        `json:"values"`
	VisibleFields []FieldInfo              `json:"visible_fields"`
	FieldErrors   []*validator.FieldError  `json:"field_errors"`
	Result        *domain.PredictionResult `json:"result"`
	Error         string                   `json:"error,omitempty"`
}

// Snapshot captures the controller state under a single lock.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := VisibleFields(c.values)
	s := Snapshot{
		State:         c.state,
		CanSubmit:     c.state != StateSubmitting,
		CanReset:      c.state == StateSucceeded || c.state == StateFailed,
		Values:        make(map[string]string, len(visible)),
		VisibleFields: make([]FieldInfo, 0, len(visible)),
		FieldErrors:   []*validator.FieldError{},
	}
	for _, id := range visible {
		s.Values[string(id)] = c.values[id]
		s.VisibleFields = append(s.VisibleFields, Info(id))
		if fe, ok := c.fieldErrors[id]; ok {
			e := *fe
			s.FieldErrors = append(s.FieldErrors, &e)
		}
	}
	if c.result != nil {
		r := *c.result
		s.Result = &r
	}
	if c.failure != nil {
		s.Error = c.failure.Message
	}
	return s
}
