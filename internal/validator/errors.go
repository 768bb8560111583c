package validator

import (
	"fmt"
	"strings"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"
)

// ErrorKind 字段校验错误类型
type ErrorKind string

const (
	InvalidType   ErrorKind = "InvalidType"
	InvalidChoice ErrorKind = "InvalidChoice"
	Required      ErrorKind = "Required"
)

// FieldError 单个字段的校验错误（只在该字段旁展示）
type FieldError struct {
	Field   domain.FieldID `json:"field"`
	Kind    ErrorKind      `json:"kind"`
	Message string         `json:"message"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors 聚合校验错误，按字段索引
type Errors struct {
	Fields map[domain.FieldID]*FieldError
}

func (e *Errors) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, fe := range e.List() {
		parts = append(parts, fe.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Get returns the error recorded for a field, or nil.
func (e *Errors) Get(id domain.FieldID) *FieldError {
	if e == nil {
		return nil
	}
	return e.Fields[id]
}

// List returns the errors in form field order.
func (e *Errors) List() []*FieldError {
	if e == nil {
		return nil
	}
	out := make([]*FieldError, 0, len(e.Fields))
	for _, id := range domain.FieldOrder {
		if fe, ok := e.Fields[id]; ok {
			out = append(out, fe)
		}
	}
	return out
}

func (e *Errors) add(fe *FieldError) {
	if e.Fields == nil {
		e.Fields = make(map[domain.FieldID]*FieldError)
	}
	e.Fields[fe.Field] = fe
}
