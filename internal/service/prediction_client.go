package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SubmissionErrorKind 提交失败原因（对用户统一展示，仅用于诊断）
type SubmissionErrorKind string

const (
	SubmissionTransport SubmissionErrorKind = "transport"
	SubmissionStatus    SubmissionErrorKind = "status"
	SubmissionDecode    SubmissionErrorKind = "decode"
)

// SubmissionError 预测服务调用失败
type SubmissionError struct {
	Kind       SubmissionErrorKind
	StatusCode int
	Cause      error
}

func (e *SubmissionError) Error() string {
	switch e.Kind {
	case SubmissionStatus:
		return fmt.Sprintf("prediction service returned status %d", e.StatusCode)
	default:
		return fmt.Sprintf("prediction request failed (%s): %v", e.Kind, e.Cause)
	}
}

func (e *SubmissionError) Unwrap() error { return e.Cause }

// PredictionClient 远程预测服务客户端
type PredictionClient struct {
	httpClient *resty.Client
	path       string
	logger     *zap.Logger
}

// NewPredictionClient 创建预测服务客户端。
// 不开启 resty 自动重试：失败后由用户重新提交。
func NewPredictionClient(baseURL, path string, timeout time.Duration, logger *zap.Logger) *PredictionClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &PredictionClient{
		httpClient: client,
		path:       path,
		logger:     logger,
	}
}

// Predict 发送一次预测请求
func (c *PredictionClient) Predict(ctx context.Context, submissionID string, payload domain.PredictionPayload) (*domain.PredictionResult, error) {
	c.logger.Info("Calling prediction API",
		zap.String("submission_id", submissionID),
		zap.String("path", c.path),
	)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", submissionID).
		SetBody(payload).
		Post(c.path)
	if err != nil {
		c.logger.Error("Prediction API call failed",
			zap.String("submission_id", submissionID),
			zap.Error(err),
		)
		return nil, &SubmissionError{Kind: SubmissionTransport, Cause: err}
	}

	if !resp.IsSuccess() {
		c.logger.Error("Prediction API returned error status",
			zap.String("submission_id", submissionID),
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, &SubmissionError{
			Kind:       SubmissionStatus,
			StatusCode: resp.StatusCode(),
			Cause:      fmt.Errorf("unexpected status %s", resp.Status()),
		}
	}

	var result domain.PredictionResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		c.logger.Error("Failed to unmarshal prediction response",
			zap.String("submission_id", submissionID),
			zap.Error(err),
		)
		return nil, &SubmissionError{Kind: SubmissionDecode, StatusCode: resp.StatusCode(), Cause: err}
	}
	if result.Message == "" {
		return nil, &SubmissionError{
			Kind:       SubmissionDecode,
			StatusCode: resp.StatusCode(),
			Cause:      errors.New("response has no message"),
		}
	}

	c.logger.Info("Prediction received",
		zap.String("submission_id", submissionID),
		zap.String("message", result.Message),
		zap.String("confidence", result.Confidence),
		zap.Duration("elapsed", resp.Time()),
	)
	return &result, nil
}
