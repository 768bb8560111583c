package form

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakePredictor 记录调用并返回预设结果
type fakePredictor struct {
	mu      sync.Mutex
	calls   []domain.PredictionPayload
	result  *domain.PredictionResult
	err     error
	started chan struct{} // 非 nil 时在调用开始时通知
	release chan struct{} // 非 nil 时阻塞直到关闭
}

func (f *fakePredictor) Predict(ctx context.Context, submissionID string, payload domain.PredictionPayload) (*domain.PredictionResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, payload)
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	return f.result, f.err
}

func (f *fakePredictor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakePredictor) lastPayload() domain.PredictionPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

func diabeticResult() *domain.PredictionResult {
	return &domain.PredictionResult{Status: "success", Prediction: 1, Message: "Diabetic", Confidence: "87.50%"}
}

func fill(t *testing.T, c *Controller, values map[domain.FieldID]string) {
	t.Helper()
	for _, id := range domain.FieldOrder {
		v, ok := values[id]
		if !ok {
			continue
		}
		_, err := c.SetField(id, v)
		require.NoError(t, err)
	}
}

func femaleInput() map[domain.FieldID]string {
	return map[domain.FieldID]string{
		domain.FieldGender:             "female",
		domain.FieldAge:                "45",
		domain.FieldWeight:             "70",
		domain.FieldHeight:             "1.7",
		domain.FieldGlucose:            "130",
		domain.FieldBloodPressure:      "80",
		domain.FieldSkinThickness:      "25",
		domain.FieldInsulin:            "85",
		domain.FieldPregnancies:        "2",
		domain.FieldFamilyParents:      "1",
		domain.FieldFamilySiblings:     "0",
		domain.FieldFamilyGrandparents: "2",
	}
}

func maleInput() map[domain.FieldID]string {
	in := femaleInput()
	in[domain.FieldGender] = "male"
	delete(in, domain.FieldPregnancies)
	return in
}

func TestController_InitialState(t *testing.T) {
	c := NewController(zap.NewNop())

	assert.Equal(t, StateEditing, c.State())
	assert.True(t, c.CanSubmit())
	assert.Nil(t, c.Result())
	assert.Nil(t, c.Failure())
	assert.Equal(t, Defaults(), c.Values())
	assert.NotContains(t, c.VisibleFields(), domain.FieldPregnancies)
}

func TestController_SetFieldValidatesIncrementally(t *testing.T) {
	c := NewController(zap.NewNop())

	fe, err := c.SetField(domain.FieldGlucose, "high")
	require.NoError(t, err)
	require.NotNil(t, fe)
	assert.Equal(t, validator.InvalidType, fe.Kind)
	assert.Contains(t, c.FieldErrors(), domain.FieldGlucose)

	// 其他字段仍可编辑
	fe, err = c.SetField(domain.FieldAge, "50")
	require.NoError(t, err)
	assert.Nil(t, fe)

	fe, err = c.SetField(domain.FieldGlucose, "120")
	require.NoError(t, err)
	assert.Nil(t, fe)
	assert.NotContains(t, c.FieldErrors(), domain.FieldGlucose)

	_, err = c.SetField("Cholesterol", "1")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestController_PregnanciesVisibleOnlyForFemale(t *testing.T) {
	c := NewController(zap.NewNop())

	_, _ = c.SetField(domain.FieldGender, "female")
	assert.Contains(t, c.VisibleFields(), domain.FieldPregnancies)

	_, _ = c.SetField(domain.FieldGender, "male")
	assert.NotContains(t, c.VisibleFields(), domain.FieldPregnancies)

	assert.True(t, IsVisible(domain.RawRecord{domain.FieldGender: " Female"}, domain.FieldPregnancies))
	assert.False(t, IsVisible(domain.RawRecord{}, domain.FieldPregnancies))
}

func TestController_SubmitFemalePayload(t *testing.T) {
	c := NewController(zap.NewNop())
	fill(t, c, femaleInput())
	p := &fakePredictor{result: diabeticResult()}

	require.NoError(t, c.Submit(context.Background(), p))

	require.Equal(t, 1, p.callCount())
	payload := p.lastPayload()
	assert.Equal(t, 2.0, payload.Pregnancies)
	assert.Equal(t, "female", payload.Gender)
	assert.Equal(t, 1, payload.FamilyParents)
	assert.Equal(t, 0, payload.FamilySiblings)
	assert.Equal(t, 2, payload.FamilyGrandparents)

	assert.Equal(t, StateSucceeded, c.State())
	assert.Equal(t, "Diabetic", c.Result().Message)
	assert.Nil(t, c.Failure())
}

func TestController_SubmitMaleSendsZeroPregnancies(t *testing.T) {
	c := NewController(zap.NewNop())
	fill(t, c, maleInput())
	p := &fakePredictor{result: diabeticResult()}

	require.NoError(t, c.Submit(context.Background(), p))
	assert.Equal(t, 0.0, p.lastPayload().Pregnancies)
}

func TestController_StalePregnanciesIgnoredAfterSwitchingToMale(t *testing.T) {
	c := NewController(zap.NewNop())
	fill(t, c, femaleInput())
	_, _ = c.SetField(domain.FieldPregnancies, "not-a-number")
	assert.Contains(t, c.FieldErrors(), domain.FieldPregnancies)

	_, _ = c.SetField(domain.FieldGender, "male")
	assert.NotContains(t, c.FieldErrors(), domain.FieldPregnancies)

	p := &fakePredictor{result: diabeticResult()}
	require.NoError(t, c.Submit(context.Background(), p))
	assert.Equal(t, StateSucceeded, c.State())
	assert.Equal(t, 0.0, p.lastPayload().Pregnancies)

	// 旧值仍保留在表单中，再切回 female 时可见
	assert.Equal(t, "not-a-number", c.Value(domain.FieldPregnancies))
}

func TestController_PregnanciesErrorRestoredWhenVisibleAgain(t *testing.T) {
	c := NewController(zap.NewNop())

	_, _ = c.SetField(domain.FieldGender, "female")
	fe, err := c.SetField(domain.FieldPregnancies, "abc")
	require.NoError(t, err)
	require.NotNil(t, fe)

	_, _ = c.SetField(domain.FieldGender, "male")
	assert.NotContains(t, c.FieldErrors(), domain.FieldPregnancies)

	_, _ = c.SetField(domain.FieldGender, "female")
	require.Contains(t, c.FieldErrors(), domain.FieldPregnancies)
	assert.Equal(t, validator.InvalidType, c.FieldErrors()[domain.FieldPregnancies].Kind)

	snap := c.Snapshot()
	var fields []domain.FieldID
	for _, fe := range snap.FieldErrors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, domain.FieldPregnancies)

	// 修正后错误清除，切换性别不会凭空产生错误
	_, _ = c.SetField(domain.FieldPregnancies, "1")
	_, _ = c.SetField(domain.FieldGender, "male")
	_, _ = c.SetField(domain.FieldGender, "female")
	assert.NotContains(t, c.FieldErrors(), domain.FieldPregnancies)
}

func TestController_SubmitRefusedWhenInvalid(t *testing.T) {
	c := NewController(zap.NewNop())
	in := femaleInput()
	in[domain.FieldInsulin] = "lots"
	fill(t, c, in)
	p := &fakePredictor{result: diabeticResult()}

	err := c.Submit(context.Background(), p)
	require.Error(t, err)

	var verrs *validator.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, validator.InvalidType, verrs.Get(domain.FieldInsulin).Kind)

	assert.Equal(t, 0, p.callCount(), "no network call on invalid input")
	assert.Equal(t, StateEditing, c.State())
	assert.Contains(t, c.FieldErrors(), domain.FieldInsulin)
}

func TestController_DefaultFormIsNotSubmittable(t *testing.T) {
	c := NewController(zap.NewNop())
	p := &fakePredictor{result: diabeticResult()}

	err := c.Submit(context.Background(), p)
	var verrs *validator.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, validator.Required, verrs.Get(domain.FieldGender).Kind)
	assert.Equal(t, validator.Required, verrs.Get(domain.FieldFamilyParents).Kind)
	assert.Nil(t, verrs.Get(domain.FieldAge), "numeric defaults coerce")
	assert.Equal(t, 0, p.callCount())
}

func TestController_FailureUsesGenericMessage(t *testing.T) {
	causes := []error{
		errors.New("dial tcp: connection refused"),
		errors.New("prediction service returned status 500"),
		errors.New("invalid character 'x' looking for beginning of value"),
	}
	for _, cause := range causes {
		c := NewController(zap.NewNop())
		fill(t, c, femaleInput())

		require.NoError(t, c.Submit(context.Background(), &fakePredictor{err: cause}))

		assert.Equal(t, StateFailed, c.State())
		assert.Nil(t, c.Result())
		f := c.Failure()
		require.NotNil(t, f)
		assert.Equal(t, GenericFailureMessage, f.Message)
		assert.ErrorIs(t, f.Cause, cause)
	}
}

func TestController_ExactlyOneOutcomeAfterExchange(t *testing.T) {
	c := NewController(zap.NewNop())
	fill(t, c, femaleInput())

	require.NoError(t, c.Submit(context.Background(), &fakePredictor{err: errors.New("boom")}))
	assert.Nil(t, c.Result())
	assert.NotNil(t, c.Failure())

	require.NoError(t, c.Submit(context.Background(), &fakePredictor{result: diabeticResult()}))
	assert.NotNil(t, c.Result())
	assert.Nil(t, c.Failure(), "new attempt clears previous failure")
}

func TestController_BeginSubmitClearsPreviousResult(t *testing.T) {
	c := NewController(zap.NewNop())
	fill(t, c, femaleInput())
	require.NoError(t, c.Submit(context.Background(), &fakePredictor{result: diabeticResult()}))
	require.NotNil(t, c.Result())

	sub, err := c.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, StateSubmitting, c.State())
	assert.False(t, c.CanSubmit())
	assert.Nil(t, c.Result())
	assert.Nil(t, c.Failure())

	_, err = c.BeginSubmit()
	assert.ErrorIs(t, err, ErrSubmitting)
	_, err = c.SetField(domain.FieldAge, "1")
	assert.ErrorIs(t, err, ErrSubmitting)

	assert.True(t, c.CompleteSubmit(sub, nil, errors.New("late failure")))
	assert.Equal(t, StateFailed, c.State())
	assert.True(t, c.CanSubmit())
}

func TestController_ResetRestoresDefaultsFromEveryState(t *testing.T) {
	setups := map[string]func(t *testing.T, c *Controller){
		"editing": func(t *testing.T, c *Controller) {
			fill(t, c, femaleInput())
		},
		"succeeded": func(t *testing.T, c *Controller) {
			fill(t, c, femaleInput())
			_ = c.Submit(context.Background(), &fakePredictor{result: diabeticResult()})
		},
		"failed": func(t *testing.T, c *Controller) {
			fill(t, c, femaleInput())
			_ = c.Submit(context.Background(), &fakePredictor{err: errors.New("boom")})
		},
		"submitting": func(t *testing.T, c *Controller) {
			fill(t, c, femaleInput())
			_, _ = c.BeginSubmit()
		},
		"invalid": func(t *testing.T, c *Controller) {
			_, _ = c.SetField(domain.FieldAge, "abc")
			_ = c.Submit(context.Background(), &fakePredictor{})
		},
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			c := NewController(zap.NewNop())
			setup(t, c)

			c.Reset()

			assert.Equal(t, StateEditing, c.State())
			assert.Equal(t, Defaults(), c.Values())
			assert.Empty(t, c.FieldErrors())
			assert.Nil(t, c.Result())
			assert.Nil(t, c.Failure())
		})
	}
}

func TestController_ResetDuringSubmissionDiscardsLateResponse(t *testing.T) {
	c := NewController(zap.NewNop())
	fill(t, c, femaleInput())
	p := &fakePredictor{
		result:  diabeticResult(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}

	done := make(chan error, 1)
	go func() {
		done <- c.Submit(context.Background(), p)
	}()

	<-p.started
	assert.Equal(t, StateSubmitting, c.State())
	c.Reset()
	close(p.release)
	require.NoError(t, <-done)

	assert.Equal(t, StateEditing, c.State())
	assert.Nil(t, c.Result())
	assert.Nil(t, c.Failure())
	assert.Equal(t, Defaults(), c.Values())
}

func TestController_StaleSubmissionCannotOverrideNewerOne(t *testing.T) {
	c := NewController(zap.NewNop())
	fill(t, c, femaleInput())

	first, err := c.BeginSubmit()
	require.NoError(t, err)
	c.Reset()
	fill(t, c, maleInput())
	second, err := c.BeginSubmit()
	require.NoError(t, err)

	assert.False(t, c.CompleteSubmit(first, diabeticResult(), nil))
	assert.Equal(t, StateSubmitting, c.State())

	notDiabetic := &domain.PredictionResult{Status: "success", Message: "Not Diabetic", Confidence: "91.00%"}
	assert.True(t, c.CompleteSubmit(second, notDiabetic, nil))
	assert.Equal(t, "Not Diabetic", c.Result().Message)
}

func TestController_ReportInputs(t *testing.T) {
	c := NewController(zap.NewNop())

	_, _, err := c.ReportInputs()
	var verrs *validator.Errors
	require.True(t, errors.As(err, &verrs))

	fill(t, c, femaleInput())
	rec, res, err := c.ReportInputs()
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Equal(t, 45.0, rec.Age)

	require.NoError(t, c.Submit(context.Background(), &fakePredictor{result: diabeticResult()}))
	// 提交后修改表单不影响已提交记录
	_, _ = c.SetField(domain.FieldAge, "99")

	rec, res, err = c.ReportInputs()
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 45.0, rec.Age)
	assert.Equal(t, "Diabetic", res.Message)
}

func TestController_Snapshot(t *testing.T) {
	c := NewController(zap.NewNop())
	fill(t, c, femaleInput())
	_, _ = c.SetField(domain.FieldWeight, "heavy")

	s := c.Snapshot()
	assert.Equal(t, StateEditing, s.State)
	assert.True(t, s.CanSubmit)
	assert.False(t, s.CanReset)
	assert.Equal(t, "2", s.Values["Pregnancies"])
	require.Len(t, s.VisibleFields, len(domain.FieldOrder))
	assert.Equal(t, "Age (Years)", s.VisibleFields[0].Label)
	require.Len(t, s.FieldErrors, 1)
	assert.Equal(t, domain.FieldWeight, s.FieldErrors[0].Field)

	_, _ = c.SetField(domain.FieldWeight, "70")
	require.NoError(t, c.Submit(context.Background(), &fakePredictor{err: errors.New("down")}))
	s = c.Snapshot()
	assert.Equal(t, StateFailed, s.State)
	assert.True(t, s.CanReset)
	assert.Equal(t, GenericFailureMessage, s.Error)
	assert.Nil(t, s.Result)
}

func TestInfo_ExposesChoices(t *testing.T) {
	info := Info(domain.FieldFamilySiblings)
	assert.Equal(t, []string{"0", "1", "2", "3", "4"}, info.Choices)
	assert.True(t, info.Required)
	assert.False(t, Info(domain.FieldPregnancies).Required)
	assert.Contains(t, Info(domain.FieldBloodPressure).Hint, "diastolic")
}
