package validator

import (
	"testing"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func femaleRaw() domain.RawRecord {
	return domain.RawRecord{
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

var numericFields = []domain.FieldID{
	domain.FieldAge,
	domain.FieldWeight,
	domain.FieldHeight,
	domain.FieldGlucose,
	domain.FieldBloodPressure,
	domain.FieldSkinThickness,
	domain.FieldInsulin,
	domain.FieldPregnancies,
}

func TestValidate_FemaleRecord(t *testing.T) {
	rec, errs := Validate(femaleRaw())
	require.Nil(t, errs)

	assert.Equal(t, domain.GenderFemale, rec.Gender)
	assert.Equal(t, 45.0, rec.Age)
	assert.Equal(t, 1.7, rec.Height)
	require.NotNil(t, rec.Pregnancies)
	assert.Equal(t, 2.0, *rec.Pregnancies)
	assert.Equal(t, 1, rec.FamilyParents)
	assert.Equal(t, 0, rec.FamilySiblings)
	assert.Equal(t, 2, rec.FamilyGrandparents)

	p := rec.Payload()
	assert.Equal(t, 2.0, p.Pregnancies)
	assert.Equal(t, "female", p.Gender)
	assert.Equal(t, 130.0, p.Glucose)
}

func TestValidate_NonNumericInputIsInvalidType(t *testing.T) {
	for _, id := range numericFields {
		t.Run(string(id), func(t *testing.T) {
			raw := femaleRaw()
			raw[id] = "abc"

			_, errs := Validate(raw)
			require.NotNil(t, errs)
			fe := errs.Get(id)
			require.NotNil(t, fe)
			assert.Equal(t, InvalidType, fe.Kind)
			assert.Contains(t, fe.Message, "number")
			assert.Len(t, errs.Fields, 1)
		})
	}
}

func TestValidateField_RejectsNonFiniteNumbers(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-Inf", "1e400"} {
		fe := ValidateField(domain.FieldGlucose, v, true)
		require.NotNil(t, fe, v)
		assert.Equal(t, InvalidType, fe.Kind, v)
	}
}

func TestValidateField_AcceptsDecimalsAndPadding(t *testing.T) {
	assert.Nil(t, ValidateField(domain.FieldHeight, " 1.75 ", true))
	assert.Nil(t, ValidateField(domain.FieldAge, "0", true))
}

func TestValidateField_EnumChoices(t *testing.T) {
	cases := []struct {
		id    domain.FieldID
		value string
		ok    bool
	}{
		{domain.FieldGender, "male", true},
		{domain.FieldGender, " Female ", true},
		{domain.FieldGender, "other", false},
		{domain.FieldFamilyParents, "2", true},
		{domain.FieldFamilyParents, "3", false},
		{domain.FieldFamilySiblings, "4", true},
		{domain.FieldFamilySiblings, "5", false},
		{domain.FieldFamilyGrandparents, "x", false},
		{domain.FieldFamilyGrandparents, "1.0", false},
	}
	for _, tc := range cases {
		fe := ValidateField(tc.id, tc.value, true)
		if tc.ok {
			assert.Nil(t, fe, "%s=%q", tc.id, tc.value)
			continue
		}
		require.NotNil(t, fe, "%s=%q", tc.id, tc.value)
		assert.Equal(t, InvalidChoice, fe.Kind)
	}
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	_, errs := Validate(domain.RawRecord{})
	require.NotNil(t, errs)

	for _, id := range domain.FieldOrder {
		fe := errs.Get(id)
		if id == domain.FieldPregnancies {
			assert.Nil(t, fe, "pregnancies is optional")
			continue
		}
		require.NotNil(t, fe, id)
		assert.Equal(t, Required, fe.Kind, id)
	}

	list := errs.List()
	require.Len(t, list, len(domain.FieldOrder)-1)
	assert.Equal(t, domain.FieldAge, list[0].Field)
	assert.Equal(t, domain.FieldFamilyGrandparents, list[len(list)-1].Field)
}

func TestValidate_PregnanciesOptional(t *testing.T) {
	raw := femaleRaw()
	delete(raw, domain.FieldPregnancies)
	rec, errs := Validate(raw)
	require.Nil(t, errs)
	assert.Nil(t, rec.Pregnancies)
	assert.Equal(t, 0.0, rec.Payload().Pregnancies)

	raw[domain.FieldPregnancies] = "0"
	rec, errs = Validate(raw)
	require.Nil(t, errs)
	require.NotNil(t, rec.Pregnancies)
	assert.Equal(t, 0.0, *rec.Pregnancies)
}

func TestValidate_MaleRecordSendsZeroPregnancies(t *testing.T) {
	raw := femaleRaw()
	raw[domain.FieldGender] = "male"
	raw[domain.FieldPregnancies] = "3"

	rec, errs := Validate(raw)
	require.Nil(t, errs)
	assert.Equal(t, 0.0, rec.Payload().Pregnancies)
}

func TestChoices_ReturnsCopy(t *testing.T) {
	c := Choices(domain.FieldFamilyParents)
	require.Equal(t, []string{"0", "1", "2"}, c)
	c[0] = "9"
	assert.Equal(t, "0", Choices(domain.FieldFamilyParents)[0])
	assert.Nil(t, Choices(domain.FieldAge))
	assert.True(t, IsRequired(domain.FieldAge))
	assert.False(t, IsRequired(domain.FieldPregnancies))
}

func TestErrors_ErrorString(t *testing.T) {
	_, errs := Validate(domain.RawRecord{domain.FieldGender: "male"})
	require.NotNil(t, errs)
	assert.Contains(t, errs.Error(), "validation failed: Age: this field is required")
}
