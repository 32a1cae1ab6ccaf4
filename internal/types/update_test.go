package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeUpdate(t *testing.T, body string) PatientUpdate {
	t.Helper()
	var u PatientUpdate
	require.NoError(t, json.Unmarshal([]byte(body), &u))
	return u
}

func TestOptionalDistinguishesAbsentNullAndValue(t *testing.T) {
	u := decodeUpdate(t, `{"name": null, "age": 0, "weight": 72.5}`)

	assert.True(t, u.Name.Set)
	assert.True(t, u.Name.Null)
	assert.False(t, u.Name.Present())

	assert.True(t, u.Age.Present())
	assert.Equal(t, Age(0), u.Age.Value)

	assert.Equal(t, Some(72.5), u.Weight)

	assert.False(t, u.City.Set)
	assert.False(t, u.Height.Set)
	assert.Equal(t, []string{"name", "age", "weight"}, u.Fields())
}

func TestPatientUpdateValidate(t *testing.T) {
	assert.NoError(t, PatientUpdate{}.Validate())
	assert.NoError(t, decodeUpdate(t, `{"gender": "female", "height": 1.6}`).Validate())
	assert.NoError(t, decodeUpdate(t, `{"age": null}`).Validate())

	err := decodeUpdate(t, `{"age": 0, "gender": "x", "height": -2}`).Validate()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 3)
	assert.Equal(t, "age", verrs[0].Field)
	assert.Equal(t, "gender", verrs[1].Field)
	assert.Equal(t, "height", verrs[2].Field)
}

func TestPatientUpdateApply(t *testing.T) {
	before := validPatient()
	after := decodeUpdate(t, `{"weight": 95}`).Apply(before)

	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.City, after.City)
	assert.Equal(t, before.Age, after.Age)
	assert.Equal(t, before.Gender, after.Gender)
	assert.Equal(t, before.Height, after.Height)
	assert.Equal(t, 95.0, after.Weight)
	assert.Equal(t, 31.02, after.BMI())
	assert.Equal(t, VerdictObese, after.Verdict())
}

func TestPatientUpdateApplyNullFailsFullValidation(t *testing.T) {
	merged := decodeUpdate(t, `{"city": null}`).Apply(validPatient())

	assert.Empty(t, merged.City)
	var verrs ValidationErrors
	require.ErrorAs(t, merged.Validate(), &verrs)
	assert.Equal(t, "city", verrs[0].Field)
}

func TestOptionalTypeMismatch(t *testing.T) {
	var u PatientUpdate
	err := json.Unmarshal([]byte(`{"age": "thirty"}`), &u)

	var typeErr *json.UnmarshalTypeError
	require.ErrorAs(t, err, &typeErr)
}
