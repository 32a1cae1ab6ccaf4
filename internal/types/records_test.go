package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(height, weight float64) Record {
	return Patient{Name: "n", City: "c", Age: 20, Gender: GenderMale, Height: height, Weight: weight}.Record()
}

func TestRecordsKeepInsertionOrder(t *testing.T) {
	rs := NewRecords()
	rs.Set("P003", record(1.7, 70))
	rs.Set("P001", record(1.6, 50))
	rs.Set("P002", record(1.8, 90))
	rs.Set("P001", record(1.6, 55))

	assert.Equal(t, []string{"P003", "P001", "P002"}, rs.IDs())
	got, ok := rs.Get("P001")
	require.True(t, ok)
	assert.Equal(t, 55.0, got.Weight)

	assert.True(t, rs.Delete("P001"))
	assert.False(t, rs.Delete("P001"))
	assert.Equal(t, []string{"P003", "P002"}, rs.IDs())
	assert.Equal(t, 2, rs.Len())
}

func TestRecordsJSONPreservesKeyOrder(t *testing.T) {
	in := `{"P9":{"name":"a","city":"x","age":30,"gender":"male","height":1.7,"weight":70,"bmi":24.22,"final_verdict":"Normal"},` +
		`"P1":{"name":"b","city":"y","age":40,"gender":"female","height":1.6,"weight":50,"bmi":19.53,"final_verdict":"Normal"}}`

	var rs Records
	require.NoError(t, json.Unmarshal([]byte(in), &rs))
	assert.Equal(t, []string{"P9", "P1"}, rs.IDs())

	out, err := json.Marshal(&rs)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
	assert.Less(t, strings.Index(string(out), `"P9"`), strings.Index(string(out), `"P1"`))
}

func TestRecordsJSONEmptyAndInvalid(t *testing.T) {
	out, err := json.Marshal(NewRecords())
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))

	var rs Records
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &rs))
	assert.Error(t, json.Unmarshal([]byte(`{"P1": 5}`), &rs))
	assert.Error(t, json.Unmarshal([]byte(`{"P1": {}`), &rs))
}

func TestValuesNeverNil(t *testing.T) {
	assert.NotNil(t, NewRecords().Values())
	assert.Empty(t, NewRecords().Values())
}
