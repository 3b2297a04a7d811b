package validation

import (
	"testing"

	"animals-api/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type zooInput struct {
	Breed  *string  `json:"breed" validate:"required,min=1"`
	Weight *float64 `json:"weight" validate:"required,gt=0"`
	Name   *string  `json:"name" validate:"omitempty,max=20"`
}

var zooSchema = Schema[zooInput]{Name: "zoo"}

func fieldsOf(list []errs.FieldError) []string {
	out := make([]string, 0, len(list))
	for _, fe := range list {
		out = append(out, fe.Field)
	}
	return out
}

func TestValidate_OK_StripsUnknownFields(t *testing.T) {
	in, fieldErrs := zooSchema.Validate([]byte(`{"breed":"Giraffe","weight":894,"name":null,"createdBy":"mallory","id":99}`))
	require.Empty(t, fieldErrs)
	require.NotNil(t, in.Breed)
	require.NotNil(t, in.Weight)
	assert.Equal(t, "Giraffe", *in.Breed)
	assert.Equal(t, 894.0, *in.Weight)
	assert.Nil(t, in.Name)
}

func TestValidate_MissingWeight(t *testing.T) {
	_, fieldErrs := zooSchema.Validate([]byte(`{"breed":"Giraffe","name":null}`))
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "weight", fieldErrs[0].Field)
	assert.Equal(t, "is required", fieldErrs[0].Error)
}

func TestValidate_EmptyPayloadReportsEveryRequiredField(t *testing.T) {
	_, fieldErrs := zooSchema.Validate(nil)
	assert.Equal(t, []string{"breed", "weight"}, fieldsOf(fieldErrs))
}

func TestValidate_TypeErrors(t *testing.T) {
	_, fieldErrs := zooSchema.Validate([]byte(`{"breed":12,"weight":"heavy","name":false}`))
	require.Len(t, fieldErrs, 3)
	assert.Equal(t, errs.FieldError{Field: "breed", Error: "must be a string"}, fieldErrs[0])
	assert.Equal(t, errs.FieldError{Field: "weight", Error: "must be a number"}, fieldErrs[1])
	assert.Equal(t, errs.FieldError{Field: "name", Error: "must be a string or null"}, fieldErrs[2])
}

func TestValidate_Constraints(t *testing.T) {
	_, fieldErrs := zooSchema.Validate([]byte(`{"breed":"","weight":-3}`))
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "must not be empty", fieldErrs[0].Error)
	assert.Equal(t, "must be greater than 0", fieldErrs[1].Error)
}

func TestValidate_NotAnObject(t *testing.T) {
	for _, payload := range []string{`[]`, `"giraffe"`, `null`, `42`} {
		_, fieldErrs := zooSchema.Validate([]byte(payload))
		require.Len(t, fieldErrs, 1, payload)
		assert.Equal(t, "body", fieldErrs[0].Field)
	}
}

type taggedInput struct {
	Name *string `json:"name"`
	Age  *int    `json:"age"`

	seen []string
}

func (in *taggedInput) MarkPresent(key string) { in.seen = append(in.seen, key) }

func TestValidate_MarksPresentKeys(t *testing.T) {
	schema := Schema[taggedInput]{Name: "tagged"}

	in, fieldErrs := schema.Validate([]byte(`{"name":null,"other":1}`))
	require.Empty(t, fieldErrs)
	assert.Nil(t, in.Name)
	assert.Equal(t, []string{"name"}, in.seen)

	in, fieldErrs = schema.Validate([]byte(`{}`))
	require.Empty(t, fieldErrs)
	assert.Empty(t, in.seen)
}
