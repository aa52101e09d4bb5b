package validation

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

func loadFixture(t *testing.T) map[string]any {
	t.Helper()
	data, err := os.ReadFile("testdata/all_data.json")
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(data, &payload))
	return payload
}

func firstUnit(payload map[string]any) map[string]any {
	return payload["units"].([]any)[0].(map[string]any)
}

func requireValidationError(t *testing.T, err error) *domain.ValidationError {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidationFailure))

	var validationErr *domain.ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.NotEmpty(t, validationErr.Issues)
	return validationErr
}

func TestNewSchemaValidator_CompilesEmbeddedSchema(t *testing.T) {
	v, err := NewSchemaValidator()
	require.NoError(t, err)
	assert.NotNil(t, v)
}

func TestValidateBytes_ValidDataset(t *testing.T) {
	data, err := os.ReadFile("testdata/all_data.json")
	require.NoError(t, err)

	ds, err := MustNewSchemaValidator().ValidateBytes(data)
	require.NoError(t, err)

	assert.Equal(t, "1.4.2", ds.BuildInfo.Version)
	assert.Len(t, ds.Heroes, 1)
	assert.Len(t, ds.Units, 3)
	assert.Len(t, ds.Spells, 1)
	assert.Len(t, ds.Titans, 1)
	assert.Len(t, ds.Consumables, 1)
	assert.Equal(t, "Astral", ds.Heroes[0].Class)

	harpy := ds.Units[0]
	require.NotNil(t, harpy.Mechanics)
	assert.True(t, harpy.Mechanics.Homing)
	assert.True(t, harpy.Mechanics.Has("dive_bomb"), "unknown mechanics survive validation")
	assert.Nil(t, ds.Units[2].DPS, "absent optional numeric stays nil")

	require.NotNil(t, ds.Titans[0].Mechanics)
	assert.True(t, ds.Titans[0].Mechanics.AutoCaptureAltars)
}

func TestValidateValue_MissingRequiredField(t *testing.T) {
	payload := loadFixture(t)
	delete(firstUnit(payload), "name")

	_, err := MustNewSchemaValidator().ValidateValue(payload)

	validationErr := requireValidationError(t, err)
	assert.Contains(t, validationErr.Paths(), "/units/0")
	assert.Contains(t, err.Error(), "/units/0")
	assert.Contains(t, err.Error(), "name")
}

func TestValidateValue_WrongPrimitiveType(t *testing.T) {
	payload := loadFixture(t)
	firstUnit(payload)["health"] = "lots"

	_, err := MustNewSchemaValidator().ValidateValue(payload)

	validationErr := requireValidationError(t, err)
	assert.Contains(t, validationErr.Paths(), "/units/0/health")
}

func TestValidateValue_ReportsEveryViolation(t *testing.T) {
	payload := loadFixture(t)
	firstUnit(payload)["health"] = "lots"
	payload["spells"].([]any)[0].(map[string]any)["rank"] = 2

	_, err := MustNewSchemaValidator().ValidateValue(payload)

	validationErr := requireValidationError(t, err)
	paths := validationErr.Paths()
	assert.Contains(t, paths, "/units/0/health")
	assert.Contains(t, paths, "/spells/0/rank")
}

func TestValidateValue_MissingCollection(t *testing.T) {
	payload := loadFixture(t)
	delete(payload, "titans")

	_, err := MustNewSchemaValidator().ValidateValue(payload)

	validationErr := requireValidationError(t, err)
	assert.Contains(t, validationErr.Paths(), rootLocation)
}

func TestValidateValue_StrictSubStructure(t *testing.T) {
	payload := loadFixture(t)
	hero := payload["heroes"].([]any)[0].(map[string]any)
	abilities := hero["abilities"].(map[string]any)
	delete(abilities["primary"].(map[string]any), "description")

	_, err := MustNewSchemaValidator().ValidateValue(payload)

	validationErr := requireValidationError(t, err)
	assert.Contains(t, validationErr.Paths(), "/heroes/0/abilities/primary")
}

func TestValidateValue_AllowsUnknownKeys(t *testing.T) {
	payload := loadFixture(t)
	firstUnit(payload)["brand_new_stat"] = 12
	payload["upgrades"] = []any{map[string]any{"name": "Sharpened Blades"}}

	ds, err := MustNewSchemaValidator().ValidateValue(payload)
	require.NoError(t, err)
	assert.Len(t, ds.Units, 3)
}

func TestValidateBytes_MalformedJSON(t *testing.T) {
	_, err := MustNewSchemaValidator().ValidateBytes([]byte(`{"heroes": [`))

	validationErr := requireValidationError(t, err)
	assert.Equal(t, []string{rootLocation}, validationErr.Paths())
}

func TestValidateValue_NotAnObject(t *testing.T) {
	_, err := MustNewSchemaValidator().ValidateValue([]string{"not", "a", "dataset"})

	validationErr := requireValidationError(t, err)
	assert.Contains(t, validationErr.Paths(), rootLocation)
}
