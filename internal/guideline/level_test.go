package guideline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel_Generic(t *testing.T) {
	assert.True(t, LevelGeneric.Generic())
	assert.False(t, Level(1).Generic())
}

func TestLevel_Valid(t *testing.T) {
	assert.True(t, LevelGeneric.Valid())
	assert.True(t, Level(25).Valid())
	assert.False(t, Level(-1).Valid())
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "Generic", LevelGeneric.String())
	assert.Equal(t, "5", Level(5).String())
}

func TestKey_String(t *testing.T) {
	k := Key{Form: "Animal", Technique: "Creo", Level: 5, Name: "Cure X"}
	assert.Equal(t, "Animal Creo 5: Cure X", k.String())

	k.Level = LevelGeneric
	assert.Equal(t, "Animal Creo Generic: Cure X", k.String())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "less", Less.String())
	assert.Equal(t, "equal", Equal.String())
	assert.Equal(t, "greater", Greater.String())
	assert.Equal(t, "incomparable", Incomparable.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
