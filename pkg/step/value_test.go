package step

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_IsAbsent(t *testing.T) {
	assert.True(t, Null.IsAbsent())
	assert.True(t, Derived.IsAbsent())
	assert.False(t, stringVal("x").IsAbsent())
}

func TestValue_AsRealAcceptsIntegerAndReal(t *testing.T) {
	f, ok := intVal(3).AsReal()
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	f, ok = realVal(2.5).AsReal()
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = stringVal("x").AsReal()
	assert.False(t, ok)
}

func TestValue_AsReferenceAndAsString(t *testing.T) {
	id, ok := refVal(7).AsReference()
	assert.True(t, ok)
	assert.EqualValues(t, 7, id)

	s, ok := enumVal("ELEMENT").AsString()
	assert.True(t, ok)
	assert.Equal(t, "ELEMENT", s)
}

func TestValue_AsList(t *testing.T) {
	l := listVal([]Value{intVal(1), intVal(2)})
	vals, ok := l.AsList()
	assert.True(t, ok)
	assert.Len(t, vals, 2)

	_, ok = intVal(1).AsList()
	assert.False(t, ok)
}
