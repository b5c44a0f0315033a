package enum

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	type EnumString string

	bar := New(EnumString("Bar"))
	foo := New(EnumString("Foo"))
	require.Equal(t, EnumString("Bar"), bar)

	v, err := ToEnum[EnumString]("Bar")
	require.NoError(t, err)
	require.Equal(t, bar, v)

	_, err = ToEnum[EnumString]("bar")
	require.Error(t, err)

	require.Equal(t, []EnumString{bar, foo}, Values[EnumString]())
}

func TestToEnum_UnknownType(t *testing.T) {
	type Unregistered string

	_, err := ToEnum[Unregistered]("x")
	require.Error(t, err)
	require.Nil(t, Values[Unregistered]())
}
