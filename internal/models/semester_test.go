package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSemester(t *testing.T) {
	semester, err := ParseSemester(" fall ")
	require.NoError(t, err)
	assert.Equal(t, SemesterFall, semester)

	_, err = ParseSemester("WINTER")
	require.Error(t, err)
}

func TestSemesterOrdinalOrder(t *testing.T) {
	assert.Less(t, SemesterSpring.Ordinal(), SemesterSummer.Ordinal())
	assert.Less(t, SemesterSummer.Ordinal(), SemesterFall.Ordinal())
}
