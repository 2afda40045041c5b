// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSignName(t *testing.T) {
	assert.Equal(t, "Aries", SignName(1))
	assert.Equal(t, "Leo", SignName(5))
	assert.Equal(t, "Libra", SignName(7))
	assert.Equal(t, "Pisces", SignName(12))
	assert.Equal(t, "Sign 13", SignName(13))
}

func TestOccupantLabel(t *testing.T) {
	assert.Equal(t, "Jupiter (Ju)", OccupantLabel("Ju"))
	assert.Equal(t, "Ascendant (Asc)", OccupantLabel("Asc"))
	assert.Equal(t, "Xx (Xx)", OccupantLabel("Xx"))

	_, ok := PlanetName("Ur")
	assert.False(t, ok)
}

func TestDChartTypes_ReturnsCopy(t *testing.T) {
	kinds := DChartTypes()
	require.Len(t, kinds, 20)
	assert.Equal(t, "rasi", kinds[0])
	assert.Equal(t, "vimsamsa", kinds[19])

	kinds[0] = "changed"
	assert.Equal(t, "rasi", DChartTypes()[0])
}

func TestChartSet_PreservesOrder(t *testing.T) {
	set := ChartSet{
		{ChartType: "rasi", Rows: []PlanetRow{{No: 1, SignName: "Aries", Planets: []string{"Sun (Su)"}}}},
		{ChartType: "navamsa"},
		{ChartType: "hora", Rows: []PlanetRow{}},
	}

	data, err := json.Marshal(set)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rasi":[{"no":1,"sign_name":"Aries","planets":["Sun (Su)"]}],"navamsa":[],"hora":[]}`, string(data))
	assert.Regexp(t, `^\{"rasi":.*"navamsa":.*"hora":`, string(data))

	var back ChartSet
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 3)
	assert.Equal(t, "navamsa", back[1].ChartType)
	rows, ok := back.Get("rasi")
	require.True(t, ok)
	assert.Equal(t, []string{"Sun (Su)"}, rows[0].Planets)

	out, err := yaml.Marshal(set)
	require.NoError(t, err)
	assert.Regexp(t, `(?s)^rasi:.*navamsa: \[\]\nhora: \[\]\n$`, string(out))
}

func TestChartSet_UnmarshalRejectsArray(t *testing.T) {
	var set ChartSet
	assert.Error(t, json.Unmarshal([]byte(`[]`), &set))
}
