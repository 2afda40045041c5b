// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package svgchart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-dcharts/pkg/types"
)

func TestParseChart_TwelveRowsInSignOrder(t *testing.T) {
	rows, err := ParseChart(chartSVG(t, fullChart(nil)))
	require.NoError(t, err)
	require.Len(t, rows, 12)

	for i, row := range rows {
		assert.Equal(t, i+1, row.No)
		assert.Equal(t, types.SignName(i+1), row.SignName)
		assert.NotNil(t, row.Planets)
		assert.Empty(t, row.Planets)
	}
	assert.Equal(t, "Aries", rows[0].SignName)
	assert.Equal(t, "Pisces", rows[11].SignName)
}

func TestParseChart_PlacesPlanetsInEncounterOrder(t *testing.T) {
	rows, err := ParseChart(chartSVG(t, fullChart(map[int][]string{
		1:  {"Ju", "Sa"},
		4:  {"Su", "Me", "Ra"},
		10: {"Asc"},
	})))
	require.NoError(t, err)

	assert.Equal(t, []string{"Jupiter (Ju)", "Saturn (Sa)"}, rows[0].Planets)
	assert.Equal(t, []string{"Sun (Su)", "Mercury (Me)", "Rahu (Ra)"}, rows[3].Planets)
	assert.Equal(t, []string{"Ascendant (Asc)"}, rows[9].Planets)
	assert.Empty(t, rows[6].Planets)
}

func TestParseChart_PlanetInUnlabeledCellIsDropped(t *testing.T) {
	cells := append(fullChart(nil), cellText{cell: Cell{Col: 1, Row: 1}, texts: []string{"Mo"}})

	rows, err := ParseChart(chartSVG(t, cells))
	require.NoError(t, err)
	require.Len(t, rows, 12)
	for _, row := range rows {
		assert.Empty(t, row.Planets, "sign %d", row.No)
	}
}

func TestParseChart_IgnoresUnknownTokens(t *testing.T) {
	rows, err := ParseChart(chartSVG(t, fullChart(map[int][]string{
		2: {"asc", "Ur", "Ve (R)", "Ve"},
	})))
	require.NoError(t, err)
	assert.Equal(t, []string{"Venus (Ve)"}, rows[1].Planets)
}

func TestParseChart_FirstLabelInCellWins(t *testing.T) {
	cells := fullChart(nil)
	cells[2] = labeled(3, "9", "Ma")

	rows, err := ParseChart(chartSVG(t, cells))
	require.NoError(t, err)
	assert.Equal(t, []string{"Mars (Ma)"}, rows[2].Planets)
	assert.Empty(t, rows[8].Planets)
}

func TestParseChart_TextOutsideGridIsDropped(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg">
		<line x1="0" y1="0" x2="0" y2="100"/>
		<line x1="100" y1="0" x2="100" y2="100"/>
		<line x1="0" y1="0" x2="100" y2="0"/>
		<line x1="0" y1="100" x2="100" y2="100"/>
		<text x="10" y="20">1</text>
		<text x="50" y="50">Su</text>
		<text x="150" y="50">Mo</text>
	</svg>`

	rows, err := ParseChart([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sun (Su)"}, rows[0].Planets)
	for _, row := range rows[1:] {
		assert.Empty(t, row.Planets)
	}
}

func TestParseChart_Idempotent(t *testing.T) {
	svg := chartSVG(t, fullChart(map[int][]string{5: {"Ke"}, 11: {"Mo", "Ma"}}))

	first, err := ParseChart(svg)
	require.NoError(t, err)
	second, err := ParseChart(svg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseChart_MalformedDocument(t *testing.T) {
	rows, err := ParseChart([]byte(`<svg><text x="1" y="1">Su</text`))
	assert.Nil(t, rows)

	var mde *MalformedDocumentError
	assert.True(t, errors.As(err, &mde))
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestParseChart_NoGridYieldsEmptyRows(t *testing.T) {
	doc := `<svg><line x1="0" y1="0" x2="100" y2="0"/><text x="10" y="10">1</text><text x="30" y="10">Su</text></svg>`

	rows, err := ParseChart([]byte(doc))
	require.NoError(t, err)
	require.Len(t, rows, 12)
	for _, row := range rows {
		assert.Empty(t, row.Planets, "sign %d", row.No)
	}
}
