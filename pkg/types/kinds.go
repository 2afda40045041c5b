// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package types

import "slices"

// Chart styles accepted by the provider.
const (
	StyleSouthIndian = "south-indian"
	StyleNorthIndian = "north-indian"
	StyleEastIndian  = "east-indian"
)

// AshtakavargaChartType is the provider chart kind for the sarvashtakavarga
// (point-total) chart.
const AshtakavargaChartType = "sarvashtakavarga-chart"

// dchartTypes lists every divisional chart kind in enumeration order. Batch
// results are always reported in this order.
var dchartTypes = []string{
	"rasi",
	"navamsa",
	"lagna",
	"trimsamsa",
	"drekkana",
	"chaturthamsa",
	"dasamsa",
	"ashtamsa",
	"dwadasamsa",
	"shodasamsa",
	"hora",
	"akshavedamsa",
	"shashtyamsa",
	"panchamsa",
	"khavedamsa",
	"saptamsa",
	"nadiamsa",
	"chaturvimsamsa",
	"bhamsa",
	"vimsamsa",
}

// DChartTypes returns a copy of the divisional chart kinds in enumeration order.
func DChartTypes() []string {
	return slices.Clone(dchartTypes)
}

// PlanetChartStyles are the styles the planet-placement parser understands.
var PlanetChartStyles = []string{StyleSouthIndian}

// AshtakavargaStyles are the styles accepted for the ashtakavarga chart.
var AshtakavargaStyles = []string{StyleSouthIndian, StyleEastIndian}
