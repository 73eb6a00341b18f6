package engine

import (
	"math"
	"strings"
	"testing"
)

// fixtureCSV mirrors the published layout. The last three rows are
// discarded (empty value, bad period, empty magnitude).
const fixtureCSV = `Series_reference,Period,Data_value,STATUS,UNITS,MAGNTUDE,Subject,Group,Series_title_1,Series_title_2,Series_title_3
RNA001,2000.03,100,F,Dollars,6,Regional GDP,"Gross domestic product, by region and industry",GDP,Auckland,Gross Domestic Product
RNA001,2001.03,110,F,Dollars,6,Regional GDP,"Gross domestic product, by region and industry",GDP,Auckland,Gross Domestic Product
RNA001,2002.03,99,F,Dollars,6,Regional GDP,"Gross domestic product, by region and industry",GDP,Auckland,Gross Domestic Product
RNA002,2000.03,50,F,Dollars,6,Regional GDP,"Gross domestic product, by region and industry",GDP,Wellington,Gross Domestic Product
RNA002,2002.03,60,F,Dollars,6,Regional GDP,"Gross domestic product, by region and industry",GDP,Wellington,Gross Domestic Product
RNA003,2000.03,0,F,Dollars,6,Regional GDP,"Gross domestic product, by region and industry",GDP,Chatham Islands,Gross Domestic Product
RNA003,2002.03,5,F,Dollars,6,Regional GDP,"Gross domestic product, by region and industry",GDP,Chatham Islands,Gross Domestic Product
RNB001,2000.03,40000,F,Dollars,0,Regional GDP,"Gross domestic product per person, by region",GDP per capita,Auckland,
RNB001,2002.03,44000,F,Dollars,0,Regional GDP,"Gross domestic product per person, by region",GDP per capita,Auckland,
RNC001,2002.03,7,F,Dollars,6,Regional GDP,"Gross domestic product, by region and industry",GDP,Auckland,Agriculture
RNX001,2002.03,,S,Dollars,6,Regional GDP,"Gross domestic product, by region and industry",GDP,Nelson,Gross Domestic Product
RNX002,abc.03,10,F,Dollars,6,Regional GDP,"Gross domestic product, by region and industry",GDP,Nelson,Gross Domestic Product
RNX003,2002.03,10,F,Dollars,,Regional GDP,"Gross domestic product, by region and industry",GDP,Nelson,Gross Domestic Product
`

func loadFixture(t *testing.T) *Dataset {
	t.Helper()
	ds, err := LoadColumnar(strings.NewReader(fixtureCSV), "fixture.csv", nil)
	if err != nil {
		t.Fatalf("LoadColumnar: %v", err)
	}
	return ds
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}
