package luas

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedFeed is returned when the upstream response cannot be parsed as
// XML at all. Problems with individual tram entries never produce this error;
// those entries are dropped and parsing continues.
var ErrMalformedFeed = errors.New("malformed forecast feed")

const (
	// dueSentinel is the upstream value for a tram that is arriving now.
	dueSentinel = "DUE"
	// noForecastSentinel appears in the destination field when a direction has
	// no service to report.
	noForecastSentinel = "no trams forecast"
)

// Forecast is one normalized tram arrival forecast from a single poll.
type Forecast struct {
	Destination string
	// Direction is the label exactly as the feed sent it ("Inbound" or
	// "Outbound"). Case is preserved; downstream grouping is case-sensitive.
	Direction  string
	DueMinutes int
	DueAt      time.Time
}

// The forecast document looks like:
//
//	<stopInfo created="..." stop="Cabra" stopAbv="CAB">
//	    <message>Green Line services operating normally</message>
//	    <direction name="Inbound">
//	        <tram dueMins="DUE" destination="Broombridge" />
//	    </direction>
//	</stopInfo>
//
// Unknown elements and attributes are ignored so the schema can evolve without
// breaking us.
type stopInfoDoc struct {
	Directions []directionElem `xml:"direction"`
}

type directionElem struct {
	Name  string     `xml:"name,attr"`
	Trams []tramElem `xml:"tram"`
}

type tramElem struct {
	DueMins     string `xml:"dueMins,attr"`
	Destination string `xml:"destination,attr"`
}

// Parse turns one raw feed document into the forecasts it contains, in
// document order. Individual entries that are incomplete or unparseable are
// skipped; only a document that is not well-formed XML fails the whole parse.
// A well-formed document with no usable entries yields an empty slice.
func Parse(raw []byte, pollTime time.Time) ([]Forecast, error) {
	var doc stopInfoDoc
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFeed, err)
	}

	forecasts := []Forecast{}
	for _, direction := range doc.Directions {
		name := strings.TrimSpace(direction.Name)
		if name == "" {
			continue
		}

		for _, tram := range direction.Trams {
			destination := strings.TrimSpace(tram.Destination)
			if destination == "" || strings.EqualFold(destination, noForecastSentinel) {
				continue
			}

			dueMinutes, ok := parseDueMinutes(tram.DueMins)
			if !ok {
				continue
			}

			forecasts = append(forecasts, Forecast{
				Destination: destination,
				Direction:   name,
				DueMinutes:  dueMinutes,
				DueAt:       pollTime.Add(time.Duration(dueMinutes) * time.Minute).UTC(),
			})
		}
	}

	return forecasts, nil
}

// parseDueMinutes interprets the dueMins attribute. "DUE" means arriving now.
// A forecast cannot be due in negative minutes.
func parseDueMinutes(raw string) (int, bool) {
	value := strings.TrimSpace(raw)
	if strings.EqualFold(value, dueSentinel) {
		return 0, true
	}

	minutes, err := strconv.Atoi(value)
	if err != nil || minutes < 0 {
		return 0, false
	}

	return minutes, true
}
