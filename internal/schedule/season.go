package schedule

// Season identifies the agricultural season a date falls into, as defined
// by the configured season calendar.
type Season int

const (
	SeasonUnknown Season = iota
	SeasonSpring
	SeasonSummer
	SeasonAutumn
	SeasonWinter
)

func (s Season) String() string {
	switch s {
	case SeasonSpring:
		return "spring"
	case SeasonSummer:
		return "summer"
	case SeasonAutumn:
		return "autumn"
	case SeasonWinter:
		return "winter"
	default:
		return "unknown"
	}
}

// FertilizerIndex maps the season to the index used when a tree lists one
// fertilizer per season: spring=0, summer=1, autumn=2. Winter and unknown
// fall back to the first entry.
func (s Season) FertilizerIndex() int {
	switch s {
	case SeasonSummer:
		return 1
	case SeasonAutumn:
		return 2
	default:
		return 0
	}
}

// SeasonCalendar holds the configured date ranges for each season. Ranges
// carry explicit years; a season spanning a year boundary is configured as
// two ranges.
type SeasonCalendar struct {
	Spring []DateRange
	Summer []DateRange
	Autumn []DateRange
	Winter []DateRange
}

// SeasonOf returns the season whose ranges contain d, checking spring,
// summer, autumn, then winter. Dates outside every range resolve to
// SeasonUnknown.
func (c SeasonCalendar) SeasonOf(d Date) Season {
	ordered := []struct {
		season Season
		ranges []DateRange
	}{
		{SeasonSpring, c.Spring},
		{SeasonSummer, c.Summer},
		{SeasonAutumn, c.Autumn},
		{SeasonWinter, c.Winter},
	}
	for _, entry := range ordered {
		for _, r := range entry.ranges {
			if r.Contains(d) {
				return entry.season
			}
		}
	}
	return SeasonUnknown
}
