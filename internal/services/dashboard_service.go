package services

import (
	"fmt"
	"sort"
	"time"
)

// DefaultMinCohort is the privacy floor: aggregates are only computed once
// at least this many records match a team.
const DefaultMinCohort = 5

// WeekMetrics is one ISO-week bucket of the team trend.
type WeekMetrics struct {
	Week           string  `json:"week"`
	MeanQ          float64 `json:"mean_q"`
	ParticipationN int     `json:"participation_n"`
	Alerts         int     `json:"alerts"`
	MeanSentiment  float64 `json:"mean_sent"`
}

// ParityRow is one role's participation counts, aligned with the tenure
// bucket order of the enclosing ParticipationParity.
type ParityRow struct {
	Role   Role  `json:"role"`
	Counts []int `json:"counts"`
	Total  int   `json:"total"`
}

// ParticipationParity is the role × tenure cross-tab over the full
// filtered set (not week-bucketed). Every role/tenure combination is
// present, zero-filled, and the cells sum to the team's record count.
type ParticipationParity struct {
	TenureBuckets []TenureBucket `json:"tenure_buckets"`
	Rows          []ParityRow    `json:"rows"`
}

// TeamDashboard is the aggregate view for one team. When Sufficient is
// false only N is populated; no partial analytics are ever exposed below
// the cohort floor.
type TeamDashboard struct {
	TeamID     string               `json:"team_id"`
	N          int                  `json:"n"`
	MinCohort  int                  `json:"min_cohort"`
	Sufficient bool                 `json:"sufficient"`
	Weeks      []WeekMetrics        `json:"weeks,omitempty"`
	LastWeek   *WeekMetrics         `json:"last_week,omitempty"`
	Parity     *ParticipationParity `json:"participation_parity,omitempty"`
}

// DashboardService computes privacy-gated team rollups from the store.
type DashboardService struct {
	store     CheckinStore
	minCohort int
}

func NewDashboardService(store CheckinStore, minCohort int) *DashboardService {
	if minCohort <= 0 {
		minCohort = DefaultMinCohort
	}
	return &DashboardService{store: store, minCohort: minCohort}
}

// TeamDashboard aggregates all records whose team id exactly equals the
// requested code (case-sensitive, no normalization). LastWeek is the most
// recent week bucket present in the data, which is not necessarily the
// calendar-current week.
func (s *DashboardService) TeamDashboard(teamID string) (*TeamDashboard, error) {
	all, err := s.store.LoadAll()
	if err != nil {
		return nil, NewUnavailableError("load check-ins: " + err.Error())
	}
	matched := make([]*Checkin, 0, len(all))
	for _, c := range all {
		if c.TeamID == teamID {
			matched = append(matched, c)
		}
	}
	n := len(matched)
	out := &TeamDashboard{TeamID: teamID, N: n, MinCohort: s.minCohort}
	if n < s.minCohort {
		return out, nil
	}
	out.Sufficient = true
	out.Weeks = buildWeeklyTrend(matched)
	if len(out.Weeks) > 0 {
		last := out.Weeks[len(out.Weeks)-1]
		out.LastWeek = &last
	}
	out.Parity = buildParity(matched)
	return out, nil
}

// isoWeekKey buckets a calendar date into a sortable ISO week label.
// Unparseable dates bucket under their raw value rather than dropping the
// record.
func isoWeekKey(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func avgQ(c *Checkin) float64 {
	return float64(c.Q1+c.Q2+c.Q3+c.Q4) / 4.0
}

func buildWeeklyTrend(records []*Checkin) []WeekMetrics {
	buckets := map[string][]*Checkin{}
	for _, c := range records {
		key := isoWeekKey(c.Date)
		buckets[key] = append(buckets[key], c)
	}
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]WeekMetrics, 0, len(keys))
	for _, k := range keys {
		group := buckets[k]
		var sumQ, sumSent float64
		alerts := 0
		for _, c := range group {
			sumQ += avgQ(c)
			sumSent += c.SentimentScore
			alerts += c.BurnoutFlag
		}
		count := len(group)
		out = append(out, WeekMetrics{
			Week:           k,
			MeanQ:          sumQ / float64(count),
			ParticipationN: count,
			Alerts:         alerts,
			MeanSentiment:  sumSent / float64(count),
		})
	}
	return out
}

func buildParity(records []*Checkin) *ParticipationParity {
	tenures := TenureBuckets()
	tenureIndex := map[TenureBucket]int{}
	for i, t := range tenures {
		tenureIndex[t] = i
	}
	rows := make([]ParityRow, 0, len(Roles()))
	rowIndex := map[Role]int{}
	for i, r := range Roles() {
		rows = append(rows, ParityRow{Role: r, Counts: make([]int, len(tenures))})
		rowIndex[r] = i
	}
	for _, c := range records {
		ri, ok := rowIndex[c.Role]
		if !ok {
			continue
		}
		ti, ok := tenureIndex[c.TenureBucket]
		if !ok {
			continue
		}
		rows[ri].Counts[ti]++
		rows[ri].Total++
	}
	return &ParticipationParity{TenureBuckets: tenures, Rows: rows}
}
