package services

import (
	"sort"
	"time"

	"github.com/yigit/conduct/internal/app/models"
	"github.com/yigit/conduct/internal/pkg/helpers"
)

// The functions in this file are the only place behaviors are split into the
// violation and excellent sides. All of them decide through BehaviorCategory.IsViolation.

// categoryTally counts one value per side
type categoryTally struct {
	violations int
	excellent  int
}

func (t *categoryTally) add(c models.BehaviorCategory) {
	if c.IsViolation() {
		t.violations++
	} else {
		t.excellent++
	}
}

// aggregateStatistics builds the dashboard rollup from a filtered fact set
func aggregateStatistics(facts []models.BehaviorFact, loc *time.Location) *models.Statistics {
	stats := &models.Statistics{
		BehaviorTypeDistribution: []models.NameValue{},
	}

	var totals categoryTally
	violators := map[int64]struct{}{}
	excellers := map[int64]struct{}{}
	byType := map[string]int{}

	for _, f := range facts {
		totals.add(f.Category)
		if f.Category.IsViolation() {
			violators[f.StudentID] = struct{}{}
		} else {
			excellers[f.StudentID] = struct{}{}
		}
		byType[f.TypeName]++
	}

	stats.TotalViolations = totals.violations
	stats.TotalExcellent = totals.excellent
	stats.ViolationStudents = len(violators)
	stats.ExcellentStudents = len(excellers)

	for name, count := range byType {
		stats.BehaviorTypeDistribution = append(stats.BehaviorTypeDistribution, models.NameValue{Name: name, Value: count})
	}
	sort.Slice(stats.BehaviorTypeDistribution, func(i, j int) bool {
		a, b := stats.BehaviorTypeDistribution[i], stats.BehaviorTypeDistribution[j]
		if a.Value != b.Value {
			return a.Value > b.Value
		}
		return a.Name < b.Name
	})

	stats.GradeViolations, stats.GradeExcellent = gradeCounts(facts)
	stats.TimeTrend = dailySeries(facts, loc)
	return stats
}

// gradeCounts aligns per-category counts to models.GradeLevels. Grades outside the
// list are not shown.
func gradeCounts(facts []models.BehaviorFact) (violations, excellent []int) {
	index := make(map[string]int, len(models.GradeLevels))
	for i, g := range models.GradeLevels {
		index[g] = i
	}

	tallies := make([]categoryTally, len(models.GradeLevels))
	for _, f := range facts {
		if i, ok := index[f.Grade]; ok {
			tallies[i].add(f.Category)
		}
	}

	violations = make([]int, len(tallies))
	excellent = make([]int, len(tallies))
	for i, t := range tallies {
		violations[i] = t.violations
		excellent[i] = t.excellent
	}
	return violations, excellent
}

// dailyTallies buckets facts by calendar day in loc
func dailyTallies(facts []models.BehaviorFact, loc *time.Location) map[string]*categoryTally {
	days := map[string]*categoryTally{}
	for _, f := range facts {
		key := helpers.DayKey(f.OccurredAt, loc)
		t, ok := days[key]
		if !ok {
			t = &categoryTally{}
			days[key] = t
		}
		t.add(f.Category)
	}
	return days
}

// dailySeries returns one ascending series per side holding only the days that
// side has behaviors on
func dailySeries(facts []models.BehaviorFact, loc *time.Location) models.TimeTrend {
	days := dailyTallies(facts, loc)

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	// YYYY-MM-DD sorts lexically in date order
	sort.Strings(keys)

	trend := models.TimeTrend{
		Violations: []models.DailyCount{},
		Excellent:  []models.DailyCount{},
	}
	for _, k := range keys {
		t := days[k]
		if t.violations > 0 {
			trend.Violations = append(trend.Violations, models.DailyCount{Date: k, Count: t.violations})
		}
		if t.excellent > 0 {
			trend.Excellent = append(trend.Excellent, models.DailyCount{Date: k, Count: t.excellent})
		}
	}
	return trend
}

// zeroFilledTrend lists every day from start through start+days, zero where nothing happened
func zeroFilledTrend(facts []models.BehaviorFact, start time.Time, days int, loc *time.Location) *models.BehaviorTrends {
	tallies := dailyTallies(facts, loc)

	trends := &models.BehaviorTrends{
		Dates:      make([]string, 0, days+1),
		Violations: make([]int, 0, days+1),
		Excellents: make([]int, 0, days+1),
	}
	for i := 0; i <= days; i++ {
		key := helpers.DayKey(start.AddDate(0, 0, i), loc)
		trends.Dates = append(trends.Dates, key)
		if t, ok := tallies[key]; ok {
			trends.Violations = append(trends.Violations, t.violations)
			trends.Excellents = append(trends.Excellents, t.excellent)
		} else {
			trends.Violations = append(trends.Violations, 0)
			trends.Excellents = append(trends.Excellents, 0)
		}
	}
	return trends
}

// typeUsage counts facts per behavior type, keeping unused types at zero
func typeUsage(types []*models.BehaviorType, facts []models.BehaviorFact) []models.BehaviorTypeCount {
	counts := map[string]int{}
	for _, f := range facts {
		counts[f.TypeName]++
	}

	result := make([]models.BehaviorTypeCount, 0, len(types))
	for _, bt := range types {
		result = append(result, models.BehaviorTypeCount{
			TypeName:    bt.Name,
			Category:    bt.Category,
			IsViolation: bt.IsViolation(),
			Count:       counts[bt.Name],
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].TypeName < result[j].TypeName
	})
	return result
}

// foldStudentCounts turns per-category counts into per-student side totals
func foldStudentCounts(counts []models.CategoryCount) map[int64]categoryTally {
	result := map[int64]categoryTally{}
	for _, c := range counts {
		t := result[c.StudentID]
		if c.Category.IsViolation() {
			t.violations += c.Count
		} else {
			t.excellent += c.Count
		}
		result[c.StudentID] = t
	}
	return result
}

// groupByType summarizes one student's behaviors per type, most frequent first
func groupByType(details []models.BehaviorDetail) []models.StudentTypeStat {
	index := map[string]int{}
	stats := []models.StudentTypeStat{}
	for _, d := range details {
		i, ok := index[d.BehaviorType]
		if !ok {
			i = len(stats)
			index[d.BehaviorType] = i
			stats = append(stats, models.StudentTypeStat{
				BehaviorType: d.BehaviorType,
				Category:     d.Category,
				Descriptions: []string{},
			})
		}
		stats[i].Count++
		if d.Description != "" {
			stats[i].Descriptions = append(stats[i].Descriptions, d.Description)
		}
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return stats
}
