package analytics

import (
	"sort"
	"time"

	domainCollection "sankofa/internal/domain/collection"
	domainDonation "sankofa/internal/domain/donation"
	domainHub "sankofa/internal/domain/hub"
	domainUser "sankofa/internal/domain/user"
	"sankofa/pkg/utils"

	"github.com/google/uuid"
)

const monthLayout = "2006-01"

// settledAt is the instant a verified collection counts towards a month.
func settledAt(f domainCollection.Fact) time.Time {
	if f.VerifiedAt != nil {
		return f.VerifiedAt.UTC()
	}
	return f.CreatedAt.UTC()
}

func isVerified(f domainCollection.Fact) bool {
	return f.Status == string(domainCollection.StatusVerified)
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func buildDashboard(
	facts []domainCollection.Fact,
	roles []domainUser.RoleCount,
	hubs []*domainHub.Hub,
	donations *domainDonation.Stats,
	co2Factor float64,
	now time.Time,
) *DashboardResponse {
	out := &DashboardResponse{
		WeightByType: make(map[string]float64),
		UsersByRole:  make(map[string]int64),
		GeneratedAt:  now.UTC(),
	}

	thisMonth := monthStart(now)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var current, previous float64
	for _, f := range facts {
		out.Collections.Count++
		if !isVerified(f) {
			out.Collections.PendingCount++
			continue
		}

		out.Collections.VerifiedCount++
		out.Collections.VerifiedWeight += f.Weight
		out.Collections.CashPaid += f.CashAmount
		out.Collections.TokensIssued += f.TokenAmount
		out.WeightByType[f.PlasticType] += f.Weight

		at := settledAt(f)
		switch {
		case !at.Before(thisMonth):
			current += f.Weight
		case !at.Before(lastMonth):
			previous += f.Weight
		}
	}

	out.Collections.VerifiedWeight = utils.Round2(out.Collections.VerifiedWeight)
	out.Collections.CashPaid = utils.Round2(out.Collections.CashPaid)
	out.Collections.TokensIssued = utils.Round2(out.Collections.TokensIssued)
	for k, v := range out.WeightByType {
		out.WeightByType[k] = utils.Round2(v)
	}

	out.Monthly = MonthComparison{
		CurrentMonthWeight:  utils.Round2(current),
		PreviousMonthWeight: utils.Round2(previous),
		PercentageChange:    utils.PercentageChange(current, previous),
	}

	for _, rc := range roles {
		out.UsersByRole[rc.Role] = rc.Count
		out.TotalUsers += rc.Count
	}

	var utilisation float64
	for _, h := range hubs {
		out.Hubs.Total++
		switch h.Status {
		case domainHub.StatusActive:
			out.Hubs.Active++
		case domainHub.StatusFull:
			out.Hubs.Full++
		}
		utilisation += h.Utilisation()
	}
	if len(hubs) > 0 {
		out.Hubs.MeanUtilisation = utils.Round2(utilisation / float64(len(hubs)))
	}

	if donations != nil {
		out.Donations = DonationTotals{
			CompletedAmount: utils.Round2(donations.TotalAmount),
			CompletedCount:  donations.CompletedCount,
		}
	}

	out.Impact = Impact{
		PlasticDivertedKg: out.Collections.VerifiedWeight,
		CO2SavedKg:        utils.Round2(out.Collections.VerifiedWeight * co2Factor),
	}

	return out
}

// buildTrend buckets verified collections into the last months calendar
// months, oldest first. Months without collections are present with zeros.
func buildTrend(facts []domainCollection.Fact, months int, now time.Time) []TrendPoint {
	start := monthStart(now).AddDate(0, -(months - 1), 0)

	points := make([]TrendPoint, months)
	index := make(map[string]int, months)
	for i := 0; i < months; i++ {
		key := start.AddDate(0, i, 0).Format(monthLayout)
		points[i].Month = key
		index[key] = i
	}

	for _, f := range facts {
		if !isVerified(f) {
			continue
		}
		i, ok := index[settledAt(f).Format(monthLayout)]
		if !ok {
			continue
		}
		points[i].Count++
		points[i].VerifiedWeight += f.Weight
		points[i].CashPaid += f.CashAmount
	}

	for i := range points {
		points[i].VerifiedWeight = utils.Round2(points[i].VerifiedWeight)
		points[i].CashPaid = utils.Round2(points[i].CashPaid)
	}
	return points
}

// rankCollectors orders collectors by verified weight, heaviest first. Ties
// keep a stable order by collector id.
func rankCollectors(facts []domainCollection.Fact, limit int) []LeaderboardEntry {
	byCollector := make(map[uuid.UUID]*LeaderboardEntry)
	for _, f := range facts {
		if !isVerified(f) {
			continue
		}
		entry, ok := byCollector[f.CollectorID]
		if !ok {
			entry = &LeaderboardEntry{CollectorID: f.CollectorID}
			byCollector[f.CollectorID] = entry
		}
		entry.Collections++
		entry.VerifiedWeight += f.Weight
		entry.CashEarned += f.CashAmount
	}

	entries := make([]LeaderboardEntry, 0, len(byCollector))
	for _, e := range byCollector {
		e.VerifiedWeight = utils.Round2(e.VerifiedWeight)
		e.CashEarned = utils.Round2(e.CashEarned)
		entries = append(entries, *e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].VerifiedWeight != entries[j].VerifiedWeight {
			return entries[i].VerifiedWeight > entries[j].VerifiedWeight
		}
		return entries[i].CollectorID.String() < entries[j].CollectorID.String()
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func buildHubPerformance(facts []domainCollection.Fact, hubs []*domainHub.Hub) []HubPerformance {
	type tally struct {
		count  int64
		weight float64
	}
	byHub := make(map[uuid.UUID]*tally)
	for _, f := range facts {
		t, ok := byHub[f.HubID]
		if !ok {
			t = &tally{}
			byHub[f.HubID] = t
		}
		t.count++
		if isVerified(f) {
			t.weight += f.Weight
		}
	}

	out := make([]HubPerformance, 0, len(hubs))
	for _, h := range hubs {
		perf := HubPerformance{
			HubID:           h.ID,
			Name:            h.Name,
			Region:          h.Region,
			Status:          string(h.Status),
			Capacity:        h.Capacity,
			CurrentCapacity: h.CurrentCapacity,
			Utilisation:     utils.Round2(h.Utilisation()),
		}
		if t, ok := byHub[h.ID]; ok {
			perf.Collections = t.count
			perf.VerifiedWeight = utils.Round2(t.weight)
		}
		out = append(out, perf)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VerifiedWeight > out[j].VerifiedWeight
	})
	return out
}
