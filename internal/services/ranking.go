package services

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/mbellini/tastevin/internal/logger"
	"github.com/mbellini/tastevin/internal/models"
)

// RankingServiceRepository defines the repository methods needed by RankingService
type RankingServiceRepository interface {
	ListEventRatings(ctx context.Context, eventID int) ([]models.Rating, error)
}

// RankingService aggregates ratings into the ordered wine and participant
// results of an event report. All score arithmetic runs on integer tenths so
// results at one-decimal resolution never drift: inputs are half steps, so
// the conversion to tenths is exact.
type RankingService struct {
	log           logger.Logger
	repo          RankingServiceRepository
	participation ParticipationServicer
}

// NewRankingService creates a new RankingService
func NewRankingService(log logger.Logger, repo RankingServiceRepository, participation ParticipationServicer) *RankingService {
	return &RankingService{log: log, repo: repo, participation: participation}
}

// WineVote is one participant's score for a wine, kept for audit/display
type WineVote struct {
	ParticipantName string  `json:"participant_name"`
	Score           float64 `json:"score"`
}

// WineResult is one wine's aggregate outcome
type WineResult struct {
	WineID       int        `json:"wine_id"`
	WineName     string     `json:"wine_name"`
	Producer     string     `json:"producer,omitempty"`
	Year         int        `json:"year,omitempty"`
	OwnerName    string     `json:"owner_name"`
	AverageScore float64    `json:"average_score"`
	TotalScore   float64    `json:"total_score"`
	VoteCount    int        `json:"vote_count"`
	Position     int        `json:"position"`
	Votes        []WineVote `json:"votes"`
}

// ParticipantRanking ranks a participant by the average of the scores they
// cast. This is a voter-behavior metric, not a measure of how the
// participant's own wine did.
type ParticipantRanking struct {
	ParticipantID     int     `json:"participant_id"`
	ParticipantName   string  `json:"participant_name"`
	AverageScoreGiven float64 `json:"average_score_given"`
	VotesCast         int     `json:"votes_cast"`
	Position          int     `json:"position"`
}

// ReportSummary holds event-wide statistics
type ReportSummary struct {
	TotalParticipants int     `json:"total_participants"`
	TotalWines        int     `json:"total_wines"`
	TotalVotes        int     `json:"total_votes"`
	AverageScore      float64 `json:"average_score"`
}

// EventReport is the outcome snapshot for a completed event
type EventReport struct {
	Event               models.Event         `json:"event"`
	WineResults         []WineResult         `json:"wine_results"`
	ParticipantRankings []ParticipantRanking `json:"participant_rankings"`
	Summary             ReportSummary        `json:"summary"`
	GeneratedBy         int                  `json:"generated_by"`
	GeneratedAt         string               `json:"generated_at"`
}

// scoreTenths converts a half-step score to integer tenths. Exact for every
// valid score, since valid scores are multiples of 0.5.
func scoreTenths(score float64) int {
	return int(math.Round(score * 10))
}

// roundAverageTenths divides a sum of tenths by a count, rounding half away
// from zero, entirely in integer arithmetic. Scores are positive so the
// nonnegative form suffices.
func roundAverageTenths(sumTenths, count int) int {
	if count == 0 {
		return 0
	}
	return (2*sumTenths + count) / (2 * count)
}

// fromTenths converts integer tenths back to a one-decimal score
func fromTenths(tenths int) float64 {
	return float64(tenths) / 10
}

// roundAverageHundredths is roundAverageTenths at hundredth resolution.
// The event-wide grand average keeps two decimals so averaging one-decimal
// wine scores does not lose the quarter steps (e.g. 7.75 stays 7.75).
func roundAverageHundredths(sumTenths, count int) int {
	if count == 0 {
		return 0
	}
	return (20*sumTenths + count) / (2 * count)
}

func fromHundredths(hundredths int) float64 {
	return float64(hundredths) / 100
}

// BuildReport computes the full report payload for an event. The caller is
// responsible for having verified completeness; BuildReport itself degrades
// gracefully, scoring unrated wines as zero.
func (s *RankingService) BuildReport(ctx context.Context, event *models.Event, generatedBy int) (*EventReport, error) {
	participation, err := s.participation.Resolve(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	ratings, err := s.repo.ListEventRatings(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(participation.Participants))
	for _, p := range participation.Participants {
		names[p.ID] = p.Name
	}

	wineResults := s.rankWines(participation.Wines, ratings, names)
	participantRankings := s.rankParticipants(participation.Participants, ratings)

	grandSum := 0
	for _, rt := range ratings {
		grandSum += scoreTenths(rt.Score)
	}

	report := &EventReport{
		Event:               *event,
		WineResults:         wineResults,
		ParticipantRankings: participantRankings,
		Summary: ReportSummary{
			TotalParticipants: len(participation.Participants),
			TotalWines:        len(participation.Wines),
			TotalVotes:        len(ratings),
			AverageScore:      fromHundredths(roundAverageHundredths(grandSum, len(ratings))),
		},
		GeneratedBy: generatedBy,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	return report, nil
}

// rankWines aggregates received scores per wine, sorts by (average desc,
// wine id asc) and assigns strictly sequential 1-based positions. Ties get
// distinct positions; the id tiebreak keeps the order reproducible.
func (s *RankingService) rankWines(wines []models.WineEntry, ratings []models.Rating, names map[int]string) []WineResult {
	sums := make(map[int]int)
	votes := make(map[int][]WineVote)
	for _, rt := range ratings {
		sums[rt.WineID] += scoreTenths(rt.Score)
		voterName := names[rt.ParticipantID]
		if voterName == "" {
			voterName = "Unknown"
		}
		votes[rt.WineID] = append(votes[rt.WineID], WineVote{
			ParticipantName: voterName,
			Score:           rt.Score,
		})
	}

	results := make([]WineResult, 0, len(wines))
	for _, w := range wines {
		ownerName := names[w.OwnerID]
		if ownerName == "" {
			ownerName = "Unknown"
		}
		count := len(votes[w.ID])
		results = append(results, WineResult{
			WineID:       w.ID,
			WineName:     w.Name,
			Producer:     w.Producer,
			Year:         w.Year,
			OwnerName:    ownerName,
			AverageScore: fromTenths(roundAverageTenths(sums[w.ID], count)),
			TotalScore:   fromTenths(sums[w.ID]),
			VoteCount:    count,
			Votes:        votes[w.ID],
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].AverageScore != results[j].AverageScore {
			return results[i].AverageScore > results[j].AverageScore
		}
		return results[i].WineID < results[j].WineID
	})
	for i := range results {
		results[i].Position = i + 1
	}
	return results
}

// rankParticipants averages the scores each participant gave and orders by
// (average desc, participant id asc) with sequential positions.
func (s *RankingService) rankParticipants(participants []models.Participant, ratings []models.Rating) []ParticipantRanking {
	sums := make(map[int]int)
	counts := make(map[int]int)
	for _, rt := range ratings {
		sums[rt.ParticipantID] += scoreTenths(rt.Score)
		counts[rt.ParticipantID]++
	}

	rankings := make([]ParticipantRanking, 0, len(participants))
	for _, p := range participants {
		rankings = append(rankings, ParticipantRanking{
			ParticipantID:     p.ID,
			ParticipantName:   p.Name,
			AverageScoreGiven: fromTenths(roundAverageTenths(sums[p.ID], counts[p.ID])),
			VotesCast:         counts[p.ID],
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		if rankings[i].AverageScoreGiven != rankings[j].AverageScoreGiven {
			return rankings[i].AverageScoreGiven > rankings[j].AverageScoreGiven
		}
		return rankings[i].ParticipantID < rankings[j].ParticipantID
	})
	for i := range rankings {
		rankings[i].Position = i + 1
	}
	return rankings
}
