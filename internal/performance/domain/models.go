package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/medforce/fieldtrack/internal/period"
	"github.com/medforce/fieldtrack/internal/scope"
	targetdomain "github.com/medforce/fieldtrack/internal/target/domain"
)

// NoTopPerformer is reported when nobody in scope achieved anything; a
// representative with a target but zero achievement is never presented as the
// top performer.
const NoTopPerformer = "No Top Performer"

// TargetProgress is a target joined with its achieved total for a period.
// Derived on every read, never stored.
type TargetProgress struct {
	TargetID              snowflake.ID            `json:"target_id"`
	RepID                 snowflake.ID            `json:"rep_id"`
	RepName               string                  `json:"rep_name"`
	ProductName           string                  `json:"product_name,omitempty"`
	Category              targetdomain.Category   `json:"category"`
	TargetType            targetdomain.TargetType `json:"target_type"`
	TargetUnits           int                     `json:"target_units"`
	AchievedUnits         int                     `json:"achieved_units"`
	AchievementPercentage float64                 `json:"achievement_percentage"`
	ProgressStatus        string                  `json:"progress_status"`
	PeriodMonth           int                     `json:"period_month"`
	PeriodYear            int                     `json:"period_year"`
	AssignedAt            time.Time               `json:"assigned_at"`
}

// RepStanding is one leaderboard row: a representative's units summed across
// their targets, never an average of per-target percentages.
type RepStanding struct {
	Rank                  int          `json:"rank"`
	RepID                 snowflake.ID `json:"rep_id"`
	RepName               string       `json:"rep_name"`
	TargetUnits           int          `json:"target_units"`
	AchievedUnits         int          `json:"achieved_units"`
	AchievementPercentage float64      `json:"achievement_percentage"`
	ProgressStatus        string       `json:"progress_status"`
}

type DashboardSummary struct {
	TotalTarget       int              `json:"total_target"`
	TotalAchievement  int              `json:"total_achievement"`
	AveragePercentage float64          `json:"average_percentage"`
	TopPerformer      string           `json:"top_performer"`
	Targets           []TargetProgress `json:"targets"`
	Leaderboard       []RepStanding    `json:"leaderboard"`
}

type Service interface {
	// Resolve joins one target with its achieved total. Visit targets count
	// in-period reports; product targets blend manual recordings with
	// field-reported sample units, additively.
	Resolve(ctx context.Context, target targetdomain.Target, p period.Period) (TargetProgress, error)
	// Summarize aggregates every in-scope target for the period. Total over
	// its inputs: an empty scope yields an empty summary, not an error.
	Summarize(ctx context.Context, p period.Period, sc scope.Scope) (DashboardSummary, error)
	RepresentativeTargets(ctx context.Context, repID snowflake.ID, p period.Period) ([]TargetProgress, error)
}
