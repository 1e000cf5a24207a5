package application

import (
	"context"
	"errors"
	"time"

	"github.com/linskybing/dynamic-forms/internal/domain/errs"
	"github.com/linskybing/dynamic-forms/internal/domain/form"
	"github.com/linskybing/dynamic-forms/internal/domain/submission"
	"github.com/linskybing/dynamic-forms/internal/repository"
)

// AnalyticsWindow is how many days the per-day series covers, today included.
const AnalyticsWindow = 30

type FieldStat struct {
	Key      string         `json:"key"`
	Label    string         `json:"label"`
	Type     form.FieldType `json:"type"`
	Filled   int            `json:"filled"`
	FillRate float64        `json:"fillRate"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type FormAnalytics struct {
	FormID         string                   `json:"formId"`
	Total          int                      `json:"total"`
	ByState        map[submission.State]int `json:"byState"`
	Drafts         int64                    `json:"drafts"`
	CompletionRate float64                  `json:"completionRate"`
	Fields         []FieldStat              `json:"fields"`
	ByDay          []DayCount               `json:"byDay"`
}

type AnalyticsService struct {
	Repos *repository.Repos

	now func() time.Time
}

func NewAnalyticsService(repos *repository.Repos) *AnalyticsService {
	return &AnalyticsService{
		Repos: repos,
		now:   time.Now,
	}
}

// Form summarizes submissions of a form. Completion counts submissions that
// left draft against submissions plus open drafts; fill rates are taken over
// the fields of the latest version. ByDay counts submissions per UTC day of
// submission over the last AnalyticsWindow days, oldest first.
func (s *AnalyticsService) Form(ctx context.Context, formID string) (*FormAnalytics, error) {
	subs, err := s.Repos.Submission.ListByForm(ctx, formID)
	if err != nil {
		return nil, err
	}
	drafts, err := s.Repos.Draft.CountByForm(ctx, formID)
	if err != nil {
		return nil, err
	}

	out := &FormAnalytics{
		FormID:  formID,
		Total:   len(subs),
		ByState: map[submission.State]int{},
		Drafts:  drafts,
		Fields:  []FieldStat{},
		ByDay:   dailySeries(subs, s.now(), AnalyticsWindow),
	}
	completed := 0
	for _, sub := range subs {
		out.ByState[sub.State]++
		if sub.State != submission.StateDraft {
			completed++
		}
	}
	if started := int64(len(subs)) + drafts; started > 0 {
		out.CompletionRate = float64(completed) / float64(started)
	}

	latest, err := s.Repos.Schema.Latest(ctx, formID)
	if errors.Is(err, errs.ErrSchemaNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	for _, f := range latest.Fields {
		stat := FieldStat{Key: f.Key, Label: f.DisplayName(), Type: f.Type}
		for _, sub := range subs {
			if v, ok := sub.Payload[f.Key]; ok && !v.IsEmpty() {
				stat.Filled++
			}
		}
		if len(subs) > 0 {
			stat.FillRate = float64(stat.Filled) / float64(len(subs))
		}
		out.Fields = append(out.Fields, stat)
	}
	return out, nil
}

func dailySeries(subs []submission.Submission, now time.Time, days int) []DayCount {
	const layout = "2006-01-02"
	today := now.UTC().Truncate(24 * time.Hour)
	out := make([]DayCount, days)
	index := make(map[string]int, days)
	for i := range out {
		date := today.AddDate(0, 0, i-days+1).Format(layout)
		out[i] = DayCount{Date: date}
		index[date] = i
	}
	for _, sub := range subs {
		at := sub.CreatedAt
		if sub.SubmittedAt != nil {
			at = *sub.SubmittedAt
		}
		if i, ok := index[at.UTC().Format(layout)]; ok {
			out[i].Count++
		}
	}
	return out
}
