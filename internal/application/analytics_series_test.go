package application

import (
	"testing"
	"time"

	"github.com/linskybing/dynamic-forms/internal/domain/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailySeries(t *testing.T) {
	now := time.Date(2024, 5, 31, 18, 0, 0, 0, time.UTC)
	submitted := func(at time.Time) submission.Submission {
		return submission.Submission{State: submission.StateSubmitted, CreatedAt: at.Add(-time.Hour), SubmittedAt: &at}
	}
	subs := []submission.Submission{
		submitted(now),
		submitted(now.Add(-2 * time.Hour)),
		submitted(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)),
		submitted(time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)),
		// never submitted: bucketed by creation
		{State: submission.StateDraft, CreatedAt: time.Date(2024, 5, 30, 8, 0, 0, 0, time.UTC)},
	}

	series := dailySeries(subs, now, 30)
	require.Len(t, series, 30)
	assert.Equal(t, DayCount{Date: "2024-05-02", Count: 1}, series[0])
	assert.Equal(t, DayCount{Date: "2024-05-30", Count: 1}, series[28])
	assert.Equal(t, DayCount{Date: "2024-05-31", Count: 2}, series[29])
	assert.Equal(t, 0, series[10].Count)
}
