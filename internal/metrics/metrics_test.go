package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRun(t *testing.T) {
	completed := testutil.ToFloat64(ScheduleRuns.WithLabelValues("completed"))
	failed := testutil.ToFloat64(ScheduleRuns.WithLabelValues("failed"))

	ObserveRun(4, 6, 3, nil)
	assert.Equal(t, completed+1, testutil.ToFloat64(ScheduleRuns.WithLabelValues("completed")))
	assert.Equal(t, 4.0, testutil.ToFloat64(Activities))
	assert.Equal(t, 6.0, testutil.ToFloat64(ProjectDuration))
	assert.Equal(t, 3.0, testutil.ToFloat64(CriticalActivities))

	ObserveRun(2, 0, 0, errors.New("cyclic dependency"))
	assert.Equal(t, failed+1, testutil.ToFloat64(ScheduleRuns.WithLabelValues("failed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(Activities))
	// A failed run leaves the last good duration in place.
	assert.Equal(t, 6.0, testutil.ToFloat64(ProjectDuration))
}
