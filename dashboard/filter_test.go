package dashboard

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncedFilter(t *testing.T) {
	changes := make(chan string, 10)
	f := NewStudentFilter(30*time.Millisecond, func(q string) { changes <- q })

	f.Set("search", "a")
	f.Set("search", "al")
	f.SetAll(map[string]interface{}{"search": "ali", "gender": "male", "unknown": "x"})
	f.Set("grade_id", "")
	assert.True(t, f.HasActiveFilters())

	select {
	case q := <-changes:
		assert.Equal(t, "gender=male&search=ali", q)
	case <-time.After(2 * time.Second):
		t.Fatal("filter never propagated")
	}
	select {
	case q := <-changes:
		t.Fatalf("unexpected second propagation %q", q)
	case <-time.After(100 * time.Millisecond):
	}

	assert.NotContains(t, f.Values(), "unknown")

	f.Set("search", "sara")
	f.Clear()
	require.Equal(t, "", <-changes)
	assert.False(t, f.HasActiveFilters())
	assert.Empty(t, f.Values())

	select {
	case q := <-changes:
		t.Fatalf("cleared filter still propagated %q", q)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncedFilter_emptyValuesAreInactive(t *testing.T) {
	f := NewQuestionFilter(time.Hour, nil)
	f.SetAll(map[string]interface{}{"search": "", "lesson_id": nil, "year": 0})
	assert.True(t, f.HasActiveFilters(), "year 0 is a value")
	f.Clear()

	f.SetAll(map[string]interface{}{"search": "", "lesson_id": nil})
	assert.False(t, f.HasActiveFilters())
	f.Clear()
}

func TestQueryString(t *testing.T) {
	got := QueryString(map[string]interface{}{"stage": "primary", "search": ""}, 2, 50, "-level", "name")
	assert.Equal(t, "ordering=-level%2Cname&page=2&page_size=50&stage=primary", got)
	assert.Equal(t, "", QueryString(nil, 0, 0))
}

func TestDebouncedFilter_clearWaitsForDelivery(t *testing.T) {
	var (
		mu  sync.Mutex
		got []string
	)
	entered := make(chan struct{})
	release := make(chan struct{})
	f := NewStudentFilter(5*time.Millisecond, func(q string) {
		if q != "" {
			close(entered)
			<-release
		}
		mu.Lock()
		got = append(got, q)
		mu.Unlock()
	})

	f.Set("search", "ali")
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("filter never propagated")
	}

	cleared := make(chan struct{})
	go func() {
		f.Clear()
		close(cleared)
	}()
	select {
	case <-cleared:
		t.Fatal("Clear returned while a propagation was running")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	<-cleared

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"search=ali", ""}, got)
}
