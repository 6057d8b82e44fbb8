package dashboard

import (
	"sync"
	"time"

	"github.com/Nebras-project/nebras-dashboard/core"
)

// DefaultFilterDelay is the pause after the last change before a filter propagates.
const DefaultFilterDelay = 500 * time.Millisecond

// DebouncedFilter holds filter values and propagates them as a query string
// once input pauses. onChange runs on the timer goroutine, except for Clear,
// and never concurrently with itself. It must not call Clear.
type DebouncedFilter struct {
	delay    time.Duration
	onChange func(query string)
	keys     []string // allowed keys; empty allows any

	deliver sync.Mutex // held around onChange, taken before mu

	mu     sync.Mutex
	values map[string]interface{}
	timer  *time.Timer
	gen    uint64 // bumped on every change; stale flushes are dropped
}

func NewDebouncedFilter(delay time.Duration, onChange func(query string), keys ...string) *DebouncedFilter {
	if delay <= 0 {
		delay = DefaultFilterDelay
	}
	return &DebouncedFilter{
		delay:    delay,
		onChange: onChange,
		keys:     keys,
		values:   make(map[string]interface{}),
	}
}

func (f *DebouncedFilter) allowed(key string) bool {
	return len(f.keys) == 0 || core.ContainsString(f.keys, key)
}

// Set changes one value; unknown keys are ignored.
func (f *DebouncedFilter) Set(key string, value interface{}) {
	f.SetAll(map[string]interface{}{key: value})
}

// SetAll changes several values at once and restarts the delay.
func (f *DebouncedFilter) SetAll(values map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()

	changed := false
	for k, v := range values {
		if !f.allowed(k) {
			continue
		}
		f.values[k] = v
		changed = true
	}
	if changed {
		f.schedule()
	}
}

func (f *DebouncedFilter) schedule() {
	if f.timer != nil {
		f.timer.Stop()
	}
	f.gen++
	gen := f.gen
	f.timer = time.AfterFunc(f.delay, func() { f.flush(gen) })
}

func (f *DebouncedFilter) flush(gen uint64) {
	f.deliver.Lock()
	defer f.deliver.Unlock()

	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return
	}
	query := core.FilterParamsToQueryString(f.values)
	f.mu.Unlock()

	if f.onChange != nil {
		f.onChange(query)
	}
}

// Clear drops every value and propagates immediately.
func (f *DebouncedFilter) Clear() {
	f.deliver.Lock()
	defer f.deliver.Unlock()

	f.mu.Lock()
	f.gen++
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.values = make(map[string]interface{})
	f.mu.Unlock()

	if f.onChange != nil {
		f.onChange("")
	}
}

func (f *DebouncedFilter) Values() map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]interface{}, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// HasActiveFilters reports whether any value would reach the query string.
func (f *DebouncedFilter) HasActiveFilters() bool {
	return f.QueryString() != ""
}

func (f *DebouncedFilter) QueryString() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return core.FilterParamsToQueryString(f.values)
}

// Feature filters, one per entity page. Keys match the API list filters.

func NewAdminFilter(delay time.Duration, onChange func(string)) *DebouncedFilter {
	return NewDebouncedFilter(delay, onChange, "search", "role", "is_active", "created_from", "created_to")
}

func NewManagerFilter(delay time.Duration, onChange func(string)) *DebouncedFilter {
	return NewDebouncedFilter(delay, onChange, "search", "role", "is_active", "created_from", "created_to")
}

func NewStudentFilter(delay time.Duration, onChange func(string)) *DebouncedFilter {
	return NewDebouncedFilter(delay, onChange, "search", "grade_id", "gender", "is_active")
}

func NewGradeFilter(delay time.Duration, onChange func(string)) *DebouncedFilter {
	return NewDebouncedFilter(delay, onChange, "search", "stage", "level")
}

func NewCurriculumFilter(delay time.Duration, onChange func(string)) *DebouncedFilter {
	return NewDebouncedFilter(delay, onChange, "search", "grade_id", "year", "semester")
}

func NewSubjectFilter(delay time.Duration, onChange func(string)) *DebouncedFilter {
	return NewDebouncedFilter(delay, onChange, "search", "curriculum_id")
}

func NewUnitFilter(delay time.Duration, onChange func(string)) *DebouncedFilter {
	return NewDebouncedFilter(delay, onChange, "search", "subject_id")
}

func NewLessonFilter(delay time.Duration, onChange func(string)) *DebouncedFilter {
	return NewDebouncedFilter(delay, onChange, "search", "unit_id")
}

func NewCompetitionFilter(delay time.Duration, onChange func(string)) *DebouncedFilter {
	return NewDebouncedFilter(delay, onChange, "search", "grade_id", "subject_id", "status")
}

func NewQuestionFilter(delay time.Duration, onChange func(string)) *DebouncedFilter {
	return NewDebouncedFilter(delay, onChange,
		"search", "category", "kind", "difficulty", "lesson_id", "competition_id", "year")
}
