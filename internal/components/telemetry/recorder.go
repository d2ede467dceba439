package telemetry

import (
	"strings"
	"sync"
)

type Report struct {
	Kind   string
	Id     string
	Params []any
}

// RecorderAPI keeps every report in memory so tests can assert on them.
type RecorderAPI struct {
	lock    *sync.Mutex
	reports *[]Report
}

func NewRecorderAPI() RecorderAPI {
	return RecorderAPI{lock: &sync.Mutex{}, reports: &[]Report{}}
}

func (r RecorderAPI) record(kind, id string, params []any) {
	r.lock.Lock()
	defer r.lock.Unlock()
	*r.reports = append(*r.reports, Report{Kind: kind, Id: id, Params: params})
}

func (r RecorderAPI) ReportBroken(id string, params ...any) {
	r.record("broken", id, params)
}

func (r RecorderAPI) ReportWarning(id string, params ...any) {
	r.record("warning", id, params)
}

func (r RecorderAPI) ReportDebug(msg string, params ...any) {
	r.record("debug", msg, params)
}

func (r RecorderAPI) ReportCount(id string, count int64) {
	r.record("count", id, []any{count})
}

// Reports returns a copy of the reports of the given kind, an empty kind returns all of them.
func (r RecorderAPI) Reports(kind string) []Report {
	r.lock.Lock()
	defer r.lock.Unlock()
	var out []Report
	for _, report := range *r.reports {
		if kind == "" || report.Kind == kind {
			out = append(out, report)
		}
	}
	return out
}

// Broke reports whether ReportBroken was called with an id ending in `suffix`.
func (r RecorderAPI) Broke(suffix string) bool {
	for _, report := range r.Reports("broken") {
		if strings.HasSuffix(report.Id, suffix) {
			return true
		}
	}
	return false
}
