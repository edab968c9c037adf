package sandbox

import (
	"net/http"
	"time"
)

const statDateLayout = "2006-01-02"

type stat struct {
	Processed    int `json:"processed"`
	Delivered    int `json:"delivered"`
	Dropped      int `json:"dropped"`
	HardBounced  int `json:"hard_bounced"`
	SoftBounced  int `json:"soft_bounced"`
	Opened       int `json:"opened"`
	Clicked      int `json:"clicked"`
	Unsubscribed int `json:"unsubscribed"`
	Spam         int `json:"spam"`
}

type dayStat struct {
	Date  string `json:"date"`
	Stats stat   `json:"stats"`
}

// statWindow parses the from/to query parameters, defaulting to the
// seven days ending today.
func (s *Server) statWindow(r *http.Request) (from, to time.Time, err error) {
	to = s.now()
	from = to.AddDate(0, 0, -7)

	if v := r.URL.Query().Get("from"); v != "" {
		from, err = time.Parse(statDateLayout, v)
		if err != nil {
			return from, to, err
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err = time.Parse(statDateLayout, v)
		if err != nil {
			return from, to, err
		}
	}
	return from, to, nil
}

// dayStats derives per-day counters from the recorded sends, one entry
// per day of the window, both bounds inclusive. A zero subAccountID
// aggregates the whole account. Every accepted send counts as
// processed and delivered; the sandbox drops and bounces nothing.
func (s *Server) dayStats(from, to time.Time, subAccountID int64) []dayStat {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	out := []dayStat{}
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		day := d.Format(statDateLayout)
		n := s.store.sendCount(day, subAccountID)
		out = append(out, dayStat{
			Date:  day,
			Stats: stat{Processed: n, Delivered: n},
		})
	}
	return out
}

// getSubAccountStats handles GET /subaccount/stat.
func (s *Server) getSubAccountStats(w http.ResponseWriter, r *http.Request) {
	caller := callerSubAccount(r)
	from, to, err := s.statWindow(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid stats window: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.dayStats(from, to, caller.ID))
}

// getSubAccountAggregateStats handles GET /subaccount/stat/aggregate.
func (s *Server) getSubAccountAggregateStats(w http.ResponseWriter, r *http.Request) {
	caller := callerSubAccount(r)
	from, to, err := s.statWindow(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid stats window: "+err.Error())
		return
	}

	agg := stat{}
	for _, day := range s.dayStats(from, to, caller.ID) {
		agg.Processed += day.Stats.Processed
		agg.Delivered += day.Stats.Delivered
	}
	writeJSON(w, http.StatusOK, agg)
}

// getAccountStats handles GET /account/stat.
func (s *Server) getAccountStats(w http.ResponseWriter, r *http.Request) {
	from, to, err := s.statWindow(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid stats window: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, s.dayStats(from, to, 0))
}
