package models

import (
	"strconv"
	"time"
)

// Stats aggregates the collection. It is purely derived.
type Stats struct {
	Total       int            `json:"total"`
	Active      int            `json:"active"`
	Completed   int            `json:"completed"`
	ByStatus    map[Status]int `json:"byStatus"`
	ByService   map[string]int `json:"byService"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// ComputeStats counts subs by final state, status and service id.
func ComputeStats(subs []*Submission, now time.Time) Stats {
	st := Stats{
		Total:       len(subs),
		ByStatus:    make(map[Status]int),
		ByService:   make(map[string]int),
		LastUpdated: now.UTC(),
	}
	for _, s := range subs {
		if s.Status.IsFinal() {
			st.Completed++
		} else {
			st.Active++
		}
		st.ByStatus[s.Status]++
		st.ByService[strconv.Itoa(s.ServiceID)]++
	}
	return st
}
