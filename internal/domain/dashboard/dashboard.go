// Package dashboard builds the weekly triage view: active patients grouped
// by the calendar week their earliest next dose falls in.
package dashboard

import (
	"context"
	"sort"
	"time"

	"clinic-dispense/internal/domain/dispenses"
	"clinic-dispense/internal/domain/patients"
)

// WeekStart names the first day of the practice's week.
type WeekStart string

const (
	WeekMonday WeekStart = "monday"
	WeekSunday WeekStart = "sunday"
)

func ParseWeekStart(s string) (WeekStart, bool) {
	switch WeekStart(s) {
	case WeekMonday, WeekSunday:
		return WeekStart(s), true
	}
	return "", false
}

// Order is the bucket sort direction. The source screens disagreed on it,
// so it is configuration rather than a hard-coded choice; ascending
// (soonest week first) is the default.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

func ParseOrder(s string) (Order, bool) {
	switch Order(s) {
	case OrderAsc, OrderDesc:
		return Order(s), true
	}
	return "", false
}

// Options control one Group computation. Zero values fall back to the
// service defaults set at construction.
type Options struct {
	WeekStart WeekStart
	Order     Order
	Location  *time.Location
}

// Entry is one patient in a week bucket with the due date that put them there.
type Entry struct {
	Patient patients.Patient
	Due     time.Time
}

// WeekBucket holds the patients whose earliest due date falls in the week
// beginning at Start (midnight, service location).
type WeekBucket struct {
	Start    time.Time
	Patients []Entry
}

// View is the full dashboard: week buckets plus the patients that have no
// scheduled dose to triage by.
type View struct {
	Weeks       []WeekBucket
	Unscheduled []patients.Patient
}

type Service struct {
	patients  *patients.Service
	dispenses *dispenses.Service
	defaults  Options
}

func NewService(patientsSvc *patients.Service, dispensesSvc *dispenses.Service, defaults Options) *Service {
	if defaults.WeekStart == "" {
		defaults.WeekStart = WeekMonday
	}
	if defaults.Order == "" {
		defaults.Order = OrderAsc
	}
	if defaults.Location == nil {
		defaults.Location = time.Local
	}
	return &Service{
		patients:  patientsSvc,
		dispenses: dispensesSvc,
		defaults:  defaults,
	}
}

// Group recomputes the view from the current record set. Only active
// patients appear; a patient lands in exactly one week bucket when any of
// their active dispenses has a next dose due, otherwise in Unscheduled.
// The data set for one practice is small, so there is no caching.
func (s *Service) Group(ctx context.Context, opts Options) (View, error) {
	if opts.WeekStart == "" {
		opts.WeekStart = s.defaults.WeekStart
	}
	if opts.Order == "" {
		opts.Order = s.defaults.Order
	}
	if opts.Location == nil {
		opts.Location = s.defaults.Location
	}

	active := true
	pts, err := s.patients.List(ctx, patients.ListFilter{Active: &active})
	if err != nil {
		return View{}, err
	}
	all, err := s.dispenses.ListAll(ctx)
	if err != nil {
		return View{}, err
	}

	earliest := map[string]time.Time{}
	for _, d := range all {
		if !d.Active || d.NextDoseDue == nil {
			continue
		}
		due := *d.NextDoseDue
		if cur, ok := earliest[d.PatientID]; !ok || due.Before(cur) {
			earliest[d.PatientID] = due
		}
	}

	buckets := map[time.Time]*WeekBucket{}
	var view View
	for _, p := range pts {
		due, ok := earliest[p.ID]
		if !ok {
			view.Unscheduled = append(view.Unscheduled, p)
			continue
		}
		start, ok := weekStartOf(due, opts.WeekStart, opts.Location)
		if !ok {
			// Calendar edge case; the patient still shows up, just without
			// a week slot.
			view.Unscheduled = append(view.Unscheduled, p)
			continue
		}
		b, exists := buckets[start]
		if !exists {
			b = &WeekBucket{Start: start}
			buckets[start] = b
		}
		b.Patients = append(b.Patients, Entry{Patient: p, Due: due})
	}

	for _, b := range buckets {
		sortEntries(b.Patients)
		view.Weeks = append(view.Weeks, *b)
	}
	sort.Slice(view.Weeks, func(i, j int) bool {
		if opts.Order == OrderDesc {
			return view.Weeks[j].Start.Before(view.Weeks[i].Start)
		}
		return view.Weeks[i].Start.Before(view.Weeks[j].Start)
	})

	sort.Slice(view.Unscheduled, func(i, j int) bool {
		return nameLess(view.Unscheduled[i], view.Unscheduled[j])
	})

	return view, nil
}

// sortEntries orders a bucket by due date ascending, then last name, then
// first name. Ordinal byte compare; empty names sort first.
func sortEntries(es []Entry) {
	sort.SliceStable(es, func(i, j int) bool {
		if !es[i].Due.Equal(es[j].Due) {
			return es[i].Due.Before(es[j].Due)
		}
		return nameLess(es[i].Patient, es[j].Patient)
	})
}

func nameLess(a, b patients.Patient) bool {
	if a.LastName != b.LastName {
		return a.LastName < b.LastName
	}
	return a.FirstName < b.FirstName
}

// weekStartOf returns midnight of the first day of the week containing t.
// Dates outside years 1-9999 report false and fall back to unscheduled
// rather than erroring.
func weekStartOf(t time.Time, ws WeekStart, loc *time.Location) (time.Time, bool) {
	if y := t.Year(); y < 1 || y > 9999 {
		return time.Time{}, false
	}
	t = t.In(loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)

	offset := int(day.Weekday()) // days since Sunday
	if ws == WeekMonday {
		offset = (offset + 6) % 7
	}
	return day.AddDate(0, 0, -offset), true
}
