package curriculum

import (
	"context"
	"sort"

	"github.com/isina-nej/unipath/app/database"
	"github.com/isina-nej/unipath/app/models"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 50
)

// ListParams selects one page of sections. Out of range values are clamped,
// never rejected.
type ListParams struct {
	Page     int
	PerPage  int
	CourseID *int64
}

func (p ListParams) normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PerPage < 1:
		p.PerPage = 1
	case p.PerPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}
	return p
}

// Page is one slice of the section listing.
type Page struct {
	Items      []models.Section `json:"data"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
	HasNext    bool             `json:"has_next"`
	HasPrev    bool             `json:"has_prev"`
}

// ListSections returns the requested page ordered by course and exam
// datetime, each section carrying its ordered times.
func (s *Service) ListSections(ctx context.Context, params ListParams) (*Page, error) {
	params = params.normalize()
	filter := database.SectionFilter{CourseID: params.CourseID}
	page := &Page{Page: params.Page, PerPage: params.PerPage}

	err := s.inTx(ctx, "list_sections", func(q database.Querier) error {
		var err error
		if page.Total, err = database.CountSections(ctx, q, filter); err != nil {
			return err
		}

		// Past the last page. Checking first keeps the offset from overflowing.
		if params.Page-1 > page.Total/params.PerPage {
			page.Items = []models.Section{}
			return nil
		}
		offset := (params.Page - 1) * params.PerPage
		if page.Items, err = database.ListSections(ctx, q, filter, params.PerPage, offset); err != nil {
			return err
		}
		return attachTimes(ctx, q, page.Items)
	})
	if err != nil {
		return nil, err
	}

	page.TotalPages = (page.Total + params.PerPage - 1) / params.PerPage
	page.HasNext = params.Page < page.TotalPages
	page.HasPrev = params.Page > 1
	return page, nil
}

// GetSection returns one section with its times ordered by (day, start_time).
func (s *Service) GetSection(ctx context.Context, id int64) (*models.Section, error) {
	var sec *models.Section
	err := s.inTx(ctx, "get_section", func(q database.Querier) error {
		var err error
		sec, err = database.GetSection(ctx, q, id)
		if database.IsNotFound(err) {
			return &NotFoundError{Entity: "section", ID: id}
		}
		if err != nil {
			return err
		}

		one := []models.Section{*sec}
		if err := attachTimes(ctx, q, one); err != nil {
			return err
		}
		sec = &one[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sec, nil
}

func attachTimes(ctx context.Context, q database.Querier, sections []models.Section) error {
	ids := make([]int64, 0, len(sections))
	for _, sec := range sections {
		ids = append(ids, sec.ID)
	}
	times, err := database.ListSectionTimes(ctx, q, ids)
	if err != nil {
		return err
	}
	for i := range sections {
		sections[i].Times = sortedTimes(times[sections[i].ID])
	}
	return nil
}

// sortedTimes orders times by (day, start_time) comparing the stored text
// byte by byte. Day labels are free text, so this is only calendar order
// when the labels happen to collate that way. Ties keep id order.
func sortedTimes(times []models.SectionTime) []models.SectionTime {
	if times == nil {
		return []models.SectionTime{}
	}
	sort.SliceStable(times, func(i, j int) bool {
		if times[i].Day != times[j].Day {
			return times[i].Day < times[j].Day
		}
		return times[i].StartTime < times[j].StartTime
	})
	return times
}
