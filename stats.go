package sendpost

import (
	"context"
	"time"

	"github.com/sendpost/sendpost-go/internal/api"
)

// statDateLayout is the wire format for statistics window endpoints.
const statDateLayout = "2006-01-02"

// Stat is a bundle of delivery counters.
type Stat struct {
	Processed    int
	Delivered    int
	Dropped      int
	HardBounced  int
	SoftBounced  int
	Opened       int
	Clicked      int
	Unsubscribed int
	Spam         int
}

// DayStat is one day's counters. Date is a civil date (YYYY-MM-DD);
// only the calendar day of the from/to bounds is significant.
type DayStat struct {
	Date  string
	Stats Stat
}

// Stats returns the sub-account's per-day counters for the window
// [from, to], both endpoints inclusive.
func (s *SubAccount) Stats(ctx context.Context, from, to time.Time) ([]DayStat, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := s.client.apiClient.GetSubAccountStats(ctx, s.apiKey, formatStatDate(from), formatStatDate(to))
	if err != nil {
		return nil, wrapError(err)
	}
	return dayStatsFromDTO(dtos), nil
}

// AggregateStats returns the sub-account's counters summed over the
// window [from, to], both endpoints inclusive.
func (s *SubAccount) AggregateStats(ctx context.Context, from, to time.Time) (*Stat, error) {
	if err := s.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := s.client.apiClient.GetSubAccountAggregateStats(ctx, s.apiKey, formatStatDate(from), formatStatDate(to))
	if err != nil {
		return nil, wrapError(err)
	}

	stat := statFromDTO(dto)
	return &stat, nil
}

// AccountStats returns account-wide per-day counters for the window
// [from, to], both endpoints inclusive.
func (c *Client) AccountStats(ctx context.Context, from, to time.Time) ([]DayStat, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := c.apiClient.GetAccountStats(ctx, formatStatDate(from), formatStatDate(to))
	if err != nil {
		return nil, wrapError(err)
	}
	return dayStatsFromDTO(dtos), nil
}

func formatStatDate(t time.Time) string {
	return t.Format(statDateLayout)
}

// statFromDTO converts an API DTO to a public Stat.
func statFromDTO(dto *api.StatDTO) Stat {
	if dto == nil {
		return Stat{}
	}
	return Stat{
		Processed:    dto.Processed,
		Delivered:    dto.Delivered,
		Dropped:      dto.Dropped,
		HardBounced:  dto.HardBounced,
		SoftBounced:  dto.SoftBounced,
		Opened:       dto.Opened,
		Clicked:      dto.Clicked,
		Unsubscribed: dto.Unsubscribed,
		Spam:         dto.Spam,
	}
}

// dayStatsFromDTO converts a list of API DTOs to public DayStats.
func dayStatsFromDTO(dtos []api.DayStatDTO) []DayStat {
	stats := make([]DayStat, len(dtos))
	for i, dto := range dtos {
		stats[i] = DayStat{
			Date:  dto.Date,
			Stats: statFromDTO(dto.Stats),
		}
	}
	return stats
}
