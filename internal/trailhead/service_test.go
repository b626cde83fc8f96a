package trailhead

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	return mock
}

var trailheadCols = []string{"id", "name", "peak_id", "road_class", "lat", "lng", "elevation_ft", "created_at"}

func TestNearbyPassesMeters(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`ST_DWithin`).
		WithArgs(-106.4454, 39.1178, 25000.0).
		WillReturnRows(pgxmock.NewRows(trailheadCols).
			AddRow("th1", "North Mount Elbert", "p1", "2wd", 39.1520, -106.4120, 10040, time.Now()))

	svc := NewService(mock)
	ths, err := svc.Nearby(context.Background(), 39.1178, -106.4454, 25)
	if err != nil {
		t.Fatalf("nearby: %v", err)
	}
	if len(ths) != 1 || ths[0].Name != "North Mount Elbert" {
		t.Fatalf("unexpected trailheads %+v", ths)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestForPeakAnnotatesDistance(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT lat, lng FROM peaks`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows([]string{"lat", "lng"}).AddRow(39.1178, -106.4454))
	mock.ExpectQuery(`FROM trailheads`).
		WithArgs("p1").
		WillReturnRows(pgxmock.NewRows(trailheadCols).
			AddRow("th1", "North Mount Elbert", "p1", "2wd", 39.1520, -106.4120, 10040, time.Now()))

	svc := NewService(mock)
	ths, err := svc.ForPeak(context.Background(), "p1")
	if err != nil {
		t.Fatalf("for peak: %v", err)
	}
	if len(ths) != 1 {
		t.Fatalf("unexpected trailheads %+v", ths)
	}
	// ~4.8 km from the summit as the crow flies
	if ths[0].DistanceToSummitKm < 3 || ths[0].DistanceToSummitKm > 7 {
		t.Fatalf("unexpected distance %v", ths[0].DistanceToSummitKm)
	}
}

func TestForPeakMissingPeak(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`SELECT lat, lng FROM peaks`).
		WithArgs("nope").
		WillReturnRows(pgxmock.NewRows([]string{"lat", "lng"}))

	svc := NewService(mock)
	if _, err := svc.ForPeak(context.Background(), "nope"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestAddConditionReportValidatesRating(t *testing.T) {
	svc := NewService(nil)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.AddConditionReport(context.Background(), "th1", "user-1", rating, "")
		if !errors.Is(err, ErrBadRating) {
			t.Fatalf("expected ErrBadRating for %d, got %v", rating, err)
		}
	}
}

func TestAddConditionReportUpserts(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO trailhead_condition_reports`).
		WithArgs(pgxmock.AnyArg(), "th1", "user-1", 2, "Deep ruts past the 2wd lot").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	svc := NewService(mock)
	report, err := svc.AddConditionReport(context.Background(), "th1", "user-1", 2, "Deep ruts past the 2wd lot")
	if err != nil {
		t.Fatalf("add report: %v", err)
	}
	if report.ID == "" || report.Rating != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestConditionReports(t *testing.T) {
	mock := newMock(t)
	defer mock.Close()

	mock.ExpectQuery(`FROM trailhead_condition_reports`).
		WithArgs("th1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "trailhead_id", "user_id", "rating", "comment", "created_at"}).
			AddRow("cr1", "th1", "user-1", 4, "Dry to the upper lot", time.Now()))

	svc := NewService(mock)
	reports, err := svc.ConditionReports(context.Background(), "th1")
	if err != nil {
		t.Fatalf("reports: %v", err)
	}
	if len(reports) != 1 || reports[0].Comment != "Dry to the upper lot" {
		t.Fatalf("unexpected reports %+v", reports)
	}
}
