package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/chronos-room-api/internal/models"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
	"github.com/noah-isme/chronos-room-api/pkg/export"
)

type exportReservationReader interface {
	ListApprovedBetween(ctx context.Context, startDate, endDate time.Time) ([]models.EventReservation, error)
}

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	FormatCSV ExportFormat = "csv"
	FormatPDF ExportFormat = "pdf"
)

// ExportFile is a rendered export ready to stream to the client.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportService renders the approved reservation schedule as CSV or PDF for
// facility staff.
type ExportService struct {
	reservations exportReservationReader
	csv          *export.CSVExporter
	pdf          *export.PDFExporter
	logger       *zap.Logger
}

// NewExportService constructs an ExportService instance.
func NewExportService(reservations exportReservationReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		reservations: reservations,
		csv:          export.NewCSVExporter(),
		pdf:          export.NewPDFExporter(),
		logger:       logger,
	}
}

// ReservationSchedule renders the approved reservations between the dates.
func (s *ExportService) ReservationSchedule(ctx context.Context, startDate, endDate time.Time, format ExportFormat) (*ExportFile, error) {
	if endDate.Before(startDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date must not be before start date")
	}

	items, err := s.reservations.ListApprovedBetween(ctx, startDate, endDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load reservations for export")
	}

	dataset := reservationDataset(items)
	stamp := time.Now().UTC().Format("20060102-150405")

	switch format {
	case FormatCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportFile{
			FileName:    fmt.Sprintf("reservation-schedule-%s.csv", stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case FormatPDF:
		title := fmt.Sprintf("Reservation Schedule %s to %s", startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportFile{
			FileName:    fmt.Sprintf("reservation-schedule-%s.pdf", stamp),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format: %s", format))
	}
}

func reservationDataset(items []models.EventReservation) export.Dataset {
	rows := make([]map[string]string, 0, len(items))
	for _, r := range items {
		rows = append(rows, map[string]string{
			"Date":         r.EventDate.Format("2006-01-02"),
			"Start":        r.StartTime,
			"End":          r.EndTime,
			"Room":         r.RoomID,
			"Event":        r.EventTitle,
			"Organization": r.OrganizationName,
			"Status":       string(r.Status),
		})
	}
	return export.Dataset{
		Headers: []string{"Date", "Start", "End", "Room", "Event", "Organization", "Status"},
		Rows:    rows,
	}
}
