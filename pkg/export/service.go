// Package export builds xlsx workbooks for offline camp bookkeeping.
package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/dustward/campbase/pkg/domain"
	"github.com/dustward/campbase/pkg/dues"
	"github.com/dustward/campbase/pkg/models"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gorm.io/gorm"
)

// Service generates spreadsheet exports
type Service struct {
	db      *gorm.DB
	dues    *dues.Service
	printer *message.Printer
}

// NewService creates a new export service
func NewService(db *gorm.DB, duesService *dues.Service) *Service {
	return &Service{
		db:      db,
		dues:    duesService,
		printer: message.NewPrinter(language.AmericanEnglish),
	}
}

func newSheet(name string) (*excelize.File, int, int, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(name)
	if err != nil {
		f.Close()
		return nil, 0, 0, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, 0, 0, fmt.Errorf("failed to create style: %w", err)
	}

	return f, index, headerStyle, nil
}

func writeHeaders(f *excelize.File, sheet string, style int, headers []string) {
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, style)
		col := string(rune('A' + i))
		f.SetColWidth(sheet, col, col, 18)
	}
}

// DuesLedger builds the full payment ledger: one row per recorded
// payment, amounts formatted as US currency strings alongside the raw
// value so the sheet both reads well and sums correctly.
func (s *Service) DuesLedger(ctx context.Context) ([]byte, error) {
	var payments []models.DuesPayment
	if err := s.db.WithContext(ctx).
		Preload("User").
		Order("paid_at ASC").
		Find(&payments).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}

	var items []models.DuesItem
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}
	itemNames := make(map[uint]string, len(items))
	for _, item := range items {
		itemNames[item.ID] = item.Name
	}

	sheetName := "Dues Ledger"
	f, index, headerStyle, err := newSheet(sheetName)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	defer f.Close()

	writeHeaders(f, sheetName, headerStyle, []string{
		"Paid At", "Member", "Email", "Item", "Amount", "Amount (USD)",
		"Method", "Recorded By", "Note",
	})

	for rowIdx, p := range payments {
		row := rowIdx + 2
		name, email := "", ""
		if p.User != nil {
			name, email = p.User.Name, p.User.Email
		}
		note := ""
		if p.Note != nil {
			note = *p.Note
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), p.PaidAt.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), email)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), itemNames[p.DuesItemID])
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), p.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), s.printer.Sprintf("$%.2f", p.Amount))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), p.Method)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), p.RecordedBy)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), note)
	}

	f.SetActiveSheet(index)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, domain.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

// Roster builds the member roster workbook with contact, logistics and
// ticket columns.
func (s *Service) Roster(ctx context.Context) ([]byte, error) {
	var members []models.Member
	if err := s.db.WithContext(ctx).
		Preload("User").
		Order("playa_name ASC").
		Find(&members).Error; err != nil {
		return nil, domain.NewInternalError(err)
	}

	sheetName := "Roster"
	f, index, headerStyle, err := newSheet(sheetName)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	defer f.Close()

	writeHeaders(f, sheetName, headerStyle, []string{
		"Playa Name", "Name", "Email", "Pronouns", "Home Base", "Phone",
		"Arrival", "Departure", "Camp Role", "Has Ticket", "Ticket Source",
		"Has Vehicle Pass", "Dietary Notes",
	})

	for rowIdx, m := range members {
		row := rowIdx + 2
		name, email := "", ""
		if m.User != nil {
			name, email = m.User.Name, m.User.Email
		}
		ticketSource := ""
		if m.TicketSource != nil {
			ticketSource = *m.TicketSource
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), m.PlayaName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), email)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), m.Pronouns)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), m.HomeBase)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), m.Phone)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), m.ArrivalDate)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), m.DepartureDate)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), m.CampRole)
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), m.HasTicket)
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), ticketSource)
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), m.HasVehiclePass)
		f.SetCellValue(sheetName, fmt.Sprintf("M%d", row), m.DietaryNotes)
	}

	f.SetActiveSheet(index)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, domain.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

// Filename returns a dated attachment name for an export kind.
func Filename(kind string) string {
	return fmt.Sprintf("%s-%s.xlsx", kind, time.Now().Format("2006-01-02"))
}
