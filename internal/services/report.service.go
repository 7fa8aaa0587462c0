package services

import (
	"bytes"
	"fmt"

	"renthub/internal/models"
	"renthub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/xuri/excelize/v2"
)

const paymentSheetName = "Pagos"

// ReportService renders admin exports as spreadsheets.
type ReportService struct {
	log logger.Logger
}

func NewReportService() *ReportService {
	return &ReportService{
		log: logger.New("reportService"),
	}
}

// PaymentHistoryXLSX renders the rent payment history into an xlsx workbook.
func (s *ReportService) PaymentHistoryXLSX(payments []models.RentPayment) (*bytes.Buffer, error) {
	log := s.log.Function("PaymentHistoryXLSX")

	file := excelize.NewFile()
	defer func() {
		if err := file.Close(); err != nil {
			log.Warn("failed to close workbook", "error", err)
		}
	}()

	index, err := file.NewSheet(paymentSheetName)
	if err != nil {
		return nil, log.Err("failed to create sheet", err)
	}
	file.SetActiveSheet(index)
	if err := file.DeleteSheet("Sheet1"); err != nil {
		log.Warn("failed to drop default sheet", "error", err)
	}

	headers := []string{"Inquilino", "Habitación", "Mes", "Monto", "Estado", "Comentario del inquilino", "Comentario del administrador"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, log.Err("failed to compute header cell", err)
		}
		if err := file.SetCellValue(paymentSheetName, cell, header); err != nil {
			return nil, log.Err("failed to write header", err)
		}
	}

	for i, payment := range payments {
		row := i + 2

		tenant := ""
		room := ""
		if payment.Contract != nil {
			if payment.Contract.User != nil {
				tenant = payment.Contract.User.FullName
			}
			if payment.Contract.Room != nil {
				room = payment.Contract.Room.Number
			}
		}

		month := utils.MonthAndYear(payment.MonthPaid)
		if month == "" {
			month = payment.MonthPaid
		}

		values := []any{
			tenant,
			room,
			month,
			payment.DueAmount.StringFixed(2),
			payment.Badge().Label,
			payment.UserComment,
			payment.AdminComment,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, log.Err("failed to compute cell", err)
			}
			if err := file.SetCellValue(paymentSheetName, cell, value); err != nil {
				return nil, log.Err("failed to write row", err, "row", row)
			}
		}
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return nil, log.Err("failed to render workbook", err)
	}

	log.Info("rendered payment history report", "rows", len(payments))
	return buffer, nil
}

// ReportFilename builds the attachment name for a payment export.
func ReportFilename(monthKey string) string {
	if monthKey == "" {
		return "pagos.xlsx"
	}
	return fmt.Sprintf("pagos-%s.xlsx", monthKey)
}
