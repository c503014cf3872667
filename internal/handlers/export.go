package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"durgamondir/internal/models"
)

const (
	contactsSheet = "Contacts"
	xlsxType      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var contactHeaders = []string{"ID", "Received (UTC)", "Name", "Email", "Phone", "Subject", "Message", "Read"}

// contactsWorkbook builds an XLSX workbook with one row per message.
func contactsWorkbook(contacts []models.ContactMessage) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", contactsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range contactHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(contactsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, c := range contacts {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			c.ID.String(),
			c.CreatedAt.UTC().Format(time.DateTime),
			c.Name,
			c.Email,
			c.Phone,
			c.Subject,
			c.Message,
			c.IsRead,
		}
		if err := f.SetSheetRow(contactsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write contact row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// APIContactsExport downloads every contact message as a spreadsheet.
func (a *Admin) APIContactsExport(w http.ResponseWriter, r *http.Request) {
	contacts, err := a.stores.Contacts.List(r.Context(), 0)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}

	data, err := contactsWorkbook(contacts)
	if err != nil {
		writeAPIError(w, r, err)
		return
	}

	filename := fmt.Sprintf("contacts_%s.xlsx", a.clock.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", xlsxType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := w.Write(data); err != nil {
		slog.Warn("write contacts export failed", "error", err)
	}
}
