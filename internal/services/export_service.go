package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"admin/internal/domain"
	"admin/internal/domain/models"
	"admin/internal/utils"

	"github.com/phpdave11/gofpdf"
)

type VideoOrderSource interface {
	Get(ctx context.Context, id domain.ID) (models.VideoOrderDetail, error)
}

type MerchOrderSource interface {
	Get(ctx context.Context, id domain.ID) (models.MerchOrderDetail, error)
}

type DigitalOrderSource interface {
	Get(ctx context.Context, id domain.ID) (models.DigitalOrderDetail, error)
}

// ExportService renders order documents as PDF. Every figure printed comes
// from the API; nothing is recomputed here.
type ExportService struct {
	VideoOrders   VideoOrderSource
	MerchOrders   MerchOrderSource
	DigitalOrders DigitalOrderSource
	RequestID     string
	Now           func() time.Time
}

func (s ExportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s ExportService) VideoOrderPDF(ctx context.Context, id domain.ID) ([]byte, string, error) {
	o, err := s.VideoOrders.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "export", "video_order_pdf", "order_id="+id)
	return buildVideoOrderPDF(o, s.now())
}

// MerchPackingSlip renders the shipping document for a merch order.
func (s ExportService) MerchPackingSlip(ctx context.Context, id domain.ID) ([]byte, string, error) {
	o, err := s.MerchOrders.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "export", "merch_packing_slip", "order_id="+id)
	return buildPackingSlipPDF(o, s.now())
}

func (s ExportService) DigitalOrderPDF(ctx context.Context, id domain.ID) ([]byte, string, error) {
	o, err := s.DigitalOrders.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "export", "digital_order_pdf", "order_id="+id)
	return buildDigitalOrderPDF(o, s.now())
}

type docLine struct {
	label string
	value string
}

// document is a titled list of label/value lines with an optional footnote.
type document struct {
	title    string
	number   string
	sections []docSection
	note     string
}

type docSection struct {
	heading string
	lines   []docLine
}

func render(doc document, generated time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(pdfText(doc.title), false)
	pdf.SetCreator("Viveo Admin", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, pdfText(strings.ToUpper(doc.title)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, pdfText("Broj: "+doc.number))
	pdf.Ln(6)
	pdf.Cell(0, 6, pdfText("Izdato: "+generated.Format("02.01.2006. 15:04")))
	pdf.Ln(10)

	for _, sec := range doc.sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, pdfText(sec.heading))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, l := range sec.lines {
			pdf.CellFormat(50, 6, pdfText(l.label), "", 0, "L", false, 0, "")
			pdf.MultiCell(0, 6, pdfText(safe(l.value, "-")), "", "L", false)
		}
		pdf.Ln(4)
	}

	if doc.note != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, pdfText(doc.note), "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildVideoOrderPDF(o models.VideoOrderDetail, now time.Time) ([]byte, string, error) {
	number := "VID-" + strings.ToUpper(utils.ShortID(o.ID))
	doc := document{
		title:  "Video narudžbina",
		number: number,
		sections: []docSection{
			{heading: "Kupac", lines: []docLine{
				{"Ime", o.BuyerName},
				{"Email", o.BuyerEmail},
			}},
			{heading: "Poruka", lines: []docLine{
				{"Zvezda", o.CelebrityName},
				{"Tip videa", o.VideoType},
				{"Za", o.RecipientName},
				{"Instrukcije", o.Instructions},
				{"Rok", utils.FormatDate(o.Deadline)},
			}},
			{heading: "Obračun", lines: []docLine{
				{"Status", statusLabel(models.VideoOrderStatusLabels, o.Status)},
				{"Cena", utils.FormatPrice(o.Price)},
				{"Kreirano", utils.FormatDateTime(o.CreatedAt)},
			}},
		},
	}
	pdf, err := render(doc, now)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("NARUDZBINA_%s.pdf", safeFilenamePart(number)), nil
}

func buildPackingSlipPDF(o models.MerchOrderDetail, now time.Time) ([]byte, string, error) {
	number := "MRC-" + strings.ToUpper(utils.ShortID(o.ID))
	product := o.ProductName
	if v := utils.Deref(o.VariantName, ""); v != "" {
		product += " (" + v + ")"
	}
	doc := document{
		title:  "Otpremnica",
		number: number,
		sections: []docSection{
			{heading: "Primalac", lines: []docLine{
				{"Ime", o.ShippingName},
				{"Adresa", o.ShippingAddress},
				{"Mesto", strings.TrimSpace(o.ShippingPostal + " " + o.ShippingCity)},
				{"Telefon", utils.Deref(o.BuyerPhone, "-")},
				{"Napomena", utils.Deref(o.ShippingNote, "-")},
			}},
			{heading: "Sadržaj pošiljke", lines: []docLine{
				{"Proizvod", product},
				{"Zvezda", o.CelebrityName},
				{"Količina", fmt.Sprintf("%d", o.Quantity)},
				{"Cena po komadu", utils.FormatPrice(o.UnitPrice)},
				{"Ukupno", utils.FormatPrice(o.TotalPrice)},
			}},
			{heading: "Praćenje", lines: []docLine{
				{"Status", statusLabel(models.MerchOrderStatusLabels, o.Status)},
				{"Broj za praćenje", utils.Deref(o.TrackingNumber, "-")},
				{"Poslato", utils.FormatOptionalDateTime(o.ShippedAt)},
			}},
		},
		note: "Otpremnica važi za jednu pošiljku. Proverite sadržaj pre predaje kuriru.",
	}
	pdf, err := render(doc, now)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("OTPREMNICA_%s.pdf", safeFilenamePart(number)), nil
}

func buildDigitalOrderPDF(o models.DigitalOrderDetail, now time.Time) ([]byte, string, error) {
	number := "DIG-" + strings.ToUpper(utils.ShortID(o.ID))
	doc := document{
		title:  "Digitalna narudžbina",
		number: number,
		sections: []docSection{
			{heading: "Kupac", lines: []docLine{
				{"Ime", o.BuyerName},
				{"Email", o.BuyerEmail},
				{"Telefon", utils.Deref(o.BuyerPhone, "-")},
			}},
			{heading: "Proizvod", lines: []docLine{
				{"Naziv", o.ProductName},
				{"Zvezda", o.CelebrityName},
				{"Tip fajla", o.FileType},
				{"Preuzimanja", fmt.Sprintf("%d", o.DownloadCount)},
			}},
			{heading: "Obračun", lines: []docLine{
				{"Status", statusLabel(models.DigitalOrderStatusLabels, o.Status)},
				{"Cena", utils.FormatPrice(o.Price)},
				{"Link važi do", utils.FormatOptionalDateTime(o.DownloadTokenExpiresAt)},
			}},
		},
	}
	pdf, err := render(doc, now)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("DIGITALNA_%s.pdf", safeFilenamePart(number)), nil
}

func statusLabel(labels map[domain.Status]string, s domain.Status) string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

var latinFold = strings.NewReplacer(
	"č", "c", "ć", "c", "ž", "z", "š", "s", "đ", "dj",
	"Č", "C", "Ć", "C", "Ž", "Z", "Š", "S", "Đ", "Dj",
	"—", "-", "–", "-",
)

// pdfText folds text to ASCII for the core PDF fonts.
func pdfText(s string) string {
	s = latinFold.Replace(s)
	return strings.Map(func(r rune) rune {
		if r > 126 {
			return '?'
		}
		return r
	}, s)
}
