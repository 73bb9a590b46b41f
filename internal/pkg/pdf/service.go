// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/pkg/money"
)

// Service handles PDF generation
type Service struct {
	company  CompanyInfo
	currency string
	tmpl     *template.Template
	now      func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	s := &Service{
		company: CompanyInfo{
			Name:    cfg.Invoice.CompanyName,
			Address: cfg.Invoice.CompanyAddress,
			Phone:   cfg.Invoice.CompanyPhone,
			Email:   cfg.Invoice.CompanyEmail,
			Website: cfg.Invoice.CompanyWebsite,
		},
		currency: cfg.Checkout.Currency,
		now:      time.Now,
	}
	s.tmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
		"money": func(a money.Amount) string { return a.Format(s.currency) },
		"lines": func(text string) []string { return strings.Split(text, "\n") },
		"date":  func(t time.Time) string { return t.Format("January 2, 2006") },
	}).Parse(invoiceTemplate))
	return s
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string      `json:"invoice_number"`
	InvoiceDate   string      `json:"invoice_date"`
	Order         order.Order `json:"order"`
	Company       CompanyInfo `json:"company"`
}

// CompanyInfo represents company information
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

// RenderInvoice generates a PDF invoice for an order
func (s *Service) RenderInvoice(ctx context.Context, o order.Order) ([]byte, error) {
	htmlContent, err := s.GenerateHTML(o)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	// Convert HTML to PDF
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	// Set PDF options
	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return pdfg.Bytes(), nil
}

// GenerateHTML renders the invoice page that is converted to PDF
func (s *Service) GenerateHTML(o order.Order) (string, error) {
	data := InvoiceData{
		InvoiceNumber: "INV-" + o.ID,
		InvoiceDate:   s.now().Format("January 2, 2006"),
		Order:         o,
		Company:       s.company,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// Invoice HTML template
const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { display: flex; justify-content: space-between; margin-bottom: 30px; border-bottom: 2px solid #eee; padding-bottom: 20px; }
        .invoice-info { text-align: right; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #1f2937; margin-bottom: 10px; }
        .section-title { font-size: 16px; font-weight: bold; margin-bottom: 10px; color: #374151; }
        .items-table { width: 100%; border-collapse: collapse; margin: 30px 0; }
        .items-table th, .items-table td { border: 1px solid #ddd; padding: 12px 8px; text-align: left; }
        .items-table th { background-color: #f8f9fa; }
        .items-table .price-col { text-align: right; width: 140px; }
        .total-row { font-size: 18px; font-weight: bold; text-align: right; }
        .status-badge { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; text-transform: uppercase; }
        .status-Processing { background-color: #fef3c7; color: #92400e; }
        .status-Completed { background-color: #dcfce7; color: #166534; }
        .status-Cancelled { background-color: #fee2e2; color: #991b1b; }
        .footer { margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <div class="company-info">
            <h1>{{.Company.Name}}</h1>
            {{if .Company.Address}}<p>{{.Company.Address}}</p>{{end}}
            {{if .Company.Phone}}<p>Phone: {{.Company.Phone}}</p>{{end}}
            {{if .Company.Email}}<p>Email: {{.Company.Email}}</p>{{end}}
            {{if .Company.Website}}<p>{{.Company.Website}}</p>{{end}}
        </div>
        <div class="invoice-info">
            <div class="invoice-title">INVOICE</div>
            <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
            <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
            <p><strong>Order #:</strong> {{.Order.ID}}</p>
            <p><strong>Order Date:</strong> {{date .Order.Date}}</p>
            <p><span class="status-badge status-{{.Order.Status}}">{{.Order.Status}}</span></p>
        </div>
    </div>

    <div class="shipping-info">
        <div class="section-title">Ship To: {{.Order.ShippingAddress.Label}}</div>
        {{range lines .Order.ShippingAddress.Text}}<p>{{.}}</p>{{end}}
        <p><strong>Payment Method:</strong> {{.Order.PaymentMethod}}</p>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="price-col">Price</th>
            </tr>
        </thead>
        <tbody>
            {{range .Order.Items}}
            <tr>
                <td><strong>{{.Name}}</strong></td>
                <td class="price-col">{{money .Price}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <p class="total-row">Total: {{money .Order.Total}}</p>

    {{if .Order.CancellationReason}}
    <div class="cancellation">
        <div class="section-title">Cancelled</div>
        <p>Reason: {{.Order.CancellationReason}}</p>
        {{if .Order.CancellationComments}}<p>{{.Order.CancellationComments}}</p>{{end}}
    </div>
    {{end}}

    <div class="footer">
        <p>Thank you for shopping with {{.Company.Name}}!</p>
        {{if .Company.Email}}<p>If you have any questions about this invoice, please contact us at {{.Company.Email}}</p>{{end}}
    </div>
</body>
</html>
`
