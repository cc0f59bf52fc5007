package service

import (
	"bytes"
	"encoding/csv"

	"go-backoffice-ws/internal/model"
)

// ExportService renders CSV downloads restricted to the caller's visible
// columns, so a role that cannot see a column on screen cannot export it
// either.
type ExportService interface {
	ExportPurchaseOrdersCSV(role model.Role, scope BranchScope) ([]byte, error)
}

type exportService struct {
	permissions PermissionService
	orders      PurchaseOrderService
}

func NewExportService(permissions PermissionService, orders PurchaseOrderService) ExportService {
	return &exportService{permissions: permissions, orders: orders}
}

func (s *exportService) ExportPurchaseOrdersCSV(role model.Role, scope BranchScope) ([]byte, error) {
	columns, err := s.permissions.VisibleColumns(role, model.PagePurchaseOrders, model.PurchaseOrderColumns)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListOrders(scope)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for i := range orders {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = purchaseOrderCell(&orders[i], col)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func purchaseOrderCell(po *model.PurchaseOrder, column string) string {
	const dateLayout = "2006-01-02"
	switch column {
	case "po_number":
		return po.PONumber
	case "supplier_name":
		if po.Supplier != nil {
			return po.Supplier.Name
		}
		return ""
	case "branch_code":
		return po.BranchCode
	case "status":
		return string(po.Status)
	case "total_amount":
		return po.TotalAmount.StringFixed(2)
	case "paid_amount":
		return po.PaidAmount.StringFixed(2)
	case "invoice_date":
		if po.InvoiceDate != nil {
			return po.InvoiceDate.Format(dateLayout)
		}
		return ""
	case "delivery_date":
		if po.DeliveryDate != nil {
			return po.DeliveryDate.Format(dateLayout)
		}
		return ""
	case "due_date":
		if po.DueDate != nil {
			return po.DueDate.Format(dateLayout)
		}
		return po.DueDateNote
	case "bulk_payment_ref":
		if po.BulkPaymentRef != nil {
			return *po.BulkPaymentRef
		}
		return ""
	default:
		return ""
	}
}
