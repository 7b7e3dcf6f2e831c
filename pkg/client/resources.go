package client

// Commonly used Unleashed resource names. Any resource listed in the vendor
// API reference works with Resource/Item; these constants just cover the
// frequent ones.
const (
	ResourceCustomers      = "Customers"
	ResourceProducts       = "Products"
	ResourcePurchaseOrders = "PurchaseOrders"
	ResourceSalesInvoices  = "SalesInvoices"
	ResourceSalesOrders    = "SalesOrders"
	ResourceStockOnHand    = "StockOnHand"
	ResourceSuppliers      = "Suppliers"
	ResourceWarehouses     = "Warehouses"
)

// DetailAllWarehouses is the per-product warehouse breakdown detail of
// StockOnHand.
const DetailAllWarehouses = "AllWarehouses"
