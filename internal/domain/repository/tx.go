package repository

// TxRepos agrupa los repositorios atados a una misma transacción.
// Lo construye el TxRunner del adaptador de persistencia; los casos de uso no lo arman a mano.
type TxRepos struct {
	Products  ProductRepository
	Customers CustomerRepository
	Invoices  InvoiceRepository
	Quotes    QuoteRepository
	Series    SeriesRepository
	Movements StockMovementRepository
}
