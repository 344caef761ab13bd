package domain

var (
	ROUTE_NOT_FOUND     = "Endpoint tidak ditemukan"
	REQUEST_TOO_LARGE   = "Ukuran permintaan terlalu besar"
	METHOD_NOT_ALLOWED  = "Metode tidak diizinkan"
	REQUEST_NOT_HANDLED = "Permintaan tidak dapat diproses"
	HEALTH_OK           = "Layanan berjalan"
)
